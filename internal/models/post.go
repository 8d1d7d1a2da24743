// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package models

import (
	"strings"
	"time"
)

// PostRecord is a raw post as ingested from the upstream feed. It is the
// ground truth for all time-windowed recomputation: the leaderboard
// aggregator and the analytics engine both re-derive their numbers from the
// stored PostRecord list rather than trusting upstream aggregates.
//
// A record is immutable once stored. CreatedAt may be nil when the upstream
// timestamp was absent or unparseable; such records are retained in the
// Activity Store but excluded from any windowed computation.
type PostRecord struct {
	// Author is the display form of the author reference as it appeared
	// upstream. Identity comparisons go through Identity(), never through
	// direct string equality.
	Author string `json:"author"`

	// CreatedAt is the parsed creation timestamp in UTC, nil if the source
	// value was missing or unparseable.
	CreatedAt *time.Time `json:"created_at,omitempty"`

	LikeCount    int `json:"like_count"`
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	ViewCount    int `json:"view_count"`

	// Text is the post body (full_text | text | content upstream fallback).
	Text string `json:"text"`

	// URL is the explicit upstream post URL, empty if absent. DisplayURL()
	// resolves a usable link from URL, ID and Author.
	URL string `json:"url,omitempty"`

	// ID is the upstream post identifier (id_str | id), used to synthesize
	// a fallback status URL when URL is empty.
	ID string `json:"id,omitempty"`

	// MediaURLs is the ordered, de-duplicated list of media attachment URLs.
	MediaURLs []string `json:"media_urls,omitempty"`
}

// PostURLPlaceholder is returned by DisplayURL when neither an explicit URL
// nor an ID is available to link the post.
const PostURLPlaceholder = "#"

// DisplayURL resolves the link shown for this post: the explicit URL field,
// else a synthesized status URL from the author identity and post ID, else
// a placeholder.
func (p *PostRecord) DisplayURL() string {
	if p.URL != "" {
		return p.URL
	}
	if p.ID != "" {
		return "https://twitter.com/" + Identity(p.Author) + "/status/" + p.ID
	}
	return PostURLPlaceholder
}

// Identity normalizes a username for same-user comparison: lower-cased with
// a single leading "@" stripped. An empty input stays empty.
func Identity(username string) string {
	return strings.TrimPrefix(strings.ToLower(username), "@")
}
