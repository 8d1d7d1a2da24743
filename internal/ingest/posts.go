// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package ingest

import (
	json "github.com/goccy/go-json"

	"github.com/kvas-dev/pulseboard/internal/models"
)

// Ordered alias tables for post record fields.
var (
	authorAliases    = []string{"screen_name", "name"}
	createdAtAliases = []string{"tweet_created_at", "created_at", "created"}
	textAliases      = []string{"full_text", "text", "content"}
	idAliases        = []string{"id_str", "id"}
)

// ParsePosts decodes a raw posts document and normalizes it. Decode
// failures return an IngestError; unrecognized shapes degrade to an empty
// slice with no error.
func ParsePosts(raw []byte) ([]models.PostRecord, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, newDecodeError("posts", err)
	}
	return NormalizePosts(doc), nil
}

// NormalizePosts converts a decoded posts document into post records.
// Accepted containers, tried in order: a bare array, an object with a
// "tweets" array, an object with a "data" array, or a single post object
// wrapped as a one-element list. Anything else yields an empty list.
func NormalizePosts(doc interface{}) []models.PostRecord {
	items := postContainer(doc)
	posts := make([]models.PostRecord, 0, len(items))
	for _, item := range items {
		obj := asObject(item)
		if obj == nil {
			continue
		}
		posts = append(posts, extractPost(obj))
	}
	return posts
}

// postContainer resolves the raw item list from any accepted container
// shape.
func postContainer(doc interface{}) []interface{} {
	switch container := doc.(type) {
	case []interface{}:
		return container
	case map[string]interface{}:
		if tweets, ok := container["tweets"].([]interface{}); ok {
			return tweets
		}
		if data, ok := container["data"].([]interface{}); ok {
			return data
		}
		return []interface{}{container}
	default:
		return nil
	}
}

// extractPost pulls the canonical fields out of a single post object.
// An unparseable or absent timestamp leaves CreatedAt nil; the record stays
// in the store but is excluded from windowed computations.
func extractPost(obj map[string]interface{}) models.PostRecord {
	post := models.PostRecord{
		Author:       extractAuthor(obj),
		LikeCount:    numericOrZero(obj["favorite_count"]),
		RetweetCount: numericOrZero(obj["retweet_count"]),
		ReplyCount:   numericOrZero(obj["reply_count"]),
		ViewCount:    numericOrZero(obj["views_count"]),
		Text:         firstString(obj, textAliases),
		URL:          stringOr(obj["url"]),
		ID:           firstString(obj, idAliases),
		MediaURLs:    extractMediaURLs(obj),
	}
	if raw := firstString(obj, createdAtAliases); raw != "" {
		post.CreatedAt = parseTimestamp(raw)
	}
	return post
}

// extractAuthor reads the nested user object's screen name, falling back
// to its display name.
func extractAuthor(obj map[string]interface{}) string {
	user := asObject(obj["user"])
	if user == nil {
		return ""
	}
	return firstString(user, authorAliases)
}

// extractMediaURLs collects media URLs from extended_entities.media,
// entities.media, or a top-level media array, preferring the https variant
// of each URL and de-duplicating while preserving order.
func extractMediaURLs(obj map[string]interface{}) []string {
	var mediaList []interface{}
	if ext := asObject(obj["extended_entities"]); ext != nil {
		mediaList, _ = ext["media"].([]interface{})
	}
	if mediaList == nil {
		if ent := asObject(obj["entities"]); ent != nil {
			mediaList, _ = ent["media"].([]interface{})
		}
	}
	if mediaList == nil {
		mediaList, _ = obj["media"].([]interface{})
	}
	if len(mediaList) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(mediaList))
	urls := make([]string, 0, len(mediaList))
	for _, item := range mediaList {
		media := asObject(item)
		if media == nil {
			continue
		}
		url := stringOr(media["media_url_https"])
		if url == "" {
			url = stringOr(media["media_url"])
		}
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		urls = append(urls, url)
	}
	if len(urls) == 0 {
		return nil
	}
	return urls
}
