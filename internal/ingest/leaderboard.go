// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

// Package ingest normalizes heterogeneous leaderboard and post feeds into
// canonical records. Source feeds vary in container shape and field naming
// between exports, so every extraction path runs through ordered alias
// tables and numeric-or-zero coercion. Unrecognized shapes degrade to empty
// collections; only malformed JSON surfaces as an IngestError.
package ingest

import (
	"sort"

	json "github.com/goccy/go-json"

	"github.com/kvas-dev/pulseboard/internal/models"
)

// Ordered alias tables for leaderboard entry fields. First match wins.
var (
	usernameAliases = []string{"username", "user", "name", "screen_name"}
	postsAliases    = []string{"posts", "tweets"}
	likesAliases    = []string{"likes", "favorite_count"}
	retweetsAliases = []string{"retweets", "retweet_count"}
	commentsAliases = []string{"comments", "reply_count"}
	viewsAliases    = []string{"views", "views_count"}
)

// ParseLeaderboard decodes a raw leaderboard document and normalizes it.
// Decode failures return an IngestError; recognized-but-empty or
// scalar-shaped documents return an empty slice with no error.
func ParseLeaderboard(raw []byte) ([]models.UserStat, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, newDecodeError("leaderboard", err)
	}
	return NormalizeLeaderboard(doc), nil
}

// NormalizeLeaderboard converts a decoded leaderboard document into
// canonical user stats. Three container shapes are accepted:
//
//   - an array of flat stat objects
//   - an array of [name, statsObject] pairs
//   - an object mapping name to statsObject
//
// Anything else yields an empty list. For the pair and mapping shapes the
// external key fills in a missing username but never overrides a non-empty
// one extracted from the stats object.
func NormalizeLeaderboard(doc interface{}) []models.UserStat {
	switch container := doc.(type) {
	case []interface{}:
		stats := make([]models.UserStat, 0, len(container))
		for _, entry := range container {
			if stat, ok := normalizeEntry(entry); ok {
				stats = append(stats, stat)
			}
		}
		return stats
	case map[string]interface{}:
		// Map iteration order is not stable, so order entries by key to
		// keep normalization deterministic across runs.
		keys := make([]string, 0, len(container))
		for key := range container {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		stats := make([]models.UserStat, 0, len(keys))
		for _, key := range keys {
			stat := extractStat(asObject(container[key]))
			if stat.Username == "" {
				stat.Username = key
			}
			stats = append(stats, stat)
		}
		return stats
	default:
		return []models.UserStat{}
	}
}

// normalizeEntry handles a single array element: either a flat stat object
// or a [name, statsObject] pair.
func normalizeEntry(entry interface{}) (models.UserStat, bool) {
	switch e := entry.(type) {
	case map[string]interface{}:
		return extractStat(e), true
	case []interface{}:
		if len(e) < 2 {
			return models.UserStat{}, false
		}
		stat := extractStat(asObject(e[1]))
		if stat.Username == "" {
			stat.Username = stringOr(e[0])
		}
		return stat, true
	default:
		return models.UserStat{}, false
	}
}

// extractStat pulls the canonical fields out of a single stats object via
// the alias tables. A nil object yields the zero stat.
func extractStat(obj map[string]interface{}) models.UserStat {
	if obj == nil {
		return models.UserStat{}
	}
	return models.UserStat{
		Username: firstString(obj, usernameAliases),
		Posts:    firstNumeric(obj, postsAliases),
		Likes:    firstNumeric(obj, likesAliases),
		Retweets: firstNumeric(obj, retweetsAliases),
		Comments: firstNumeric(obj, commentsAliases),
		Views:    firstNumeric(obj, viewsAliases),
	}
}

func asObject(v interface{}) map[string]interface{} {
	obj, _ := v.(map[string]interface{})
	return obj
}
