// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package export

import (
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/kvas-dev/pulseboard/internal/models"
)

func TestCSVRowsFollowUserAggregates(t *testing.T) {
	result := &models.AnalyticsResult{
		Users: []models.AuthorAggregate{
			{Username: "alice", Posts: 3, Likes: 10, Views: 100},
			{Username: "bob, the builder", Posts: 1, Likes: 2, Views: 30},
		},
	}
	out, err := CSV(result)
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), out)
	}
	if lines[0] != "username,posts,likes,views" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "alice,3,10,100" {
		t.Errorf("row = %q", lines[1])
	}
	// Commas in usernames must be quoted, not split.
	if !strings.HasPrefix(lines[2], `"bob, the builder",`) {
		t.Errorf("quoting broken: %q", lines[2])
	}
}

func TestCSVEmptyWorkingSet(t *testing.T) {
	out, err := CSV(&models.AnalyticsResult{})
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}
	if strings.TrimSpace(string(out)) != "username,posts,likes,views" {
		t.Errorf("empty export = %q, want header only", out)
	}
}

func TestJSONCarriesWorkingSet(t *testing.T) {
	ts := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	result := &models.AnalyticsResult{
		Period: "7",
		Users:  []models.AuthorAggregate{{Username: "alice", Posts: 1, Likes: 5}},
	}
	working := []models.PostRecord{{Author: "alice", CreatedAt: &ts, LikeCount: 5, Text: "hi"}}

	out, err := JSON(result, working)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded struct {
		Tweets []map[string]interface{} `json:"tweets"`
		Users  []map[string]interface{} `json:"users"`
		Period string                   `json:"period"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if decoded.Period != "7" {
		t.Errorf("period = %q", decoded.Period)
	}
	if len(decoded.Tweets) != 1 || len(decoded.Users) != 1 {
		t.Errorf("payload sizes = %d tweets, %d users", len(decoded.Tweets), len(decoded.Users))
	}
}

func TestJSONEmptySetEncodesArrays(t *testing.T) {
	out, err := JSON(&models.AnalyticsResult{Period: "all"}, nil)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `"tweets":[]`) || !strings.Contains(s, `"users":[]`) {
		t.Errorf("empty collections must encode as [], got %s", s)
	}
}
