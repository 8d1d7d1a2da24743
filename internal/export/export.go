// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

// Package export renders the current analytics working set as CSV and JSON
// download payloads.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/kvas-dev/pulseboard/internal/models"
)

// csvHeader is the fixed column set of the CSV export.
var csvHeader = []string{"username", "posts", "likes", "views"}

// CSV renders one row per user aggregate from the analytics working set.
func CSV(result *models.AnalyticsResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, user := range result.Users {
		row := []string{
			user.Username,
			strconv.Itoa(user.Posts),
			strconv.Itoa(user.Likes),
			strconv.Itoa(user.Views),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row for %s: %w", user.Username, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// jsonPayload is the JSON export shape: the raw working set plus its
// per-user aggregates and the period selector they were computed under.
type jsonPayload struct {
	Tweets []models.PostRecord      `json:"tweets"`
	Users  []models.AuthorAggregate `json:"users"`
	Period string                   `json:"period"`
}

// JSON renders the full working set: the filtered posts, the per-user
// aggregates, and the period they cover.
func JSON(result *models.AnalyticsResult, workingSet []models.PostRecord) ([]byte, error) {
	if workingSet == nil {
		workingSet = []models.PostRecord{}
	}
	users := result.Users
	if users == nil {
		users = []models.AuthorAggregate{}
	}
	payload := jsonPayload{
		Tweets: workingSet,
		Users:  users,
		Period: result.Period,
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json export: %w", err)
	}
	return out, nil
}
