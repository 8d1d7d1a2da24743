// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/kvas-dev/pulseboard/internal/models"
)

var now = time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC) // a Saturday

func at(daysAgo, hour int) *time.Time {
	t := time.Date(2026, 8, 29, hour, 30, 0, 0, time.UTC).AddDate(0, 0, -daysAgo)
	return &t
}

func post(author string, created *time.Time, likes, views int) models.PostRecord {
	return models.PostRecord{Author: author, CreatedAt: created, LikeCount: likes, ViewCount: views}
}

func TestAnalyzeEmptySet(t *testing.T) {
	res := Analyze(nil, DefaultRequest(), now)

	if res.UniqueUsers != 0 || res.TotalPosts != 0 {
		t.Errorf("empty set counts = %+v", res)
	}
	if res.AvgPostsPerUser != 0 || res.AvgLikesPerUser != 0 || res.AvgViewsPerUser != 0 {
		t.Errorf("empty set averages must be 0: %+v", res)
	}
	if len(res.TopAuthors) != 0 || len(res.TopPosts) != 0 {
		t.Error("empty set produced top lists")
	}
	if res.Heatmap.MaxCount != 0 || res.Heatmap.TotalPosts != 0 {
		t.Errorf("empty set heatmap = %+v", res.Heatmap)
	}
	if len(res.Daily) != models.ChartDaysAll {
		t.Errorf("daily series length = %d, want %d", len(res.Daily), models.ChartDaysAll)
	}
}

func TestAnalyzeAggregatesAndAverages(t *testing.T) {
	posts := []models.PostRecord{
		post("@Alice", at(1, 10), 10, 100),
		post("alice", at(2, 11), 20, 200),
		post("bob", at(3, 12), 30, 300),
	}
	res := Analyze(posts, DefaultRequest(), now)

	if res.UniqueUsers != 2 {
		t.Fatalf("unique users = %d, want 2 (identity merge)", res.UniqueUsers)
	}
	if res.TotalPosts != 3 || res.TotalLikes != 60 || res.TotalViews != 600 {
		t.Errorf("totals = %d/%d/%d", res.TotalPosts, res.TotalLikes, res.TotalViews)
	}
	if res.AvgPostsPerUser != 1.5 || res.AvgLikesPerUser != 30 || res.AvgViewsPerUser != 300 {
		t.Errorf("averages = %v/%v/%v", res.AvgPostsPerUser, res.AvgLikesPerUser, res.AvgViewsPerUser)
	}
	// Display name is the first raw form seen.
	if res.Users[0].Username != "@Alice" {
		t.Errorf("first user = %q, want first-appearance form", res.Users[0].Username)
	}
}

func TestAnalyzeHourFilterAppliesToWorkingSetAndHeatmap(t *testing.T) {
	posts := []models.PostRecord{
		post("alice", at(1, 10), 1, 0),
		post("alice", at(2, 10), 2, 0),
		post("bob", at(1, 15), 4, 0),
	}
	req := DefaultRequest()
	req.HourFilter = models.HourFilter(10)
	res := Analyze(posts, req, now)

	if res.TotalPosts != 2 || res.UniqueUsers != 1 {
		t.Errorf("hour filter not applied: posts=%d users=%d", res.TotalPosts, res.UniqueUsers)
	}
	if res.Heatmap.TotalPosts != 2 {
		t.Errorf("heatmap source must follow the hour filter, got %d posts", res.Heatmap.TotalPosts)
	}
	if res.Period != "all@10" {
		t.Errorf("period = %q", res.Period)
	}
}

func TestAnalyzeTopAuthorsTieBreak(t *testing.T) {
	posts := []models.PostRecord{
		post("first", at(1, 9), 5, 0),
		post("second", at(1, 10), 5, 0),
		post("third", at(1, 11), 5, 0),
	}
	req := DefaultRequest()
	req.AuthorMetric = models.AuthorByLikes
	res := Analyze(posts, req, now)

	for i, want := range []string{"first", "second", "third"} {
		if res.TopAuthors[i].Username != want {
			t.Fatalf("tie-break order broken: %+v", res.TopAuthors)
		}
	}
}

func TestAnalyzeTopPostsCapAndExcerpt(t *testing.T) {
	long := strings.Repeat("я", models.ExcerptLength+50)
	posts := make([]models.PostRecord, 0, 12)
	for i := 0; i < 12; i++ {
		p := post("alice", at(1, 10), i, 0)
		p.Text = long
		p.ID = "100"
		posts = append(posts, p)
	}
	req := DefaultRequest()
	res := Analyze(posts, req, now)

	if len(res.TopPosts) != models.TopN {
		t.Fatalf("top posts = %d, want %d", len(res.TopPosts), models.TopN)
	}
	if res.TopPosts[0].Likes != 11 {
		t.Errorf("top post likes = %d, want 11 (descending)", res.TopPosts[0].Likes)
	}
	if got := len([]rune(res.TopPosts[0].Excerpt)); got != models.ExcerptLength {
		t.Errorf("excerpt length = %d runes, want %d", got, models.ExcerptLength)
	}
	if res.TopPosts[0].URL != "https://twitter.com/alice/status/100" {
		t.Errorf("url = %q", res.TopPosts[0].URL)
	}
}

func TestHeatmapCellsSumToFilteredPosts(t *testing.T) {
	posts := []models.PostRecord{
		post("a", at(1, 0), 0, 0),
		post("a", at(1, 0), 0, 0),
		post("b", at(2, 23), 0, 0),
		post("c", nil, 0, 0), // unparseable timestamp stays out of the histogram
	}
	res := Analyze(posts, DefaultRequest(), now)

	sum := 0
	for day := range res.Heatmap.Cells {
		for hour := range res.Heatmap.Cells[day] {
			sum += res.Heatmap.Cells[day][hour].Count
		}
	}
	if sum != 3 || res.Heatmap.TotalPosts != 3 {
		t.Errorf("cell sum = %d, totalPosts = %d, want 3", sum, res.Heatmap.TotalPosts)
	}
	if res.Heatmap.MaxCount != 2 {
		t.Errorf("max count = %d, want 2", res.Heatmap.MaxCount)
	}

	// Intensity normalizes by the max cell.
	day := int(at(1, 0).Weekday())
	if got := res.Heatmap.Cells[day][0].Intensity; got != 1.0 {
		t.Errorf("max cell intensity = %v, want 1.0", got)
	}
	day = int(at(2, 23).Weekday())
	if got := res.Heatmap.Cells[day][23].Intensity; got != 0.5 {
		t.Errorf("half cell intensity = %v, want 0.5", got)
	}
}

func TestDailySeriesWindowedAndZeroFilled(t *testing.T) {
	posts := []models.PostRecord{
		post("a", at(0, 9), 0, 0),
		post("a", at(0, 20), 0, 0),
		post("b", at(3, 12), 0, 0),
		post("c", at(40, 12), 0, 0), // outside the 7-day window
	}
	req := DefaultRequest()
	req.Window = models.LastNDays(7)
	req.HourFilter = models.HourFilter(9) // daily series must ignore this
	res := Analyze(posts, req, now)

	if len(res.Daily) != 7 {
		t.Fatalf("series length = %d, want 7", len(res.Daily))
	}
	last := res.Daily[len(res.Daily)-1]
	if last.Date != "2026-08-29" || last.Posts != 2 {
		t.Errorf("today's bucket = %+v, want 2 posts on 2026-08-29", last)
	}
	if res.Daily[len(res.Daily)-4].Posts != 1 {
		t.Errorf("3-days-ago bucket = %+v", res.Daily[len(res.Daily)-4])
	}
	zeroes := 0
	for _, bucket := range res.Daily {
		if bucket.Posts == 0 {
			zeroes++
		}
	}
	if zeroes != 5 {
		t.Errorf("zero-filled buckets = %d, want 5", zeroes)
	}

	// Consecutive dates.
	for i := 1; i < len(res.Daily); i++ {
		prev, _ := time.Parse("2006-01-02", res.Daily[i-1].Date)
		cur, _ := time.Parse("2006-01-02", res.Daily[i].Date)
		if cur.Sub(prev) != 24*time.Hour {
			t.Fatalf("series not consecutive at %d: %s -> %s", i, prev, cur)
		}
	}
}
