// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

// Package analytics builds the analytics view over the raw post list: per
// user aggregates, global averages, top authors and posts, the day/hour
// activity heatmap, and a daily time series. Its window state is
// independent from the leaderboard's.
package analytics

import (
	"sort"
	"time"

	"github.com/kvas-dev/pulseboard/internal/models"
)

// Request selects the analytics working set and ranking metrics.
type Request struct {
	Window       models.Window
	HourFilter   models.HourFilter
	AuthorMetric models.AuthorMetric
	PostMetric   models.PostMetric
}

// DefaultRequest is the unbounded, posts-ranked analytics selection.
func DefaultRequest() Request {
	return Request{
		Window:       models.WindowAll,
		HourFilter:   models.HourFilterAll,
		AuthorMetric: models.AuthorByPosts,
		PostMetric:   models.PostByLikes,
	}
}

// Analyze computes the full analytics result for the given posts at the
// reference time now. The day window and hour filter apply together to the
// working set, including the heatmap source; the daily series uses only the
// day window.
func Analyze(posts []models.PostRecord, req Request, now time.Time) models.AnalyticsResult {
	if !req.AuthorMetric.Valid() {
		req.AuthorMetric = models.AuthorByPosts
	}
	if !req.PostMetric.Valid() {
		req.PostMetric = models.PostByLikes
	}

	dayFiltered, working := FilterWorkingSet(posts, req.Window, req.HourFilter, now)

	result := models.AnalyticsResult{
		Window:     req.Window,
		HourFilter: req.HourFilter,
		Period:     period(req.Window, req.HourFilter),
		TotalPosts: len(working),
	}

	result.Users = aggregateUsers(working)
	result.UniqueUsers = len(result.Users)
	for _, user := range result.Users {
		result.TotalLikes += user.Likes
		result.TotalViews += user.Views
	}
	if result.UniqueUsers > 0 {
		n := float64(result.UniqueUsers)
		result.AvgPostsPerUser = float64(result.TotalPosts) / n
		result.AvgLikesPerUser = float64(result.TotalLikes) / n
		result.AvgViewsPerUser = float64(result.TotalViews) / n
	}

	result.TopAuthors = topAuthors(result.Users, req.AuthorMetric)
	result.TopPosts = topPosts(working, req.PostMetric)
	result.Heatmap = buildHeatmap(working)
	result.Daily = dailySeries(dayFiltered, req.Window, now)

	return result
}

// FilterWorkingSet applies the day window, then the hour filter, returning
// both stages: the day-filtered set feeds the daily series, the fully
// filtered set feeds everything else. Exports reuse the second stage as the
// raw working set.
func FilterWorkingSet(posts []models.PostRecord, window models.Window, hour models.HourFilter, now time.Time) (dayFiltered, working []models.PostRecord) {
	dayFiltered = make([]models.PostRecord, 0, len(posts))
	for _, post := range posts {
		if window.Contains(post.CreatedAt, now) {
			dayFiltered = append(dayFiltered, post)
		}
	}
	if hour.All() {
		return dayFiltered, dayFiltered
	}
	working = make([]models.PostRecord, 0, len(dayFiltered))
	for _, post := range dayFiltered {
		if hour.Matches(post.CreatedAt) {
			working = append(working, post)
		}
	}
	return dayFiltered, working
}

// period encodes the window/hour selection for export consumers.
func period(w models.Window, h models.HourFilter) string {
	if h.All() {
		return w.String()
	}
	return w.String() + "@" + h.String()
}

// aggregateUsers groups the working set by author identity in
// first-appearance order. The display username is the first raw author form
// seen for the identity. That order doubles as the top-author tie-break.
func aggregateUsers(posts []models.PostRecord) []models.AuthorAggregate {
	index := make(map[string]int, len(posts))
	users := make([]models.AuthorAggregate, 0, len(posts))

	for _, post := range posts {
		id := models.Identity(post.Author)
		i, seen := index[id]
		if !seen {
			i = len(users)
			index[id] = i
			users = append(users, models.AuthorAggregate{Username: post.Author})
		}
		users[i].Posts++
		users[i].Likes += post.LikeCount
		users[i].Views += post.ViewCount
	}
	return users
}

// topAuthors returns the first TopN users sorted descending by metric.
// The stable sort keeps first-appearance order on ties.
func topAuthors(users []models.AuthorAggregate, metric models.AuthorMetric) []models.AuthorAggregate {
	ranked := append([]models.AuthorAggregate(nil), users...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Metric(metric) > ranked[j].Metric(metric)
	})
	if len(ranked) > models.TopN {
		ranked = ranked[:models.TopN]
	}
	return ranked
}

// topPosts returns the first TopN posts sorted descending by metric, each
// reduced to its excerpt and display URL.
func topPosts(posts []models.PostRecord, metric models.PostMetric) []models.TopPost {
	ranked := append([]models.PostRecord(nil), posts...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return postMetric(&ranked[i], metric) > postMetric(&ranked[j], metric)
	})
	if len(ranked) > models.TopN {
		ranked = ranked[:models.TopN]
	}

	top := make([]models.TopPost, len(ranked))
	for i := range ranked {
		post := &ranked[i]
		entry := models.TopPost{
			Author:  post.Author,
			Excerpt: excerpt(post.Text),
			URL:     post.DisplayURL(),
			Likes:   post.LikeCount,
			Views:   post.ViewCount,
		}
		if post.CreatedAt != nil {
			entry.CreatedAt = post.CreatedAt.Format(time.RFC3339)
		}
		top[i] = entry
	}
	return top
}

func postMetric(post *models.PostRecord, metric models.PostMetric) int {
	if metric == models.PostByViews {
		return post.ViewCount
	}
	return post.LikeCount
}

// excerpt truncates text to ExcerptLength characters on a rune boundary.
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= models.ExcerptLength {
		return text
	}
	return string(runes[:models.ExcerptLength])
}

// buildHeatmap counts posts per UTC (day-of-week, hour-of-day) cell and
// normalizes each cell's intensity by the matrix maximum. Posts without a
// parseable timestamp are skipped.
func buildHeatmap(posts []models.PostRecord) models.Heatmap {
	var hm models.Heatmap
	for _, post := range posts {
		if post.CreatedAt == nil {
			continue
		}
		t := post.CreatedAt.UTC()
		day := int(t.Weekday()) // 0 = Sunday
		hour := t.Hour()
		hm.Cells[day][hour].Count++
		hm.TotalPosts++
		if hm.Cells[day][hour].Count > hm.MaxCount {
			hm.MaxCount = hm.Cells[day][hour].Count
		}
	}
	if hm.MaxCount > 0 {
		for day := range hm.Cells {
			for hour := range hm.Cells[day] {
				cell := &hm.Cells[day][hour]
				cell.Intensity = float64(cell.Count) / float64(hm.MaxCount)
			}
		}
	}
	return hm
}

// dailySeries emits consecutive zero-filled day buckets ending today. The
// series length is the day-window size, or ChartDaysAll for the unbounded
// window. The hour filter never applies here.
func dailySeries(dayFiltered []models.PostRecord, window models.Window, now time.Time) []models.DayBucket {
	days := models.ChartDaysAll
	if !window.All() {
		days = window.Days
	}

	counts := make(map[string]int, len(dayFiltered))
	for _, post := range dayFiltered {
		if post.CreatedAt == nil {
			continue
		}
		counts[post.CreatedAt.UTC().Format("2006-01-02")]++
	}

	today := now.UTC().Truncate(24 * time.Hour)
	series := make([]models.DayBucket, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i-days+1).Format("2006-01-02")
		series[i] = models.DayBucket{Date: date, Posts: counts[date]}
	}
	return series
}
