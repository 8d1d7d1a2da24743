// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package models

// TopN is the number of entries in the top-author and top-post lists.
const TopN = 10

// ExcerptLength is the maximum number of characters of post text carried in
// a TopPost entry.
const ExcerptLength = 200

// ChartDaysAll is the daily-series length used when the day window is
// unbounded.
const ChartDaysAll = 60

// AuthorMetric selects the metric the top-authors list is ranked by.
// Analytics aggregates only posts, likes and views per user; the leaderboard
// aggregator additionally tracks retweets and comments. The asymmetry is
// intentional.
type AuthorMetric string

// Top-author ranking metrics.
const (
	AuthorByPosts AuthorMetric = "posts"
	AuthorByLikes AuthorMetric = "likes"
	AuthorByViews AuthorMetric = "views"
)

// Valid reports whether m is a defined author metric.
func (m AuthorMetric) Valid() bool {
	switch m {
	case AuthorByPosts, AuthorByLikes, AuthorByViews:
		return true
	}
	return false
}

// PostMetric selects the metric the top-posts list is ranked by.
type PostMetric string

// Top-post ranking metrics.
const (
	PostByLikes PostMetric = "likes"
	PostByViews PostMetric = "views"
)

// Valid reports whether m is a defined post metric.
func (m PostMetric) Valid() bool {
	return m == PostByLikes || m == PostByViews
}

// AuthorAggregate is the analytics per-user aggregate: post count plus like
// and view sums over the filtered working set.
type AuthorAggregate struct {
	Username string `json:"username"`
	Posts    int    `json:"posts"`
	Likes    int    `json:"likes"`
	Views    int    `json:"views"`
}

// Metric returns the value selected by m (zero for unknown metrics).
func (a *AuthorAggregate) Metric(m AuthorMetric) int {
	switch m {
	case AuthorByPosts:
		return a.Posts
	case AuthorByLikes:
		return a.Likes
	case AuthorByViews:
		return a.Views
	}
	return 0
}

// TopPost is one entry of the top-posts list: the ranked metrics plus a
// truncated excerpt and a resolved display URL.
type TopPost struct {
	Author    string `json:"author"`
	Excerpt   string `json:"excerpt"`
	URL       string `json:"url"`
	Likes     int    `json:"likes"`
	Views     int    `json:"views"`
	CreatedAt string `json:"created_at,omitempty"`
}

// HeatmapCell is one cell of the 7x24 activity histogram with its color
// intensity pre-normalized for rendering.
type HeatmapCell struct {
	Count int `json:"count"`
	// Intensity is Count divided by the matrix maximum, in [0, 1]. An
	// all-zero matrix has zero intensity everywhere.
	Intensity float64 `json:"intensity"`
}

// Heatmap is the day-of-week x hour-of-day activity histogram. Rows are
// indexed by UTC day of week with 0 = Sunday; columns by UTC hour 0-23.
type Heatmap struct {
	Cells [7][24]HeatmapCell `json:"cells"`
	// MaxCount is the largest cell count, the normalization base for
	// Intensity. Zero when the filtered set is empty.
	MaxCount int `json:"max_count"`
	// TotalPosts is the sum of all cells, i.e. the number of posts with a
	// parseable timestamp in the histogram source set.
	TotalPosts int `json:"total_posts"`
}

// DayBucket is one bucket of the daily time series.
type DayBucket struct {
	// Date is the ISO calendar date (YYYY-MM-DD, UTC) of the bucket.
	Date  string `json:"date"`
	Posts int    `json:"posts"`
}

// AnalyticsResult is the complete output of one analytics computation over
// the filtered working set.
type AnalyticsResult struct {
	Window     Window     `json:"-"`
	HourFilter HourFilter `json:"-"`

	// Period is the wire form of the window/hour selection, carried in
	// exports so a consumer can tell what the numbers cover.
	Period string `json:"period"`

	UniqueUsers int `json:"unique_users"`
	TotalPosts  int `json:"total_posts"`
	TotalLikes  int `json:"total_likes"`
	TotalViews  int `json:"total_views"`

	// Per-user averages; 0 when UniqueUsers is 0.
	AvgPostsPerUser float64 `json:"avg_posts_per_user"`
	AvgLikesPerUser float64 `json:"avg_likes_per_user"`
	AvgViewsPerUser float64 `json:"avg_views_per_user"`

	// Users holds the per-user aggregates in first-appearance order of the
	// filtered set. This order is the tie-break for TopAuthors.
	Users []AuthorAggregate `json:"users"`

	TopAuthors []AuthorAggregate `json:"top_authors"`
	TopPosts   []TopPost         `json:"top_posts"`

	Heatmap Heatmap     `json:"heatmap"`
	Daily   []DayBucket `json:"daily"`
}
