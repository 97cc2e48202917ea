package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"inkwell/models"
)

// AnalyticsService reduces full row sets into dashboard rollups in
// application memory. This trades scalability for simplicity on purpose:
// the dashboard is an admin page over a small dataset.
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates an AnalyticsService.
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// StatusCount is a per-status post rollup.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
	Views  int64  `json:"views"`
}

// MonthBucket is one month of the fixed six-bucket view series.
type MonthBucket struct {
	Month string `json:"month"` // YYYY-MM
	Posts int64  `json:"posts"`
	Views int64  `json:"views"`
}

// DashboardStats is the full analytics payload.
type DashboardStats struct {
	TotalPosts    int64         `json:"total_posts"`
	TotalUsers    int64         `json:"total_users"`
	TotalComments int64         `json:"total_comments"`
	AverageViews  float64       `json:"average_views"`
	PostsByStatus []StatusCount `json:"posts_by_status"`
	TopPosts      []models.Post `json:"top_posts"`
	RecentPosts   []models.Post `json:"recent_posts"`
	MonthlyViews  []MonthBucket `json:"monthly_views"`
}

// Dashboard pulls all post rows (slim columns) plus entity counts and
// reduces them into totals, a one-decimal view average, per-status groups,
// top/recent fives and a month-over-month view series.
func (s *AnalyticsService) Dashboard() (*DashboardStats, error) {
	var posts []models.Post
	err := s.db.Select("id", "author_id", "title", "slug", "status",
		"view_count", "published_at", "created_at").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	var userCount, commentCount int64
	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if err := s.db.Model(&models.Comment{}).Count(&commentCount).Error; err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	return &DashboardStats{
		TotalPosts:    int64(len(posts)),
		TotalUsers:    userCount,
		TotalComments: commentCount,
		AverageViews:  averageViews(posts),
		PostsByStatus: groupPostsByStatus(posts),
		TopPosts:      topPostsByViews(posts, 5),
		RecentPosts:   recentPosts(posts, 5),
		MonthlyViews:  monthlyViewBuckets(posts, time.Now(), 6),
	}, nil
}

// averageViews returns the mean view count rounded to one decimal.
func averageViews(posts []models.Post) float64 {
	if len(posts) == 0 {
		return 0
	}
	var sum int64
	for _, p := range posts {
		sum += p.ViewCount
	}
	avg := float64(sum) / float64(len(posts))
	return math.Round(avg*10) / 10
}

func groupPostsByStatus(posts []models.Post) []StatusCount {
	byStatus := map[string]*StatusCount{}
	for _, p := range posts {
		sc, ok := byStatus[p.Status]
		if !ok {
			sc = &StatusCount{Status: p.Status}
			byStatus[p.Status] = sc
		}
		sc.Count++
		sc.Views += p.ViewCount
	}
	// Fixed order so the payload is stable across loads.
	out := make([]StatusCount, 0, len(byStatus))
	for _, status := range []string{models.PostStatusDraft, models.PostStatusPublished, models.PostStatusArchived} {
		if sc, ok := byStatus[status]; ok {
			out = append(out, *sc)
		}
	}
	return out
}

func topPostsByViews(posts []models.Post, n int) []models.Post {
	sorted := make([]models.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ViewCount > sorted[j].ViewCount
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func recentPosts(posts []models.Post, n int) []models.Post {
	sorted := make([]models.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// monthlyViewBuckets sums views and counts posts created in each of the
// last n calendar months, oldest first. Posts outside the window are ignored.
func monthlyViewBuckets(posts []models.Post, now time.Time, n int) []MonthBucket {
	buckets := make([]MonthBucket, 0, n)
	index := map[string]int{}
	// Anchor on the first of the month so AddDate never normalizes across
	// month boundaries (e.g. May 31 minus one month).
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := n - 1; i >= 0; i-- {
		month := first.AddDate(0, -i, 0).Format("2006-01")
		index[month] = len(buckets)
		buckets = append(buckets, MonthBucket{Month: month})
	}
	for _, p := range posts {
		month := p.CreatedAt.Format("2006-01")
		if i, ok := index[month]; ok {
			buckets[i].Posts++
			buckets[i].Views += p.ViewCount
		}
	}
	return buckets
}
