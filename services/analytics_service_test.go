package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/models"
)

func post(id uint, status string, views int64, createdAt time.Time) models.Post {
	return models.Post{ID: id, Status: status, ViewCount: views, CreatedAt: createdAt}
}

func TestAverageViews(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 0.0, averageViews(nil))
	posts := []models.Post{
		post(1, models.PostStatusPublished, 10, now),
		post(2, models.PostStatusPublished, 11, now),
		post(3, models.PostStatusDraft, 12, now),
	}
	// 33/3 = 11.0
	assert.Equal(t, 11.0, averageViews(posts))

	posts = append(posts, post(4, models.PostStatusDraft, 0, now))
	// 33/4 = 8.25, rounds to one decimal
	assert.Equal(t, 8.3, averageViews(posts))
}

func TestGroupPostsByStatus(t *testing.T) {
	now := time.Now()
	posts := []models.Post{
		post(1, models.PostStatusPublished, 5, now),
		post(2, models.PostStatusPublished, 7, now),
		post(3, models.PostStatusDraft, 1, now),
	}
	groups := groupPostsByStatus(posts)
	require.Len(t, groups, 2)
	assert.Equal(t, StatusCount{Status: models.PostStatusDraft, Count: 1, Views: 1}, groups[0])
	assert.Equal(t, StatusCount{Status: models.PostStatusPublished, Count: 2, Views: 12}, groups[1])
}

func TestTopPostsByViews(t *testing.T) {
	now := time.Now()
	posts := []models.Post{
		post(1, models.PostStatusPublished, 3, now),
		post(2, models.PostStatusPublished, 9, now),
		post(3, models.PostStatusPublished, 1, now),
		post(4, models.PostStatusPublished, 9, now),
	}
	top := topPostsByViews(posts, 3)
	require.Len(t, top, 3)
	// Stable sort keeps insertion order among equals.
	assert.Equal(t, uint(2), top[0].ID)
	assert.Equal(t, uint(4), top[1].ID)
	assert.Equal(t, uint(1), top[2].ID)

	// Input slice must not be reordered.
	assert.Equal(t, uint(1), posts[0].ID)
}

func TestRecentPosts(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	posts := []models.Post{
		post(1, models.PostStatusPublished, 0, base),
		post(2, models.PostStatusPublished, 0, base.AddDate(0, 0, 2)),
		post(3, models.PostStatusPublished, 0, base.AddDate(0, 0, 1)),
	}
	recent := recentPosts(posts, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, uint(2), recent[0].ID)
	assert.Equal(t, uint(3), recent[1].ID)
}

func TestMonthlyViewBuckets(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	posts := []models.Post{
		post(1, models.PostStatusPublished, 10, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		post(2, models.PostStatusPublished, 5, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)),
		post(3, models.PostStatusPublished, 7, time.Date(2026, 6, 30, 23, 59, 0, 0, time.UTC)),
		// Outside the six-month window, must be ignored.
		post(4, models.PostStatusPublished, 100, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)),
	}

	buckets := monthlyViewBuckets(posts, now, 6)
	require.Len(t, buckets, 6)
	assert.Equal(t, "2026-03", buckets[0].Month)
	assert.Equal(t, "2026-08", buckets[5].Month)

	assert.Equal(t, MonthBucket{Month: "2026-06", Posts: 1, Views: 7}, buckets[3])
	assert.Equal(t, MonthBucket{Month: "2026-08", Posts: 2, Views: 15}, buckets[5])
	assert.Equal(t, MonthBucket{Month: "2026-07"}, buckets[4])
}

func TestMonthlyViewBucketsEndOfMonthAnchor(t *testing.T) {
	// May 31: subtracting months must not skip April.
	now := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	buckets := monthlyViewBuckets(nil, now, 3)
	require.Len(t, buckets, 3)
	assert.Equal(t, "2026-03", buckets[0].Month)
	assert.Equal(t, "2026-04", buckets[1].Month)
	assert.Equal(t, "2026-05", buckets[2].Month)
}
