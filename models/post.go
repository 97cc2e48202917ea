package models

import "time"

// Post statuses. Transitions are unconstrained; any status may move to any other.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// Post represents a blog post. The slug is unique across all posts; the
// unique index backs the application-level uniqueness retry so concurrent
// creations surface as a conflict instead of a silent duplicate.
type Post struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	AuthorID      uint       `gorm:"index;not null" json:"author_id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Slug          string     `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Content       string     `gorm:"type:text" json:"content"`
	Excerpt       string     `gorm:"size:512" json:"excerpt"`
	Status        string     `gorm:"size:16;index;default:'draft'" json:"status"`
	FeaturedImage string     `gorm:"size:512" json:"featured_image"`
	ViewCount     int64      `gorm:"default:0" json:"view_count"`
	PublishedAt   *time.Time `json:"published_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Author     User       `gorm:"foreignKey:AuthorID" json:"author"`
	Categories []Category `gorm:"many2many:post_categories;" json:"categories"`

	// Comments holds the approved comments attached at read time.
	// CommentsCount is derived from that list, never a stored column.
	Comments      []Comment `gorm:"-" json:"comments,omitempty"`
	CommentsCount int       `gorm:"-" json:"comments_count"`
}

// ValidPostStatus reports whether s is a known post status.
func ValidPostStatus(s string) bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}
