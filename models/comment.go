package models

import "time"

// Comment statuses. New comments always start as pending regardless of the
// caller-supplied value.
const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusSpam     = "spam"
	CommentStatusTrash    = "trash"
)

// Comment represents a reply to a post. Author identity is denormalized so
// anonymous visitors can comment without an account. ParentID enables a
// single level of reply nesting.
type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PostID       uint      `gorm:"index;not null" json:"post_id"`
	ParentID     *uint     `gorm:"index" json:"parent_id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	AuthorName   string    `gorm:"size:128" json:"author_name"`
	AuthorEmail  string    `gorm:"size:255" json:"author_email"`
	AuthorAvatar string    `gorm:"size:512" json:"author_avatar"`
	Status       string    `gorm:"size:16;index;default:'pending'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// PostTitle is enriched in memory when listing; not a column.
	PostTitle string `gorm:"-" json:"post_title,omitempty"`
}

// ValidCommentStatus reports whether s is a known comment status.
func ValidCommentStatus(s string) bool {
	switch s {
	case CommentStatusPending, CommentStatusApproved, CommentStatusSpam, CommentStatusTrash:
		return true
	}
	return false
}
