package models

// PostCategory is the explicit join row between posts and categories.
// The application manages these rows directly: category updates replace all
// rows for a post, and post deletion removes them before the post itself.
type PostCategory struct {
	PostID     uint `gorm:"primaryKey" json:"post_id"`
	CategoryID uint `gorm:"primaryKey" json:"category_id"`
}

// TableName keeps the join table name aligned with the many2many tag on Post.
func (PostCategory) TableName() string { return "post_categories" }
