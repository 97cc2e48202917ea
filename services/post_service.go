package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"inkwell/models"
)

// PostService orchestrates post CRUD, slug uniqueness, category joins and
// approved-comment aggregation.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a PostService.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// PostInput carries caller-supplied post fields. CategoryIDs nil means
// "not supplied" on update; an empty non-nil slice clears all associations.
type PostInput struct {
	Title         string
	Content       string
	Excerpt       string
	Status        string
	FeaturedImage string
	PublishedAt   *time.Time
	CategoryIDs   []uint
}

// PostFilter narrows FindAll results. Zero values mean "no filter".
type PostFilter struct {
	Status     string
	AuthorID   uint
	CategoryID uint
}

// Create inserts a new post for the given author, generating a unique slug
// from the title and attaching the supplied categories. Category ids that do
// not exist are silently dropped. PublishedAt is stamped only when the
// initial status is published.
func (s *PostService) Create(input PostInput, authorID uint) (*models.Post, error) {
	var author models.User
	if err := s.db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("author %d: %w", authorID, ErrNotFound)
		}
		return nil, fmt.Errorf("load author: %w", err)
	}

	status := input.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	post := models.Post{
		AuthorID:      authorID,
		Title:         input.Title,
		Slug:          UniqueSlug(Slugify(input.Title), s.slugTaken(0)),
		Content:       input.Content,
		Excerpt:       input.Excerpt,
		Status:        status,
		FeaturedImage: input.FeaturedImage,
	}
	if status == models.PostStatusPublished {
		if input.PublishedAt != nil {
			post.PublishedAt = input.PublishedAt
		} else {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	if err := s.db.Create(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("slug %q already exists: %w", post.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := s.attachCategories(post.ID, input.CategoryIDs); err != nil {
		return nil, err
	}

	return s.FindOne(post.ID)
}

// FindAll lists posts newest-first with authors and categories preloaded.
// Filtering by category resolves the matching post id set from the join
// table first, then restricts the post query to that set.
func (s *PostService) FindAll(filter PostFilter) ([]models.Post, error) {
	query := s.db.Preload("Author").Preload("Categories").Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.CategoryID != 0 {
		var postIDs []uint
		if err := s.db.Model(&models.PostCategory{}).
			Where("category_id = ?", filter.CategoryID).
			Pluck("post_id", &postIDs).Error; err != nil {
			return nil, fmt.Errorf("resolve category posts: %w", err)
		}
		if len(postIDs) == 0 {
			return []models.Post{}, nil
		}
		query = query.Where("id IN ?", postIDs)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// FindOne loads a post with its categories and all approved comments.
// CommentsCount is the length of that list at read time.
func (s *PostService) FindOne(id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Author").Preload("Categories").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	return s.withApprovedComments(&post)
}

// FindBySlug is FindOne keyed by slug.
func (s *PostService) FindBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Author").Preload("Categories").
		Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	return s.withApprovedComments(&post)
}

// Update applies the supplied fields. A changed title regenerates the slug
// (uniqueness check excludes the post itself). A transition to published
// without an explicit publish time stamps the current time. A supplied
// category list fully replaces the prior associations.
func (s *PostService) Update(id uint, input PostInput) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load post: %w", err)
	}

	if input.Title != "" && input.Title != post.Title {
		post.Title = input.Title
		post.Slug = UniqueSlug(Slugify(input.Title), s.slugTaken(post.ID))
	}
	if input.Content != "" {
		post.Content = input.Content
	}
	if input.Excerpt != "" {
		post.Excerpt = input.Excerpt
	}
	if input.FeaturedImage != "" {
		post.FeaturedImage = input.FeaturedImage
	}
	if input.PublishedAt != nil {
		post.PublishedAt = input.PublishedAt
	}
	if input.Status != "" && input.Status != post.Status {
		if input.Status == models.PostStatusPublished && input.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = input.Status
	}

	if err := s.db.Save(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("slug %q already exists: %w", post.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	if input.CategoryIDs != nil {
		if err := s.db.Where("post_id = ?", post.ID).
			Delete(&models.PostCategory{}).Error; err != nil {
			return nil, fmt.Errorf("clear post categories: %w", err)
		}
		if err := s.attachCategories(post.ID, input.CategoryIDs); err != nil {
			return nil, err
		}
	}

	return s.FindOne(post.ID)
}

// SetStatus moves a post to the given status, stamping PublishedAt on the
// first transition to published.
func (s *PostService) SetStatus(id uint, status string) (*models.Post, error) {
	if !models.ValidPostStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, ErrConflict)
	}
	return s.Update(id, PostInput{Status: status})
}

// Remove deletes the post's category join rows, then the post itself.
// Comments are left in place; referential cleanup is the schema's concern.
func (s *PostService) Remove(id uint) error {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("post %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("load post: %w", err)
	}
	if err := s.db.Where("post_id = ?", id).Delete(&models.PostCategory{}).Error; err != nil {
		return fmt.Errorf("delete post categories: %w", err)
	}
	if err := s.db.Delete(&post).Error; err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter with a database-side increment.
func (s *PostService) IncrementViews(id uint) error {
	res := s.db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return fmt.Errorf("increment views: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	return nil
}

// AuthorOf returns the author id without loading relations.
func (s *PostService) AuthorOf(id uint) (uint, error) {
	var post models.Post
	if err := s.db.Select("id", "author_id").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("post %d: %w", id, ErrNotFound)
		}
		return 0, fmt.Errorf("load post: %w", err)
	}
	return post.AuthorID, nil
}

func (s *PostService) withApprovedComments(post *models.Post) (*models.Post, error) {
	var comments []models.Comment
	err := s.db.Where("post_id = ? AND status = ?", post.ID, models.CommentStatusApproved).
		Order("created_at ASC").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	post.Comments = comments
	post.CommentsCount = len(comments)
	return post, nil
}

// slugTaken builds the existence predicate for UniqueSlug, excluding the
// post being updated when excludeID is non-zero.
func (s *PostService) slugTaken(excludeID uint) func(string) (bool, error) {
	return func(slug string) (bool, error) {
		var count int64
		q := s.db.Model(&models.Post{}).Where("slug = ?", slug)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
}

// attachCategories inserts join rows for each existing category id; unknown
// ids are dropped without error.
func (s *PostService) attachCategories(postID uint, categoryIDs []uint) error {
	for _, cid := range categoryIDs {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", cid).
			Count(&count).Error; err != nil {
			return fmt.Errorf("validate category %d: %w", cid, err)
		}
		if count == 0 {
			continue
		}
		row := models.PostCategory{PostID: postID, CategoryID: cid}
		if err := s.db.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return fmt.Errorf("attach category %d: %w", cid, err)
		}
	}
	return nil
}
