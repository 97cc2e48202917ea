package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"inkwell/models"
	"inkwell/utils"
)

// chunk size for bulk mutations, bounded to keep parameter lists short.
const bulkChunkSize = 100

// CommentService handles comment CRUD, admin listing and bulk moderation.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a CommentService.
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// CommentInput carries caller-supplied comment fields.
type CommentInput struct {
	PostID       uint
	ParentID     *uint
	Content      string
	AuthorName   string
	AuthorEmail  string
	AuthorAvatar string
}

// CommentFilter narrows listing results. Zero values mean "no filter".
type CommentFilter struct {
	PostID   uint
	ParentID *uint
	Status   string
	Search   string
}

// Create stores a new comment. Status is always forced to pending regardless
// of anything the caller supplies; moderation promotes it later.
func (s *CommentService) Create(input CommentInput) (*models.Comment, error) {
	var post models.Post
	if err := s.db.First(&post, input.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", input.PostID, ErrNotFound)
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	if input.ParentID != nil {
		var parent models.Comment
		if err := s.db.First(&parent, *input.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("parent comment %d: %w", *input.ParentID, ErrNotFound)
			}
			return nil, fmt.Errorf("load parent comment: %w", err)
		}
	}

	comment := models.Comment{
		PostID:       input.PostID,
		ParentID:     input.ParentID,
		Content:      input.Content,
		AuthorName:   input.AuthorName,
		AuthorEmail:  input.AuthorEmail,
		AuthorAvatar: input.AuthorAvatar,
		Status:       models.CommentStatusPending,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.PostTitle = post.Title
	return &comment, nil
}

// FindAll lists comments matching the filter, newest-first, with post titles
// joined in memory from a second query.
func (s *CommentService) FindAll(filter CommentFilter) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.filtered(filter).Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if err := s.enrichPostTitles(comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// FindAllForAdmin adds offset/limit pagination and a total count on top of
// FindAll's filtering.
func (s *CommentService) FindAllForAdmin(filter CommentFilter, page, pageSize int) ([]models.Comment, int64, error) {
	var total int64
	if err := s.filtered(filter).Model(&models.Comment{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	var comments []models.Comment
	err := s.filtered(filter).Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	if err := s.enrichPostTitles(comments); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// Update modifies content and/or status of an existing comment.
func (s *CommentService) Update(id uint, content, status string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load comment: %w", err)
	}
	if content != "" {
		comment.Content = content
	}
	if status != "" {
		if !models.ValidCommentStatus(status) {
			return nil, fmt.Errorf("unknown status %q: %w", status, ErrConflict)
		}
		comment.Status = status
	}
	if err := s.db.Save(&comment).Error; err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return &comment, nil
}

// Remove hard-deletes a comment.
func (s *CommentService) Remove(id uint) error {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("comment %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("load comment: %w", err)
	}
	if err := s.db.Delete(&comment).Error; err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// BulkResult reports exactly which ids a bulk mutation touched. Chunks are
// applied sequentially with no rollback, so a mid-stream failure leaves
// earlier chunks applied; the split below makes that visible to the caller.
type BulkResult struct {
	AppliedIDs []uint `json:"applied_ids"`
	FailedIDs  []uint `json:"failed_ids"`
	SkippedIDs []uint `json:"skipped_ids"`
}

// BulkUpdateStatus sets status on all given comments in chunks of 100.
func (s *CommentService) BulkUpdateStatus(ids []uint, status string) (*BulkResult, error) {
	if !models.ValidCommentStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, ErrConflict)
	}
	return bulkApply(ids, func(chunk []uint) error {
		return s.db.Model(&models.Comment{}).Where("id IN ?", chunk).
			Update("status", status).Error
	})
}

// BulkDelete removes all given comments in chunks of 100.
func (s *CommentService) BulkDelete(ids []uint) (*BulkResult, error) {
	return bulkApply(ids, func(chunk []uint) error {
		return s.db.Where("id IN ?", chunk).Delete(&models.Comment{}).Error
	})
}

// bulkApply runs apply over sequential chunks. On the first failure the
// remaining chunks are not attempted and the partial result is returned
// alongside the error.
func bulkApply(ids []uint, apply func(chunk []uint) error) (*BulkResult, error) {
	result := &BulkResult{}
	chunks := utils.ChunkUint(utils.UniqueUint(ids), bulkChunkSize)
	for i, chunk := range chunks {
		if err := apply(chunk); err != nil {
			result.FailedIDs = chunk
			for _, rest := range chunks[i+1:] {
				result.SkippedIDs = append(result.SkippedIDs, rest...)
			}
			return result, fmt.Errorf("bulk chunk %d/%d: %w", i+1, len(chunks), err)
		}
		result.AppliedIDs = append(result.AppliedIDs, chunk...)
	}
	return result, nil
}

func (s *CommentService) filtered(filter CommentFilter) *gorm.DB {
	q := s.db.Model(&models.Comment{})
	if filter.PostID != 0 {
		q = q.Where("post_id = ?", filter.PostID)
	}
	if filter.ParentID != nil {
		if *filter.ParentID == 0 {
			q = q.Where("parent_id IS NULL")
		} else {
			q = q.Where("parent_id = ?", *filter.ParentID)
		}
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("content ILIKE ? OR author_name ILIKE ? OR author_email ILIKE ?",
			like, like, like)
	}
	return q
}

// enrichPostTitles loads the referenced post titles in one query and joins
// them in memory.
func (s *CommentService) enrichPostTitles(comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	postIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		postIDs = append(postIDs, c.PostID)
	}
	var posts []models.Post
	if err := s.db.Select("id", "title").
		Find(&posts, utils.UniqueUint(postIDs)).Error; err != nil {
		return fmt.Errorf("load post titles: %w", err)
	}
	titles := make(map[uint]string, len(posts))
	for _, p := range posts {
		titles[p.ID] = p.Title
	}
	for i := range comments {
		comments[i].PostTitle = titles[comments[i].PostID]
	}
	return nil
}
