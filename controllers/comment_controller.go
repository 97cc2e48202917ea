package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/models"
	"inkwell/services"
	"inkwell/utils"
)

// CommentController manages comment CRUD and moderation endpoints.
type CommentController struct {
	comments *services.CommentService
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{comments: services.NewCommentService(db)}
}

// CreateComment accepts a visitor comment. Whatever status the caller sends,
// the stored comment starts as pending.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	var req struct {
		PostID       uint   `json:"post_id" binding:"required"`
		ParentID     *uint  `json:"parent_id"`
		Content      string `json:"content" binding:"required"`
		AuthorName   string `json:"author_name" binding:"required,max=128"`
		AuthorEmail  string `json:"author_email" binding:"omitempty,email"`
		AuthorAvatar string `json:"author_avatar" binding:"max=512"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40031, "content cannot be empty")
		return
	}

	comment, err := c.comments.Create(services.CommentInput{
		PostID:       req.PostID,
		ParentID:     req.ParentID,
		Content:      content,
		AuthorName:   utils.Sanitize(req.AuthorName),
		AuthorEmail:  strings.ToLower(strings.TrimSpace(req.AuthorEmail)),
		AuthorAvatar: req.AuthorAvatar,
	})
	if err != nil {
		respondServiceError(ctx, err, 50030, "failed to create comment")
		return
	}

	utils.Success(ctx, gin.H{"comment": comment})
}

// ListComments returns approved comments, filterable by post and parent.
func (c *CommentController) ListComments(ctx *gin.Context) {
	filter := c.parseFilter(ctx)
	filter.Status = models.CommentStatusApproved

	comments, err := c.comments.FindAll(filter)
	if err != nil {
		respondServiceError(ctx, err, 50031, "failed to list comments")
		return
	}
	utils.Success(ctx, gin.H{"items": comments, "count": len(comments)})
}

// ListCommentsAdmin returns any-status comments with pagination and totals.
func (c *CommentController) ListCommentsAdmin(ctx *gin.Context) {
	filter := c.parseFilter(ctx)
	if status := ctx.Query("status"); status != "" {
		if !models.ValidCommentStatus(status) {
			utils.Error(ctx, http.StatusBadRequest, 40032, "invalid status")
			return
		}
		filter.Status = status
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	comments, total, err := c.comments.FindAllForAdmin(filter, page, pageSize)
	if err != nil {
		respondServiceError(ctx, err, 50032, "failed to list comments")
		return
	}
	utils.Success(ctx, gin.H{
		"items":      comments,
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// UpdateComment modifies content and/or status of a comment.
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
		Status  string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40033, "invalid request payload")
		return
	}

	comment, err := c.comments.Update(id, utils.Sanitize(req.Content), req.Status)
	if err != nil {
		respondServiceError(ctx, err, 50033, "failed to update comment")
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}

// DeleteComment hard-deletes a comment.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.comments.Remove(id); err != nil {
		respondServiceError(ctx, err, 50034, "failed to delete comment")
		return
	}
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}

// BulkUpdateComments applies approve/spam/trash/delete to a batch of ids.
// The response always carries the partial result, even on failure.
func (c *CommentController) BulkUpdateComments(ctx *gin.Context) {
	var req struct {
		IDs    []uint `json:"ids" binding:"required,min=1"`
		Action string `json:"action" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40034, "invalid request payload")
		return
	}

	var result *services.BulkResult
	var err error
	switch req.Action {
	case "approve":
		result, err = c.comments.BulkUpdateStatus(req.IDs, models.CommentStatusApproved)
	case "spam":
		result, err = c.comments.BulkUpdateStatus(req.IDs, models.CommentStatusSpam)
	case "trash":
		result, err = c.comments.BulkUpdateStatus(req.IDs, models.CommentStatusTrash)
	case "delete":
		result, err = c.comments.BulkDelete(req.IDs)
	default:
		utils.Error(ctx, http.StatusBadRequest, 40035, "unknown bulk action")
		return
	}

	if err != nil {
		if result != nil {
			// Partial application: report what was and wasn't touched.
			utils.Respond(ctx, http.StatusInternalServerError, 50035,
				"bulk operation failed partway: "+err.Error(), gin.H{"result": result})
			return
		}
		respondServiceError(ctx, err, 50035, "bulk operation failed")
		return
	}
	utils.Success(ctx, gin.H{"result": result})
}

func (c *CommentController) parseFilter(ctx *gin.Context) services.CommentFilter {
	filter := services.CommentFilter{Search: strings.TrimSpace(ctx.Query("search"))}
	if v, err := strconv.ParseUint(ctx.Query("post_id"), 10, 32); err == nil {
		filter.PostID = uint(v)
	}
	if raw := ctx.Query("parent_id"); raw != "" {
		// parent_id=0 selects top-level comments only.
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			pid := uint(v)
			filter.ParentID = &pid
		}
	}
	return filter
}
