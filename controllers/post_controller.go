package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/middleware"
	"inkwell/models"
	"inkwell/services"
	"inkwell/utils"
)

// PostController manages CRUD operations for posts.
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{posts: services.NewPostService(db)}
}

type postRequest struct {
	Title         string     `json:"title" binding:"required,min=1,max=255"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	Status        string     `json:"status"`
	FeaturedImage string     `json:"featured_image"`
	PublishedAt   *time.Time `json:"published_at"`
	CategoryIDs   []uint     `json:"category_ids"`
}

func (r postRequest) toInput() services.PostInput {
	return services.PostInput{
		Title:         utils.Sanitize(r.Title),
		Content:       utils.Sanitize(r.Content),
		Excerpt:       utils.Sanitize(r.Excerpt),
		Status:        r.Status,
		FeaturedImage: r.FeaturedImage,
		PublishedAt:   r.PublishedAt,
		CategoryIDs:   r.CategoryIDs,
	}
}

// CreatePost allows authenticated users to create new posts.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if req.Status != "" && !models.ValidPostStatus(req.Status) {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid status")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	post, err := p.posts.Create(req.toInput(), userID)
	if err != nil {
		respondServiceError(ctx, err, 50020, "failed to create post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"post": post})
}

// ListPosts returns posts filtered by status, author and/or category.
func (p *PostController) ListPosts(ctx *gin.Context) {
	filter := services.PostFilter{Status: ctx.Query("status")}
	if v, err := strconv.ParseUint(ctx.Query("author_id"), 10, 32); err == nil {
		filter.AuthorID = uint(v)
	}
	if v, err := strconv.ParseUint(ctx.Query("category_id"), 10, 32); err == nil {
		filter.CategoryID = uint(v)
	}

	cacheKey := fmt.Sprintf("cache:posts:list:status=%s:author=%d:cat=%d",
		filter.Status, filter.AuthorID, filter.CategoryID)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	posts, err := p.posts.FindAll(filter)
	if err != nil {
		respondServiceError(ctx, err, 50021, "failed to list posts")
		return
	}

	payload := gin.H{"items": posts, "count": len(posts)}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// GetPost returns a single post with categories and approved comments.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	post, err := p.posts.FindOne(id)
	if err != nil {
		respondServiceError(ctx, err, 50022, "failed to load post")
		return
	}

	ctx.Set(middleware.ContextViewedPostKey, post.ID)
	utils.Success(ctx, gin.H{"post": post})
}

// GetPostBySlug returns a single post looked up by its slug.
func (p *PostController) GetPostBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")
	if slug == "" {
		utils.Error(ctx, http.StatusBadRequest, 40022, "missing slug")
		return
	}

	post, err := p.posts.FindBySlug(slug)
	if err != nil {
		respondServiceError(ctx, err, 50023, "failed to load post")
		return
	}

	ctx.Set(middleware.ContextViewedPostKey, post.ID)
	utils.Success(ctx, gin.H{"post": post})
}

// UpdatePost allows the author (or staff) to update a post.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid request payload")
		return
	}
	if req.Status != "" && !models.ValidPostStatus(req.Status) {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid status")
		return
	}

	if !p.authorize(ctx, id) {
		return
	}

	post, err := p.posts.Update(id, req.toInput())
	if err != nil {
		respondServiceError(ctx, err, 50024, "failed to update post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"post": post})
}

// PublishPost transitions a post to published.
func (p *PostController) PublishPost(ctx *gin.Context) {
	p.setStatus(ctx, models.PostStatusPublished)
}

// ArchivePost transitions a post to archived.
func (p *PostController) ArchivePost(ctx *gin.Context) {
	p.setStatus(ctx, models.PostStatusArchived)
}

func (p *PostController) setStatus(ctx *gin.Context, status string) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if !p.authorize(ctx, id) {
		return
	}

	post, err := p.posts.SetStatus(id, status)
	if err != nil {
		respondServiceError(ctx, err, 50025, "failed to change post status")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost allows the author (or staff) to delete a post. Category join
// rows go with it; comments are left orphaned on purpose.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if !p.authorize(ctx, id) {
		return
	}

	if err := p.posts.Remove(id); err != nil {
		respondServiceError(ctx, err, 50026, "failed to delete post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// IncrementViews bumps the view counter. The frontend calls this
// fire-and-forget and ignores failures.
func (p *PostController) IncrementViews(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := p.posts.IncrementViews(id); err != nil {
		respondServiceError(ctx, err, 50027, "failed to increment views")
		return
	}
	utils.Success(ctx, gin.H{"message": "ok"})
}

// authorize allows the post's author and staff through; everyone else gets 403.
func (p *PostController) authorize(ctx *gin.Context, postID uint) bool {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		return false
	}
	authorID, err := p.posts.AuthorOf(postID)
	if err != nil {
		respondServiceError(ctx, err, 50028, "failed to load post")
		return false
	}
	if authorID != userID && !isStaff(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40302, "you can only modify your own posts")
		return false
	}
	return true
}
