package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/services"
	"inkwell/utils"
)

// TagController manages tag CRUD.
type TagController struct {
	tags *services.TagService
}

// NewTagController creates a new TagController instance.
func NewTagController(db *gorm.DB) *TagController {
	return &TagController{tags: services.NewTagService(db)}
}

type tagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=128"`
}

// CreateTag stores a new tag.
func (t *TagController) CreateTag(ctx *gin.Context) {
	var req tagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}
	tag, err := t.tags.Create(req.Name)
	if err != nil {
		respondServiceError(ctx, err, 50050, "failed to create tag")
		return
	}
	utils.Success(ctx, gin.H{"tag": tag})
}

// ListTags returns all tags.
func (t *TagController) ListTags(ctx *gin.Context) {
	tags, err := t.tags.FindAll()
	if err != nil {
		respondServiceError(ctx, err, 50051, "failed to list tags")
		return
	}
	utils.Success(ctx, gin.H{"items": tags, "count": len(tags)})
}

// GetTag returns a single tag.
func (t *TagController) GetTag(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	tag, err := t.tags.FindOne(id)
	if err != nil {
		respondServiceError(ctx, err, 50052, "failed to load tag")
		return
	}
	utils.Success(ctx, gin.H{"tag": tag})
}

// UpdateTag renames a tag.
func (t *TagController) UpdateTag(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req tagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40051, "invalid request payload")
		return
	}
	tag, err := t.tags.Update(id, req.Name)
	if err != nil {
		respondServiceError(ctx, err, 50053, "failed to update tag")
		return
	}
	utils.Success(ctx, gin.H{"tag": tag})
}

// DeleteTag removes a tag.
func (t *TagController) DeleteTag(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := t.tags.Remove(id); err != nil {
		respondServiceError(ctx, err, 50054, "failed to delete tag")
		return
	}
	utils.Success(ctx, gin.H{"message": "tag deleted"})
}
