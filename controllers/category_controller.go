package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/services"
	"inkwell/utils"
)

// CategoryController manages category CRUD.
type CategoryController struct {
	categories *services.CategoryService
}

// NewCategoryController creates a new CategoryController instance.
func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{categories: services.NewCategoryService(db)}
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=128"`
	Description string `json:"description" binding:"max=512"`
}

// CreateCategory stores a new category.
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req categoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	category, err := c.categories.Create(req.Name, req.Description)
	if err != nil {
		respondServiceError(ctx, err, 50040, "failed to create category")
		return
	}
	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"category": category})
}

// ListCategories returns all categories.
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	categories, err := c.categories.FindAll()
	if err != nil {
		respondServiceError(ctx, err, 50041, "failed to list categories")
		return
	}
	utils.Success(ctx, gin.H{"items": categories, "count": len(categories)})
}

// GetCategory returns a single category.
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	category, err := c.categories.FindOne(id)
	if err != nil {
		respondServiceError(ctx, err, 50042, "failed to load category")
		return
	}
	utils.Success(ctx, gin.H{"category": category})
}

// UpdateCategory renames or re-describes a category.
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req categoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid request payload")
		return
	}

	category, err := c.categories.Update(id, req.Name, req.Description)
	if err != nil {
		respondServiceError(ctx, err, 50043, "failed to update category")
		return
	}
	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"category": category})
}

// DeleteCategory removes a category and its post joins.
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.categories.Remove(id); err != nil {
		respondServiceError(ctx, err, 50044, "failed to delete category")
		return
	}
	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"message": "category deleted"})
}
