package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/services"
	"inkwell/utils"
)

// UserController exposes admin-only user management.
type UserController struct {
	users *services.UserService
}

// NewUserController creates a new UserController instance.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{users: services.NewUserService(db)}
}

// ListUsers returns paginated users.
func (u *UserController) ListUsers(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	users, total, err := u.users.FindAll(page, pageSize)
	if err != nil {
		respondServiceError(ctx, err, 50060, "failed to list users")
		return
	}
	utils.Success(ctx, gin.H{
		"items":      users,
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// GetUser returns a single user.
func (u *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	user, err := u.users.FindOne(id)
	if err != nil {
		respondServiceError(ctx, err, 50061, "failed to load user")
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// CreateUser lets an admin provision an account directly.
func (u *UserController) CreateUser(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6,max=72"`
		Name     string `json:"name" binding:"max=128"`
		Role     string `json:"role"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}

	user, err := u.users.Register(req.Email, req.Password, req.Name)
	if err != nil {
		respondServiceError(ctx, err, 50062, "failed to create user")
		return
	}
	if req.Role != "" {
		user, err = u.users.Update(user.ID, services.UserUpdate{Role: &req.Role})
		if err != nil {
			respondServiceError(ctx, err, 50062, "failed to assign role")
			return
		}
	}
	utils.Success(ctx, gin.H{"user": user})
}

// UpdateUser edits name, role and/or active flag.
func (u *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Name   *string `json:"name"`
		Role   *string `json:"role"`
		Active *bool   `json:"active"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40061, "invalid request payload")
		return
	}

	user, err := u.users.Update(id, services.UserUpdate{
		Name:   req.Name,
		Role:   req.Role,
		Active: req.Active,
	})
	if err != nil {
		respondServiceError(ctx, err, 50063, "failed to update user")
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// DeleteUser removes an account.
func (u *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if callerID, _ := getUserID(ctx); callerID == id {
		utils.Error(ctx, http.StatusBadRequest, 40062, "cannot delete your own account")
		return
	}
	if err := u.users.Remove(id); err != nil {
		respondServiceError(ctx, err, 50064, "failed to delete user")
		return
	}
	utils.Success(ctx, gin.H{"message": "user deleted"})
}
