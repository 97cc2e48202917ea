package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/services"
	"inkwell/utils"
)

const tokenTTL = 72 * time.Hour

// AuthController handles registration, login and the profile endpoint.
type AuthController struct {
	users *services.UserService
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{users: services.NewUserService(db)}
}

// Register handles local account registration with bcrypt hashing.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6,max=72"`
		Name     string `json:"name" binding:"max=128"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	user, err := a.users.Register(req.Email, req.Password, req.Name)
	if err != nil {
		respondServiceError(ctx, err, 50001, "failed to register user")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, tokenTTL)
	if err != nil {
		respondServiceError(ctx, err, 50002, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{"token": token, "user": user})
}

// Login verifies user credentials and issues a JWT.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid request payload")
		return
	}

	user, err := a.users.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(ctx, err, 50003, "failed to log in")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, tokenTTL)
	if err != nil {
		respondServiceError(ctx, err, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{"token": token, "user": user})
}

// Profile returns the current authenticated user's information.
func (a *AuthController) Profile(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := a.users.FindOne(userID)
	if err != nil {
		respondServiceError(ctx, err, 50005, "failed to load profile")
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}
