package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"inkwell/utils"
)

const (
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextEmailKey stores the user's email inside Gin context.
	ContextEmailKey = "email"
	// ContextRoleKey stores the user's role inside Gin context.
	ContextRoleKey = "role"
)

// AuthRequired ensures the request is authenticated via a JWT bearer token.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextEmailKey, claims.Email)
		ctx.Set(ContextRoleKey, claims.Role)
		ctx.Next()
	}
}

// RequireRole allows only the listed roles past. Must run after AuthRequired.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		roleVal, exists := ctx.Get(ContextRoleKey)
		if !exists {
			utils.Error(ctx, http.StatusForbidden, 40301, "insufficient permissions")
			ctx.Abort()
			return
		}
		role, _ := roleVal.(string)
		for _, allowed := range roles {
			if role == allowed {
				ctx.Next()
				return
			}
		}
		utils.Error(ctx, http.StatusForbidden, 40301, "insufficient permissions")
		ctx.Abort()
	}
}
