package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inkwell/middleware"
	"inkwell/models"
	"inkwell/services"
	"inkwell/utils"
)

// respondServiceError translates service sentinel errors into HTTP statuses.
// Anything unmapped becomes a 500 with the given app code; the raw error is
// appended only outside release mode.
func respondServiceError(ctx *gin.Context, err error, code int, message string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40400, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.Error(ctx, http.StatusConflict, 40900, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.Error(ctx, http.StatusUnauthorized, 40100, err.Error())
	default:
		if gin.Mode() != gin.ReleaseMode {
			message = message + ": " + err.Error()
		}
		utils.Error(ctx, http.StatusInternalServerError, code, message)
	}
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

func paginationPayload(page, pageSize int, total int64) gin.H {
	return gin.H{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

func getRole(ctx *gin.Context) string {
	value, exists := ctx.Get(middleware.ContextRoleKey)
	if !exists {
		return ""
	}
	role, _ := value.(string)
	return role
}

// isStaff reports whether the caller may moderate content owned by others.
func isStaff(ctx *gin.Context) bool {
	switch getRole(ctx) {
	case models.RoleAdmin, models.RoleEditor:
		return true
	}
	return false
}
