package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/services"
	"inkwell/utils"
)

// AnalyticsController serves the admin dashboard rollups.
type AnalyticsController struct {
	analytics *services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController instance.
func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{analytics: services.NewAnalyticsService(db)}
}

// Dashboard returns counts, averages and time-bucketed aggregates.
func (a *AnalyticsController) Dashboard(ctx *gin.Context) {
	stats, err := a.analytics.Dashboard()
	if err != nil {
		respondServiceError(ctx, err, 50070, "failed to build dashboard")
		return
	}
	utils.Success(ctx, gin.H{"stats": stats})
}
