package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/config"
	"inkwell/controllers"
	"inkwell/middleware"
	"inkwell/models"
	"inkwell/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(ginzap.Ginzap(utils.Logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(utils.Logger, true))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/uploads", cfg.UploadDir)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	categoryController := controllers.NewCategoryController(db)
	tagController := controllers.NewTagController(db)
	commentController := controllers.NewCommentController(db)
	userController := controllers.NewUserController(db)
	analyticsController := controllers.NewAnalyticsController(db)
	uploadController := controllers.NewUploadController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/profile", middleware.AuthRequired(), authController.Profile)

	// Public reads. Post detail reads record a view after the response.
	public := api.Group("")
	public.Use(middleware.PostViewRecorder(db))
	public.GET("/posts", postController.ListPosts)
	public.GET("/posts/:id", postController.GetPost)
	public.GET("/posts/slug/:slug", postController.GetPostBySlug)
	api.GET("/categories", categoryController.ListCategories)
	api.GET("/categories/:id", categoryController.GetCategory)
	api.GET("/tags", tagController.ListTags)
	api.GET("/tags/:id", tagController.GetTag)
	api.GET("/comments", commentController.ListComments)
	api.POST("/comments", middleware.RateLimitMiddleware(), commentController.CreateComment)
	api.POST("/posts/:id/views", postController.IncrementViews)

	// Authenticated authors and above.
	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:id", postController.UpdatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.POST("/posts/:id/publish", postController.PublishPost)
	protected.POST("/posts/:id/archive", postController.ArchivePost)
	protected.POST("/upload", uploadController.Upload)

	// Editorial staff.
	staff := api.Group("")
	staff.Use(middleware.AuthRequired(),
		middleware.RequireRole(models.RoleAdmin, models.RoleEditor))
	staff.POST("/categories", categoryController.CreateCategory)
	staff.PUT("/categories/:id", categoryController.UpdateCategory)
	staff.DELETE("/categories/:id", categoryController.DeleteCategory)
	staff.POST("/tags", tagController.CreateTag)
	staff.PUT("/tags/:id", tagController.UpdateTag)
	staff.DELETE("/tags/:id", tagController.DeleteTag)
	staff.GET("/comments/admin", commentController.ListCommentsAdmin)
	staff.PUT("/comments/:id", commentController.UpdateComment)
	staff.PATCH("/comments/:id", commentController.UpdateComment)
	staff.DELETE("/comments/:id", commentController.DeleteComment)
	staff.PATCH("/comments/bulk", commentController.BulkUpdateComments)
	staff.GET("/analytics/dashboard", analyticsController.Dashboard)

	// Admin only.
	admin := api.Group("/users")
	admin.Use(middleware.AuthRequired(), middleware.RequireRole(models.RoleAdmin))
	admin.GET("", userController.ListUsers)
	admin.POST("", userController.CreateUser)
	admin.GET("/:id", userController.GetUser)
	admin.PUT("/:id", userController.UpdateUser)
	admin.DELETE("/:id", userController.DeleteUser)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40404, "route not found")
	})

	return r
}
