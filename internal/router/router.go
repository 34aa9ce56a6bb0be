// Package router assembles the HTTP API: services, handlers, middleware and routes.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "itemvault/internal/docs" // Import swagger docs
	"itemvault/internal/handlers"
	"itemvault/internal/middleware"
	"itemvault/internal/ratelimit"
	"itemvault/internal/services"
)

const healthTimeout = 2 * time.Second

// Deps are the collaborators the API is built from.
type Deps struct {
	DB *gorm.DB
	// AuthLimiter throttles the public auth routes. Nil disables throttling.
	AuthLimiter ratelimit.Limiter
	// AdminAPIKey guards /api/v1/admin. Empty disables the admin routes.
	AdminAPIKey string
	// Swagger mounts /swagger/*any when set.
	Swagger bool
}

// New builds the Gin engine with every route mounted.
func New(deps Deps) *gin.Engine {
	db := deps.DB

	// Initialize services
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	itemService := services.NewItemService(db, categoryService)
	dashboardService := services.NewDashboardService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	itemHandler := handlers.NewItemHandler(itemService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	fieldHandler := handlers.NewFieldHandler()
	adminHandler := handlers.NewAdminHandler(userService, auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	if deps.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", health(db))

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	if deps.AuthLimiter != nil {
		auth.Use(middleware.RateLimit(deps.AuthLimiter))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/dashboard", dashboardHandler.GetOverview)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	items := protected.Group("/items")
	items.POST("", itemHandler.CreateItem)
	items.GET("", itemHandler.ListItems)
	items.GET("/:id", itemHandler.GetItemByID)
	items.GET("/:id/view", itemHandler.GetItemView)
	items.PUT("/:id", itemHandler.UpdateItem)
	items.DELETE("/:id", itemHandler.DeleteItem)

	fields := protected.Group("/fields")
	fields.GET("/types", fieldHandler.ListTypes)
	fields.GET("/classify", fieldHandler.Classify)
	fields.POST("/format", fieldHandler.Format)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware(deps.AdminAPIKey))
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
