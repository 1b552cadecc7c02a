package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/graniteware/storefront/internal/api/handlers"
	"github.com/graniteware/storefront/internal/api/middleware"
	"github.com/graniteware/storefront/internal/config"
	"github.com/graniteware/storefront/internal/repository"
	"github.com/graniteware/storefront/internal/service"
	"github.com/graniteware/storefront/internal/session"
)

// Deps bundles everything the router wires into handlers
type Deps struct {
	Repos     *repository.Repositories
	Store     session.Store
	Carts     *service.CartService
	Inquiries *service.InquiryService
	Auth      *service.AuthService
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, deps Deps, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.SessionMiddleware(cfg.Session))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Public catalog browsing
		v1.GET("/products", handlers.HandleListProducts(deps.Repos, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(deps.Repos, deps.Carts, logger))
		v1.GET("/categories", handlers.HandleListCategories(deps.Repos, logger))

		// Session login/logout
		v1.POST("/auth/login", handlers.HandleLogin(deps.Auth, deps.Store, logger))
		v1.POST("/auth/logout", handlers.HandleLogout(deps.Store, logger))

		// Cart and inquiry routes (require an authenticated session)
		cartRoutes := v1.Group("/cart")
		cartRoutes.Use(middleware.RequireUser(deps.Store, logger))
		{
			cartRoutes.GET("", handlers.HandleGetCart(deps.Carts, logger))
			cartRoutes.POST("/items", handlers.HandleAddCartItem(deps.Carts, logger))
			cartRoutes.DELETE("/items/:id", handlers.HandleRemoveCartItem(deps.Carts, logger))
			cartRoutes.GET("/summary", handlers.HandleCartSummary(deps.Inquiries, logger))
			cartRoutes.POST("/submit", handlers.HandleSubmitInquiry(deps.Inquiries, logger))
			cartRoutes.POST("/confirm", handlers.HandleConfirmInquiry(deps.Inquiries, logger))
		}

		// Admin routes
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.RequireUser(deps.Store, logger))
		adminRoutes.Use(middleware.RequireAdmin(deps.Repos, logger))
		{
			adminRoutes.POST("/categories", handlers.HandleCreateCategory(deps.Repos, logger))
			adminRoutes.PUT("/categories/:id", handlers.HandleUpdateCategory(deps.Repos, logger))
			adminRoutes.DELETE("/categories/:id", handlers.HandleDeleteCategory(deps.Repos, logger))
			adminRoutes.POST("/products", handlers.HandleCreateProduct(deps.Repos, logger))
			adminRoutes.PUT("/products/:id", handlers.HandleUpdateProduct(deps.Repos, logger))
			adminRoutes.DELETE("/products/:id", handlers.HandleDeleteProduct(deps.Repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
