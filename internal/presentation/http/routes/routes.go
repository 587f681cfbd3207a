package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loftpos/concessions-api/internal/config"
	"github.com/loftpos/concessions-api/internal/domain/entity"
	"github.com/loftpos/concessions-api/internal/presentation/http/handler"
	"github.com/loftpos/concessions-api/internal/presentation/http/middleware"
	"github.com/loftpos/concessions-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	Order         *handler.OrderHandler
	Payment       *handler.PaymentHandler
	Printer       *handler.PrinterHandler
	Product       *handler.ProductHandler
	Category      *handler.CategoryHandler
	Configuration *handler.ConfigurationHandler
	User          *handler.UserHandler
	Report        *handler.ReportHandler
	Audit         *handler.AuditHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile
	protected.GET("/profile", h.User.Me)

	// Orders
	registerOrderRoutes(protected, h)

	// Payments
	registerPaymentRoutes(protected, h)

	// Products
	registerProductRoutes(protected, h)

	// Categories
	registerCategoryRoutes(protected, h)

	// Configuration (Admin/Manager)
	registerConfigRoutes(protected, h)

	// Reports (Admin/Manager)
	registerReportRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Audit logs (Admin)
	registerAuditRoutes(protected, h)
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id/status", h.Order.UpdateStatus)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.POST("/:id/payments", h.Payment.RecordManual)
		orders.POST("/:id/payments/gateway", h.Payment.CreateGatewayOrder)
		orders.POST("/:id/receipt", h.Printer.PrintReceipt)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers) {
	payments := protected.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.POST("/verify", h.Payment.Verify)
		payments.GET("/:id", h.Payment.Get)
		payments.POST("/:id/refund", middleware.RequireRole(entity.RoleAdmin, entity.RoleManager), h.Payment.Refund)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/:id", h.Product.Get)
	}

	manage := protected.Group("/products")
	manage.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		manage.POST("", h.Product.Create)
		manage.PUT("/:id", h.Product.Update)
		manage.DELETE("/:id", h.Product.Delete)
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
	}

	manage := protected.Group("/categories")
	manage.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		manage.POST("", h.Category.Create)
		manage.PUT("/:id", h.Category.Update)
		manage.DELETE("/:id", h.Category.Delete)
	}
}

func registerConfigRoutes(protected *gin.RouterGroup, h *Handlers) {
	cfg := protected.Group("/config")
	cfg.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		cfg.GET("/taxes", h.Configuration.ListTax)
		cfg.POST("/taxes", h.Configuration.CreateTax)
		cfg.PUT("/taxes/:id", h.Configuration.UpdateTax)
		cfg.DELETE("/taxes/:id", h.Configuration.DeleteTax)

		cfg.GET("/printers", h.Configuration.ListPrinters)
		cfg.POST("/printers", h.Configuration.CreatePrinter)
		cfg.POST("/printers/test", h.Printer.TestPrint)
		cfg.PUT("/printers/:id", h.Configuration.UpdatePrinter)
		cfg.DELETE("/printers/:id", h.Configuration.DeletePrinter)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		reports.GET("/sales", h.Report.Sales)
		reports.GET("/payments", h.Report.Payments)
		reports.GET("/top-products", h.Report.TopProducts)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerAuditRoutes(protected *gin.RouterGroup, h *Handlers) {
	audit := protected.Group("/audit-logs")
	audit.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		audit.GET("", h.Audit.List)
	}
}
