package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiplagat/billify-api/internal/config"
	domainRepo "github.com/kiplagat/billify-api/internal/domain/repository"
	"github.com/kiplagat/billify-api/internal/presentation/http/handler"
	"github.com/kiplagat/billify-api/internal/presentation/http/middleware"
	"github.com/kiplagat/billify-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Company   *handler.CompanyHandler
	Customer  *handler.CustomerHandler
	Item      *handler.ItemHandler
	Invoice   *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	CompanyRepo     domainRepo.CompanyRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
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
		registerProtectedRoutes(protected, h)

		// Company-scoped routes additionally resolve the active company
		// from the X-Company-ID header and rate limit per company.
		scoped := v1.Group("")
		scoped.Use(middleware.AuthMiddleware(deps.JWTManager))
		scoped.Use(middleware.CompanyMiddleware(deps.CompanyRepo))

		rateLimiter := middleware.NewCompanyRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		scoped.Use(rateLimiter.Middleware())

		registerCompanyScopedRoutes(scoped, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

// registerProtectedRoutes covers routes that need a user but no company
func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	protected.GET("/companies", h.Company.ListCompanies)
}

// registerCompanyScopedRoutes covers routes operating on the active company
func registerCompanyScopedRoutes(scoped *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Active company
	company := scoped.Group("/company")
	{
		company.GET("", h.Company.GetCurrent)
		company.PUT("", h.Company.UpdateCurrent)
		company.GET("/members", h.Company.ListMembers)
		company.POST("/members", h.Company.AddMember)
		company.PUT("/members/:user_id", h.Company.UpdateMemberRole)
		company.DELETE("/members/:user_id", h.Company.RemoveMember)
	}

	// Dashboard
	scoped.GET("/dashboard", h.Dashboard.GetStats)

	// Customers
	customers := scoped.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	// Catalog items
	items := scoped.Group("/items")
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.GET("/:id", h.Item.Get)
		items.PUT("/:id", h.Item.Update)
		items.POST("/:id/deactivate", h.Item.Deactivate)
	}

	// Invoices
	invoices := scoped.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		// Invoice creation uses idempotency middleware to prevent duplicates
		invoices.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.POST("/:id/lines", h.Invoice.AddLine)
		invoices.DELETE("/:id/lines/:line_id", h.Invoice.DeleteLine)
		invoices.POST("/:id/status", h.Invoice.SetStatus)
	}
}
