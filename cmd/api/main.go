package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/kiplagat/billify-api/internal/application/service"
	"github.com/kiplagat/billify-api/internal/config"
	"github.com/kiplagat/billify-api/internal/infrastructure/database"
	"github.com/kiplagat/billify-api/internal/infrastructure/repository"
	"github.com/kiplagat/billify-api/internal/presentation/http/handler"
	"github.com/kiplagat/billify-api/internal/presentation/http/routes"
	"github.com/kiplagat/billify-api/pkg/email"
	"github.com/kiplagat/billify-api/pkg/oauth"
	"github.com/kiplagat/billify-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	itemRepo := repository.NewItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceLineRepo := repository.NewInvoiceLineRepository(db)
	statsRepo := repository.NewBillingStatsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	txManager := repository.NewTxManager(db)

	// Initialize email service; left nil when SMTP is not configured so
	// the services skip outbound mail.
	var emailService *email.EmailService
	if cfg.Email.SMTPUsername != "" {
		emailService = email.NewEmailService(email.EmailConfig{
			SMTPHost:     cfg.Email.SMTPHost,
			SMTPPort:     cfg.Email.SMTPPort,
			SMTPUsername: cfg.Email.SMTPUsername,
			SMTPPassword: cfg.Email.SMTPPassword,
			FromName:     cfg.Email.FromName,
			FromEmail:    cfg.Email.FromEmail,
			FrontendURL:  cfg.App.FrontendURL,
		})
	} else {
		log.Println("SMTP not configured, outbound email disabled")
	}

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, companyRepo, passwordResetRepo, txManager, jwtManager, emailService)
	companyService := service.NewCompanyService(companyRepo, userRepo)
	customerService := service.NewCustomerService(customerRepo)
	itemService := service.NewItemService(itemRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, invoiceLineRepo, customerRepo, itemRepo, txManager, emailService)
	dashboardService := service.NewDashboardService(statsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, googleOAuthService),
		Company:   handler.NewCompanyHandler(companyService),
		Customer:  handler.NewCustomerHandler(customerService),
		Item:      handler.NewItemHandler(itemService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		CompanyRepo:     companyRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
