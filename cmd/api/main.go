package main

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loftpos/concessions-api/internal/application/service"
	"github.com/loftpos/concessions-api/internal/config"
	"github.com/loftpos/concessions-api/internal/domain/entity"
	"github.com/loftpos/concessions-api/internal/domain/enum"
	"github.com/loftpos/concessions-api/internal/infrastructure/database"
	"github.com/loftpos/concessions-api/internal/infrastructure/repository"
	"github.com/loftpos/concessions-api/internal/presentation/http/handler"
	"github.com/loftpos/concessions-api/internal/presentation/http/routes"
	"github.com/loftpos/concessions-api/pkg/email"
	"github.com/loftpos/concessions-api/pkg/gateway"
	"github.com/loftpos/concessions-api/pkg/utils"
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
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	taxRepo := repository.NewTaxConfigurationRepository(db)
	printerRepo := repository.NewPrinterConfigurationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Initialize email service when enabled; order confirmations are
	// skipped otherwise.
	var emailService *email.EmailService
	if cfg.Email.Enabled {
		smtpPort, err := strconv.Atoi(cfg.Email.Port)
		if err != nil {
			log.Printf("Warning: Invalid SMTP port %q, email disabled", cfg.Email.Port)
		} else {
			emailService = email.NewEmailService(email.EmailConfig{
				SMTPHost:     cfg.Email.Host,
				SMTPPort:     smtpPort,
				SMTPUsername: cfg.Email.Username,
				SMTPPassword: cfg.Email.Password,
				FromName:     cfg.Venue.Name,
				FromEmail:    cfg.Email.From,
			})
		}
	}

	// Initialize payment gateway
	paymentGateway := gateway.NewRazorpay(gateway.Config{
		KeyID:     cfg.Razorpay.KeyID,
		KeySecret: cfg.Razorpay.KeySecret,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, taxRepo, emailService, cfg.Venue.Name)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo, paymentGateway, cfg.Razorpay.KeySecret, cfg.Razorpay.Currency)
	// Env-configured printer stands in until a configuration row exists.
	var fallbackPrinter *entity.PrinterConfiguration
	if cfg.Printer.Host != "" {
		fallbackPrinter = &entity.PrinterConfiguration{
			Name:           "Counter printer",
			Type:           enum.PrinterTypeThermal,
			ConnectionType: enum.ConnectionTypeNetwork,
			IPAddress:      cfg.Printer.Host,
			Port:           cfg.Printer.Port,
			PaperWidth:     cfg.Printer.PaperWidth,
			IsActive:       true,
		}
	}
	printerService := service.NewPrinterService(orderRepo, printerRepo, service.VenueInfo{
		Name:        cfg.Venue.Name,
		Tagline:     cfg.Venue.Tagline,
		URL:         cfg.Venue.URL,
		FooterLines: cfg.Venue.FooterLines,
	}, fallbackPrinter, time.Duration(cfg.Printer.TimeoutSec)*time.Second)
	configService := service.NewConfigurationService(taxRepo, printerRepo)
	reportService := service.NewReportService(reportRepo)
	auditService := service.NewAuditService(auditRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Order:         handler.NewOrderHandler(orderService, auditService),
		Payment:       handler.NewPaymentHandler(paymentService, auditService),
		Printer:       handler.NewPrinterHandler(printerService),
		Product:       handler.NewProductHandler(productService, auditService),
		Category:      handler.NewCategoryHandler(categoryService),
		Configuration: handler.NewConfigurationHandler(configService, auditService),
		User:          handler.NewUserHandler(userService, auditService),
		Report:        handler.NewReportHandler(reportService),
		Audit:         handler.NewAuditHandler(auditService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
