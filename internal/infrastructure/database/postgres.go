package database

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/loftpos/concessions-api/internal/config"
	"github.com/loftpos/concessions-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Product{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.OrderCounter{},
		&entity.Payment{},
		&entity.TaxConfiguration{},
		&entity.PrinterConfiguration{},
		&entity.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the admin user and the default tax configuration
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Default GST configuration, used by order creation
	var taxCount int64
	db.Model(&entity.TaxConfiguration{}).Count(&taxCount)
	if taxCount == 0 {
		gst := entity.TaxConfiguration{
			Name:        "GST 18%",
			Rate:        decimal.RequireFromString("0.18"),
			Description: "Goods and Services Tax",
			IsDefault:   true,
			IsActive:    true,
		}
		if err := db.Create(&gst).Error; err != nil {
			log.Printf("Warning: failed to seed default tax configuration: %v", err)
		}
	}

	// Admin user, only when configured via environment
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		var existing entity.User
		if err := db.Where("email = ?", adminEmail).First(&existing).Error; err != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				admin := entity.User{
					FirstName: "Admin",
					Email:     adminEmail,
					Password:  string(hashed),
					Role:      entity.RoleAdmin,
					IsActive:  true,
				}
				if err := db.Create(&admin).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
