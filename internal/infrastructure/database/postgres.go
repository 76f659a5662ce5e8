package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"github.com/zaikabox/zaikabox-api/internal/config"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Account entities
		&entity.User{},

		// Catalog entities
		&entity.Category{},
		&entity.MenuItem{},
		&entity.ItemSize{},
		&entity.AddOn{},

		// Delivery entities
		&entity.DeliveryZone{},
		&entity.Address{},

		// Order entities
		&entity.Order{},
		&entity.OrderItem{},
		&entity.OrderItemAddOn{},
		&entity.PaymentTransaction{},

		// Promotions
		&entity.Offer{},

		// System entities
		&entity.RestaurantSettings{},
		&entity.Notification{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the settings row, delivery zones and the admin
// account. All inserts are idempotent so restarts do not duplicate rows.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Single settings row
	var settingsCount int64
	db.Model(&entity.RestaurantSettings{}).Count(&settingsCount)
	if settingsCount == 0 {
		settings := entity.DefaultRestaurantSettings()
		if name := viper.GetString("RESTAURANT_NAME"); name != "" {
			settings.Name = name
		}
		if err := db.Create(settings).Error; err != nil {
			log.Printf("Warning: failed to create restaurant settings: %v", err)
		}
	}

	// Default delivery zones
	zones := []entity.DeliveryZone{
		{Name: "City Centre", Charge: 3000, EtaMinutes: 30},
		{Name: "Suburbs", Charge: 5000, EtaMinutes: 45},
		{Name: "Outskirts", Charge: 8000, EtaMinutes: 60},
	}
	for i := range zones {
		var existing entity.DeliveryZone
		if err := db.Where("name = ?", zones[i].Name).First(&existing).Error; err != nil {
			zones[i].IsActive = true
			if err := db.Create(&zones[i]).Error; err != nil {
				log.Printf("Warning: failed to create delivery zone %s: %v", zones[i].Name, err)
			}
		}
	}

	// Create admin user if configured via environment variables
	adminPhone := viper.GetString("ADMIN_PHONE")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminPhone != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("phone = ?", adminPhone).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Admin"
				}
				adminUser := entity.User{
					Name:     adminName,
					Phone:    adminPhone,
					Password: string(hashedPassword),
					Role:     "admin",
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminPhone)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminPhone)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
