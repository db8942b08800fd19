package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dukahub/dukapos-api/internal/config"
	"github.com/dukahub/dukapos-api/internal/domain/entity"
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
		// Tenant entities
		&entity.Business{},
		&entity.Branch{},
		&entity.User{},

		// Inventory entities
		&entity.Category{},
		&entity.InventoryItem{},
		&entity.InventoryLog{},

		// Sale entities
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Invoice{},
		&entity.InvoiceItem{},

		// Money movement entities
		&entity.Payment{},
		&entity.BusinessLedger{},
		&entity.MpesaTransaction{},

		// Loyalty entities
		&entity.LoyaltyCard{},
		&entity.LoyaltyCardRecharge{},
		&entity.LoyaltyCardRedeem{},
		&entity.StoreLoan{},
		&entity.StoreLoanLog{},

		// BNPL entities
		&entity.BNPLProvider{},
		&entity.BNPLPurchase{},
		&entity.BNPLInstallment{},

		// Supply chain entities
		&entity.Supplier{},
		&entity.ProductSupplier{},
		&entity.SupplyRequest{},
		&entity.PurchaseOrder{},
		&entity.PurchaseOrderItem{},
		&entity.SupplierInvoice{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with a default business, branch and
// admin user when the relevant environment variables are set
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	businessName := viper.GetString("BUSINESS_NAME")
	if businessName == "" {
		businessName = "Default Business"
	}

	var business entity.Business
	if err := db.Where("name = ?", businessName).First(&business).Error; err != nil {
		business = entity.Business{Name: businessName}
		if err := db.Create(&business).Error; err != nil {
			return fmt.Errorf("failed to seed business: %w", err)
		}
	}

	var branch entity.Branch
	if err := db.Where("business_id = ? AND name = ?", business.ID, "Main Branch").First(&branch).Error; err != nil {
		branch = entity.Branch{BusinessID: business.ID, Name: "Main Branch"}
		if err := db.Create(&branch).Error; err != nil {
			return fmt.Errorf("failed to seed branch: %w", err)
		}
	}

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Admin"
				}
				adminUser := entity.User{
					BusinessID: business.ID,
					BranchID:   branch.ID,
					Name:       adminName,
					Email:      adminEmail,
					Password:   string(hashedPassword),
					Role:       "admin",
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
