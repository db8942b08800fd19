package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/dukahub/dukapos-api/internal/application/service"
	"github.com/dukahub/dukapos-api/internal/config"
	"github.com/dukahub/dukapos-api/internal/infrastructure/database"
	"github.com/dukahub/dukapos-api/internal/infrastructure/repository"
	"github.com/dukahub/dukapos-api/internal/presentation/http/handler"
	"github.com/dukahub/dukapos-api/internal/presentation/http/routes"
	"github.com/dukahub/dukapos-api/pkg/mpesa"
	"github.com/dukahub/dukapos-api/pkg/utils"
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
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	inventoryLogRepo := repository.NewInventoryLogRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceItemRepo := repository.NewInvoiceItemRepository(db)
	supplierInvoiceRepo := repository.NewSupplierInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	mpesaTxnRepo := repository.NewMpesaTransactionRepository(db)
	loyaltyCardRepo := repository.NewLoyaltyCardRepository(db)
	loyaltyAuditRepo := repository.NewLoyaltyAuditRepository(db)
	storeLoanRepo := repository.NewStoreLoanRepository(db)
	bnplProviderRepo := repository.NewBNPLProviderRepository(db)
	bnplPurchaseRepo := repository.NewBNPLPurchaseRepository(db)
	bnplInstallmentRepo := repository.NewBNPLInstallmentRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	productSupplierRepo := repository.NewProductSupplierRepository(db)
	supplyRequestRepo := repository.NewSupplyRequestRepository(db)
	purchaseOrderRepo := repository.NewPurchaseOrderRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize M-Pesa gateway client
	mpesaClient := mpesa.NewClient(mpesa.Config{
		BaseURL:        cfg.Mpesa.BaseURL,
		ConsumerKey:    cfg.Mpesa.ConsumerKey,
		ConsumerSecret: cfg.Mpesa.ConsumerSecret,
		ShortCode:      cfg.Mpesa.ShortCode,
		Passkey:        cfg.Mpesa.Passkey,
		CallbackURL:    cfg.Mpesa.CallbackURL,
	})

	// Initialize services
	clock := service.NewClock()
	authService := service.NewAuthService(userRepo, jwtManager)
	businessService := service.NewBusinessService(businessRepo, branchRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, inventoryLogRepo, categoryRepo)
	loyaltyService := service.NewLoyaltyService(loyaltyCardRepo, loyaltyAuditRepo, storeLoanRepo)
	ledgerService := service.NewLedgerService(ledgerRepo, clock)
	orderService := service.NewOrderService(
		txManager,
		orderRepo,
		orderItemRepo,
		inventoryRepo,
		paymentRepo,
		bnplProviderRepo,
		bnplPurchaseRepo,
		bnplInstallmentRepo,
		loyaltyCardRepo,
		inventoryService,
		loyaltyService,
		ledgerService,
		clock,
		cfg.Payments.TaxRate,
	)
	paymentService := service.NewPaymentService(
		txManager,
		orderRepo,
		invoiceRepo,
		supplierInvoiceRepo,
		bnplPurchaseRepo,
		bnplInstallmentRepo,
		paymentRepo,
		ledgerService,
		clock,
		cfg.Payments.OverpaymentPolicy,
	)
	invoiceService := service.NewInvoiceService(
		txManager,
		invoiceRepo,
		invoiceItemRepo,
		inventoryRepo,
		clock,
		cfg.Payments.TaxRate,
	)
	purchasingService := service.NewPurchasingService(
		txManager,
		supplierRepo,
		productSupplierRepo,
		supplyRequestRepo,
		purchaseOrderRepo,
		supplierInvoiceRepo,
		inventoryRepo,
		inventoryService,
		clock,
	)
	bnplService := service.NewBNPLService(bnplProviderRepo, bnplPurchaseRepo, bnplInstallmentRepo)
	mpesaService := service.NewMpesaService(mpesaClient, mpesaTxnRepo, paymentService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Business:   handler.NewBusinessHandler(businessService),
		Order:      handler.NewOrderHandler(orderService),
		Payment:    handler.NewPaymentHandler(paymentService),
		Ledger:     handler.NewLedgerHandler(ledgerService),
		Inventory:  handler.NewInventoryHandler(inventoryService),
		Loyalty:    handler.NewLoyaltyHandler(loyaltyService),
		BNPL:       handler.NewBNPLHandler(bnplService),
		Invoice:    handler.NewInvoiceHandler(invoiceService),
		Purchasing: handler.NewPurchasingHandler(purchasingService),
		Mpesa:      handler.NewMpesaHandler(mpesaService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
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
