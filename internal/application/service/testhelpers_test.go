package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/infrastructure/database"
	infra "github.com/dukahub/dukapos-api/internal/infrastructure/repository"
)

const testTaxRate = 0.08

// testEnv wires the full service graph over an in-memory database so tests
// exercise the same repository code paths as production
type testEnv struct {
	db    *gorm.DB
	clock FixedClock
	scope entity.Scope

	inventory  *InventoryService
	loyalty    *LoyaltyService
	ledger     *LedgerService
	orders     *OrderService
	payments   *PaymentService
	invoices   *InvoiceService
	purchasing *PurchasingService
	bnpl       *BNPLService
}

func newTestEnv(t *testing.T, policy enum.OverpaymentPolicy) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// In-memory sqlite gives every connection its own database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	clock := FixedClock{Instant: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	scope := entity.Scope{BusinessID: uuid.New(), BranchID: uuid.New()}

	txManager := infra.NewTxManager(db)
	inventoryRepo := infra.NewInventoryRepository(db)
	inventoryLogRepo := infra.NewInventoryLogRepository(db)
	categoryRepo := infra.NewCategoryRepository(db)
	orderRepo := infra.NewOrderRepository(db)
	orderItemRepo := infra.NewOrderItemRepository(db)
	invoiceRepo := infra.NewInvoiceRepository(db)
	invoiceItemRepo := infra.NewInvoiceItemRepository(db)
	supplierInvoiceRepo := infra.NewSupplierInvoiceRepository(db)
	paymentRepo := infra.NewPaymentRepository(db)
	ledgerRepo := infra.NewLedgerRepository(db)
	cardRepo := infra.NewLoyaltyCardRepository(db)
	auditRepo := infra.NewLoyaltyAuditRepository(db)
	loanRepo := infra.NewStoreLoanRepository(db)
	providerRepo := infra.NewBNPLProviderRepository(db)
	purchaseRepo := infra.NewBNPLPurchaseRepository(db)
	installmentRepo := infra.NewBNPLInstallmentRepository(db)
	supplierRepo := infra.NewSupplierRepository(db)
	productSupplierRepo := infra.NewProductSupplierRepository(db)
	supplyRequestRepo := infra.NewSupplyRequestRepository(db)
	purchaseOrderRepo := infra.NewPurchaseOrderRepository(db)

	inventory := NewInventoryService(inventoryRepo, inventoryLogRepo, categoryRepo)
	loyalty := NewLoyaltyService(cardRepo, auditRepo, loanRepo)
	ledger := NewLedgerService(ledgerRepo, clock)
	orders := NewOrderService(
		txManager, orderRepo, orderItemRepo, inventoryRepo, paymentRepo,
		providerRepo, purchaseRepo, installmentRepo, cardRepo,
		inventory, loyalty, ledger, clock, testTaxRate,
	)
	payments := NewPaymentService(
		txManager, orderRepo, invoiceRepo, supplierInvoiceRepo,
		purchaseRepo, installmentRepo, paymentRepo, ledger, clock, policy,
	)
	invoices := NewInvoiceService(txManager, invoiceRepo, invoiceItemRepo, inventoryRepo, clock, testTaxRate)
	purchasing := NewPurchasingService(
		txManager, supplierRepo, productSupplierRepo, supplyRequestRepo,
		purchaseOrderRepo, supplierInvoiceRepo, inventoryRepo, inventory, clock,
	)
	bnpl := NewBNPLService(providerRepo, purchaseRepo, installmentRepo)

	return &testEnv{
		db:         db,
		clock:      clock,
		scope:      scope,
		inventory:  inventory,
		loyalty:    loyalty,
		ledger:     ledger,
		orders:     orders,
		payments:   payments,
		invoices:   invoices,
		purchasing: purchasing,
		bnpl:       bnpl,
	}
}

func (e *testEnv) createItem(t *testing.T, name string, quantity int, sellingPrice int64) *entity.InventoryItem {
	t.Helper()
	item, err := e.inventory.CreateItem(context.Background(), e.scope, &CreateItemInput{
		Name:         name,
		Quantity:     quantity,
		BuyingPrice:  sellingPrice / 2,
		SellingPrice: sellingPrice,
	})
	require.NoError(t, err)
	return item
}

func (e *testEnv) createCard(t *testing.T, cardNumber string) *entity.LoyaltyCard {
	t.Helper()
	card, err := e.loyalty.CreateCard(context.Background(), e.scope, &CreateCardInput{
		CardNumber:   cardNumber,
		CustomerName: "Jane Wanjiku",
	})
	require.NoError(t, err)
	// Re-read so database defaults (credit limit) are populated
	card, err = e.loyalty.GetCard(context.Background(), e.scope, card.ID)
	require.NoError(t, err)
	return card
}

func (e *testEnv) createProvider(t *testing.T, name string) *entity.BNPLProvider {
	t.Helper()
	provider, err := e.bnpl.CreateProvider(context.Background(), e.scope, &entity.BNPLProvider{Name: name})
	require.NoError(t, err)
	return provider
}

func (e *testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(model).Count(&count).Error)
	return count
}

func (e *testEnv) ledgerRows(t *testing.T) []entity.BusinessLedger {
	t.Helper()
	var rows []entity.BusinessLedger
	require.NoError(t, e.db.Order("created_at ASC").Find(&rows).Error)
	return rows
}
