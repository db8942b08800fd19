package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dukahub/dukapos-api/internal/config"
	domainRepo "github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/internal/presentation/http/handler"
	"github.com/dukahub/dukapos-api/internal/presentation/http/middleware"
	"github.com/dukahub/dukapos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Business   *handler.BusinessHandler
	Order      *handler.OrderHandler
	Payment    *handler.PaymentHandler
	Ledger     *handler.LedgerHandler
	Inventory  *handler.InventoryHandler
	Loyalty    *handler.LoyaltyHandler
	BNPL       *handler.BNPLHandler
	Invoice    *handler.InvoiceHandler
	Purchasing *handler.PurchasingHandler
	Mpesa      *handler.MpesaHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
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

		// The gateway calls back without our bearer token
		v1.POST("/mpesa/callback", h.Mpesa.Callback)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-business rate limiter
		rateLimiter := middleware.NewBusinessRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Staff registration happens under the acting user's business
	protected.POST("/auth/register", h.Auth.Register)

	registerBusinessRoutes(protected, h)
	registerOrderRoutes(protected, h, deps)
	registerPaymentRoutes(protected, h)
	registerLedgerRoutes(protected, h)
	registerInventoryRoutes(protected, h)
	registerLoyaltyRoutes(protected, h)
	registerBNPLRoutes(protected, h)
	registerInvoiceRoutes(protected, h)
	registerPurchasingRoutes(protected, h)
	registerMpesaRoutes(protected, h)
}

func registerBusinessRoutes(protected *gin.RouterGroup, h *Handlers) {
	business := protected.Group("/business")
	{
		business.GET("", h.Business.Get)
		business.PUT("", h.Business.Update)
		business.GET("/branches", h.Business.ListBranches)
		business.POST("/branches", h.Business.CreateBranch)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		// Sale placement uses idempotency middleware to prevent duplicates
		orders.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.PlaceSale)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id/items/:item_id", h.Order.UpdateItem)
		orders.POST("/:id/pay", h.Payment.PayOrder)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers) {
	payments := protected.Group("/payments")
	{
		payments.GET("", h.Payment.List)
	}
}

func registerLedgerRoutes(protected *gin.RouterGroup, h *Handlers) {
	ledger := protected.Group("/ledger")
	{
		ledger.GET("", h.Ledger.List)
		ledger.POST("", h.Ledger.Record)
		ledger.GET("/totals", h.Ledger.Totals)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	items := protected.Group("/items")
	{
		items.GET("", h.Inventory.List)
		items.POST("", h.Inventory.CreateItem)
		items.GET("/:id", h.Inventory.Get)
		items.POST("/:id/restock", h.Inventory.Restock)
		items.GET("/:id/logs", h.Inventory.ListLogs)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", h.Inventory.ListCategories)
		categories.POST("", h.Inventory.CreateCategory)
	}
}

func registerLoyaltyRoutes(protected *gin.RouterGroup, h *Handlers) {
	cards := protected.Group("/loyalty/cards")
	{
		cards.GET("", h.Loyalty.List)
		cards.POST("", h.Loyalty.CreateCard)
		cards.GET("/:id", h.Loyalty.Get)
		cards.POST("/:id/reconcile", h.Loyalty.Reconcile)
	}

	loyalty := protected.Group("/loyalty")
	{
		loyalty.POST("/redeem", h.Loyalty.Redeem)
		loyalty.POST("/store-credit", h.Loyalty.IssueStoreCredit)
		loyalty.POST("/loans/:id/repay", h.Loyalty.RepayLoan)
	}
}

func registerBNPLRoutes(protected *gin.RouterGroup, h *Handlers) {
	providers := protected.Group("/bnpl/providers")
	{
		providers.GET("", h.BNPL.ListProviders)
		providers.POST("", h.BNPL.CreateProvider)
	}

	purchases := protected.Group("/bnpl/purchases")
	{
		purchases.GET("", h.BNPL.ListPurchases)
		purchases.GET("/:id", h.BNPL.GetPurchase)
		purchases.GET("/:id/installments", h.BNPL.ListInstallments)
		purchases.POST("/:id/pay", h.Payment.PayBNPL)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/pay", h.Payment.PayInvoice)
	}
}

func registerPurchasingRoutes(protected *gin.RouterGroup, h *Handlers) {
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Purchasing.ListSuppliers)
		suppliers.POST("", h.Purchasing.CreateSupplier)
	}

	purchaseOrders := protected.Group("/purchase-orders")
	{
		purchaseOrders.GET("", h.Purchasing.ListPurchaseOrders)
		purchaseOrders.POST("", h.Purchasing.CreatePurchaseOrder)
		purchaseOrders.GET("/:id", h.Purchasing.GetPurchaseOrder)
		purchaseOrders.POST("/:id/items", h.Purchasing.AddItem)
		purchaseOrders.PUT("/:id/items/:item_id", h.Purchasing.UpdateItem)
		purchaseOrders.POST("/items/:item_id/receive", h.Purchasing.ReceiveGoods)
	}

	supplierInvoices := protected.Group("/supplier-invoices")
	{
		supplierInvoices.POST("", h.Purchasing.CreateSupplierInvoice)
		supplierInvoices.POST("/:id/pay", h.Payment.PaySupplierInvoice)
	}

	supplyRequests := protected.Group("/supply-requests")
	{
		supplyRequests.POST("", h.Purchasing.CreateSupplyRequest)
		supplyRequests.PUT("/:id/status", h.Purchasing.UpdateSupplyRequestStatus)
	}
}

func registerMpesaRoutes(protected *gin.RouterGroup, h *Handlers) {
	mpesaGroup := protected.Group("/mpesa")
	{
		mpesaGroup.POST("/stk-push", h.Mpesa.InitiateSTKPush)
		mpesaGroup.GET("/transactions/:checkout_request_id", h.Mpesa.GetTransaction)
	}
}
