package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/application/service"
	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/response"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// PurchasingHandler handles supplier and purchase order HTTP requests
type PurchasingHandler struct {
	purchasingService *service.PurchasingService
}

// NewPurchasingHandler creates a new purchasing handler
func NewPurchasingHandler(purchasingService *service.PurchasingService) *PurchasingHandler {
	return &PurchasingHandler{purchasingService: purchasingService}
}

// CreateSupplier handles registering a supplier
func (h *PurchasingHandler) CreateSupplier(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplier, err := h.purchasingService.CreateSupplier(c.Request.Context(), scope, &entity.Supplier{
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		LeadTimeDays: req.LeadTimeDays,
		PaymentTerms: req.PaymentTerms,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier created successfully", supplier)
}

// ListSuppliers handles listing suppliers
func (h *PurchasingHandler) ListSuppliers(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	suppliers, total, err := h.purchasingService.ListSuppliers(c.Request.Context(), scope, params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Validate()
	result := pagination.NewPaginatedResult(suppliers,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Suppliers retrieved successfully", result)
}

// CreatePurchaseOrder handles opening a purchase order
func (h *PurchasingHandler) CreatePurchaseOrder(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var expectedDelivery *time.Time
	if req.ExpectedDeliveryDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpectedDeliveryDate)
		if err != nil {
			response.BadRequest(c, "Invalid expected delivery date format, expected YYYY-MM-DD")
			return
		}
		expectedDelivery = &parsed
	}

	order, err := h.purchasingService.CreatePurchaseOrder(c.Request.Context(), scope, req.SupplierID, expectedDelivery)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase order created successfully", order)
}

// ListPurchaseOrders handles listing purchase orders
func (h *PurchasingHandler) ListPurchaseOrders(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	orders, total, err := h.purchasingService.ListPurchaseOrders(c.Request.Context(), scope, params, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Validate()
	result := pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Purchase orders retrieved successfully", result)
}

// GetPurchaseOrder handles getting a purchase order with its lines
func (h *PurchasingHandler) GetPurchaseOrder(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	order, err := h.purchasingService.GetPurchaseOrder(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order retrieved successfully", order)
}

// AddItem handles appending a line to a purchase order
func (h *PurchasingHandler) AddItem(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req request.AddPurchaseOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.purchasingService.AddItem(c.Request.Context(), scope, id, req.ProductID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order item added successfully", order)
}

// UpdateItem handles amending a purchase order line
func (h *PurchasingHandler) UpdateItem(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order item ID")
		return
	}

	var req request.UpdatePurchaseOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	action, err := enum.ParseItemUpdateAction(req.Action)
	if err != nil {
		response.BadRequest(c, "Unknown item update action")
		return
	}

	order, err := h.purchasingService.UpdateItem(c.Request.Context(), scope, orderID, itemID, action, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order item updated successfully", order)
}

// ReceiveGoods handles a goods receipt against a purchase order line
func (h *PurchasingHandler) ReceiveGoods(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order item ID")
		return
	}

	var req request.ReceiveGoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	line, err := h.purchasingService.ReceiveGoods(c.Request.Context(), scope, itemID, req.Quantity, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Goods receipt recorded successfully", line)
}

// CreateSupplierInvoice handles recording a supplier bill
func (h *PurchasingHandler) CreateSupplierInvoice(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSupplierInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice := &entity.SupplierInvoice{
		SupplierID:      req.SupplierID,
		PurchaseOrderID: req.PurchaseOrderID,
		InvoiceNumber:   req.InvoiceNumber,
		TotalAmount:     toCents(req.TotalAmount),
	}
	if req.InvoiceDate != "" {
		parsed, err := time.Parse("2006-01-02", req.InvoiceDate)
		if err != nil {
			response.BadRequest(c, "Invalid invoice date format, expected YYYY-MM-DD")
			return
		}
		invoice.InvoiceDate = parsed
	}
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			response.BadRequest(c, "Invalid due date format, expected YYYY-MM-DD")
			return
		}
		invoice.DueDate = &parsed
	}

	created, err := h.purchasingService.CreateSupplierInvoice(c.Request.Context(), scope, invoice)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier invoice created successfully", created)
}

// CreateSupplyRequest handles recording a branch's ask for stock
func (h *PurchasingHandler) CreateSupplyRequest(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSupplyRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplyRequest, err := h.purchasingService.CreateSupplyRequest(c.Request.Context(), scope, req.ProductID, req.Quantity, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supply request created successfully", supplyRequest)
}

// UpdateSupplyRequestStatus handles moving a supply request through its flow
func (h *PurchasingHandler) UpdateSupplyRequestStatus(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supply request ID")
		return
	}

	var req request.UpdateSupplyRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	supplyRequest, err := h.purchasingService.UpdateSupplyRequestStatus(c.Request.Context(), scope, id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supply request updated successfully", supplyRequest)
}
