package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/application/service"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/response"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// InvoiceHandler handles customer invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles opening a customer invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		response.BadRequest(c, "Invalid due date format, expected YYYY-MM-DD")
		return
	}

	items := make([]service.CartItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CartItem{ItemID: item.ItemID, Quantity: item.Quantity}
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), scope, &service.CreateInvoiceInput{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		DueDate:      dueDate,
		Items:        items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.InvoiceStatus(statusInt)
			params.Status = &status
		}
	}
	if dueBeforeStr := c.Query("due_before"); dueBeforeStr != "" {
		if dueBefore, err := time.Parse("2006-01-02", dueBeforeStr); err == nil {
			params.DueBefore = &dueBefore
		}
	}

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), scope, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Pagination.Validate()
	result := pagination.NewPaginatedResult(invoices,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting a single invoice with its lines
func (h *InvoiceHandler) Get(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}
