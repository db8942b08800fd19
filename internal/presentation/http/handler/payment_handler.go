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

// PaymentHandler handles payment allocation HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// parseMethod resolves the optional payment method field, defaulting to cash
func parseMethod(s string) (enum.PaymentMethod, error) {
	if s == "" {
		return enum.PaymentMethodCash, nil
	}
	return enum.ParsePaymentMethod(s)
}

// PayOrder handles paying an outstanding order balance
func (h *PaymentHandler) PayOrder(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	method, err := parseMethod(req.PaymentMethod)
	if err != nil {
		response.BadRequest(c, "Unknown payment method")
		return
	}

	order, err := h.paymentService.PayOrder(c.Request.Context(), scope, orderID, toCents(req.Amount), method)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", order)
}

// PayInvoice handles paying a customer invoice
func (h *PaymentHandler) PayInvoice(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	method, err := parseMethod(req.PaymentMethod)
	if err != nil {
		response.BadRequest(c, "Unknown payment method")
		return
	}

	invoice, err := h.paymentService.PayInvoice(c.Request.Context(), scope, invoiceID, toCents(req.Amount), method)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", invoice)
}

// PayBNPL handles a BNPL installment repayment
func (h *PaymentHandler) PayBNPL(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	var req request.BNPLPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	mode, err := enum.ParseInstallmentPaymentMode(req.Mode)
	if err != nil {
		response.BadRequest(c, "Unknown installment payment mode")
		return
	}

	purchase, err := h.paymentService.MakeBNPLPayment(c.Request.Context(), scope, &service.BNPLPaymentInput{
		PurchaseID:    purchaseID,
		Mode:          mode,
		Amount:        toCents(req.Amount),
		InstallmentID: req.InstallmentID,
		Count:         req.Count,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installment payment recorded successfully", purchase)
}

// PaySupplierInvoice handles settling a supplier bill
func (h *PaymentHandler) PaySupplierInvoice(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supplier invoice ID")
		return
	}

	var req request.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	method, err := parseMethod(req.PaymentMethod)
	if err != nil {
		response.BadRequest(c, "Unknown payment method")
		return
	}

	invoice, err := h.paymentService.PaySupplierInvoice(c.Request.Context(), scope, invoiceID, toCents(req.Amount), method)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier payment recorded successfully", invoice)
}

// List handles listing payments
func (h *PaymentHandler) List(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.PaymentFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if methodStr := c.Query("method"); methodStr != "" {
		if method, err := enum.ParsePaymentMethod(methodStr); err == nil {
			params.Method = &method
		}
	}
	if directionStr := c.Query("direction"); directionStr != "" {
		if directionInt, err := strconv.Atoi(directionStr); err == nil {
			direction := enum.PaymentDirection(directionInt)
			params.Direction = &direction
		}
	}
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), scope, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Pagination.Validate()
	result := pagination.NewPaginatedResult(payments,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}
