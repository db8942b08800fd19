package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/application/service"
	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/response"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// BNPLHandler handles financing provider and purchase HTTP requests
type BNPLHandler struct {
	bnplService *service.BNPLService
}

// NewBNPLHandler creates a new BNPL handler
func NewBNPLHandler(bnplService *service.BNPLService) *BNPLHandler {
	return &BNPLHandler{bnplService: bnplService}
}

// CreateProvider handles registering a financing provider
func (h *BNPLHandler) CreateProvider(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var provider entity.BNPLProvider
	if err := c.ShouldBindJSON(&provider); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.bnplService.CreateProvider(c.Request.Context(), scope, &provider)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Provider created successfully", created)
}

// ListProviders handles listing financing providers
func (h *BNPLHandler) ListProviders(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	providers, err := h.bnplService.ListProviders(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Providers retrieved successfully", providers)
}

// ListPurchases handles listing BNPL purchases
func (h *BNPLHandler) ListPurchases(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.BNPLPurchaseFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.BNPLPurchaseStatus(statusInt)
			params.Status = &status
		}
	}
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}
	if providerIDStr := c.Query("provider_id"); providerIDStr != "" {
		if providerID, err := uuid.Parse(providerIDStr); err == nil {
			params.ProviderID = &providerID
		}
	}

	purchases, total, err := h.bnplService.ListPurchases(c.Request.Context(), scope, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Pagination.Validate()
	result := pagination.NewPaginatedResult(purchases,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Purchases retrieved successfully", result)
}

// GetPurchase handles getting a purchase with its installment schedule
func (h *BNPLHandler) GetPurchase(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.bnplService.GetPurchase(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}

// ListInstallments handles listing a purchase's installment schedule
func (h *BNPLHandler) ListInstallments(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	installments, err := h.bnplService.ListInstallments(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installments retrieved successfully", installments)
}
