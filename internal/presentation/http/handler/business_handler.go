package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dukahub/dukapos-api/internal/application/service"
	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/response"
)

// BusinessHandler handles business profile and branch HTTP requests
type BusinessHandler struct {
	businessService *service.BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessService *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Get handles getting the acting user's business profile
func (h *BusinessHandler) Get(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	business, err := h.businessService.GetBusiness(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business retrieved successfully", business)
}

// Update handles updating the business profile
func (h *BusinessHandler) Update(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var updates entity.Business
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	business, err := h.businessService.UpdateBusiness(c.Request.Context(), scope, &updates)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business updated successfully", business)
}

// CreateBranch handles opening a new branch
func (h *BusinessHandler) CreateBranch(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var branch entity.Branch
	if err := c.ShouldBindJSON(&branch); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.businessService.CreateBranch(c.Request.Context(), scope, &branch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Branch created successfully", created)
}

// ListBranches handles listing the business's branches
func (h *BusinessHandler) ListBranches(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	branches, err := h.businessService.ListBranches(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branches retrieved successfully", branches)
}
