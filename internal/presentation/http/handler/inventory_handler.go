package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/application/service"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/response"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// InventoryHandler handles stock HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateItem handles registering a stock item
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), scope, &service.CreateItemInput{
		CategoryID:   req.CategoryID,
		Barcode:      req.Barcode,
		Name:         req.Name,
		Quantity:     req.Quantity,
		BuyingPrice:  toCents(req.BuyingPrice),
		SellingPrice: toCents(req.SellingPrice),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// List handles listing stock items
func (h *InventoryHandler) List(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	items, total, err := h.inventoryService.ListItems(c.Request.Context(), scope, params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Validate()
	result := pagination.NewPaginatedResult(items,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Items retrieved successfully", result)
}

// Get handles getting a single stock item
func (h *InventoryHandler) Get(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.inventoryService.GetItem(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Restock handles a manual stock adjustment
func (h *InventoryHandler) Restock(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	action, err := enum.ParseStockAction(req.Action)
	if err != nil {
		response.BadRequest(c, "Unknown stock action")
		return
	}

	item, err := h.inventoryService.RestockOrSell(c.Request.Context(), scope, id, action, req.Quantity, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", item)
}

// ListLogs handles listing an item's stock movement history
func (h *InventoryHandler) ListLogs(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	logs, total, err := h.inventoryService.ListLogs(c.Request.Context(), scope, id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Validate()
	result := pagination.NewPaginatedResult(logs,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Stock logs retrieved successfully", result)
}

// CreateCategory handles registering an item category
func (h *InventoryHandler) CreateCategory(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.inventoryService.CreateCategory(c.Request.Context(), scope, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// ListCategories handles listing item categories
func (h *InventoryHandler) ListCategories(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	categories, err := h.inventoryService.ListCategories(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}
