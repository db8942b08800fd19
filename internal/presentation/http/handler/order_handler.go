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

// OrderHandler handles sale and order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceSale handles a point-of-sale checkout
func (h *OrderHandler) PlaceSale(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.PlaceSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, err := enum.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		response.BadRequest(c, "Unknown payment method")
		return
	}

	items := make([]service.CartItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CartItem{ItemID: item.ItemID, Quantity: item.Quantity}
	}

	input := &service.PlaceSaleInput{
		Items:             items,
		PaymentMethod:     method,
		AmountReceived:    toCents(req.AmountReceived),
		SplitCashAmount:   toCents(req.SplitCashAmount),
		SplitMobileAmount: toCents(req.SplitMobileAmount),
		CustomerName:      req.CustomerName,
		LoyaltyCardNumber: req.LoyaltyCardNumber,
		RedeemPoints:      req.RedeemPoints,
		MobileNumber:      req.MobileNumber,
		SoldBy:            GetUserID(c),
	}
	if req.BNPL != nil {
		input.BNPL = &service.BNPLTerms{
			ProviderID:           req.BNPL.ProviderID,
			DownPayment:          toCents(req.BNPL.DownPayment),
			NumberOfInstallments: req.BNPL.NumberOfInstallments,
			PaymentIntervalDays:  req.BNPL.PaymentIntervalDays,
		}
	}

	order, err := h.orderService.PlaceSale(c.Request.Context(), scope, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", order)
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
			params.Status = &status
		}
	}
	if typeStr := c.Query("order_type"); typeStr != "" {
		if typeInt, err := strconv.Atoi(typeStr); err == nil {
			orderType := enum.OrderType(typeInt)
			params.OrderType = &orderType
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

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), scope, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Pagination.Validate()
	result := pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get handles getting a single order with its lines
func (h *OrderHandler) Get(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// UpdateItem handles amending one line of an order
func (h *OrderHandler) UpdateItem(c *gin.Context) {
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
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		response.BadRequest(c, "Invalid order item ID")
		return
	}

	var req request.UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	action, err := enum.ParseItemUpdateAction(req.Action)
	if err != nil {
		response.BadRequest(c, "Unknown item update action")
		return
	}

	order, err := h.orderService.UpdateOrderItem(c.Request.Context(), scope, orderID, itemID, action, req.Quantity, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order item updated successfully", order)
}
