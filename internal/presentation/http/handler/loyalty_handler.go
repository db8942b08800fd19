package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/application/service"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/response"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// LoyaltyHandler handles loyalty card and store credit HTTP requests
type LoyaltyHandler struct {
	loyaltyService *service.LoyaltyService
}

// NewLoyaltyHandler creates a new loyalty handler
func NewLoyaltyHandler(loyaltyService *service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltyService: loyaltyService}
}

// CreateCard handles registering a loyalty card
func (h *LoyaltyHandler) CreateCard(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.loyaltyService.CreateCard(c.Request.Context(), scope, &service.CreateCardInput{
		CardNumber:    req.CardNumber,
		CustomerName:  req.CustomerName,
		PhoneNumber:   req.PhoneNumber,
		CustomerEmail: req.CustomerEmail,
		Address:       req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Loyalty card created successfully", card)
}

// List handles listing loyalty cards
func (h *LoyaltyHandler) List(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	cards, total, err := h.loyaltyService.ListCards(c.Request.Context(), scope, params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Validate()
	result := pagination.NewPaginatedResult(cards,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Loyalty cards retrieved successfully", result)
}

// Get handles getting a single loyalty card
func (h *LoyaltyHandler) Get(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid card ID")
		return
	}

	card, err := h.loyaltyService.GetCard(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Loyalty card retrieved successfully", card)
}

// Redeem handles converting points to store credit
func (h *LoyaltyHandler) Redeem(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.loyaltyService.Redeem(c.Request.Context(), scope, req.CardNumber, req.Points); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Points redeemed successfully", nil)
}

// IssueStoreCredit handles extending store credit against a card
func (h *LoyaltyHandler) IssueStoreCredit(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.StoreCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	loan, err := h.loyaltyService.IssueStoreCredit(c.Request.Context(), scope, req.CardNumber, toCents(req.Amount), GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Store credit issued successfully", loan)
}

// RepayLoan handles a store loan repayment
func (h *LoyaltyHandler) RepayLoan(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid loan ID")
		return
	}

	var req request.LoanRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	loan, err := h.loyaltyService.RepayStoreLoan(c.Request.Context(), scope, loanID, toCents(req.Amount), GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Loan repayment recorded successfully", loan)
}

// Reconcile verifies a card's points balance against its audit rows
func (h *LoyaltyHandler) Reconcile(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid card ID")
		return
	}

	if err := h.loyaltyService.Reconcile(c.Request.Context(), scope, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Card balance is consistent with its audit trail", nil)
}
