package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dukahub/dukapos-api/internal/application/service"
	"github.com/dukahub/dukapos-api/internal/domain/enum"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/response"
	"github.com/dukahub/dukapos-api/pkg/pagination"
)

// LedgerHandler handles business ledger HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// Record handles appending a manual ledger row
func (h *LedgerHandler) Record(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.LedgerRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var recordType enum.RecordType
	switch req.RecordType {
	case "Debit", "debit":
		recordType = enum.RecordTypeDebit
	case "Credit", "credit":
		recordType = enum.RecordTypeCredit
	default:
		response.BadRequest(c, "Unknown record type")
		return
	}

	input := &service.RecordInput{
		RecordType:  recordType,
		Amount:      toCents(req.Amount),
		Reason:      req.Reason,
		Description: req.Description,
		Reference:   req.Reference,
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		input.Date = &date
	}

	record, err := h.ledgerService.Record(c.Request.Context(), scope, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Ledger record created successfully", record)
}

// List handles listing ledger rows
func (h *LedgerHandler) List(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.LedgerFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if typeStr := c.Query("record_type"); typeStr != "" {
		if typeInt, err := strconv.Atoi(typeStr); err == nil {
			recordType := enum.RecordType(typeInt)
			params.RecordType = &recordType
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

	records, total, err := h.ledgerService.List(c.Request.Context(), scope, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Pagination.Validate()
	result := pagination.NewPaginatedResult(records,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Ledger records retrieved successfully", result)
}

// Totals handles summing debits and credits over an optional date range
func (h *LedgerHandler) Totals(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var startDate, endDate *time.Time
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if parsed, err := time.Parse("2006-01-02", startDateStr); err == nil {
			startDate = &parsed
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if parsed, err := time.Parse("2006-01-02", endDateStr); err == nil {
			endDate = &parsed
		}
	}

	debit, credit, err := h.ledgerService.Totals(c.Request.Context(), scope, startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger totals retrieved successfully", gin.H{
		"debit":  float64(debit) / 100,
		"credit": float64(credit) / 100,
		"net":    float64(credit-debit) / 100,
	})
}
