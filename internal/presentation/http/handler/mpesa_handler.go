package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/dukahub/dukapos-api/internal/application/service"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/response"
	"github.com/dukahub/dukapos-api/pkg/mpesa"
)

// MpesaHandler handles M-Pesa STK push HTTP requests
type MpesaHandler struct {
	mpesaService *service.MpesaService
}

// NewMpesaHandler creates a new M-Pesa handler
func NewMpesaHandler(mpesaService *service.MpesaService) *MpesaHandler {
	return &MpesaHandler{mpesaService: mpesaService}
}

// InitiateSTKPush handles prompting a customer's phone for payment
func (h *MpesaHandler) InitiateSTKPush(c *gin.Context) {
	scope, ok := GetScope(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.STKPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	txn, err := h.mpesaService.InitiateSTKPush(c.Request.Context(), scope, req.PhoneNumber, toCents(req.Amount), req.OrderID, req.AccountRef)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "STK push initiated successfully", txn)
}

// Callback handles the asynchronous payment result from the gateway. It
// always acknowledges with 200 so the gateway does not retry forever.
func (h *MpesaHandler) Callback(c *gin.Context) {
	var envelope mpesa.CallbackEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		response.BadRequest(c, "Invalid callback payload")
		return
	}

	if err := h.mpesaService.HandleCallback(c.Request.Context(), &envelope); err != nil {
		log.Printf("Error: mpesa callback processing failed: %v", err)
	}

	c.JSON(200, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
}

// GetTransaction handles looking up a transaction by checkout request ID
func (h *MpesaHandler) GetTransaction(c *gin.Context) {
	if _, ok := GetScope(c); !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	txn, err := h.mpesaService.GetTransaction(c.Request.Context(), c.Param("checkout_request_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", txn)
}
