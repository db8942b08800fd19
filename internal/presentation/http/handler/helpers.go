package handler

import (
	"math"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
)

// GetUserID extracts the acting user's ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetScope extracts the business/branch scope set by the auth middleware.
// The second return is false when the request carries no valid scope.
func GetScope(c *gin.Context) (entity.Scope, bool) {
	businessVal, exists := c.Get("business_id")
	if !exists {
		return entity.Scope{}, false
	}
	businessID, ok := businessVal.(uuid.UUID)
	if !ok || businessID == uuid.Nil {
		return entity.Scope{}, false
	}

	scope := entity.Scope{BusinessID: businessID}
	if branchVal, exists := c.Get("branch_id"); exists {
		if branchID, ok := branchVal.(uuid.UUID); ok {
			scope.BranchID = branchID
		}
	}
	return scope, true
}

// toCents converts a decimal currency amount from the wire into cents
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
