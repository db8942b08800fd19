package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/response"
	"github.com/dukahub/dukapos-api/pkg/utils"
)

// AuthMiddleware validates the bearer token and loads the acting user plus
// the business/branch scope into the request context. Everything below the
// HTTP layer receives that scope explicitly.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("business_id", claims.BusinessID)
		c.Set("branch_id", claims.BranchID)

		c.Next()
	}
}

// GetScope retrieves the tenant scope set by AuthMiddleware. The second
// return is false when the request is unauthenticated.
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
