package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
)

const (
	// IdempotencyKeyHeader carries the client-chosen request key
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long a stored response can be replayed
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds dependencies for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// bodyCapture tees the response body so it can be stored for replay
type bodyCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyRequired rejects POSTs without an Idempotency-Key and replays the
// stored response when the same key is submitted again. A retried order
// placement must not sell stock twice.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Idempotency-Key header is required for this request",
			})
			c.Abort()
			return
		}

		userIDValue, exists := c.Get("user_id")
		userID, ok := userIDValue.(uuid.UUID)
		if !exists || !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "User not authenticated",
			})
			c.Abort()
			return
		}

		existing, err := config.Repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to check idempotency key",
			})
			c.Abort()
			return
		}
		if existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		capture := &bodyCapture{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = capture

		c.Next()

		// Only successful outcomes are replayable; a failed attempt may be retried
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = config.Repo.Create(c.Request.Context(), &entity.IdempotencyKey{
				Key:          key,
				UserID:       userID,
				Endpoint:     c.Request.Method + " " + c.FullPath(),
				ResponseCode: c.Writer.Status(),
				ResponseBody: capture.body.String(),
				ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
			})
		}
	}
}
