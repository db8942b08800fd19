package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
)

// IdempotencyRepository stores cached responses keyed by client idempotency keys
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
