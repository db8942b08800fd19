package repository

import (
	"context"

	"gorm.io/gorm"

	domainRepo "github.com/dukahub/dukapos-api/internal/domain/repository"
)

type txKey struct{}

// txManager wraps gorm's transaction support. The transaction handle rides
// the context so every repository call inside fn joins the same transaction
// without the services knowing about gorm.
type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager backed by the given connection
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls join the transaction already on the context
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction handle from the context if one is active,
// otherwise the base connection
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
