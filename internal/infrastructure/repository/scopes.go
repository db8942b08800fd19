package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
)

// Scoped returns a GORM scope that filters rows to the given business and,
// when set, branch. Every query against scoped tables must apply it; a nil
// business ID matches nothing rather than everything.
func Scoped(scope entity.Scope) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if scope.BusinessID == uuid.Nil {
			return db.Where("1 = 0")
		}
		db = db.Where("business_id = ?", scope.BusinessID)
		if scope.BranchID != uuid.Nil {
			db = db.Where("branch_id = ?", scope.BranchID)
		}
		return db
	}
}

// BusinessScoped filters by business only, for tables shared across branches
func BusinessScoped(scope entity.Scope) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if scope.BusinessID == uuid.Nil {
			return db.Where("1 = 0")
		}
		return db.Where("business_id = ?", scope.BusinessID)
	}
}
