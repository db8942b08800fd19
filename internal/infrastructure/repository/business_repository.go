package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	domainRepo "github.com/dukahub/dukapos-api/internal/domain/repository"
)

type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) domainRepo.BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	return conn(ctx, r.db).Create(business).Error
}

func (r *businessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var business entity.Business
	err := conn(ctx, r.db).First(&business, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &business, err
}

func (r *businessRepository) Update(ctx context.Context, business *entity.Business) error {
	return conn(ctx, r.db).Save(business).Error
}

func (r *businessRepository) List(ctx context.Context) ([]entity.Business, error) {
	var businesses []entity.Business
	err := conn(ctx, r.db).Order("name ASC").Find(&businesses).Error
	return businesses, err
}

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) domainRepo.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	return conn(ctx, r.db).Create(branch).Error
}

func (r *branchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	var branch entity.Branch
	err := conn(ctx, r.db).First(&branch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branch, err
}

func (r *branchRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]entity.Branch, error) {
	var branches []entity.Branch
	err := conn(ctx, r.db).
		Where("business_id = ?", businessID).
		Order("name ASC").
		Find(&branches).Error
	return branches, err
}

func (r *branchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	return conn(ctx, r.db).Save(branch).Error
}
