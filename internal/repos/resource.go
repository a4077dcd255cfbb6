package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type ResourceRepo interface {
	CreateListings(ctx context.Context, tx *gorm.DB, listings []*types.ResourceListing) ([]*types.ResourceListing, error)
	GetListingsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ResourceListing, error)
	ListListings(ctx context.Context, tx *gorm.DB, status string) ([]*types.ResourceListing, error)
	UpdateListingFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteListingsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error

	CreateRequests(ctx context.Context, tx *gorm.DB, requests []*types.ResourceRequest) ([]*types.ResourceRequest, error)
	ListRequestsByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.ResourceRequest, error)
	UpdateRequestFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type resourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
	return &resourceRepo{db: db, log: baseLog.With("repo", "ResourceRepo")}
}

func (r *resourceRepo) CreateListings(ctx context.Context, tx *gorm.DB, listings []*types.ResourceListing) ([]*types.ResourceListing, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(listings) == 0 {
		return []*types.ResourceListing{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *resourceRepo) GetListingsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ResourceListing, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ResourceListing
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resourceRepo) ListListings(ctx context.Context, tx *gorm.DB, status string) ([]*types.ResourceListing, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Model(&types.ResourceListing{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var results []*types.ResourceListing
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resourceRepo) UpdateListingFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.ResourceListing{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *resourceRepo) DeleteListingsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.ResourceListing{}).Error
}

func (r *resourceRepo) CreateRequests(ctx context.Context, tx *gorm.DB, requests []*types.ResourceRequest) ([]*types.ResourceRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(requests) == 0 {
		return []*types.ResourceRequest{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *resourceRepo) ListRequestsByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.ResourceRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ResourceRequest
	if len(ventureIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("venture_id IN ?", ventureIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resourceRepo) UpdateRequestFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.ResourceRequest{}).
		Where("id = ?", id).
		Updates(updates).Error
}
