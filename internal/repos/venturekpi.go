package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type VentureKPIRepo interface {
	Create(ctx context.Context, tx *gorm.DB, kpis []*types.VentureKPI) ([]*types.VentureKPI, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.VentureKPI, error)
	ListByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.VentureKPI, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type ventureKPIRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVentureKPIRepo(db *gorm.DB, baseLog *logger.Logger) VentureKPIRepo {
	return &ventureKPIRepo{db: db, log: baseLog.With("repo", "VentureKPIRepo")}
}

func (r *ventureKPIRepo) Create(ctx context.Context, tx *gorm.DB, kpis []*types.VentureKPI) ([]*types.VentureKPI, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(kpis) == 0 {
		return []*types.VentureKPI{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&kpis).Error; err != nil {
		return nil, err
	}
	return kpis, nil
}

func (r *ventureKPIRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.VentureKPI, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VentureKPI
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

// ListByVentureIDs returns KPIs ordered by measurement date ascending so the
// aggregation layer emits chronological buckets.
func (r *ventureKPIRepo) ListByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.VentureKPI, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VentureKPI
	if len(ventureIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("venture_id IN ?", ventureIDs).
		Order("measurement_date ASC NULLS LAST, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ventureKPIRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.VentureKPI{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *ventureKPIRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.VentureKPI{}).Error
}
