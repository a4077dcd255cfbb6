package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type VentureTaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tasks []*types.VentureTask) ([]*types.VentureTask, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.VentureTask, error)
	ListByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.VentureTask, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type ventureTaskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVentureTaskRepo(db *gorm.DB, baseLog *logger.Logger) VentureTaskRepo {
	return &ventureTaskRepo{db: db, log: baseLog.With("repo", "VentureTaskRepo")}
}

func (r *ventureTaskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.VentureTask) ([]*types.VentureTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(tasks) == 0 {
		return []*types.VentureTask{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *ventureTaskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.VentureTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VentureTask
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

func (r *ventureTaskRepo) ListByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.VentureTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VentureTask
	if len(ventureIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("venture_id IN ?", ventureIDs).
		Order("due_date ASC NULLS LAST, created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ventureTaskRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.VentureTask{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *ventureTaskRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.VentureTask{}).Error
}
