package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type FinancialRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.FinancialRecord) ([]*types.FinancialRecord, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.FinancialRecord, error)
	ListByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.FinancialRecord, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type financialRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFinancialRecordRepo(db *gorm.DB, baseLog *logger.Logger) FinancialRecordRepo {
	return &financialRecordRepo{db: db, log: baseLog.With("repo", "FinancialRecordRepo")}
}

func (r *financialRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.FinancialRecord) ([]*types.FinancialRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(records) == 0 {
		return []*types.FinancialRecord{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *financialRecordRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.FinancialRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.FinancialRecord
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

func (r *financialRecordRepo) ListByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.FinancialRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.FinancialRecord
	if len(ventureIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("venture_id IN ?", ventureIDs).
		Order("record_date ASC NULLS LAST, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *financialRecordRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.FinancialRecord{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *financialRecordRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.FinancialRecord{}).Error
}
