package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type TalentFilter struct {
	Status         string
	SeniorityLevel string
}

type TalentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, talents []*types.Talent) ([]*types.Talent, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Talent, error)
	List(ctx context.Context, tx *gorm.DB, filter TalentFilter) ([]*types.Talent, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type talentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTalentRepo(db *gorm.DB, baseLog *logger.Logger) TalentRepo {
	return &talentRepo{db: db, log: baseLog.With("repo", "TalentRepo")}
}

func (r *talentRepo) Create(ctx context.Context, tx *gorm.DB, talents []*types.Talent) ([]*types.Talent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(talents) == 0 {
		return []*types.Talent{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&talents).Error; err != nil {
		return nil, err
	}
	return talents, nil
}

func (r *talentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Talent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Talent
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

func (r *talentRepo) List(ctx context.Context, tx *gorm.DB, filter TalentFilter) ([]*types.Talent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Model(&types.Talent{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.SeniorityLevel != "" {
		q = q.Where("seniority_level = ?", filter.SeniorityLevel)
	}
	var results []*types.Talent
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *talentRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Talent{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *talentRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Talent{}).Error
}
