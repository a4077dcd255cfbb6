package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

// VentureFilter narrows List; zero values mean "any".
type VentureFilter struct {
	Layer    string
	Status   string
	Category string
}

type VentureRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ventures []*types.Venture) ([]*types.Venture, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Venture, error)
	List(ctx context.Context, tx *gorm.DB, filter VentureFilter) ([]*types.Venture, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type ventureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVentureRepo(db *gorm.DB, baseLog *logger.Logger) VentureRepo {
	return &ventureRepo{db: db, log: baseLog.With("repo", "VentureRepo")}
}

func (r *ventureRepo) Create(ctx context.Context, tx *gorm.DB, ventures []*types.Venture) ([]*types.Venture, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ventures) == 0 {
		return []*types.Venture{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&ventures).Error; err != nil {
		return nil, err
	}
	return ventures, nil
}

func (r *ventureRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Venture, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Venture
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

func (r *ventureRepo) List(ctx context.Context, tx *gorm.DB, filter VentureFilter) ([]*types.Venture, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Model(&types.Venture{})
	if filter.Layer != "" {
		q = q.Where("layer = ?", filter.Layer)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	var results []*types.Venture
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ventureRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Venture{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *ventureRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Venture{}).Error
}
