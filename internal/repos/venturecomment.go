package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type VentureCommentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, comments []*types.VentureComment) ([]*types.VentureComment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.VentureComment, error)
	ListByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.VentureComment, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type ventureCommentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVentureCommentRepo(db *gorm.DB, baseLog *logger.Logger) VentureCommentRepo {
	return &ventureCommentRepo{db: db, log: baseLog.With("repo", "VentureCommentRepo")}
}

func (r *ventureCommentRepo) Create(ctx context.Context, tx *gorm.DB, comments []*types.VentureComment) ([]*types.VentureComment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(comments) == 0 {
		return []*types.VentureComment{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *ventureCommentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.VentureComment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VentureComment
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

func (r *ventureCommentRepo) ListByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.VentureComment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VentureComment
	if len(ventureIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("venture_id IN ?", ventureIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ventureCommentRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.VentureComment{}).Error
}
