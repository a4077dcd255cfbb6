package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type VentureScoreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, scores []*types.VentureScore) ([]*types.VentureScore, error)
	GetLatestByVentureID(ctx context.Context, tx *gorm.DB, ventureID uuid.UUID) (*types.VentureScore, error)
	ListByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.VentureScore, error)
}

type ventureScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVentureScoreRepo(db *gorm.DB, baseLog *logger.Logger) VentureScoreRepo {
	return &ventureScoreRepo{db: db, log: baseLog.With("repo", "VentureScoreRepo")}
}

func (r *ventureScoreRepo) Create(ctx context.Context, tx *gorm.DB, scores []*types.VentureScore) ([]*types.VentureScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(scores) == 0 {
		return []*types.VentureScore{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *ventureScoreRepo) GetLatestByVentureID(ctx context.Context, tx *gorm.DB, ventureID uuid.UUID) (*types.VentureScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if ventureID == uuid.Nil {
		return nil, nil
	}
	var score types.VentureScore
	err := transaction.WithContext(ctx).
		Where("venture_id = ?", ventureID).
		Order("computed_at DESC").
		Limit(1).
		Find(&score).Error
	if err != nil {
		return nil, err
	}
	if score.ID == uuid.Nil {
		return nil, nil
	}
	return &score, nil
}

func (r *ventureScoreRepo) ListByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.VentureScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VentureScore
	if len(ventureIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("venture_id IN ?", ventureIDs).
		Order("computed_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
