package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type VenturePermissionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, grants []*types.VenturePermission) ([]*types.VenturePermission, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.VenturePermission, error)
	// ListForUser returns grants for (venture, email) whose permission_type is
	// in permissionTypes. Expired grants are included; filtering by expiry is
	// the resolver's job, not the store's.
	ListForUser(ctx context.Context, tx *gorm.DB, ventureID uuid.UUID, userEmail string, permissionTypes []string) ([]*types.VenturePermission, error)
	ListByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.VenturePermission, error)
	// ListByUserEmail returns every grant held by one user across all
	// ventures. As with ListForUser, expired grants are included.
	ListByUserEmail(ctx context.Context, tx *gorm.DB, userEmail string) ([]*types.VenturePermission, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type venturePermissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVenturePermissionRepo(db *gorm.DB, baseLog *logger.Logger) VenturePermissionRepo {
	return &venturePermissionRepo{db: db, log: baseLog.With("repo", "VenturePermissionRepo")}
}

func (r *venturePermissionRepo) Create(ctx context.Context, tx *gorm.DB, grants []*types.VenturePermission) ([]*types.VenturePermission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(grants) == 0 {
		return []*types.VenturePermission{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *venturePermissionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.VenturePermission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VenturePermission
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

func (r *venturePermissionRepo) ListForUser(ctx context.Context, tx *gorm.DB, ventureID uuid.UUID, userEmail string, permissionTypes []string) ([]*types.VenturePermission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VenturePermission
	if ventureID == uuid.Nil || userEmail == "" || len(permissionTypes) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("venture_id = ? AND user_email = ? AND permission_type IN ?", ventureID, userEmail, permissionTypes).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *venturePermissionRepo) ListByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.VenturePermission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VenturePermission
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

func (r *venturePermissionRepo) ListByUserEmail(ctx context.Context, tx *gorm.DB, userEmail string) ([]*types.VenturePermission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.VenturePermission
	if userEmail == "" {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_email = ?", userEmail).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *venturePermissionRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.VenturePermission{}).Error
}
