package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/requestdata"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

// logActivity writes an audit row inside the caller's transaction. Failures
// are logged and swallowed: an audit miss never rolls back the mutation it
// describes.
func logActivity(
	ctx context.Context,
	tx *gorm.DB,
	repo repos.ActivityLogRepo,
	log *logger.Logger,
	action string,
	entityType string,
	entityID *uuid.UUID,
	ventureID *uuid.UUID,
	detail map[string]interface{},
) {
	entry := &types.ActivityLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		VentureID:  ventureID,
	}
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		entry.ActorEmail = rd.UserEmail
	}
	if len(detail) > 0 {
		raw, err := json.Marshal(detail)
		if err == nil {
			entry.Detail = raw
		}
	}
	if _, err := repo.Create(ctx, tx, []*types.ActivityLog{entry}); err != nil {
		log.Warn("Could not write activity log", "action", action, "error", err)
	}
}

type ActivityService interface {
	ListVentureActivity(ctx context.Context, ventureID uuid.UUID, limit int) ([]*types.ActivityLog, error)
	ListStudioActivity(ctx context.Context, limit int) ([]*types.ActivityLog, error)
}

type activityService struct {
	log             *logger.Logger
	activityLogRepo repos.ActivityLogRepo
	resolver        permissions.Resolver
}

func NewActivityService(log *logger.Logger, activityLogRepo repos.ActivityLogRepo, resolver permissions.Resolver) ActivityService {
	return &activityService{
		log:             log.With("service", "ActivityService"),
		activityLogRepo: activityLogRepo,
		resolver:        resolver,
	}
}

func (as *activityService) ListVentureActivity(ctx context.Context, ventureID uuid.UUID, limit int) ([]*types.ActivityLog, error) {
	access, err := as.resolver.Resolve(ctx, ventureID, permissions.TypeVenture)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, ErrForbidden
	}
	return as.activityLogRepo.ListRecent(ctx, nil, &ventureID, limit)
}

// ListStudioActivity returns the cross-venture feed. Studio admins only.
func (as *activityService) ListStudioActivity(ctx context.Context, limit int) ([]*types.ActivityLog, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || !rd.IsAdmin() {
		return nil, ErrForbidden
	}
	return as.activityLogRepo.ListRecent(ctx, nil, nil, limit)
}
