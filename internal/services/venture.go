package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/requestdata"
	"github.com/venturedeck/venturedeck-backend/internal/sse"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type VentureService interface {
	CreateVenture(ctx context.Context, venture *types.Venture) (*types.Venture, error)
	GetVenture(ctx context.Context, id uuid.UUID) (*types.Venture, permissions.Access, error)
	ListVentures(ctx context.Context, filter repos.VentureFilter) ([]*types.Venture, error)
	UpdateVenture(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.Venture, error)
	DeleteVenture(ctx context.Context, id uuid.UUID) error
	GetAccess(ctx context.Context, id uuid.UUID, permissionType string) (permissions.Access, error)
}

type ventureService struct {
	db              *gorm.DB
	log             *logger.Logger
	ventureRepo     repos.VentureRepo
	permissionRepo  repos.VenturePermissionRepo
	activityLogRepo repos.ActivityLogRepo
	resolver        permissions.Resolver
	avatarService   AvatarService
	hub             *sse.Hub
}

func NewVentureService(
	db *gorm.DB,
	log *logger.Logger,
	ventureRepo repos.VentureRepo,
	permissionRepo repos.VenturePermissionRepo,
	activityLogRepo repos.ActivityLogRepo,
	resolver permissions.Resolver,
	avatarService AvatarService,
	hub *sse.Hub,
) VentureService {
	return &ventureService{
		db:              db,
		log:             log.With("service", "VentureService"),
		ventureRepo:     ventureRepo,
		permissionRepo:  permissionRepo,
		activityLogRepo: activityLogRepo,
		resolver:        resolver,
		avatarService:   avatarService,
		hub:             hub,
	}
}

// Only these columns may be patched through UpdateVenture.
var ventureUpdatableColumns = map[string]bool{
	"name":        true,
	"description": true,
	"layer":       true,
	"status":      true,
	"category":    true,
	"tags":        true,
	"team_size":   true,
	"website":     true,
}

func (vs *ventureService) CreateVenture(ctx context.Context, venture *types.Venture) (*types.Venture, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrForbidden
	}

	venture.Name = strings.TrimSpace(venture.Name)
	if venture.Name == "" {
		return nil, fmt.Errorf("%w: venture name is required", ErrBadInput)
	}
	if venture.Layer != "" && !types.ValidLayer(venture.Layer) {
		return nil, fmt.Errorf("%w: unknown layer %q", ErrBadInput, venture.Layer)
	}
	if venture.Layer == "" {
		venture.Layer = types.LayerStartup
	}
	if venture.Status == "" {
		venture.Status = "active"
	}
	venture.CreatedBy = rd.UserEmail

	err := vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		venture.ID = uuid.New()
		if vs.avatarService != nil {
			if err := vs.avatarService.CreateAndUploadVentureLogo(ctx, tx, venture); err != nil {
				vs.log.Warn("Could not create venture logo", "error", err, "venture", venture.Name)
			}
		}
		if _, err := vs.ventureRepo.Create(ctx, tx, []*types.Venture{venture}); err != nil {
			return fmt.Errorf("failed to create venture: %w", err)
		}
		// Founding grant: the creator administers everything on their venture.
		founding := &types.VenturePermission{
			VentureID:      venture.ID,
			UserEmail:      rd.UserEmail,
			PermissionType: types.PermissionTypeAll,
			AccessLevel:    types.AccessAdmin,
			GrantedBy:      rd.UserEmail,
		}
		if _, err := vs.permissionRepo.Create(ctx, tx, []*types.VenturePermission{founding}); err != nil {
			return fmt.Errorf("failed to create founding permission: %w", err)
		}
		logActivity(ctx, tx, vs.activityLogRepo, vs.log, "venture.created", "Venture", &venture.ID, &venture.ID,
			map[string]interface{}{"name": venture.Name, "layer": venture.Layer})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return venture, nil
}

func (vs *ventureService) GetVenture(ctx context.Context, id uuid.UUID) (*types.Venture, permissions.Access, error) {
	access, err := vs.resolver.Resolve(ctx, id, permissions.TypeVenture)
	if err != nil {
		return nil, permissions.Access{}, err
	}
	if !access.CanView {
		return nil, access, ErrForbidden
	}
	ventures, err := vs.ventureRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, access, fmt.Errorf("failed to fetch venture: %w", err)
	}
	if len(ventures) == 0 {
		return nil, access, ErrNotFound
	}
	return ventures[0], access, nil
}

func (vs *ventureService) ListVentures(ctx context.Context, filter repos.VentureFilter) ([]*types.Venture, error) {
	if filter.Layer != "" && !types.ValidLayer(filter.Layer) {
		return nil, fmt.Errorf("%w: unknown layer %q", ErrBadInput, filter.Layer)
	}
	return vs.ventureRepo.List(ctx, nil, filter)
}

func (vs *ventureService) UpdateVenture(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.Venture, error) {
	access, err := vs.resolver.Resolve(ctx, id, permissions.TypeVenture)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}

	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if ventureUpdatableColumns[k] {
			filtered[k] = v
		}
	}
	if layer, ok := filtered["layer"].(string); ok && !types.ValidLayer(layer) {
		return nil, fmt.Errorf("%w: unknown layer %q", ErrBadInput, layer)
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields", ErrBadInput)
	}

	err = vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := vs.ventureRepo.UpdateFields(ctx, tx, id, filtered); err != nil {
			return fmt.Errorf("failed to update venture: %w", err)
		}
		logActivity(ctx, tx, vs.activityLogRepo, vs.log, "venture.updated", "Venture", &id, &id, filtered)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ventures, err := vs.ventureRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to re-fetch venture: %w", err)
	}
	if len(ventures) == 0 {
		return nil, ErrNotFound
	}
	vs.publish(id, sse.EventVentureUpdated, ventures[0])
	return ventures[0], nil
}

func (vs *ventureService) DeleteVenture(ctx context.Context, id uuid.UUID) error {
	access, err := vs.resolver.Resolve(ctx, id, permissions.TypeVenture)
	if err != nil {
		return err
	}
	if !access.CanAdmin {
		return ErrForbidden
	}
	return vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := vs.ventureRepo.DeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("failed to delete venture: %w", err)
		}
		logActivity(ctx, tx, vs.activityLogRepo, vs.log, "venture.deleted", "Venture", &id, &id, nil)
		return nil
	})
}

func (vs *ventureService) GetAccess(ctx context.Context, id uuid.UUID, permissionType string) (permissions.Access, error) {
	if permissionType == "" {
		permissionType = permissions.TypeVenture
	}
	return vs.resolver.Resolve(ctx, id, permissionType)
}

func (vs *ventureService) publish(ventureID uuid.UUID, event sse.Event, payload interface{}) {
	if vs.hub == nil {
		return
	}
	vs.hub.Broadcast(sse.Message{Channel: sse.VentureChannel(ventureID), Event: event, Data: payload})
}
