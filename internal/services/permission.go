package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/clients/sendgrid"
	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/requestdata"
	"github.com/venturedeck/venturedeck-backend/internal/sse"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type PermissionService interface {
	GrantPermission(ctx context.Context, grant *types.VenturePermission) (*types.VenturePermission, error)
	ListPermissions(ctx context.Context, ventureID uuid.UUID) ([]*types.VenturePermission, error)
	RevokePermission(ctx context.Context, id uuid.UUID) error
}

type permissionService struct {
	db              *gorm.DB
	log             *logger.Logger
	permissionRepo  repos.VenturePermissionRepo
	ventureRepo     repos.VentureRepo
	activityLogRepo repos.ActivityLogRepo
	resolver        permissions.Resolver
	mailClient      sendgrid.Client
	hub             *sse.Hub
}

func NewPermissionService(
	db *gorm.DB,
	log *logger.Logger,
	permissionRepo repos.VenturePermissionRepo,
	ventureRepo repos.VentureRepo,
	activityLogRepo repos.ActivityLogRepo,
	resolver permissions.Resolver,
	mailClient sendgrid.Client,
	hub *sse.Hub,
) PermissionService {
	return &permissionService{
		db:              db,
		log:             log.With("service", "PermissionService"),
		permissionRepo:  permissionRepo,
		ventureRepo:     ventureRepo,
		activityLogRepo: activityLogRepo,
		resolver:        resolver,
		mailClient:      mailClient,
		hub:             hub,
	}
}

func validAccessLevel(level string) bool {
	switch level {
	case types.AccessView, types.AccessEdit, types.AccessAdmin:
		return true
	}
	return false
}

func validPermissionType(pt string) bool {
	switch pt {
	case types.PermissionTypeAll,
		permissions.TypeVenture, permissions.TypeKPIs, permissions.TypeFinancials,
		permissions.TypeDocuments, permissions.TypeChat, permissions.TypeComments,
		permissions.TypeTasks, permissions.TypeInsights, permissions.TypeReports:
		return true
	}
	return false
}

func (ps *permissionService) GrantPermission(ctx context.Context, grant *types.VenturePermission) (*types.VenturePermission, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrForbidden
	}

	grant.UserEmail = strings.ToLower(strings.TrimSpace(grant.UserEmail))
	grant.PermissionType = strings.TrimSpace(grant.PermissionType)
	if grant.UserEmail == "" {
		return nil, fmt.Errorf("%w: user_email is required", ErrBadInput)
	}
	if grant.PermissionType == "" {
		grant.PermissionType = types.PermissionTypeAll
	}
	if !validPermissionType(grant.PermissionType) {
		return nil, fmt.Errorf("%w: unknown permission_type %q", ErrBadInput, grant.PermissionType)
	}
	if grant.AccessLevel == "" {
		grant.AccessLevel = types.AccessView
	}
	if !validAccessLevel(grant.AccessLevel) {
		return nil, fmt.Errorf("%w: unknown access_level %q", ErrBadInput, grant.AccessLevel)
	}
	if grant.ExpiresAt != nil && !grant.ExpiresAt.After(time.Now()) {
		return nil, fmt.Errorf("%w: expires_at must be in the future", ErrBadInput)
	}

	// Granting requires admin on the venture for the gate being shared.
	access, err := ps.resolver.Resolve(ctx, grant.VentureID, grant.PermissionType)
	if err != nil {
		return nil, err
	}
	if !access.CanAdmin {
		return nil, ErrForbidden
	}

	ventures, err := ps.ventureRepo.GetByIDs(ctx, nil, []uuid.UUID{grant.VentureID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch venture: %w", err)
	}
	if len(ventures) == 0 {
		return nil, ErrNotFound
	}
	venture := ventures[0]

	grant.GrantedBy = rd.UserEmail
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ps.permissionRepo.Create(ctx, tx, []*types.VenturePermission{grant}); err != nil {
			return fmt.Errorf("failed to create permission: %w", err)
		}
		logActivity(ctx, tx, ps.activityLogRepo, ps.log, "permission.granted", "VenturePermission", &grant.ID, &grant.VentureID,
			map[string]interface{}{
				"user_email":      grant.UserEmail,
				"permission_type": grant.PermissionType,
				"access_level":    grant.AccessLevel,
			})
		return nil
	})
	if err != nil {
		return nil, err
	}

	ps.hub.Broadcast(sse.Message{Channel: sse.VentureChannel(grant.VentureID), Event: sse.EventPermissionGranted, Data: grant})
	ps.sendInviteMail(ctx, venture, grant)
	return grant, nil
}

// sendInviteMail is best-effort: a mail failure never undoes the grant.
func (ps *permissionService) sendInviteMail(ctx context.Context, venture *types.Venture, grant *types.VenturePermission) {
	if ps.mailClient == nil {
		return
	}
	subject := fmt.Sprintf("You now have %s access to %s", grant.AccessLevel, venture.Name)
	body := fmt.Sprintf(
		"%s shared the venture %q with you (%s access, %s).\n\nLog in to your dashboard to take a look.",
		grant.GrantedBy, venture.Name, grant.AccessLevel, grant.PermissionType,
	)
	if _, err := ps.mailClient.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: grant.UserEmail}},
		Subject: subject,
		Text:    body,
	}); err != nil {
		ps.log.Warn("Could not send permission invite mail", "to", grant.UserEmail, "error", err)
	}
}

func (ps *permissionService) ListPermissions(ctx context.Context, ventureID uuid.UUID) ([]*types.VenturePermission, error) {
	access, err := ps.resolver.Resolve(ctx, ventureID, permissions.TypeVenture)
	if err != nil {
		return nil, err
	}
	if !access.CanAdmin {
		return nil, ErrForbidden
	}
	return ps.permissionRepo.ListByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
}

func (ps *permissionService) RevokePermission(ctx context.Context, id uuid.UUID) error {
	grants, err := ps.permissionRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return fmt.Errorf("failed to fetch permission: %w", err)
	}
	if len(grants) == 0 {
		return ErrNotFound
	}
	grant := grants[0]

	access, err := ps.resolver.Resolve(ctx, grant.VentureID, permissions.TypeVenture)
	if err != nil {
		return err
	}
	if !access.CanAdmin {
		return ErrForbidden
	}

	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.permissionRepo.DeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("failed to revoke permission: %w", err)
		}
		logActivity(ctx, tx, ps.activityLogRepo, ps.log, "permission.revoked", "VenturePermission", &id, &grant.VentureID,
			map[string]interface{}{"user_email": grant.UserEmail})
		return nil
	})
}
