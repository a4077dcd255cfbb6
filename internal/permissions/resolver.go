package permissions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/requestdata"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

// Access is the resolved capability set for one user on one venture feature.
type Access struct {
	CanView  bool `json:"can_view"`
	CanEdit  bool `json:"can_edit"`
	CanAdmin bool `json:"can_admin"`
}

var fullAccess = Access{CanView: true, CanEdit: true, CanAdmin: true}

type Resolver interface {
	// Resolve computes access for the authenticated user in ctx. It is
	// read-only: expired grants are ignored, never deleted.
	Resolve(ctx context.Context, ventureID uuid.UUID, permissionType string) (Access, error)
}

type resolver struct {
	log            *logger.Logger
	permissionRepo repos.VenturePermissionRepo
	now            func() time.Time
}

func NewResolver(log *logger.Logger, permissionRepo repos.VenturePermissionRepo) Resolver {
	return &resolver{
		log:            log.With("service", "PermissionResolver"),
		permissionRepo: permissionRepo,
		now:            time.Now,
	}
}

func (r *resolver) Resolve(ctx context.Context, ventureID uuid.UUID, permissionType string) (Access, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserEmail == "" {
		// No identity resolved yet: deny everything rather than error.
		return Access{}, nil
	}
	if rd.IsAdmin() {
		return fullAccess, nil
	}

	grants, err := r.permissionRepo.ListForUser(ctx, nil, ventureID, rd.UserEmail,
		[]string{permissionType, types.PermissionTypeAll})
	if err != nil {
		return Access{}, fmt.Errorf("list permission grants: %w", err)
	}
	return ResolveGrants(grants, r.now()), nil
}

// ResolveGrants reduces a grant list to an Access at evaluation time now.
// The hierarchy is monotonic (admin implies edit implies view), so a single
// max-level pass over active grants yields all three booleans.
func ResolveGrants(grants []*types.VenturePermission, now time.Time) Access {
	level := 0
	for _, grant := range grants {
		if grant == nil || !grant.Active(now) {
			continue
		}
		grantLevel := 1
		switch grant.AccessLevel {
		case types.AccessEdit:
			grantLevel = 2
		case types.AccessAdmin:
			grantLevel = 3
		}
		if grantLevel > level {
			level = grantLevel
		}
	}
	return Access{
		CanView:  level >= 1,
		CanEdit:  level >= 2,
		CanAdmin: level >= 3,
	}
}
