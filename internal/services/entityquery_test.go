package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/requestdata"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

func TestCanonicalColumn_Aliases(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"created_date", "created_at"},
		{"updated_date", "updated_at"},
		{"kpi_name", "kpi_name"},
		{" status ", "status"},
	}
	for _, tc := range cases {
		got, err := canonicalColumn(tc.in)
		if err != nil {
			t.Fatalf("canonicalColumn(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("canonicalColumn(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type stubGrantStore struct {
	repos.VenturePermissionRepo
	grants []*types.VenturePermission
}

func (s *stubGrantStore) ListByUserEmail(ctx context.Context, tx *gorm.DB, userEmail string) ([]*types.VenturePermission, error) {
	return s.grants, nil
}

type stubResolver struct {
	access permissions.Access
}

func (s stubResolver) Resolve(ctx context.Context, ventureID uuid.UUID, permissionType string) (permissions.Access, error) {
	return s.access, nil
}

func TestCanonicalColumn_RejectsUnsafeNames(t *testing.T) {
	for _, in := range []string{"", "1abc", "name;drop table", "a b", `x"y`} {
		_, err := canonicalColumn(in)
		if err == nil {
			t.Fatalf("expected error for %q", in)
		}
		if !errors.Is(err, ErrBadInput) {
			t.Fatalf("expected ErrBadInput for %q, got %v", in, err)
		}
	}
}

func newGatedQueryService(t *testing.T, grants []*types.VenturePermission, access permissions.Access) EntityQueryService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	// db stays nil: every case here must be refused or scoped to nothing
	// before any query runs.
	return NewEntityQueryService(nil, log, repos.NewRegistry(), &stubGrantStore{grants: grants}, stubResolver{access: access})
}

func memberContext(email string) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:    uuid.New(),
		UserEmail: email,
		UserRole:  "user",
	})
}

func TestEntityQuery_RequiresSession(t *testing.T) {
	svc := newGatedQueryService(t, nil, permissions.Access{})
	_, err := svc.Execute(context.Background(), EntityQueryRequest{EntityName: "Venture", Operation: "list"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden without a session, got %v", err)
	}
}

func TestEntityQuery_SealedEntitiesRejectWrites(t *testing.T) {
	// Even a resolver that would answer full access must not matter: the
	// write path for these entities is closed outright, so a member cannot
	// mint a grant for themselves or rewrite the audit trail.
	svc := newGatedQueryService(t, nil, permissions.Access{CanView: true, CanEdit: true, CanAdmin: true})
	ctx := memberContext("member@studio.dev")

	cases := []struct {
		entity    string
		operation string
	}{
		{"VenturePermission", "create"},
		{"VenturePermission", "update"},
		{"VenturePermission", "delete"},
		{"ActivityLog", "create"},
		{"ActivityLog", "update"},
		{"ActivityLog", "delete"},
		{"VentureScore", "create"},
		{"ChatMessage", "create"},
		{"Venture", "create"},
	}
	for _, tc := range cases {
		_, err := svc.Execute(ctx, EntityQueryRequest{
			EntityName: tc.entity,
			Operation:  tc.operation,
			ID:         uuid.NewString(),
			Data: map[string]interface{}{
				"venture_id":      uuid.NewString(),
				"user_email":      "member@studio.dev",
				"permission_type": types.PermissionTypeAll,
				"access_level":    "admin",
			},
		})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("%s %s: expected ErrForbidden, got %v", tc.operation, tc.entity, err)
		}
	}
}

func TestEntityQuery_CreateGatedOnVentureAccess(t *testing.T) {
	ctx := memberContext("member@studio.dev")

	// View-only access on the venture refuses the create before any row
	// is written.
	svc := newGatedQueryService(t, nil, permissions.Access{CanView: true})
	_, err := svc.Execute(ctx, EntityQueryRequest{
		EntityName: "VentureKPI",
		Operation:  "create",
		Data:       map[string]interface{}{"venture_id": uuid.NewString(), "kpi_name": "MRR"},
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for view-only create, got %v", err)
	}

	// Venture-scoped creates must name the venture they belong to.
	svc = newGatedQueryService(t, nil, permissions.Access{CanView: true, CanEdit: true})
	_, err = svc.Execute(ctx, EntityQueryRequest{
		EntityName: "VentureKPI",
		Operation:  "create",
		Data:       map[string]interface{}{"kpi_name": "MRR"},
	})
	if !errors.Is(err, ErrBadInput) {
		t.Fatalf("expected ErrBadInput without venture_id, got %v", err)
	}
}

func TestEntityQuery_ReadsScopedToGrantedVentures(t *testing.T) {
	ctx := memberContext("member@studio.dev")
	expired := time.Now().Add(-time.Hour)

	cases := []struct {
		name   string
		entity string
		grants []*types.VenturePermission
	}{
		{"no grants at all", "VentureKPI", nil},
		{
			"expired grant",
			"VentureKPI",
			[]*types.VenturePermission{
				{VentureID: uuid.New(), UserEmail: "member@studio.dev", PermissionType: types.PermissionTypeAll, AccessLevel: "edit", ExpiresAt: &expired},
			},
		},
		{
			"grant on a different feature",
			"VentureKPI",
			[]*types.VenturePermission{
				{VentureID: uuid.New(), UserEmail: "member@studio.dev", PermissionType: permissions.TypeChat, AccessLevel: "edit"},
			},
		},
		{
			// Listing other people's grants takes admin on the venture,
			// not just view.
			"view grant against the grant table",
			"VenturePermission",
			[]*types.VenturePermission{
				{VentureID: uuid.New(), UserEmail: "member@studio.dev", PermissionType: types.PermissionTypeAll, AccessLevel: "view"},
			},
		},
		{"studio-wide activity feed", "ActivityLog", nil},
	}
	for _, tc := range cases {
		svc := newGatedQueryService(t, tc.grants, permissions.Access{})
		result, err := svc.Execute(ctx, EntityQueryRequest{EntityName: tc.entity, Operation: "list"})
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if n := resultLen(t, result); n != 0 {
			t.Fatalf("%s: expected no visible rows, got %d", tc.name, n)
		}
	}
}

func resultLen(t *testing.T, result interface{}) int {
	t.Helper()
	switch rows := result.(type) {
	case []*types.VentureKPI:
		return len(rows)
	case []*types.VenturePermission:
		return len(rows)
	case []*types.ActivityLog:
		return len(rows)
	default:
		t.Fatalf("unexpected result type %T", result)
		return 0
	}
}
