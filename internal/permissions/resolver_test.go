package permissions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/requestdata"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type fakePermissionRepo struct {
	grants     []*types.VenturePermission
	err        error
	calls      int
	lastTypes  []string
	lastEmail  string
	lastVentID uuid.UUID
}

func (f *fakePermissionRepo) Create(ctx context.Context, tx *gorm.DB, grants []*types.VenturePermission) ([]*types.VenturePermission, error) {
	return grants, nil
}
func (f *fakePermissionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.VenturePermission, error) {
	return nil, nil
}
func (f *fakePermissionRepo) ListForUser(ctx context.Context, tx *gorm.DB, ventureID uuid.UUID, userEmail string, permissionTypes []string) ([]*types.VenturePermission, error) {
	f.calls++
	f.lastVentID = ventureID
	f.lastEmail = userEmail
	f.lastTypes = permissionTypes
	return f.grants, f.err
}
func (f *fakePermissionRepo) ListByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.VenturePermission, error) {
	return nil, nil
}
func (f *fakePermissionRepo) ListByUserEmail(ctx context.Context, tx *gorm.DB, userEmail string) ([]*types.VenturePermission, error) {
	return nil, nil
}
func (f *fakePermissionRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	return nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func ctxWithUser(email, role string) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:    uuid.New(),
		UserEmail: email,
		UserRole:  role,
	})
}

func grant(level string, expiresAt *time.Time) *types.VenturePermission {
	return &types.VenturePermission{
		ID:             uuid.New(),
		VentureID:      uuid.New(),
		UserEmail:      "member@studio.dev",
		PermissionType: "chat",
		AccessLevel:    level,
		ExpiresAt:      expiresAt,
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestResolveAdminOverrideSkipsGrantFetch(t *testing.T) {
	repo := &fakePermissionRepo{err: errors.New("must not be called")}
	r := NewResolver(testLogger(t), repo)

	access, err := r.Resolve(ctxWithUser("boss@studio.dev", types.RoleAdmin), uuid.New(), "chat")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !access.CanView || !access.CanEdit || !access.CanAdmin {
		t.Fatalf("admin override: expected full access, got %+v", access)
	}
	if repo.calls != 0 {
		t.Fatalf("admin override must short-circuit the grant fetch, got %d calls", repo.calls)
	}
}

func TestResolveQueriesRequestedTypeAndSentinel(t *testing.T) {
	repo := &fakePermissionRepo{}
	r := NewResolver(testLogger(t), repo)
	ventureID := uuid.New()

	if _, err := r.Resolve(ctxWithUser("member@studio.dev", types.RoleUser), ventureID, "documents"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one grant fetch, got %d", repo.calls)
	}
	if repo.lastVentID != ventureID || repo.lastEmail != "member@studio.dev" {
		t.Fatalf("wrong fetch scope: venture=%s email=%s", repo.lastVentID, repo.lastEmail)
	}
	if len(repo.lastTypes) != 2 || repo.lastTypes[0] != "documents" || repo.lastTypes[1] != types.PermissionTypeAll {
		t.Fatalf("expected [documents all], got %v", repo.lastTypes)
	}
}

func TestResolveUnauthenticatedDeniesAll(t *testing.T) {
	repo := &fakePermissionRepo{grants: []*types.VenturePermission{grant(types.AccessAdmin, nil)}}
	r := NewResolver(testLogger(t), repo)

	access, err := r.Resolve(context.Background(), uuid.New(), "chat")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if access.CanView || access.CanEdit || access.CanAdmin {
		t.Fatalf("unauthenticated context must deny all, got %+v", access)
	}
	if repo.calls != 0 {
		t.Fatalf("unauthenticated context must not hit the store")
	}
}

func TestResolveGrants(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := timePtr(now.Add(-time.Hour))
	future := timePtr(now.Add(time.Hour))

	cases := []struct {
		name   string
		grants []*types.VenturePermission
		want   Access
	}{
		{
			name:   "no_grants",
			grants: nil,
			want:   Access{},
		},
		{
			name:   "view_grant",
			grants: []*types.VenturePermission{grant(types.AccessView, nil)},
			want:   Access{CanView: true},
		},
		{
			name:   "edit_grant",
			grants: []*types.VenturePermission{grant(types.AccessEdit, nil)},
			want:   Access{CanView: true, CanEdit: true},
		},
		{
			name:   "admin_grant_implies_all",
			grants: []*types.VenturePermission{grant(types.AccessAdmin, nil)},
			want:   Access{CanView: true, CanEdit: true, CanAdmin: true},
		},
		{
			name:   "expired_edit_grant_excluded",
			grants: []*types.VenturePermission{grant(types.AccessEdit, past)},
			want:   Access{},
		},
		{
			name:   "future_expiry_counts",
			grants: []*types.VenturePermission{grant(types.AccessEdit, future)},
			want:   Access{CanView: true, CanEdit: true},
		},
		{
			name: "expiry_exactly_now_is_expired",
			grants: []*types.VenturePermission{
				grant(types.AccessAdmin, timePtr(now)),
			},
			want: Access{},
		},
		{
			name: "max_level_wins_across_grants",
			grants: []*types.VenturePermission{
				grant(types.AccessView, nil),
				grant(types.AccessAdmin, past),
				grant(types.AccessEdit, future),
			},
			want: Access{CanView: true, CanEdit: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveGrants(tc.grants, now)
			if got != tc.want {
				t.Fatalf("ResolveGrants=%+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestResolveGrantsDoesNotMutate(t *testing.T) {
	now := time.Now()
	expired := grant(types.AccessAdmin, timePtr(now.Add(-time.Minute)))
	before := *expired

	_ = ResolveGrants([]*types.VenturePermission{expired}, now)

	if *expired != before {
		t.Fatalf("ResolveGrants mutated a grant: %+v", expired)
	}
}
