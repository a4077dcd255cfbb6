package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/venturedeck/venturedeck-backend/internal/repos/testutil"
)

func TestVenturePermissionRepo_ListForUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewVenturePermissionRepo(db, testutil.Logger(t))

	venture := testutil.SeedVenture(t, ctx, tx, "Orbit Labs", "startup")
	email := "member@example.com"

	expired := time.Now().Add(-time.Hour)
	testutil.SeedPermission(t, ctx, tx, venture.ID, email, "all", "view", nil)
	testutil.SeedPermission(t, ctx, tx, venture.ID, email, "kpis", "edit", &expired)
	testutil.SeedPermission(t, ctx, tx, venture.ID, "someone@else.com", "kpis", "admin", nil)

	// Both of the member's grants come back; expiry filtering is the
	// resolver's concern.
	rows, err := repo.ListForUser(ctx, tx, venture.ID, email, []string{"all", "kpis"})
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 grants, got %d", len(rows))
	}

	rows, err = repo.ListForUser(ctx, tx, venture.ID, email, []string{"financials"})
	if err != nil {
		t.Fatalf("ListForUser with unmatched type: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no grants for unmatched type, got %d", len(rows))
	}
}

func TestVenturePermissionRepo_ListByVentureIDsAndDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewVenturePermissionRepo(db, testutil.Logger(t))

	ventureA := testutil.SeedVenture(t, ctx, tx, "Orbit Labs", "startup")
	ventureB := testutil.SeedVenture(t, ctx, tx, "Deep Forge", "deeptech")

	grant := testutil.SeedPermission(t, ctx, tx, ventureA.ID, "a@example.com", "all", "admin", nil)
	testutil.SeedPermission(t, ctx, tx, ventureB.ID, "b@example.com", "all", "view", nil)

	rows, err := repo.ListByVentureIDs(ctx, tx, []uuid.UUID{ventureA.ID})
	if err != nil {
		t.Fatalf("ListByVentureIDs: %v", err)
	}
	if len(rows) != 1 || rows[0].UserEmail != "a@example.com" {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	if err := repo.DeleteByIDs(ctx, tx, []uuid.UUID{grant.ID}); err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{grant.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("GetByIDs after delete: err=%v len=%d", err, len(rows))
	}
}
