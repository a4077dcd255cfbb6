package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/venturedeck/venturedeck-backend/internal/repos/testutil"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

func TestVentureRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewVentureRepo(db, testutil.Logger(t))

	v := &types.Venture{
		ID:        uuid.New(),
		Name:      "Orbit Labs",
		Layer:     "startup",
		Status:    "active",
		Category:  "fintech",
		CreatedBy: "founder@example.com",
	}
	if _, err := repo.Create(ctx, tx, []*types.Venture{v}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{v.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}

	other := &types.Venture{ID: uuid.New(), Name: "Deep Forge", Layer: "deeptech", Status: "paused"}
	if _, err := repo.Create(ctx, tx, []*types.Venture{other}); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	if rows, err := repo.List(ctx, tx, VentureFilter{Layer: "startup"}); err != nil || len(rows) != 1 {
		t.Fatalf("List by layer: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.List(ctx, tx, VentureFilter{Status: "paused"}); err != nil || len(rows) != 1 {
		t.Fatalf("List by status: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.List(ctx, tx, VentureFilter{}); err != nil || len(rows) != 2 {
		t.Fatalf("List all: err=%v len=%d", err, len(rows))
	}

	if err := repo.UpdateFields(ctx, tx, v.ID, map[string]interface{}{"status": "exited"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{v.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs after update: err=%v len=%d", err, len(rows))
	}
	if rows[0].Status != "exited" {
		t.Fatalf("expected status exited, got %q", rows[0].Status)
	}

	// Ventures soft-delete; deleted rows drop out of reads.
	if err := repo.DeleteByIDs(ctx, tx, []uuid.UUID{v.ID}); err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{v.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("GetByIDs after delete: err=%v len=%d", err, len(rows))
	}
}
