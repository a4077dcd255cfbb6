package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		FullName: "Test User",
		Role:     "user",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedVenture(tb testing.TB, ctx context.Context, tx *gorm.DB, name, layer string) *types.Venture {
	tb.Helper()
	v := &types.Venture{
		ID:        uuid.New(),
		Name:      name,
		Layer:     layer,
		Status:    "active",
		CreatedBy: "seed@example.com",
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed venture: %v", err)
	}
	return v
}

func SeedPermission(tb testing.TB, ctx context.Context, tx *gorm.DB, ventureID uuid.UUID, email, permissionType, accessLevel string, expiresAt *time.Time) *types.VenturePermission {
	tb.Helper()
	p := &types.VenturePermission{
		ID:             uuid.New(),
		VentureID:      ventureID,
		UserEmail:      email,
		PermissionType: permissionType,
		AccessLevel:    accessLevel,
		ExpiresAt:      expiresAt,
		GrantedBy:      "seed@example.com",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed permission: %v", err)
	}
	return p
}

func SeedKPI(tb testing.TB, ctx context.Context, tx *gorm.DB, ventureID uuid.UUID, name string, current, target float64) *types.VentureKPI {
	tb.Helper()
	k := &types.VentureKPI{
		ID:           uuid.New(),
		VentureID:    ventureID,
		KPIName:      name,
		CurrentValue: current,
		TargetValue:  target,
	}
	if err := tx.WithContext(ctx).Create(k).Error; err != nil {
		tb.Fatalf("seed kpi: %v", err)
	}
	return k
}
