package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/analytics"
	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/sse"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type KPIService interface {
	ListKPIs(ctx context.Context, ventureID uuid.UUID) ([]*types.VentureKPI, error)
	CreateKPI(ctx context.Context, kpi *types.VentureKPI) (*types.VentureKPI, error)
	UpdateKPI(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.VentureKPI, error)
	DeleteKPI(ctx context.Context, id uuid.UUID) error
	// KPITrend buckets a venture's KPI measurements by calendar period.
	KPITrend(ctx context.Context, ventureID uuid.UUID, granularity analytics.Granularity) ([]analytics.Bucket, error)
}

type kpiService struct {
	db              *gorm.DB
	log             *logger.Logger
	kpiRepo         repos.VentureKPIRepo
	activityLogRepo repos.ActivityLogRepo
	resolver        permissions.Resolver
	hub             *sse.Hub
}

func NewKPIService(
	db *gorm.DB,
	log *logger.Logger,
	kpiRepo repos.VentureKPIRepo,
	activityLogRepo repos.ActivityLogRepo,
	resolver permissions.Resolver,
	hub *sse.Hub,
) KPIService {
	return &kpiService{
		db:              db,
		log:             log.With("service", "KPIService"),
		kpiRepo:         kpiRepo,
		activityLogRepo: activityLogRepo,
		resolver:        resolver,
		hub:             hub,
	}
}

var kpiUpdatableColumns = map[string]bool{
	"kpi_name":         true,
	"kpi_type":         true,
	"current_value":    true,
	"target_value":     true,
	"unit":             true,
	"period":           true,
	"measurement_date": true,
}

func (ks *kpiService) ListKPIs(ctx context.Context, ventureID uuid.UUID) ([]*types.VentureKPI, error) {
	access, err := ks.resolver.Resolve(ctx, ventureID, permissions.TypeKPIs)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, ErrForbidden
	}
	return ks.kpiRepo.ListByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
}

func (ks *kpiService) CreateKPI(ctx context.Context, kpi *types.VentureKPI) (*types.VentureKPI, error) {
	access, err := ks.resolver.Resolve(ctx, kpi.VentureID, permissions.TypeKPIs)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}
	kpi.KPIName = strings.TrimSpace(kpi.KPIName)
	if kpi.KPIName == "" {
		return nil, fmt.Errorf("%w: kpi_name is required", ErrBadInput)
	}

	err = ks.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ks.kpiRepo.Create(ctx, tx, []*types.VentureKPI{kpi}); err != nil {
			return fmt.Errorf("failed to create kpi: %w", err)
		}
		logActivity(ctx, tx, ks.activityLogRepo, ks.log, "kpi.created", "VentureKPI", &kpi.ID, &kpi.VentureID,
			map[string]interface{}{"kpi_name": kpi.KPIName})
		return nil
	})
	if err != nil {
		return nil, err
	}
	ks.hub.Broadcast(sse.Message{Channel: sse.VentureChannel(kpi.VentureID), Event: sse.EventKPIUpdated, Data: kpi})
	return kpi, nil
}

func (ks *kpiService) UpdateKPI(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.VentureKPI, error) {
	kpis, err := ks.kpiRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch kpi: %w", err)
	}
	if len(kpis) == 0 {
		return nil, ErrNotFound
	}
	kpi := kpis[0]

	access, err := ks.resolver.Resolve(ctx, kpi.VentureID, permissions.TypeKPIs)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}

	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if kpiUpdatableColumns[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields", ErrBadInput)
	}

	err = ks.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ks.kpiRepo.UpdateFields(ctx, tx, id, filtered); err != nil {
			return fmt.Errorf("failed to update kpi: %w", err)
		}
		logActivity(ctx, tx, ks.activityLogRepo, ks.log, "kpi.updated", "VentureKPI", &id, &kpi.VentureID, filtered)
		return nil
	})
	if err != nil {
		return nil, err
	}

	kpis, err = ks.kpiRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil || len(kpis) == 0 {
		return nil, fmt.Errorf("failed to re-fetch kpi: %w", err)
	}
	ks.hub.Broadcast(sse.Message{Channel: sse.VentureChannel(kpi.VentureID), Event: sse.EventKPIUpdated, Data: kpis[0]})
	return kpis[0], nil
}

func (ks *kpiService) DeleteKPI(ctx context.Context, id uuid.UUID) error {
	kpis, err := ks.kpiRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return fmt.Errorf("failed to fetch kpi: %w", err)
	}
	if len(kpis) == 0 {
		return ErrNotFound
	}
	kpi := kpis[0]

	access, err := ks.resolver.Resolve(ctx, kpi.VentureID, permissions.TypeKPIs)
	if err != nil {
		return err
	}
	if !access.CanEdit {
		return ErrForbidden
	}

	return ks.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ks.kpiRepo.DeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("failed to delete kpi: %w", err)
		}
		logActivity(ctx, tx, ks.activityLogRepo, ks.log, "kpi.deleted", "VentureKPI", &id, &kpi.VentureID, nil)
		return nil
	})
}

func (ks *kpiService) KPITrend(ctx context.Context, ventureID uuid.UUID, granularity analytics.Granularity) ([]analytics.Bucket, error) {
	kpis, err := ks.ListKPIs(ctx, ventureID)
	if err != nil {
		return nil, err
	}
	records := make([]analytics.Record, 0, len(kpis))
	for _, kpi := range kpis {
		created := kpi.CreatedAt
		records = append(records, analytics.Record{
			MeasurementDate: kpi.MeasurementDate,
			CreatedDate:     &created,
			KPIValue:        kpi.CurrentValue,
		})
	}
	sorted := analytics.SortByDate(records)
	return analytics.GroupByPeriod(sorted, granularity), nil
}
