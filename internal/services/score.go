package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type ScoreService interface {
	// ComputeScore derives a fresh composite health score from the venture's
	// KPI attainment and financial position and stores it.
	ComputeScore(ctx context.Context, ventureID uuid.UUID) (*types.VentureScore, error)
	GetLatestScore(ctx context.Context, ventureID uuid.UUID) (*types.VentureScore, error)
}

type scoreService struct {
	db            *gorm.DB
	log           *logger.Logger
	scoreRepo     repos.VentureScoreRepo
	kpiRepo       repos.VentureKPIRepo
	financialRepo repos.FinancialRecordRepo
	resolver      permissions.Resolver
}

func NewScoreService(
	db *gorm.DB,
	log *logger.Logger,
	scoreRepo repos.VentureScoreRepo,
	kpiRepo repos.VentureKPIRepo,
	financialRepo repos.FinancialRecordRepo,
	resolver permissions.Resolver,
) ScoreService {
	return &scoreService{
		db:            db,
		log:           log.With("service", "ScoreService"),
		scoreRepo:     scoreRepo,
		kpiRepo:       kpiRepo,
		financialRepo: financialRepo,
		resolver:      resolver,
	}
}

func (ss *scoreService) ComputeScore(ctx context.Context, ventureID uuid.UUID) (*types.VentureScore, error) {
	access, err := ss.resolver.Resolve(ctx, ventureID, permissions.TypeInsights)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, ErrForbidden
	}

	kpis, err := ss.kpiRepo.ListByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
	if err != nil {
		return nil, fmt.Errorf("failed to list kpis: %w", err)
	}
	records, err := ss.financialRepo.ListByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
	if err != nil {
		return nil, fmt.Errorf("failed to list financial records: %w", err)
	}

	kpiScore := kpiAttainmentScore(kpis)
	finScore := financialHealthScore(records)
	composite := 0.6*kpiScore + 0.4*finScore

	dims, err := json.Marshal(map[string]float64{
		"kpi_attainment":   kpiScore,
		"financial_health": finScore,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score dimensions: %w", err)
	}

	score := &types.VentureScore{
		VentureID:  ventureID,
		Composite:  composite,
		Dimensions: dims,
	}
	if _, err := ss.scoreRepo.Create(ctx, nil, []*types.VentureScore{score}); err != nil {
		return nil, fmt.Errorf("failed to store score: %w", err)
	}
	return score, nil
}

func (ss *scoreService) GetLatestScore(ctx context.Context, ventureID uuid.UUID) (*types.VentureScore, error) {
	access, err := ss.resolver.Resolve(ctx, ventureID, permissions.TypeInsights)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, ErrForbidden
	}
	score, err := ss.scoreRepo.GetLatestByVentureID(ctx, nil, ventureID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest score: %w", err)
	}
	if score == nil {
		return nil, ErrNotFound
	}
	return score, nil
}

// kpiAttainmentScore is mean(current/target) over KPIs with a positive
// target, capped at 1 per KPI, scaled to 0..100. No scoreable KPIs gives a
// neutral 50.
func kpiAttainmentScore(kpis []*types.VentureKPI) float64 {
	var sum float64
	var n int
	for _, kpi := range kpis {
		if kpi.TargetValue <= 0 {
			continue
		}
		ratio := kpi.CurrentValue / kpi.TargetValue
		if ratio > 1 {
			ratio = 1
		}
		if ratio < 0 {
			ratio = 0
		}
		sum += ratio
		n++
	}
	if n == 0 {
		return 50
	}
	return sum / float64(n) * 100
}

// financialHealthScore looks at the profit margin across all records:
// margin <= -1 maps to 0, margin >= +1 maps to 100, linear in between.
// No revenue or expenses gives a neutral 50.
func financialHealthScore(records []*types.FinancialRecord) float64 {
	var revenue, expenses float64
	for _, r := range records {
		revenue += r.Revenue
		expenses += r.Expenses
	}
	total := revenue + expenses
	if total == 0 {
		return 50
	}
	margin := (revenue - expenses) / total
	return (margin + 1) / 2 * 100
}
