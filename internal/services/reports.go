package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/analytics"
	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

// PortfolioOverview is the studio dashboard payload.
type PortfolioOverview struct {
	TotalVentures  int                  `json:"total_ventures"`
	ByLayer        map[string]int       `json:"by_layer"`
	ByStatus       map[string]int       `json:"by_status"`
	KPIAttainment  float64              `json:"kpi_attainment"`
	TrackedKPIs    int                  `json:"tracked_kpis"`
	RecentActivity []*types.ActivityLog `json:"recent_activity"`
}

type FinancialReport struct {
	VentureID     uuid.UUID             `json:"venture_id"`
	Granularity   analytics.Granularity `json:"granularity"`
	Series        []analytics.Bucket    `json:"series"`
	TotalRevenue  float64               `json:"total_revenue"`
	TotalExpenses float64               `json:"total_expenses"`
	TotalProfit   float64               `json:"total_profit"`
}

type SkillsReport struct {
	Coverage []analytics.Coverage `json:"coverage"`
	Gaps     []analytics.Gap      `json:"gaps"`
	PoolSize int                  `json:"pool_size"`
}

type ReportService interface {
	PortfolioOverview(ctx context.Context) (*PortfolioOverview, error)
	FinancialReport(ctx context.Context, ventureID uuid.UUID, granularity analytics.Granularity) (*FinancialReport, error)
	SkillsReport(ctx context.Context) (*SkillsReport, error)
}

type reportService struct {
	db              *gorm.DB
	log             *logger.Logger
	ventureRepo     repos.VentureRepo
	kpiRepo         repos.VentureKPIRepo
	financialRepo   repos.FinancialRecordRepo
	talentRepo      repos.TalentRepo
	activityLogRepo repos.ActivityLogRepo
	resolver        permissions.Resolver
	talentService   TalentService
}

func NewReportService(
	db *gorm.DB,
	log *logger.Logger,
	ventureRepo repos.VentureRepo,
	kpiRepo repos.VentureKPIRepo,
	financialRepo repos.FinancialRecordRepo,
	talentRepo repos.TalentRepo,
	activityLogRepo repos.ActivityLogRepo,
	resolver permissions.Resolver,
	talentService TalentService,
) ReportService {
	return &reportService{
		db:              db,
		log:             log.With("service", "ReportService"),
		ventureRepo:     ventureRepo,
		kpiRepo:         kpiRepo,
		financialRepo:   financialRepo,
		talentRepo:      talentRepo,
		activityLogRepo: activityLogRepo,
		resolver:        resolver,
		talentService:   talentService,
	}
}

func (rs *reportService) PortfolioOverview(ctx context.Context) (*PortfolioOverview, error) {
	var (
		ventures []*types.Venture
		activity []*types.ActivityLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ventures, err = rs.ventureRepo.List(gctx, nil, repos.VentureFilter{})
		if err != nil {
			return fmt.Errorf("failed to list ventures: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		activity, err = rs.activityLogRepo.ListRecent(gctx, nil, nil, 20)
		if err != nil {
			return fmt.Errorf("failed to list activity: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &PortfolioOverview{
		TotalVentures:  len(ventures),
		ByLayer:        map[string]int{},
		ByStatus:       map[string]int{},
		RecentActivity: activity,
	}
	ids := make([]uuid.UUID, 0, len(ventures))
	for _, v := range ventures {
		overview.ByLayer[v.Layer]++
		overview.ByStatus[v.Status]++
		ids = append(ids, v.ID)
	}

	if len(ids) > 0 {
		kpis, err := rs.kpiRepo.ListByVentureIDs(ctx, nil, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to list kpis: %w", err)
		}
		overview.TrackedKPIs = len(kpis)
		overview.KPIAttainment = kpiAttainmentScore(kpis)
	}
	return overview, nil
}

func (rs *reportService) FinancialReport(ctx context.Context, ventureID uuid.UUID, granularity analytics.Granularity) (*FinancialReport, error) {
	if granularity == "" {
		granularity = analytics.GranularityMonth
	}
	if !analytics.ValidGranularity(granularity) {
		return nil, fmt.Errorf("%w: unknown granularity %q", ErrBadInput, granularity)
	}
	access, err := rs.resolver.Resolve(ctx, ventureID, permissions.TypeReports)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, ErrForbidden
	}

	records, err := rs.financialRepo.ListByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
	if err != nil {
		return nil, fmt.Errorf("failed to list financial records: %w", err)
	}

	report := &FinancialReport{
		VentureID:   ventureID,
		Granularity: granularity,
		Series:      FinancialSeries(records, granularity),
	}
	for _, bucket := range report.Series {
		report.TotalRevenue += bucket.Revenue
		report.TotalExpenses += bucket.Expenses
		report.TotalProfit += bucket.Profit
	}
	return report, nil
}

func (rs *reportService) SkillsReport(ctx context.Context) (*SkillsReport, error) {
	var (
		coverage []analytics.Coverage
		gaps     []analytics.Gap
		talents  []*types.Talent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		coverage, gaps, err = rs.talentService.Coverage(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		talents, err = rs.talentRepo.List(gctx, nil, repos.TalentFilter{})
		if err != nil {
			return fmt.Errorf("failed to list talents: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &SkillsReport{
		Coverage: coverage,
		Gaps:     gaps,
		PoolSize: len(talents),
	}, nil
}
