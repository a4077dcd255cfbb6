package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/analytics"
	"github.com/venturedeck/venturedeck-backend/internal/benchmarks"
	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/requestdata"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type InsightService interface {
	SuggestKPIs(ctx context.Context, ventureID uuid.UUID) (map[string]interface{}, error)
	ProjectFinancials(ctx context.Context, ventureID uuid.UUID, periods int) (map[string]interface{}, error)
	CompareBenchmarks(ctx context.Context, ventureID uuid.UUID) (map[string]interface{}, error)
	AnalyzeSkills(ctx context.Context) (map[string]interface{}, error)
}

type insightService struct {
	db            *gorm.DB
	log           *logger.Logger
	ventureRepo   repos.VentureRepo
	kpiRepo       repos.VentureKPIRepo
	financialRepo repos.FinancialRecordRepo
	aiCallLogRepo repos.AICallLogRepo
	resolver      permissions.Resolver
	llmClient     LLMClient
	talentService TalentService
	catalog       *benchmarks.Catalog
}

func NewInsightService(
	db *gorm.DB,
	log *logger.Logger,
	ventureRepo repos.VentureRepo,
	kpiRepo repos.VentureKPIRepo,
	financialRepo repos.FinancialRecordRepo,
	aiCallLogRepo repos.AICallLogRepo,
	resolver permissions.Resolver,
	llmClient LLMClient,
	talentService TalentService,
	catalog *benchmarks.Catalog,
) InsightService {
	return &insightService{
		db:            db,
		log:           log.With("service", "InsightService"),
		ventureRepo:   ventureRepo,
		kpiRepo:       kpiRepo,
		financialRepo: financialRepo,
		aiCallLogRepo: aiCallLogRepo,
		resolver:      resolver,
		llmClient:     llmClient,
		talentService: talentService,
		catalog:       catalog,
	}
}

func (is *insightService) loadVenture(ctx context.Context, ventureID uuid.UUID) (*types.Venture, error) {
	access, err := is.resolver.Resolve(ctx, ventureID, permissions.TypeInsights)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, ErrForbidden
	}
	ventures, err := is.ventureRepo.GetByIDs(ctx, nil, []uuid.UUID{ventureID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch venture: %w", err)
	}
	if len(ventures) == 0 {
		return nil, ErrNotFound
	}
	return ventures[0], nil
}

func (is *insightService) generate(ctx context.Context, ventureID *uuid.UUID, feature, system, user, schemaName string, schema map[string]interface{}) (map[string]interface{}, error) {
	start := time.Now()
	output, err := is.llmClient.GenerateJSON(ctx, system, user, schemaName, schema)
	is.auditCall(ctx, ventureID, feature, err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", feature, err)
	}
	return output, nil
}

func (is *insightService) auditCall(ctx context.Context, ventureID *uuid.UUID, feature string, callErr error, took time.Duration) {
	entry := &types.AICallLog{
		VentureID:  ventureID,
		Feature:    feature,
		Model:      is.llmClient.Model(),
		Success:    callErr == nil,
		DurationMS: took.Milliseconds(),
	}
	if callErr != nil {
		entry.Error = callErr.Error()
	}
	if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
		userID := rd.UserID
		entry.UserID = &userID
	}
	if _, err := is.aiCallLogRepo.Create(ctx, nil, []*types.AICallLog{entry}); err != nil {
		is.log.Warn("Could not write AI call log", "feature", feature, "error", err)
	}
}

func (is *insightService) SuggestKPIs(ctx context.Context, ventureID uuid.UUID) (map[string]interface{}, error) {
	venture, err := is.loadVenture(ctx, ventureID)
	if err != nil {
		return nil, err
	}
	existing, err := is.kpiRepo.ListByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
	if err != nil {
		return nil, fmt.Errorf("failed to list kpis: %w", err)
	}
	names := make([]string, 0, len(existing))
	for _, kpi := range existing {
		names = append(names, kpi.KPIName)
	}

	schema := map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"suggestions"},
		"properties": map[string]interface{}{
			"suggestions": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"name", "kpi_type", "target_value", "unit", "rationale"},
					"properties": map[string]interface{}{
						"name":         map[string]interface{}{"type": "string"},
						"kpi_type":     map[string]interface{}{"type": "string"},
						"target_value": map[string]interface{}{"type": "number"},
						"unit":         map[string]interface{}{"type": "string"},
						"rationale":    map[string]interface{}{"type": "string"},
					},
				},
			},
		},
	}

	system := "You advise venture studio operators on which KPIs to track. Suggest 3 to 5 KPIs, skipping any already tracked."
	user := fmt.Sprintf(
		"Venture: %s\nLayer: %s\nCategory: %s\nDescription: %s\nAlready tracked: %s",
		venture.Name, venture.Layer, venture.Category, venture.Description, strings.Join(names, ", "),
	)
	return is.generate(ctx, &ventureID, "kpi_suggestions", system, user, "kpi_suggestions", schema)
}

func (is *insightService) ProjectFinancials(ctx context.Context, ventureID uuid.UUID, periods int) (map[string]interface{}, error) {
	if periods <= 0 {
		periods = 6
	}
	if periods > 24 {
		return nil, fmt.Errorf("%w: at most 24 projection periods", ErrBadInput)
	}
	venture, err := is.loadVenture(ctx, ventureID)
	if err != nil {
		return nil, err
	}
	records, err := is.financialRepo.ListByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
	if err != nil {
		return nil, fmt.Errorf("failed to list financial records: %w", err)
	}

	history := FinancialSeries(records, analytics.GranularityMonth)
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}

	schema := map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"periods", "summary"},
		"properties": map[string]interface{}{
			"periods": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"period", "revenue", "expenses"},
					"properties": map[string]interface{}{
						"period":   map[string]interface{}{"type": "string"},
						"revenue":  map[string]interface{}{"type": "number"},
						"expenses": map[string]interface{}{"type": "number"},
					},
				},
			},
			"summary": map[string]interface{}{"type": "string"},
		},
	}

	system := "You forecast venture financials. Extrapolate from the monthly history given; be conservative and explain your assumptions in the summary."
	user := fmt.Sprintf(
		"Venture: %s (%s)\nMonthly history (revenue/expenses/profit per period): %s\nForecast the next %d months.",
		venture.Name, venture.Layer, string(historyJSON), periods,
	)
	return is.generate(ctx, &ventureID, "financial_projection", system, user, "financial_projection", schema)
}

func (is *insightService) CompareBenchmarks(ctx context.Context, ventureID uuid.UUID) (map[string]interface{}, error) {
	venture, err := is.loadVenture(ctx, ventureID)
	if err != nil {
		return nil, err
	}
	refs := is.catalog.ForLayer(venture.Layer)
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no benchmarks defined for layer %q", ErrBadInput, venture.Layer)
	}
	kpis, err := is.kpiRepo.ListByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
	if err != nil {
		return nil, fmt.Errorf("failed to list kpis: %w", err)
	}

	refsJSON, err := json.Marshal(refs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal benchmarks: %w", err)
	}
	type kpiSnapshot struct {
		Name    string  `json:"name"`
		Current float64 `json:"current"`
		Target  float64 `json:"target"`
		Unit    string  `json:"unit"`
	}
	snapshots := make([]kpiSnapshot, 0, len(kpis))
	for _, kpi := range kpis {
		snapshots = append(snapshots, kpiSnapshot{Name: kpi.KPIName, Current: kpi.CurrentValue, Target: kpi.TargetValue, Unit: kpi.Unit})
	}
	kpisJSON, err := json.Marshal(snapshots)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal kpi snapshots: %w", err)
	}

	schema := map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"comparisons", "commentary"},
		"properties": map[string]interface{}{
			"comparisons": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"kpi_name", "venture_value", "benchmark_median", "position"},
					"properties": map[string]interface{}{
						"kpi_name":         map[string]interface{}{"type": "string"},
						"venture_value":    map[string]interface{}{"type": "number"},
						"benchmark_median": map[string]interface{}{"type": "number"},
						"position":         map[string]interface{}{"type": "string", "enum": []string{"below_median", "above_median", "top_quartile", "not_tracked"}},
					},
				},
			},
			"commentary": map[string]interface{}{"type": "string"},
		},
	}

	system := "You compare a venture's KPI values against its layer benchmarks and write short, direct commentary for studio operators."
	user := fmt.Sprintf(
		"Venture: %s\nLayer: %s\nLayer benchmarks: %s\nTracked KPIs: %s",
		venture.Name, venture.Layer, string(refsJSON), string(kpisJSON),
	)
	return is.generate(ctx, &ventureID, "benchmark_comparison", system, user, "benchmark_comparison", schema)
}

func (is *insightService) AnalyzeSkills(ctx context.Context) (map[string]interface{}, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrForbidden
	}
	coverage, gaps, err := is.talentService.Coverage(ctx)
	if err != nil {
		return nil, err
	}
	coverageJSON, err := json.Marshal(coverage)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal coverage: %w", err)
	}
	gapsJSON, err := json.Marshal(gaps)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gaps: %w", err)
	}

	schema := map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"recommendations", "summary"},
		"properties": map[string]interface{}{
			"recommendations": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"skill", "action", "priority"},
					"properties": map[string]interface{}{
						"skill":    map[string]interface{}{"type": "string"},
						"action":   map[string]interface{}{"type": "string"},
						"priority": map[string]interface{}{"type": "string", "enum": []string{"critical", "high", "medium"}},
					},
				},
			},
			"summary": map[string]interface{}{"type": "string"},
		},
	}

	system := "You advise a venture studio on closing skill gaps in its talent pool through hiring, training, or contracting."
	user := fmt.Sprintf("Skill coverage: %s\nGaps: %s", string(coverageJSON), string(gapsJSON))
	return is.generate(ctx, nil, "skills_analysis", system, user, "skills_analysis", schema)
}
