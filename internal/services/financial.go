package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/analytics"
	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type FinancialService interface {
	ListRecords(ctx context.Context, ventureID uuid.UUID) ([]*types.FinancialRecord, error)
	CreateRecord(ctx context.Context, record *types.FinancialRecord) (*types.FinancialRecord, error)
	UpdateRecord(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.FinancialRecord, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
	// Series returns revenue/expenses/profit bucketed by calendar period,
	// date-sorted before grouping so bucket order is chronological.
	Series(ctx context.Context, ventureID uuid.UUID, granularity analytics.Granularity) ([]analytics.Bucket, error)
}

type financialService struct {
	db              *gorm.DB
	log             *logger.Logger
	financialRepo   repos.FinancialRecordRepo
	activityLogRepo repos.ActivityLogRepo
	resolver        permissions.Resolver
}

func NewFinancialService(
	db *gorm.DB,
	log *logger.Logger,
	financialRepo repos.FinancialRecordRepo,
	activityLogRepo repos.ActivityLogRepo,
	resolver permissions.Resolver,
) FinancialService {
	return &financialService{
		db:              db,
		log:             log.With("service", "FinancialService"),
		financialRepo:   financialRepo,
		activityLogRepo: activityLogRepo,
		resolver:        resolver,
	}
}

var financialUpdatableColumns = map[string]bool{
	"record_date":  true,
	"revenue":      true,
	"expenses":     true,
	"investment":   true,
	"cash_balance": true,
	"period_type":  true,
}

func (fs *financialService) ListRecords(ctx context.Context, ventureID uuid.UUID) ([]*types.FinancialRecord, error) {
	access, err := fs.resolver.Resolve(ctx, ventureID, permissions.TypeFinancials)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, ErrForbidden
	}
	return fs.financialRepo.ListByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
}

func (fs *financialService) CreateRecord(ctx context.Context, record *types.FinancialRecord) (*types.FinancialRecord, error) {
	access, err := fs.resolver.Resolve(ctx, record.VentureID, permissions.TypeFinancials)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}
	if record.Revenue < 0 || record.Expenses < 0 {
		return nil, fmt.Errorf("%w: revenue and expenses cannot be negative", ErrBadInput)
	}

	err = fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := fs.financialRepo.Create(ctx, tx, []*types.FinancialRecord{record}); err != nil {
			return fmt.Errorf("failed to create financial record: %w", err)
		}
		logActivity(ctx, tx, fs.activityLogRepo, fs.log, "financial.created", "FinancialRecord", &record.ID, &record.VentureID,
			map[string]interface{}{"revenue": record.Revenue, "expenses": record.Expenses})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (fs *financialService) UpdateRecord(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.FinancialRecord, error) {
	records, err := fs.financialRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch financial record: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	record := records[0]

	access, err := fs.resolver.Resolve(ctx, record.VentureID, permissions.TypeFinancials)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}

	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if financialUpdatableColumns[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields", ErrBadInput)
	}

	err = fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fs.financialRepo.UpdateFields(ctx, tx, id, filtered); err != nil {
			return fmt.Errorf("failed to update financial record: %w", err)
		}
		logActivity(ctx, tx, fs.activityLogRepo, fs.log, "financial.updated", "FinancialRecord", &id, &record.VentureID, filtered)
		return nil
	})
	if err != nil {
		return nil, err
	}

	records, err = fs.financialRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil || len(records) == 0 {
		return nil, fmt.Errorf("failed to re-fetch financial record: %w", err)
	}
	return records[0], nil
}

func (fs *financialService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	records, err := fs.financialRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return fmt.Errorf("failed to fetch financial record: %w", err)
	}
	if len(records) == 0 {
		return ErrNotFound
	}
	record := records[0]

	access, err := fs.resolver.Resolve(ctx, record.VentureID, permissions.TypeFinancials)
	if err != nil {
		return err
	}
	if !access.CanEdit {
		return ErrForbidden
	}

	return fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fs.financialRepo.DeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("failed to delete financial record: %w", err)
		}
		logActivity(ctx, tx, fs.activityLogRepo, fs.log, "financial.deleted", "FinancialRecord", &id, &record.VentureID, nil)
		return nil
	})
}

func (fs *financialService) Series(ctx context.Context, ventureID uuid.UUID, granularity analytics.Granularity) ([]analytics.Bucket, error) {
	if !analytics.ValidGranularity(granularity) {
		return nil, fmt.Errorf("%w: unknown granularity %q", ErrBadInput, granularity)
	}
	records, err := fs.ListRecords(ctx, ventureID)
	if err != nil {
		return nil, err
	}
	return FinancialSeries(records, granularity), nil
}

// FinancialSeries converts rows to analytics records and buckets them.
// Split out so report code can reuse it on rows it already holds.
func FinancialSeries(records []*types.FinancialRecord, granularity analytics.Granularity) []analytics.Bucket {
	converted := make([]analytics.Record, 0, len(records))
	for _, r := range records {
		created := r.CreatedAt
		converted = append(converted, analytics.Record{
			RecordDate:  r.RecordDate,
			CreatedDate: &created,
			Revenue:     r.Revenue,
			Expenses:    r.Expenses,
		})
	}
	sorted := analytics.SortByDate(converted)
	return analytics.GroupByPeriod(sorted, granularity)
}
