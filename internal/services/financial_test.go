package services

import (
	"testing"
	"time"

	"github.com/venturedeck/venturedeck-backend/internal/analytics"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFinancialSeries_MonthlyBucketsInOrder(t *testing.T) {
	records := []*types.FinancialRecord{
		{RecordDate: datePtr(2025, time.February, 10), Revenue: 300, Expenses: 100},
		{RecordDate: datePtr(2025, time.January, 5), Revenue: 100, Expenses: 50},
		{RecordDate: datePtr(2025, time.January, 20), Revenue: 200, Expenses: 80},
	}
	series := FinancialSeries(records, analytics.GranularityMonth)
	if len(series) != 2 {
		t.Fatalf("expected 2 buckets got %d", len(series))
	}
	if series[0].Key != "2025-01" || series[1].Key != "2025-02" {
		t.Fatalf("expected chronological keys, got %q %q", series[0].Key, series[1].Key)
	}
	if series[0].Revenue != 300 || series[0].Expenses != 130 || series[0].Profit != 170 {
		t.Fatalf("unexpected january totals: %+v", series[0])
	}
	if series[0].Count != 2 || series[1].Count != 1 {
		t.Fatalf("unexpected counts: %d %d", series[0].Count, series[1].Count)
	}
}

func TestFinancialSeries_FallsBackToCreatedAt(t *testing.T) {
	created := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
	records := []*types.FinancialRecord{
		{Revenue: 10, Expenses: 5, CreatedAt: created},
	}
	series := FinancialSeries(records, analytics.GranularityMonth)
	if len(series) != 1 {
		t.Fatalf("expected 1 bucket got %d", len(series))
	}
	if series[0].Key != "2025-03" {
		t.Fatalf("expected created_at fallback key 2025-03, got %q", series[0].Key)
	}
}

func TestFinancialSeries_Empty(t *testing.T) {
	if series := FinancialSeries(nil, analytics.GranularityMonth); len(series) != 0 {
		t.Fatalf("expected empty series, got %+v", series)
	}
}
