package analytics

import (
	"testing"
	"time"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestGroupByPeriodMonthMergesRecords(t *testing.T) {
	records := []Record{
		{RecordDate: datePtr(2024, time.January, 5), Revenue: 100},
		{RecordDate: datePtr(2024, time.January, 20), Revenue: 50},
	}

	buckets := GroupByPeriod(records, GranularityMonth)

	if len(buckets) != 1 {
		t.Fatalf("expected exactly one bucket, got %d: %+v", len(buckets), buckets)
	}
	b := buckets[0]
	if b.Key != "2024-01" {
		t.Fatalf("bucket key = %q, want 2024-01", b.Key)
	}
	if b.Revenue != 150 {
		t.Fatalf("bucket revenue = %v, want 150", b.Revenue)
	}
	if b.Count != 2 {
		t.Fatalf("bucket count = %d, want 2", b.Count)
	}
}

func TestGroupByPeriodComputesProfit(t *testing.T) {
	records := []Record{
		{RecordDate: datePtr(2024, time.March, 1), Revenue: 300, Expenses: 120},
		{RecordDate: datePtr(2024, time.March, 15), Revenue: 50, Expenses: 80},
	}

	buckets := GroupByPeriod(records, GranularityMonth)
	if len(buckets) != 1 {
		t.Fatalf("expected one bucket, got %d", len(buckets))
	}
	if buckets[0].Profit != 150 {
		t.Fatalf("profit = %v, want 150 (350 revenue - 200 expenses)", buckets[0].Profit)
	}
}

func TestGroupByPeriodDateFallbackPriority(t *testing.T) {
	measurement := datePtr(2024, time.February, 1)
	record := datePtr(2024, time.March, 1)
	created := datePtr(2024, time.April, 1)

	cases := []struct {
		name string
		rec  Record
		want string
	}{
		{"measurement_date_first", Record{MeasurementDate: measurement, RecordDate: record, CreatedDate: created}, "2024-02"},
		{"record_date_second", Record{RecordDate: record, CreatedDate: created}, "2024-03"},
		{"created_date_last", Record{CreatedDate: created}, "2024-04"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buckets := GroupByPeriod([]Record{tc.rec}, GranularityMonth)
			if len(buckets) != 1 || buckets[0].Key != tc.want {
				t.Fatalf("buckets = %+v, want single key %q", buckets, tc.want)
			}
		})
	}
}

func TestGroupByPeriodSkipsUndatedRecords(t *testing.T) {
	records := []Record{
		{Revenue: 999},
		{RecordDate: datePtr(2024, time.May, 2), Revenue: 10},
	}
	buckets := GroupByPeriod(records, GranularityDay)
	if len(buckets) != 1 || buckets[0].Revenue != 10 {
		t.Fatalf("undated record must be skipped, got %+v", buckets)
	}
}

func TestGroupByPeriodFirstSeenOrder(t *testing.T) {
	// Unsorted input: bucket order follows first appearance, not the calendar.
	records := []Record{
		{RecordDate: datePtr(2024, time.June, 3)},
		{RecordDate: datePtr(2024, time.January, 10)},
		{RecordDate: datePtr(2024, time.June, 20)},
	}
	buckets := GroupByPeriod(records, GranularityMonth)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "2024-06" || buckets[1].Key != "2024-01" {
		t.Fatalf("expected first-seen order [2024-06 2024-01], got [%s %s]", buckets[0].Key, buckets[1].Key)
	}
}

func TestSortByDateThenGroupIsChronological(t *testing.T) {
	records := []Record{
		{RecordDate: datePtr(2024, time.June, 3), Revenue: 1},
		{RecordDate: datePtr(2024, time.January, 10), Revenue: 2},
		{RecordDate: datePtr(2024, time.March, 1), Revenue: 3},
	}
	buckets := GroupByPeriod(SortByDate(records), GranularityMonth)
	want := []string{"2024-01", "2024-03", "2024-06"}
	if len(buckets) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(buckets))
	}
	for i, key := range want {
		if buckets[i].Key != key {
			t.Fatalf("bucket[%d].Key = %s, want %s", i, buckets[i].Key, key)
		}
	}
	// SortByDate must not reorder the caller's slice.
	if records[0].Revenue != 1 || records[1].Revenue != 2 {
		t.Fatalf("SortByDate mutated its input: %+v", records)
	}
}

func TestPeriodKey(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		g    Granularity
		want string
	}{
		{"day", time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC), GranularityDay, "2024-01-05"},
		{"month", time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC), GranularityMonth, "2024-11"},
		{"quarter_q1", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), GranularityQuarter, "2024-Q1"},
		{"quarter_q4", time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), GranularityQuarter, "2024-Q4"},
		{"iso_week_mid_year", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), GranularityWeek, "2024-W03"},
		// ISO week numbering assigns the trailing days of December to the
		// next year's first week.
		{"iso_week_year_boundary", time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), GranularityWeek, "2025-W01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PeriodKey(tc.t, tc.g); got != tc.want {
				t.Fatalf("PeriodKey(%v, %s) = %q, want %q", tc.t, tc.g, got, tc.want)
			}
		})
	}
}
