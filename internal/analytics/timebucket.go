package analytics

import (
	"fmt"
	"sort"
	"time"
)

type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
)

func ValidGranularity(g Granularity) bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityQuarter:
		return true
	}
	return false
}

// Record is the flattened view of a KPI or financial row that the report
// services hand to the grouper. Date fields are consulted in a fixed
// priority order: MeasurementDate, then RecordDate, then CreatedDate.
type Record struct {
	MeasurementDate *time.Time
	RecordDate      *time.Time
	CreatedDate     *time.Time

	Revenue  float64
	Expenses float64
	KPIValue float64
}

// Date resolves the record's effective date through the fallback chain.
// The second return is false when no date field is set.
func (r Record) Date() (time.Time, bool) {
	if r.MeasurementDate != nil {
		return *r.MeasurementDate, true
	}
	if r.RecordDate != nil {
		return *r.RecordDate, true
	}
	if r.CreatedDate != nil {
		return *r.CreatedDate, true
	}
	return time.Time{}, false
}

type Bucket struct {
	Key      string  `json:"key"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
	KPIValue float64 `json:"kpi_value"`
	Count    int     `json:"count"`
}

// PeriodKey formats a calendar bucket key for t. Week keys use ISO-8601
// week numbering, so dates near a year boundary can land in the other
// year's week (e.g. 2024-12-30 is 2025-W01).
func PeriodKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityDay:
		return t.Format("2006-01-02")
	case GranularityWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case GranularityMonth:
		return t.Format("2006-01")
	case GranularityQuarter:
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", t.Year(), quarter)
	default:
		return t.Format("2006-01-02")
	}
}

// GroupByPeriod accumulates per-bucket sums of revenue, expenses, derived
// profit, KPI values, and a raw count. Buckets are emitted in first-seen
// order: callers wanting chronological output must sort the input by date
// ascending first (SortByDate). Records with no date field are skipped.
// The input slice is never mutated.
func GroupByPeriod(records []Record, g Granularity) []Bucket {
	index := make(map[string]int, len(records))
	buckets := make([]Bucket, 0, len(records))

	for _, rec := range records {
		date, ok := rec.Date()
		if !ok {
			continue
		}
		key := PeriodKey(date, g)
		i, seen := index[key]
		if !seen {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Key: key})
		}
		buckets[i].Revenue += rec.Revenue
		buckets[i].Expenses += rec.Expenses
		buckets[i].KPIValue += rec.KPIValue
		buckets[i].Count++
	}

	for i := range buckets {
		buckets[i].Profit = buckets[i].Revenue - buckets[i].Expenses
	}
	return buckets
}

// SortByDate returns a copy of records ordered by effective date ascending.
// Undated records sort last, keeping their relative order.
func SortByDate(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, oki := sorted[i].Date()
		dj, okj := sorted[j].Date()
		if !oki {
			return false
		}
		if !okj {
			return true
		}
		return di.Before(dj)
	})
	return sorted
}
