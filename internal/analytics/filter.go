// Package analytics computes the dashboard aggregates from normalized
// datasets. Every function is pure: inputs are never mutated.
package analytics

import (
	"time"

	"github.com/courtmetrics/gavel/internal/domain"
)

// Period presets accepted by the range filter.
const (
	PeriodLastMonth    = "last_month"
	PeriodLastQuarter  = "last_quarter"
	PeriodLastSemester = "last_semester"
	PeriodLastYear     = "last_year"
	PeriodLastTwoYears = "last_two_years"
	PeriodLastThree    = "last_three_years"
	PeriodAll          = "all"
)

// PeriodBounds resolves a preset into inclusive bounds relative to now.
// Nil means unbounded on that end. Unknown presets behave like "all".
// last_month brackets the previous calendar month; the rolling presets
// are lower-bounded only.
func PeriodBounds(preset string, now time.Time) (*time.Time, *time.Time) {
	var from time.Time
	switch preset {
	case PeriodLastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		from = first.AddDate(0, -1, 0)
		to := first.Add(-time.Nanosecond)
		return &from, &to
	case PeriodLastQuarter:
		from = now.AddDate(0, -3, 0)
	case PeriodLastSemester:
		from = now.AddDate(0, -6, 0)
	case PeriodLastYear:
		from = now.AddDate(-1, 0, 0)
	case PeriodLastTwoYears:
		from = now.AddDate(-2, 0, 0)
	case PeriodLastThree:
		from = now.AddDate(-3, 0, 0)
	default:
		return nil, nil
	}
	return &from, nil
}

// FilterLedgerByPeriod keeps rows whose derived date falls inside the
// given bounds. Nil bounds are open ends.
func FilterLedgerByPeriod(rows []domain.LedgerRow, from, to *time.Time) []domain.LedgerRow {
	out := make([]domain.LedgerRow, 0, len(rows))
	for _, row := range rows {
		if from != nil && row.Date.Before(*from) {
			continue
		}
		if to != nil && row.Date.After(*to) {
			continue
		}
		out = append(out, row)
	}
	return out
}
