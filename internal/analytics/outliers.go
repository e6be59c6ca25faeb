package analytics

import (
	"sort"

	"github.com/courtmetrics/gavel/internal/domain"
)

// Quartiles returns Q1 and Q3 taken at the floor(n/4) and floor(3n/4)
// positions of the sorted values. Zeroes for an empty slice. The input
// is not reordered.
func Quartiles(values []float64) (q1, q3 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	hi := (3 * n) / 4
	if hi >= n {
		hi = n - 1
	}
	return sorted[n/4], sorted[hi]
}

// OutlierThreshold is the upper Tukey fence, Q3 plus 1.5 IQR.
func OutlierThreshold(values []float64) float64 {
	q1, q3 := Quartiles(values)
	return q3 + 1.5*(q3-q1)
}

// OutlierSummary reports how many cases exceed the upper fence on event
// volume or age. A case over both fences counts once.
type OutlierSummary struct {
	EventThreshold float64 `json:"eventThreshold"`
	DaysThreshold  float64 `json:"daysThreshold"`
	Count          int     `json:"count"`
}

// CountOutliers computes the per-dimension fences and the number of
// cases beyond either one.
func CountOutliers(records []domain.CaseRecord) OutlierSummary {
	if len(records) == 0 {
		return OutlierSummary{}
	}
	events := make([]float64, len(records))
	days := make([]float64, len(records))
	for i, rec := range records {
		events[i] = float64(rec.EventCount)
		days[i] = float64(rec.DaysInProgress)
	}
	s := OutlierSummary{
		EventThreshold: OutlierThreshold(events),
		DaysThreshold:  OutlierThreshold(days),
	}
	for _, rec := range records {
		if float64(rec.EventCount) > s.EventThreshold || float64(rec.DaysInProgress) > s.DaysThreshold {
			s.Count++
		}
	}
	return s
}
