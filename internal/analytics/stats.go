package analytics

import (
	"sort"

	"github.com/courtmetrics/gavel/internal/domain"
)

// KPIMetrics are the ledger columns surfaced as headline stat cards.
var KPIMetrics = []string{
	domain.MetricConcluded,
	domain.MetricIncomingTotal,
	domain.MetricSentConcluded,
	domain.MetricProductivity,
	domain.MetricTotalCaseload,
	domain.MetricResolved,
}

// MetricStats summarizes one metric column across the filtered rows.
type MetricStats struct {
	Metric  string  `json:"metric"`
	Total   float64 `json:"total"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Current float64 `json:"current"`
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value, averaging the two middles for even
// lengths. 0 for an empty slice. The input is not reordered.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// MetricValues extracts one column from the rows in order.
func MetricValues(rows []domain.LedgerRow, metric string) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = row.Metric(metric)
	}
	return out
}

// StatsFor summarizes one metric column. Current is the value of the
// chronologically last row.
func StatsFor(rows []domain.LedgerRow, metric string) MetricStats {
	s := MetricStats{Metric: metric}
	if len(rows) == 0 {
		return s
	}
	values := MetricValues(rows, metric)
	s.Min, s.Max = values[0], values[0]
	for _, v := range values {
		s.Total += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = s.Total / float64(len(values))
	s.Median = Median(values)
	s.Current = values[len(values)-1]
	return s
}

// LedgerStats summarizes every metric column over the filtered rows, in
// export order.
func LedgerStats(rows []domain.LedgerRow) []MetricStats {
	out := make([]MetricStats, 0, len(domain.MetricColumns))
	for _, metric := range domain.MetricColumns {
		out = append(out, StatsFor(rows, metric))
	}
	return out
}
