package analytics

import "github.com/courtmetrics/gavel/internal/domain"

// CompositionSlice is one segment of the caseload composition chart.
type CompositionSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// caseloadSegments maps chart labels to the columns of the last period
// that make up the composition view.
var caseloadSegments = []struct {
	label  string
	metric string
}{
	{"Em Andamento", domain.MetricActiveCaseload},
	{"Conclusos", domain.MetricConcluded},
	{"Conclusos -100 dias", domain.MetricConcluded100Days},
	{"Conclusos +365 dias", domain.MetricConcluded365},
}

// CaseloadComposition breaks the chronologically last row into its
// caseload segments. Zero-valued segments are omitted; empty input
// yields an empty slice.
func CaseloadComposition(rows []domain.LedgerRow) []CompositionSlice {
	out := []CompositionSlice{}
	if len(rows) == 0 {
		return out
	}
	last := rows[len(rows)-1]
	for _, seg := range caseloadSegments {
		if v := last.Metric(seg.metric); v > 0 {
			out = append(out, CompositionSlice{Label: seg.label, Value: v})
		}
	}
	return out
}

// HeatmapCell is one period/metric intensity of the activity heatmap.
type HeatmapCell struct {
	Period     string  `json:"period"`
	Metric     string  `json:"metric"`
	Value      float64 `json:"value"`
	Normalized float64 `json:"normalized"`
}

// Heatmap normalizes every metric column to its range maximum, cell by
// cell. A column whose maximum is 0 normalizes to 0 everywhere.
func Heatmap(rows []domain.LedgerRow) []HeatmapCell {
	if len(rows) == 0 {
		return []HeatmapCell{}
	}
	maxByMetric := make(map[string]float64, len(domain.MetricColumns))
	for _, metric := range domain.MetricColumns {
		for _, row := range rows {
			if v := row.Metric(metric); v > maxByMetric[metric] {
				maxByMetric[metric] = v
			}
		}
	}
	out := make([]HeatmapCell, 0, len(rows)*len(domain.MetricColumns))
	for _, row := range rows {
		for _, metric := range domain.MetricColumns {
			cell := HeatmapCell{
				Period: row.Period,
				Metric: metric,
				Value:  row.Metric(metric),
			}
			if max := maxByMetric[metric]; max > 0 {
				cell.Normalized = cell.Value / max
			}
			out = append(out, cell)
		}
	}
	return out
}
