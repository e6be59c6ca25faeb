package analytics

import "github.com/courtmetrics/gavel/internal/domain"

// Performance tiers relative to the historical productivity mean.
const (
	TierExcellent    = "excellent"
	TierGood         = "good"
	TierAttention    = "attention"
	TierIntervention = "intervention"
)

// ProductivityComparison contrasts the latest month against the mean of
// the filtered range.
type ProductivityComparison struct {
	Period  string  `json:"period"`
	Current float64 `json:"current"`
	Mean    float64 `json:"mean"`
	Percent float64 `json:"percent"`
	Tier    string  `json:"tier"`
}

// CompareProductivity grades the last row's productivity against the
// range mean. Nil when there are no rows. A zero mean pins the percent
// at 0 so a first month is graded "good" rather than dividing by zero.
func CompareProductivity(rows []domain.LedgerRow) *ProductivityComparison {
	if len(rows) == 0 {
		return nil
	}
	values := MetricValues(rows, domain.MetricProductivity)
	mean := Mean(values)
	current := values[len(values)-1]
	var percent float64
	if mean != 0 {
		percent = (current - mean) / mean * 100
	}
	c := &ProductivityComparison{
		Period:  rows[len(rows)-1].Period,
		Current: current,
		Mean:    mean,
		Percent: percent,
	}
	switch {
	case percent >= 20:
		c.Tier = TierExcellent
	case percent >= 0:
		c.Tier = TierGood
	case percent >= -20:
		c.Tier = TierAttention
	default:
		c.Tier = TierIntervention
	}
	return c
}

// FlowBalance contrasts incoming against resolved cases for the range.
type FlowBalance struct {
	Incoming       float64 `json:"incoming"`
	Resolved       float64 `json:"resolved"`
	Net            float64 `json:"net"`
	ResolutionRate float64 `json:"resolutionRate"`
}

// Flow sums the intake and resolution columns. ResolutionRate is 0 when
// nothing came in, never NaN.
func Flow(rows []domain.LedgerRow) FlowBalance {
	var f FlowBalance
	for _, row := range rows {
		f.Incoming += row.Metric(domain.MetricIncomingTotal)
		f.Resolved += row.Metric(domain.MetricResolved)
	}
	f.Net = f.Incoming - f.Resolved
	if f.Incoming != 0 {
		f.ResolutionRate = f.Resolved / f.Incoming * 100
	}
	return f
}
