package analytics

import (
	"sort"

	"github.com/courtmetrics/gavel/internal/domain"
)

// CaseStats is the full aggregate view over a case-list dataset.
type CaseStats struct {
	Total              int                `json:"total"`
	MeanEvents         float64            `json:"meanEvents"`
	KnowledgeCases     int                `json:"knowledgeCases"`
	ExecutionCases     int                `json:"executionCases"`
	OldestDays         int                `json:"oldestDays"`
	DurationBuckets    []GroupCount       `json:"durationBuckets"`
	ComplexityTiers    []GroupCount       `json:"complexityTiers"`
	ConclusionTypes    []GroupCount       `json:"conclusionTypes"`
	TopClasses         []GroupCount       `json:"topClasses"`
	TopSubjects        []GroupCount       `json:"topSubjects"`
	MeanDaysByProcType map[string]float64 `json:"meanDaysByProcedure"`
	Outliers           OutlierSummary     `json:"outliers"`
}

// CaseSummary aggregates the case-list dataset into the jurimetrics
// view. Safe on an empty slice.
func CaseSummary(records []domain.CaseRecord) CaseStats {
	s := CaseStats{
		Total:              len(records),
		MeanDaysByProcType: map[string]float64{},
		Outliers:           CountOutliers(records),
	}
	if len(records) == 0 {
		return s
	}

	var eventSum float64
	buckets := make([]string, len(records))
	tiers := make([]string, len(records))
	conclusions := make([]string, len(records))
	classes := make([]string, len(records))
	subjects := make([]string, len(records))
	daysByProc := map[string][]float64{}
	for i, rec := range records {
		eventSum += float64(rec.EventCount)
		switch rec.ProcedureType {
		case "Conhecimento":
			s.KnowledgeCases++
		case "Execução Judicial":
			s.ExecutionCases++
		}
		if rec.DaysInProgress > s.OldestDays {
			s.OldestDays = rec.DaysInProgress
		}
		buckets[i] = rec.DurationBucket
		tiers[i] = rec.Complexity
		conclusions[i] = rec.ConclusionType
		classes[i] = rec.ClassName
		subjects[i] = rec.Subject
		daysByProc[rec.ProcedureType] = append(daysByProc[rec.ProcedureType], float64(rec.DaysInProgress))
	}
	s.MeanEvents = eventSum / float64(len(records))
	s.DurationBuckets = CountBy(buckets)
	s.ComplexityTiers = CountBy(tiers)
	s.ConclusionTypes = CountBy(conclusions)
	s.TopClasses = TopN(CountBy(classes), 5)
	s.TopSubjects = TopN(CountBy(subjects), 5)
	for proc, days := range daysByProc {
		s.MeanDaysByProcType[proc] = Mean(days)
	}
	return s
}

// FilingPoint is one month of the filing history series.
type FilingPoint struct {
	MonthKey string `json:"month"`
	Count    int    `json:"count"`
}

// FilingSeries buckets cases by filing month, ordered chronologically.
// The month key format sorts lexicographically, so a string sort is a
// date sort.
func FilingSeries(records []domain.CaseRecord) []FilingPoint {
	counts := map[string]int{}
	for _, rec := range records {
		counts[rec.FiledMonthKey]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]FilingPoint, len(keys))
	for i, k := range keys {
		out[i] = FilingPoint{MonthKey: k, Count: counts[k]}
	}
	return out
}
