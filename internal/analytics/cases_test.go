package analytics

import (
	"testing"
	"time"

	"github.com/courtmetrics/gavel/internal/domain"
)

func caseRec(id string, events, days int, proc string) domain.CaseRecord {
	rec := domain.CaseRecord{CaseCore: domain.CaseCore{
		CaseID:         id,
		EventCount:     events,
		DaysInProgress: days,
		ProcedureType:  proc,
		ClassName:      "Divórcio Litigioso",
		Subject:        "Guarda",
		ConclusionType: "Sentença",
		FiledAt:        time.Date(2022, time.March, 10, 0, 0, 0, 0, time.UTC),
	}}
	rec.Derive()
	return rec
}

func TestQuartilesAndThreshold(t *testing.T) {
	values := []float64{1, 2, 3, 4, 100}

	q1, q3 := Quartiles(values)
	if q1 != 2 || q3 != 4 {
		t.Errorf("quartiles = %v, %v, want 2, 4", q1, q3)
	}
	if got := OutlierThreshold(values); got != 7 {
		t.Errorf("threshold = %v, want 7", got)
	}

	if q1, q3 := Quartiles(nil); q1 != 0 || q3 != 0 {
		t.Error("empty quartiles must be zero")
	}
}

func TestCountOutliers(t *testing.T) {
	records := []domain.CaseRecord{
		caseRec("p1", 1, 1, "Conhecimento"),
		caseRec("p2", 2, 2, "Conhecimento"),
		caseRec("p3", 3, 3, "Conhecimento"),
		caseRec("p4", 4, 4, "Conhecimento"),
		// over both fences, must count once
		caseRec("p5", 100, 100, "Conhecimento"),
	}

	s := CountOutliers(records)
	if s.EventThreshold != 7 || s.DaysThreshold != 7 {
		t.Errorf("unexpected thresholds: %+v", s)
	}
	if s.Count != 1 {
		t.Errorf("expected 1 outlier, got %d", s.Count)
	}

	if CountOutliers(nil).Count != 0 {
		t.Error("empty input must yield zero outliers")
	}
}

func TestCaseSummary(t *testing.T) {
	records := []domain.CaseRecord{
		caseRec("p1", 10, 50, "Conhecimento"),
		caseRec("p2", 20, 400, "Execução Judicial"),
		caseRec("p3", 30, 900, "Conhecimento"),
	}

	s := CaseSummary(records)
	if s.Total != 3 {
		t.Errorf("expected total 3, got %d", s.Total)
	}
	if s.MeanEvents != 20 {
		t.Errorf("expected mean events 20, got %v", s.MeanEvents)
	}
	if s.KnowledgeCases != 2 || s.ExecutionCases != 1 {
		t.Errorf("unexpected procedure split: %+v", s)
	}
	if s.OldestDays != 900 {
		t.Errorf("expected oldest 900, got %d", s.OldestDays)
	}
	if s.MeanDaysByProcType["Conhecimento"] != 475 {
		t.Errorf("expected mean 475 for Conhecimento, got %v", s.MeanDaysByProcType["Conhecimento"])
	}
	if len(s.TopClasses) != 1 || s.TopClasses[0].Count != 3 {
		t.Errorf("unexpected top classes: %+v", s.TopClasses)
	}

	empty := CaseSummary(nil)
	if empty.Total != 0 || empty.MeanEvents != 0 {
		t.Errorf("empty summary must be zero-valued: %+v", empty)
	}
}

func TestFilingSeries(t *testing.T) {
	a := caseRec("p1", 1, 1, "Conhecimento")
	b := caseRec("p2", 1, 1, "Conhecimento")
	b.FiledAt = time.Date(2021, time.December, 1, 0, 0, 0, 0, time.UTC)
	b.Derive()
	c := caseRec("p3", 1, 1, "Conhecimento")

	series := FilingSeries([]domain.CaseRecord{a, b, c})
	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series))
	}
	if series[0].MonthKey != "2021-12" || series[0].Count != 1 {
		t.Errorf("unexpected first point: %+v", series[0])
	}
	if series[1].MonthKey != "2022-03" || series[1].Count != 2 {
		t.Errorf("unexpected second point: %+v", series[1])
	}
}

func TestCaseloadComposition(t *testing.T) {
	jan := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.LedgerRow{
		row("jan/23", jan, map[string]float64{
			domain.MetricActiveCaseload:   100,
			domain.MetricConcluded:        20,
			domain.MetricConcluded100Days: 0,
			domain.MetricConcluded365:     5,
		}),
	}

	slices := CaseloadComposition(rows)
	if len(slices) != 3 {
		t.Fatalf("zero segments must be dropped, got %d", len(slices))
	}
	if slices[0].Label != "Em Andamento" || slices[0].Value != 100 {
		t.Errorf("unexpected first slice: %+v", slices[0])
	}

	if got := CaseloadComposition(nil); len(got) != 0 {
		t.Errorf("empty input must yield no slices, got %+v", got)
	}
}

func TestHeatmap(t *testing.T) {
	jan := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.LedgerRow{
		row("jan/23", jan, map[string]float64{domain.MetricConcluded: 10}),
		row("fev/23", jan.AddDate(0, 1, 0), map[string]float64{domain.MetricConcluded: 40}),
	}

	cells := Heatmap(rows)
	if len(cells) != 2*len(domain.MetricColumns) {
		t.Fatalf("expected a cell per period per metric, got %d", len(cells))
	}

	var jan10, fev40 *HeatmapCell
	for i := range cells {
		if cells[i].Metric == domain.MetricConcluded {
			switch cells[i].Period {
			case "jan/23":
				jan10 = &cells[i]
			case "fev/23":
				fev40 = &cells[i]
			}
		}
	}
	if jan10 == nil || fev40 == nil {
		t.Fatal("missing cells for concluded metric")
	}
	if jan10.Normalized != 0.25 || fev40.Normalized != 1 {
		t.Errorf("unexpected normalization: %v, %v", jan10.Normalized, fev40.Normalized)
	}

	// zero-max columns normalize to 0, not NaN
	for _, cell := range cells {
		if cell.Metric == domain.MetricResolved && cell.Normalized != 0 {
			t.Errorf("zero-max column must normalize to 0, got %v", cell.Normalized)
		}
	}
}
