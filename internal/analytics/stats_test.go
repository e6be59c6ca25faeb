package analytics

import (
	"testing"
	"time"

	"github.com/courtmetrics/gavel/internal/domain"
)

func row(period string, date time.Time, metrics map[string]float64) domain.LedgerRow {
	return domain.LedgerRow{Period: period, Date: date, Metrics: metrics}
}

func monthlyRows() []domain.LedgerRow {
	jan := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	return []domain.LedgerRow{
		row("jan/23", jan, map[string]float64{
			domain.MetricConcluded:     10,
			domain.MetricProductivity:  100,
			domain.MetricIncomingTotal: 20,
			domain.MetricResolved:      10,
		}),
		row("fev/23", jan.AddDate(0, 1, 0), map[string]float64{
			domain.MetricConcluded:     20,
			domain.MetricProductivity:  80,
			domain.MetricIncomingTotal: 30,
			domain.MetricResolved:      40,
		}),
		row("mar/23", jan.AddDate(0, 2, 0), map[string]float64{
			domain.MetricConcluded:     30,
			domain.MetricProductivity:  120,
			domain.MetricIncomingTotal: 10,
			domain.MetricResolved:      10,
		}),
	}
}

func TestMedian(t *testing.T) {
	if got := Median(nil); got != 0 {
		t.Errorf("empty median = %v, want 0", got)
	}
	if got := Median([]float64{30, 10, 20}); got != 20 {
		t.Errorf("odd median = %v, want 20", got)
	}
	// even length averages the two middles
	if got := Median([]float64{10, 30, 20, 40}); got != 25 {
		t.Errorf("even median = %v, want 25", got)
	}

	// input must stay untouched
	values := []float64{3, 1, 2}
	Median(values)
	if values[0] != 3 {
		t.Error("Median must not reorder its input")
	}
}

func TestStatsFor(t *testing.T) {
	rows := monthlyRows()
	s := StatsFor(rows, domain.MetricConcluded)

	if s.Total != 60 || s.Mean != 20 || s.Median != 20 {
		t.Errorf("unexpected stats: %+v", s)
	}
	if s.Min != 10 || s.Max != 30 {
		t.Errorf("unexpected min/max: %+v", s)
	}
	if s.Current != 30 {
		t.Errorf("current should be the last row, got %v", s.Current)
	}

	empty := StatsFor(nil, domain.MetricConcluded)
	if empty.Total != 0 || empty.Current != 0 {
		t.Errorf("empty input must be zero-valued: %+v", empty)
	}
}

func TestLedgerStatsCoversEveryColumn(t *testing.T) {
	stats := LedgerStats(monthlyRows())
	if len(stats) != len(domain.MetricColumns) {
		t.Fatalf("expected one entry per metric column, got %d", len(stats))
	}
	for i, metric := range domain.MetricColumns {
		if stats[i].Metric != metric {
			t.Errorf("entry %d = %q, want %q", i, stats[i].Metric, metric)
		}
	}
	// columns absent from the rows still get a zero-valued summary
	acervo := stats[1]
	if acervo.Metric != domain.MetricActiveCaseload || acervo.Max != 0 {
		t.Errorf("unexpected summary for absent column: %+v", acervo)
	}
}

func TestFilterLedgerByPeriod(t *testing.T) {
	rows := monthlyRows()

	from := time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)
	got := FilterLedgerByPeriod(rows, &from, nil)
	if len(got) != 2 || got[0].Period != "fev/23" {
		t.Fatalf("unexpected filter result: %+v", got)
	}

	to := time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)
	got = FilterLedgerByPeriod(rows, &from, &to)
	if len(got) != 1 || got[0].Period != "fev/23" {
		t.Fatalf("bounds must be inclusive: %+v", got)
	}

	if got := FilterLedgerByPeriod(rows, nil, nil); len(got) != 3 {
		t.Errorf("open bounds must keep everything, got %d", len(got))
	}

	// input untouched
	if len(rows) != 3 {
		t.Error("filter must not mutate its input")
	}
}

func TestPeriodBounds(t *testing.T) {
	now := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)

	if from, to := PeriodBounds(PeriodAll, now); from != nil || to != nil {
		t.Errorf("all must be unbounded, got %v..%v", from, to)
	}
	if from, to := PeriodBounds("whatever", now); from != nil || to != nil {
		t.Errorf("unknown preset must be unbounded, got %v..%v", from, to)
	}

	from, to := PeriodBounds(PeriodLastSemester, now)
	if from == nil || !from.Equal(now.AddDate(0, -6, 0)) || to != nil {
		t.Errorf("unexpected semester bounds: %v..%v", from, to)
	}

	// last_month brackets the previous calendar month
	from, to = PeriodBounds(PeriodLastMonth, now)
	if from == nil || to == nil {
		t.Fatal("last_month must be bounded on both ends")
	}
	if !from.Equal(time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected lower bound %v", from)
	}
	may := time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)
	if to.Before(may.AddDate(0, 1, 0).Add(-time.Hour)) || !to.Before(time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("upper bound must close out May, got %v", to)
	}
	// a June row must fall outside the window
	june := []domain.LedgerRow{{Period: "jun/23", Date: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)}}
	if got := FilterLedgerByPeriod(june, from, to); len(got) != 0 {
		t.Errorf("current month must be excluded from last_month, got %+v", got)
	}
	mayRow := []domain.LedgerRow{{Period: "mai/23", Date: may}}
	if got := FilterLedgerByPeriod(mayRow, from, to); len(got) != 1 {
		t.Error("previous month must be included in last_month")
	}
}

func TestCountByAndTopN(t *testing.T) {
	groups := CountBy([]string{"a", "b", "a", "c", "b", "a"})
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	// first-encounter order
	if groups[0].Label != "a" || groups[0].Count != 3 {
		t.Errorf("unexpected first group: %+v", groups[0])
	}

	top := TopN(groups, 2)
	if len(top) != 2 || top[0].Label != "a" || top[1].Label != "b" {
		t.Errorf("unexpected top-2: %+v", top)
	}

	// ties keep encounter order
	tied := TopN(CountBy([]string{"x", "y"}), 2)
	if tied[0].Label != "x" {
		t.Errorf("tie must keep encounter order, got %+v", tied)
	}
}

func TestCompareProductivity(t *testing.T) {
	if got := CompareProductivity(nil); got != nil {
		t.Errorf("empty input must yield nil, got %+v", got)
	}

	c := CompareProductivity(monthlyRows())
	if c.Period != "mar/23" {
		t.Errorf("expected last period, got %s", c.Period)
	}
	if c.Mean != 100 || c.Current != 120 {
		t.Errorf("unexpected comparison: %+v", c)
	}
	if c.Percent != 20 || c.Tier != TierExcellent {
		t.Errorf("+20%% must be excellent: %+v", c)
	}
}

func TestProductivityTiers(t *testing.T) {
	jan := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	mk := func(values ...float64) []domain.LedgerRow {
		rows := make([]domain.LedgerRow, len(values))
		for i, v := range values {
			rows[i] = row("p", jan.AddDate(0, i, 0), map[string]float64{domain.MetricProductivity: v})
		}
		return rows
	}

	tests := []struct {
		rows []domain.LedgerRow
		want string
	}{
		{mk(100, 100), TierGood},          // exactly the mean
		{mk(100, 90), TierAttention},      // -5.3%
		{mk(100, 50), TierIntervention},   // -33%
		{mk(50, 100), TierExcellent},      // +33%
	}
	for _, tt := range tests {
		if c := CompareProductivity(tt.rows); c.Tier != tt.want {
			t.Errorf("tier = %s, want %s (%+v)", c.Tier, tt.want, c)
		}
	}
}

func TestFlow(t *testing.T) {
	f := Flow(monthlyRows())
	if f.Incoming != 60 || f.Resolved != 60 || f.Net != 0 {
		t.Errorf("unexpected flow: %+v", f)
	}
	if f.ResolutionRate != 100 {
		t.Errorf("expected rate 100, got %v", f.ResolutionRate)
	}

	zero := Flow(nil)
	if zero.ResolutionRate != 0 {
		t.Errorf("zero incoming must yield rate 0, got %v", zero.ResolutionRate)
	}
}
