package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestComplexityFor(t *testing.T) {
	tests := []struct {
		events int
		days   int
		want   string
	}{
		{0, 0, ComplexityLow},
		{10, 300, ComplexityLow},    // score 10
		{41, 30, ComplexityMedium},  // score exactly 25
		{50, 750, ComplexityMedium}, // score 40
		{80, 150, ComplexityHigh},   // score exactly 50
		{100, 1000, ComplexityHigh},
	}

	for _, tt := range tests {
		if got := ComplexityFor(tt.events, tt.days); got != tt.want {
			t.Errorf("ComplexityFor(%d, %d) = %s, want %s", tt.events, tt.days, got, tt.want)
		}
	}
}

func TestEfficiencyRatio(t *testing.T) {
	if got := EfficiencyRatio(10, 0); got != 0 {
		t.Errorf("zero days must yield 0, got %v", got)
	}
	if got := EfficiencyRatio(10, 100); got != 0.1 {
		t.Errorf("10 events in 100 days = 0.1/day, got %v", got)
	}
	if got := EfficiencyRatio(15, 30); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
}

func TestDurationBucketFor(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, BucketFast},
		{90, BucketFast},
		{91, BucketNormal},
		{365, BucketNormal},
		{366, BucketSlow},
		{730, BucketSlow},
		{731, BucketCritical},
	}
	for _, tt := range tests {
		if got := DurationBucketFor(tt.days); got != tt.want {
			t.Errorf("DurationBucketFor(%d) = %s, want %s", tt.days, got, tt.want)
		}
	}
}

func TestDeriveIdempotent(t *testing.T) {
	rec := CaseRecord{CaseCore: CaseCore{
		CaseID:         "p1",
		EventCount:     30,
		DaysInProgress: 400,
		FiledAt:        time.Date(2022, time.May, 1, 0, 0, 0, 0, time.UTC),
	}}
	rec.Derive()
	first := rec
	rec.Derive()
	if rec != first {
		t.Error("Derive must be idempotent")
	}
	if rec.FiledMonthKey != "2022-05" || rec.FiledYear != 2022 {
		t.Errorf("unexpected filing keys: %s %d", rec.FiledMonthKey, rec.FiledYear)
	}
}

func TestLedgerRowMarshalFlat(t *testing.T) {
	row := LedgerRow{
		Period: "jan/23",
		Date:   time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		Metrics: map[string]float64{
			MetricConcluded: 10,
		},
	}
	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if flat[PeriodColumn] != "jan/23" {
		t.Errorf("expected period under %q, got %v", PeriodColumn, flat[PeriodColumn])
	}
	if flat[MetricConcluded] != 10.0 {
		t.Errorf("expected flat metric, got %v", flat[MetricConcluded])
	}
	if _, ok := flat["Date"]; ok {
		t.Error("derived date must not be persisted")
	}
}

func TestSeverityJSON(t *testing.T) {
	data, _ := json.Marshal(SeverityCritical)
	if string(data) != `"critical"` {
		t.Errorf("expected \"critical\", got %s", data)
	}

	var s Severity
	if err := json.Unmarshal([]byte(`"medium"`), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s != SeverityMedium {
		t.Errorf("expected medium, got %v", s)
	}
	if err := json.Unmarshal([]byte(`"urgent"`), &s); err == nil {
		t.Error("unknown severity must error")
	}
}
