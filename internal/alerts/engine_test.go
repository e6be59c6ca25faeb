package alerts

import (
	"context"
	"strings"
	"testing"

	"github.com/courtmetrics/gavel/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(5)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return engine
}

func rec(id string, events, daysInProgress, daysConcluded int) domain.CaseRecord {
	r := domain.CaseRecord{CaseCore: domain.CaseCore{
		CaseID:         id,
		EventCount:     events,
		DaysInProgress: daysInProgress,
		DaysConcluded:  daysConcluded,
		ProcedureType:  "Conhecimento",
		ClassName:      "Inventário",
		Subject:        "Partilha",
	}}
	r.Derive()
	return r
}

func TestCatalogCompiles(t *testing.T) {
	engine := newTestEngine(t)
	if engine.RulesCount() != len(Catalog()) {
		t.Errorf("expected %d compiled rules, got %d", len(Catalog()), engine.RulesCount())
	}
}

func TestExcessiveDuration(t *testing.T) {
	engine := newTestEngine(t)

	// 2000 days, healthy otherwise: only the five-year rule fires
	alerts, err := engine.EvaluateAll(context.Background(), []domain.CaseRecord{
		rec("p1", 100, 2000, 10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var critical []domain.Alert
	for _, a := range alerts {
		if a.Severity == domain.SeverityCritical {
			critical = append(critical, a)
		}
	}
	if len(critical) != 1 {
		t.Fatalf("expected exactly one critical alert, got %d (%+v)", len(critical), alerts)
	}
	a := critical[0]
	if a.Category != "duracao-excessiva" {
		t.Errorf("unexpected category %s", a.Category)
	}
	if !strings.Contains(a.Message, "há 5 anos") {
		t.Errorf("message should round 2000 days to 5 years: %q", a.Message)
	}
	if !strings.Contains(a.Message, "2000 dias") {
		t.Errorf("message should carry the day count: %q", a.Message)
	}
	if a.Value != 2000 || a.Threshold == nil || *a.Threshold != 1825 {
		t.Errorf("unexpected value/threshold: %+v", a)
	}
	if len(a.RecommendedActions) == 0 {
		t.Error("expected recommended actions")
	}
	if a.ID != "critical-duracao-excessiva-p1" {
		t.Errorf("unexpected alert id %s", a.ID)
	}
}

func TestStalledConclusionBands(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		daysConcluded int
		category      string
	}{
		{59, ""},
		{60, "conclusao-prolongada"},
		{120, "conclusao-prolongada"},
		{121, "conclusao-excessiva"},
	}

	for _, tt := range tests {
		alerts, err := engine.EvaluateAll(context.Background(), []domain.CaseRecord{
			rec("p1", 10, 100, tt.daysConcluded),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := ""
		for _, a := range alerts {
			if strings.HasPrefix(a.Category, "conclusao") {
				got = a.Category
			}
		}
		if got != tt.category {
			t.Errorf("daysConcluded=%d: got %q, want %q", tt.daysConcluded, got, tt.category)
		}
	}
}

func TestAnomalousActivitySkipsZeroDuration(t *testing.T) {
	engine := newTestEngine(t)

	// 500 events, zero days: monthly activity is defined as 0
	alerts, err := engine.EvaluateAll(context.Background(), []domain.CaseRecord{
		rec("p1", 500, 0, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, a := range alerts {
		if a.Category == "atividade-anomala" {
			t.Errorf("anomalous activity must not fire on zero-duration cases: %+v", a)
		}
	}

	// the same volume over one month does fire
	alerts, _ = engine.EvaluateAll(context.Background(), []domain.CaseRecord{
		rec("p2", 500, 30, 0),
	})
	found := false
	for _, a := range alerts {
		if a.Category == "atividade-anomala" {
			found = true
		}
	}
	if !found {
		t.Error("expected anomalous activity for 500 events in 30 days")
	}
}

func TestFamilyPriorityRules(t *testing.T) {
	engine := newTestEngine(t)

	alimony := domain.CaseRecord{CaseCore: domain.CaseCore{
		CaseID:         "p1",
		ProcedureType:  "Execução Judicial",
		Subject:        "Alimentos",
		ClassName:      "Execução de Alimentos",
		DaysConcluded:  90,
		DaysInProgress: 200,
		EventCount:     60,
	}}
	alimony.Derive()

	custody := domain.CaseRecord{CaseCore: domain.CaseCore{
		CaseID:         "p2",
		ProcedureType:  "Conhecimento",
		Subject:        "Regulamentação de Visitas",
		ClassName:      "Guarda de Família",
		DaysInProgress: 400,
		EventCount:     80,
	}}
	custody.Derive()

	// empty subject and class simply never match
	blank := rec("p3", 10, 400, 0)
	blank.Subject = ""
	blank.ClassName = ""

	alerts, err := engine.EvaluateAll(context.Background(), []domain.CaseRecord{alimony, custody, blank})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byCase := map[string][]string{}
	for _, a := range alerts {
		byCase[a.CaseID] = append(byCase[a.CaseID], a.Category)
	}

	if !contains(byCase["p1"], "alimentos-execucao") {
		t.Errorf("expected alimony rule for p1, got %v", byCase["p1"])
	}
	if !contains(byCase["p2"], "guarda-convivencia") {
		t.Errorf("expected custody rule for p2, got %v", byCase["p2"])
	}
	if contains(byCase["p3"], "guarda-convivencia") || contains(byCase["p3"], "alimentos-execucao") {
		t.Errorf("blank fields must not match: %v", byCase["p3"])
	}
}

func TestSeverityOrdering(t *testing.T) {
	engine := newTestEngine(t)

	records := []domain.CaseRecord{
		rec("low", 50, 650, 0),     // duracao-atencao
		rec("crit", 100, 2000, 10), // duracao-excessiva
		rec("med", 10, 800, 0),     // baixa-movimentacao
	}

	alerts, err := engine.EvaluateAll(context.Background(), records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alerts) < 3 {
		t.Fatalf("expected at least 3 alerts, got %d", len(alerts))
	}

	for i := 1; i < len(alerts); i++ {
		if alerts[i].Severity > alerts[i-1].Severity {
			t.Fatalf("alerts not sorted by severity: %v then %v", alerts[i-1].Severity, alerts[i].Severity)
		}
	}
	if alerts[0].CaseID != "crit" {
		t.Errorf("critical case must sort first, got %s", alerts[0].CaseID)
	}
}

func TestEmptyInput(t *testing.T) {
	engine := newTestEngine(t)
	alerts, err := engine.EvaluateAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alerts != nil {
		t.Errorf("expected no alerts, got %+v", alerts)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
