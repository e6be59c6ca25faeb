package alerts

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"

	"github.com/courtmetrics/gavel/internal/domain"
)

// Engine evaluates the alert catalogue against case records using
// pre-compiled CEL programs.
type Engine struct {
	env           *cel.Env
	compiledRules []compiledRule
	maxWorkers    int
}

type compiledRule struct {
	rule    Rule
	program cel.Program
}

// NewEngine compiles the catalogue and returns a ready engine.
func NewEngine(maxWorkers int) (*Engine, error) {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	// CEL environment with case record variables
	env, err := cel.NewEnv(
		cel.Variable("event_count", cel.IntType),
		cel.Variable("days_in_progress", cel.IntType),
		cel.Variable("days_concluded", cel.IntType),
		cel.Variable("procedure_type", cel.StringType),
		cel.Variable("class_name", cel.StringType),
		cel.Variable("class_lc", cel.StringType),
		cel.Variable("subject_lc", cel.StringType),
		cel.Variable("monthly_activity", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	e := &Engine{env: env, maxWorkers: maxWorkers}
	for _, rule := range Catalog() {
		compiled, err := e.compile(rule)
		if err != nil {
			return nil, err
		}
		e.compiledRules = append(e.compiledRules, compiled)
	}
	return e, nil
}

func (e *Engine) compile(rule Rule) (compiledRule, error) {
	ast, issues := e.env.Compile(rule.Expression)
	if issues != nil && issues.Err() != nil {
		return compiledRule{}, fmt.Errorf("failed to compile rule %s: %w", rule.Category, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return compiledRule{}, fmt.Errorf("rule %s: expression must return bool, got %s", rule.Category, ast.OutputType())
	}
	program, err := e.env.Program(ast)
	if err != nil {
		return compiledRule{}, fmt.Errorf("failed to create program for rule %s: %w", rule.Category, err)
	}
	return compiledRule{rule: rule, program: program}, nil
}

// RulesCount returns the number of compiled rules.
func (e *Engine) RulesCount() int {
	return len(e.compiledRules)
}

// activationFor builds the CEL variable map for one case record.
func activationFor(rec domain.CaseRecord) map[string]any {
	return map[string]any{
		"event_count":      rec.EventCount,
		"days_in_progress": rec.DaysInProgress,
		"days_concluded":   rec.DaysConcluded,
		"procedure_type":   rec.ProcedureType,
		"class_name":       rec.ClassName,
		"class_lc":         strings.ToLower(rec.ClassName),
		"subject_lc":       strings.ToLower(rec.Subject),
		"monthly_activity": monthlyActivity(rec),
	}
}

// EvaluateAll runs every rule against every record. Records are scanned
// in parallel behind a semaphore; within a record rules run in catalogue
// order. The result is sorted by descending severity, with the stable
// sort preserving record order inside each severity band.
func (e *Engine) EvaluateAll(ctx context.Context, records []domain.CaseRecord) ([]domain.Alert, error) {
	if len(records) == 0 {
		return nil, nil
	}

	perRecord := make([][]domain.Alert, len(records))
	var wg sync.WaitGroup

	sem := make(chan struct{}, e.maxWorkers)

	for i, rec := range records {
		wg.Add(1)
		go func(idx int, rec domain.CaseRecord) {
			defer wg.Done()

			sem <- struct{}{}        // Acquire
			defer func() { <-sem }() // Release

			perRecord[idx] = e.evaluateRecord(ctx, rec)
		}(i, rec)
	}

	wg.Wait()

	var alerts []domain.Alert
	for _, recAlerts := range perRecord {
		alerts = append(alerts, recAlerts...)
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity > alerts[j].Severity
	})
	return alerts, nil
}

// evaluateRecord runs the catalogue against one record. A rule that
// errors is skipped; the rest of the catalogue still runs.
func (e *Engine) evaluateRecord(ctx context.Context, rec domain.CaseRecord) []domain.Alert {
	activation := activationFor(rec)

	var alerts []domain.Alert
	for _, compiled := range e.compiledRules {
		if ctx.Err() != nil {
			return alerts
		}
		out, _, err := compiled.program.Eval(activation)
		if err != nil {
			continue
		}
		if !toBool(out) {
			continue
		}
		rule := compiled.rule
		alerts = append(alerts, domain.Alert{
			ID:                 fmt.Sprintf("%s-%s-%s", rule.Severity, rule.Category, rec.CaseID),
			Severity:           rule.Severity,
			Category:           rule.Category,
			CaseID:             rec.CaseID,
			Message:            rule.Message(rec),
			Value:              rule.Value(rec),
			Threshold:          rule.Threshold,
			RecommendedActions: rule.Actions,
		})
	}
	return alerts
}

func toBool(val ref.Val) bool {
	b, ok := val.(types.Bool)
	return ok && bool(b)
}
