// Package alerts provides the CEL-Go based case alerting engine.
package alerts

import (
	"fmt"
	"math"

	"github.com/courtmetrics/gavel/internal/domain"
)

// Rule is one entry of the alert catalogue. Expression is a CEL boolean
// over the case activation; Message and Value read the matched record.
type Rule struct {
	Category   string
	Severity   domain.Severity
	Expression string
	Message    func(rec domain.CaseRecord) string
	Value      func(rec domain.CaseRecord) float64
	Threshold  *float64
	Actions    []string
}

func threshold(v float64) *float64 { return &v }

func years(days int) int {
	return int(math.Round(float64(days) / 365.0))
}

// Catalog returns the rule catalogue in evaluation order. Ordering is
// stable so alert IDs and tie-breaks never shift between runs.
func Catalog() []Rule {
	return []Rule{
		{
			Category:   "duracao-excessiva",
			Severity:   domain.SeverityCritical,
			Expression: "days_in_progress > 1825",
			Message: func(rec domain.CaseRecord) string {
				return fmt.Sprintf("Processo em tramitação há %d anos (%d dias)", years(rec.DaysInProgress), rec.DaysInProgress)
			},
			Value:     func(rec domain.CaseRecord) float64 { return float64(rec.DaysInProgress) },
			Threshold: threshold(1825),
			Actions: []string{
				"Priorizar julgamento imediato",
				"Verificar causas da demora",
				"Avaliar medidas de celeridade processual",
			},
		},
		{
			Category:   "conclusao-excessiva",
			Severity:   domain.SeverityCritical,
			Expression: "days_concluded > 120",
			Message: func(rec domain.CaseRecord) string {
				return fmt.Sprintf("Processo concluso há %d dias sem decisão", rec.DaysConcluded)
			},
			Value:     func(rec domain.CaseRecord) float64 { return float64(rec.DaysConcluded) },
			Threshold: threshold(120),
			Actions: []string{
				"Proferir decisão com urgência",
				"Verificar pendências que impedem a decisão",
			},
		},
		{
			Category:   "atividade-anomala",
			Severity:   domain.SeverityCritical,
			Expression: "days_in_progress > 0 && monthly_activity > 50.0",
			Message: func(rec domain.CaseRecord) string {
				return fmt.Sprintf("Volume anormal de movimentações: %d eventos em %d dias", rec.EventCount, rec.DaysInProgress)
			},
			Value:     func(rec domain.CaseRecord) float64 { return monthlyActivity(rec) },
			Threshold: threshold(50),
			Actions: []string{
				"Auditar movimentações recentes",
				"Verificar incidentes processuais em série",
			},
		},
		{
			Category:   "alimentos-execucao",
			Severity:   domain.SeverityHigh,
			Expression: "procedure_type == 'Execução Judicial' && subject_lc.contains('alimentos') && days_concluded > 60",
			Message: func(rec domain.CaseRecord) string {
				return fmt.Sprintf("Execução de alimentos conclusa há %d dias", rec.DaysConcluded)
			},
			Value:     func(rec domain.CaseRecord) float64 { return float64(rec.DaysConcluded) },
			Threshold: threshold(60),
			Actions: []string{
				"Tramitar com prioridade legal",
				"Verificar medidas executivas pendentes",
			},
		},
		{
			Category:   "guarda-convivencia",
			Severity:   domain.SeverityHigh,
			Expression: "(class_lc.contains('guarda') || subject_lc.contains('visita') || subject_lc.contains('alienação parental')) && days_in_progress > 365",
			Message: func(rec domain.CaseRecord) string {
				return fmt.Sprintf("Caso de guarda ou convivência em tramitação há %d dias", rec.DaysInProgress)
			},
			Value:     func(rec domain.CaseRecord) float64 { return float64(rec.DaysInProgress) },
			Threshold: threshold(365),
			Actions: []string{
				"Priorizar pelo interesse da criança",
				"Avaliar estudo psicossocial",
				"Designar audiência de conciliação",
			},
		},
		{
			Category:   "duracao-elevada",
			Severity:   domain.SeverityHigh,
			Expression: "days_in_progress > 1095 && days_in_progress <= 1825",
			Message: func(rec domain.CaseRecord) string {
				return fmt.Sprintf("Processo em tramitação há %d dias", rec.DaysInProgress)
			},
			Value:     func(rec domain.CaseRecord) float64 { return float64(rec.DaysInProgress) },
			Threshold: threshold(1095),
			Actions: []string{
				"Incluir em mutirão de julgamento",
				"Revisar atos pendentes",
			},
		},
		{
			Category:   "conclusao-prolongada",
			Severity:   domain.SeverityMedium,
			Expression: "days_concluded >= 60 && days_concluded <= 120",
			Message: func(rec domain.CaseRecord) string {
				return fmt.Sprintf("Processo concluso há %d dias", rec.DaysConcluded)
			},
			Value:     func(rec domain.CaseRecord) float64 { return float64(rec.DaysConcluded) },
			Threshold: threshold(60),
			Actions: []string{
				"Agendar análise do processo",
				"Monitorar prazo de conclusão",
			},
		},
		{
			Category:   "baixa-movimentacao",
			Severity:   domain.SeverityMedium,
			Expression: "days_in_progress > 730 && event_count < 50",
			Message: func(rec domain.CaseRecord) string {
				return fmt.Sprintf("Apenas %d eventos em %d dias de tramitação", rec.EventCount, rec.DaysInProgress)
			},
			Value:     func(rec domain.CaseRecord) float64 { return float64(rec.EventCount) },
			Threshold: threshold(50),
			Actions: []string{
				"Verificar paralisação do feito",
				"Intimar partes para andamento",
			},
		},
		{
			Category:   "divorcio-prolongado",
			Severity:   domain.SeverityMedium,
			Expression: "class_name == 'Divórcio Litigioso' && days_in_progress > 548",
			Message: func(rec domain.CaseRecord) string {
				return fmt.Sprintf("Divórcio litigioso em tramitação há %d dias", rec.DaysInProgress)
			},
			Value:     func(rec domain.CaseRecord) float64 { return float64(rec.DaysInProgress) },
			Threshold: threshold(548),
			Actions: []string{
				"Avaliar tentativa de acordo",
				"Verificar questões patrimoniais pendentes",
			},
		},
		{
			Category:   "duracao-atencao",
			Severity:   domain.SeverityLow,
			Expression: "days_in_progress > 600 && days_in_progress <= 730",
			Message: func(rec domain.CaseRecord) string {
				return fmt.Sprintf("Processo se aproximando de 2 anos de tramitação (%d dias)", rec.DaysInProgress)
			},
			Value:     func(rec domain.CaseRecord) float64 { return float64(rec.DaysInProgress) },
			Threshold: threshold(600),
			Actions: []string{
				"Acompanhar andamento mensal",
			},
		},
	}
}

// monthlyActivity is the case's event rate per 30 days, 0 for cases
// without elapsed time.
func monthlyActivity(rec domain.CaseRecord) float64 {
	if rec.DaysInProgress <= 0 {
		return 0
	}
	return float64(rec.EventCount) / (float64(rec.DaysInProgress) / 30.0)
}
