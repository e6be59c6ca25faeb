// Package domain defines the core types and interfaces for Gavel.
package domain

import (
	"encoding/json"
	"time"
)

// PeriodColumn is the spreadsheet column carrying the month/year label.
const PeriodColumn = "Mês/Ano"

// Canonical metric column names of the monthly productivity export.
const (
	MetricTotalCaseload    = "Acervo total"
	MetricActiveCaseload   = "Acervo em andamento"
	MetricConcluded        = "Conclusos"
	MetricConcluded100Days = "Conclusos - 100 dias"
	MetricConcluded365     = "Conclusos + 365"
	MetricIncomingNew      = "Entradas - Casos novos"
	MetricIncomingOther    = "Entradas - Outras"
	MetricIncomingTotal    = "Entrada - Total"
	MetricSentConcluded    = "Enviados Conclusos"
	MetricProductivity     = "Produtividade"
	MetricResolved         = "Baixados"
)

// MetricColumns lists every numeric column expected in a ledger upload,
// in the order the export produces them.
var MetricColumns = []string{
	MetricTotalCaseload,
	MetricActiveCaseload,
	MetricConcluded,
	MetricConcluded100Days,
	MetricConcluded365,
	MetricIncomingNew,
	MetricIncomingOther,
	MetricIncomingTotal,
	MetricSentConcluded,
	MetricProductivity,
	MetricResolved,
}

// LedgerRow is one monthly productivity record. Period is the canonical
// "<mon3>/<yy>" label and the unique key within a dataset. Date is derived
// from Period during normalization and used only for sorting and filtering;
// it is never persisted.
type LedgerRow struct {
	Period  string
	Date    time.Time
	Metrics map[string]float64
}

// MarshalJSON emits the flat record shape the store holds: the period label
// under "Mês/Ano" plus one numeric field per metric. The derived date is
// stripped so stale values can never round-trip.
func (r LedgerRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Metrics)+1)
	flat[PeriodColumn] = r.Period
	for name, value := range r.Metrics {
		flat[name] = value
	}
	return json.Marshal(flat)
}

// Metric returns the named counter, 0 when the column is absent.
func (r LedgerRow) Metric(name string) float64 {
	return r.Metrics[name]
}
