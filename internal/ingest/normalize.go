// Package ingest turns raw spreadsheet rows into validated domain records.
package ingest

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/courtmetrics/gavel/internal/domain"
)

// RawRow is one spreadsheet row keyed by column header. Values arrive as
// strings, numbers or cell timestamps depending on the upload path.
type RawRow map[string]any

var monthsPT = map[string]time.Month{
	"jan": time.January,
	"fev": time.February,
	"mar": time.March,
	"abr": time.April,
	"mai": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August,
	"set": time.September,
	"out": time.October,
	"nov": time.November,
	"dez": time.December,
}

// ParsePeriod resolves a "<month>/<year>" label such as "jan/23" or
// "Fevereiro/2023" to the first day of that month in UTC. Month matching
// is case-insensitive on the Portuguese 3-letter prefix; two-digit years
// are anchored to 2000.
func ParsePeriod(label string) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(label))
	monPart, yearPart, ok := strings.Cut(s, "/")
	if !ok {
		return time.Time{}, fmt.Errorf("period %q: missing year separator", label)
	}
	monPart = strings.TrimSpace(monPart)
	yearPart = strings.TrimSpace(yearPart)
	if len(monPart) < 3 {
		return time.Time{}, fmt.Errorf("period %q: unknown month", label)
	}
	mon, ok := monthsPT[monPart[:3]]
	if !ok {
		return time.Time{}, fmt.Errorf("period %q: unknown month", label)
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return time.Time{}, fmt.Errorf("period %q: bad year: %w", label, err)
	}
	if year < 100 {
		year += 2000
	}
	return time.Date(year, mon, 1, 0, 0, 0, 0, time.UTC), nil
}

var nonNumeric = regexp.MustCompile(`[^0-9.,\-]`)

// CoerceNumber converts a raw cell into a float64 metric value. Strings
// are stripped of thousand markers and currency noise, the first comma
// becomes a decimal point. Anything unparseable, including NaN and
// infinities, collapses to 0 so one dirty cell never poisons a dataset.
func CoerceNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case float32:
		return CoerceNumber(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case time.Time:
		return 0
	case string:
		s := nonNumeric.ReplaceAllString(strings.TrimSpace(n), "")
		s = strings.Replace(s, ",", ".", 1)
		if s == "" || s == "-" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// coerceString renders a raw cell as a trimmed string.
func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == math.Trunc(s) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", s))
	}
}

// NormalizeLedger validates raw monthly rows into ledger records. Rows
// whose period label cannot be parsed are dropped. Output is sorted
// chronologically; the sort is stable, so duplicate periods keep their
// upload order.
func NormalizeLedger(rows []RawRow) []domain.LedgerRow {
	out := make([]domain.LedgerRow, 0, len(rows))
	for _, raw := range rows {
		period := coerceString(raw[domain.PeriodColumn])
		date, err := ParsePeriod(period)
		if err != nil {
			continue
		}
		metrics := make(map[string]float64, len(domain.MetricColumns))
		for _, col := range domain.MetricColumns {
			metrics[col] = CoerceNumber(raw[col])
		}
		out = append(out, domain.LedgerRow{
			Period:  period,
			Date:    date,
			Metrics: metrics,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// filedAtDefault backstops case records whose filing date is missing or
// malformed, keeping age math defined instead of failing the row.
var filedAtDefault = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// parseFiledAt reads the filing date of a case row. Uploads carry
// dd/mm/yyyy; persisted datasets round-trip through RFC 3339.
func parseFiledAt(v any) time.Time {
	switch d := v.(type) {
	case time.Time:
		return d.UTC()
	case string:
		s := strings.TrimSpace(d)
		if t, err := time.Parse("02/01/2006", s); err == nil {
			return t.UTC()
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.UTC()
		}
		return filedAtDefault
	default:
		return filedAtDefault
	}
}

// orPlaceholder substitutes the office placeholder for blank categories.
func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// NormalizeCases validates raw case-list rows into derived case records.
// Rows without a case number are dropped; blank categorical fields get
// the standard placeholder so group-by outputs never show empty labels.
func NormalizeCases(rows []RawRow) []domain.CaseRecord {
	out := make([]domain.CaseRecord, 0, len(rows))
	for _, raw := range rows {
		caseID := coerceString(raw["Processo"])
		if caseID == "" {
			continue
		}
		rec := domain.CaseRecord{
			CaseCore: domain.CaseCore{
				CaseID:         caseID,
				EventCount:     int(CoerceNumber(raw["Eventos"])),
				ProcedureType:  orPlaceholder(coerceString(raw["Procedimento"]), domain.UnspecifiedMasc),
				ClassName:      orPlaceholder(coerceString(raw["Classe"]), domain.UnspecifiedFem),
				Subject:        orPlaceholder(coerceString(raw["Assunto"]), domain.UnspecifiedMasc),
				ConclusionType: orPlaceholder(coerceString(raw["Tipo de Conclusão"]), domain.UnspecifiedMasc),
				DaysConcluded:  int(CoerceNumber(raw["Dias Conclusos"])),
				FiledAt:        parseFiledAt(raw["Autuação"]),
				DaysInProgress: int(CoerceNumber(raw["Dias em Tramitação"])),
			},
		}
		rec.Derive()
		out = append(out, rec)
	}
	return out
}
