package domain

import "time"

// Placeholders substituted when a categorical field arrives blank.
const (
	UnspecifiedMasc = "Não especificado"
	UnspecifiedFem  = "Não especificada"
)

// Complexity tiers derived from event volume and time in progress.
const (
	ComplexityLow    = "Baixa"
	ComplexityMedium = "Média"
	ComplexityHigh   = "Alta"
)

// Duration buckets for filed-to-now age distributions.
const (
	BucketFast     = "Rápido (até 3 meses)"
	BucketNormal   = "Normal (3 meses a 1 ano)"
	BucketSlow     = "Lento (1 a 2 anos)"
	BucketCritical = "Crítico (mais de 2 anos)"
)

// CaseCore is the persisted shape of a court case record. JSON tags mirror
// the column headers of the case-list export so stored datasets stay
// readable next to the source spreadsheet.
type CaseCore struct {
	CaseID         string    `json:"Processo"`
	EventCount     int       `json:"Eventos"`
	ProcedureType  string    `json:"Procedimento"`
	ClassName      string    `json:"Classe"`
	Subject        string    `json:"Assunto"`
	ConclusionType string    `json:"Tipo de Conclusão"`
	DaysConcluded  int       `json:"Dias Conclusos"`
	FiledAt        time.Time `json:"Autuação"`
	DaysInProgress int       `json:"Dias em Tramitação"`
}

// CaseRecord is a CaseCore enriched with the derived analytics fields.
// Derived fields are recomputed on every load and never persisted.
type CaseRecord struct {
	CaseCore
	Complexity      string
	EfficiencyRatio float64
	DurationBucket  string
	FiledMonthKey   string
	FiledYear       int
}

// Derive fills the computed fields from the core columns.
func (c *CaseRecord) Derive() {
	c.Complexity = ComplexityFor(c.EventCount, c.DaysInProgress)
	c.EfficiencyRatio = EfficiencyRatio(c.EventCount, c.DaysInProgress)
	c.DurationBucket = DurationBucketFor(c.DaysInProgress)
	c.FiledMonthKey = c.FiledAt.Format("2006-01")
	c.FiledYear = c.FiledAt.Year()
}

// ComplexityFor scores a case by weighting event volume at 60% and months
// in progress at 40%, then tiers the score.
func ComplexityFor(eventCount, daysInProgress int) string {
	score := float64(eventCount)*0.6 + float64(daysInProgress)/30.0*0.4
	switch {
	case score < 25:
		return ComplexityLow
	case score < 50:
		return ComplexityMedium
	default:
		return ComplexityHigh
	}
}

// EfficiencyRatio is the event rate per day in progress. Zero when the
// case has no elapsed time, so fresh cases never divide by zero.
func EfficiencyRatio(eventCount, daysInProgress int) float64 {
	if daysInProgress <= 0 {
		return 0
	}
	return float64(eventCount) / float64(daysInProgress)
}

// DurationBucketFor classifies a case age in days into a named bucket.
func DurationBucketFor(daysInProgress int) string {
	switch {
	case daysInProgress <= 90:
		return BucketFast
	case daysInProgress <= 365:
		return BucketNormal
	case daysInProgress <= 730:
		return BucketSlow
	default:
		return BucketCritical
	}
}
