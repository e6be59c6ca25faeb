// Package report renders the printable productivity report.
package report

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/courtmetrics/gavel/internal/analytics"
	"github.com/courtmetrics/gavel/internal/domain"
)

// reportMetrics are the columns shown in the statistics and monthly
// tables of the report.
var reportMetrics = []string{
	domain.MetricConcluded,
	domain.MetricProductivity,
	domain.MetricIncomingTotal,
	domain.MetricResolved,
	domain.MetricTotalCaseload,
}

type kpiCard struct {
	Name  string
	Value string
}

type statRow struct {
	Metric string
	Mean   string
	Median string
	Min    float64
	Max    float64
}

type monthRow struct {
	Period string
	Values []float64
}

type reportData struct {
	PeriodRange string
	GeneratedAt string
	KPIs        []kpiCard
	Stats       []statRow
	Months      []monthRow
}

// Write renders the self-contained HTML report for the given rows. The
// monthly table is capped at the last 12 periods.
func Write(w io.Writer, rows []domain.LedgerRow, now time.Time) error {
	data := reportData{
		PeriodRange: periodRange(rows),
		GeneratedAt: now.Format("02/01/2006 15:04"),
	}

	for _, metric := range analytics.KPIMetrics {
		mean := analytics.Mean(analytics.MetricValues(rows, metric))
		data.KPIs = append(data.KPIs, kpiCard{
			Name:  metric,
			Value: fmt.Sprintf("%.1f", mean),
		})
	}

	for _, metric := range reportMetrics {
		s := analytics.StatsFor(rows, metric)
		data.Stats = append(data.Stats, statRow{
			Metric: s.Metric,
			Mean:   fmt.Sprintf("%.1f", s.Mean),
			Median: fmt.Sprintf("%.1f", s.Median),
			Min:    s.Min,
			Max:    s.Max,
		})
	}

	tail := rows
	if len(tail) > 12 {
		tail = tail[len(tail)-12:]
	}
	for _, row := range tail {
		m := monthRow{Period: row.Period}
		for _, metric := range reportMetrics {
			m.Values = append(m.Values, row.Metric(metric))
		}
		data.Months = append(data.Months, m)
	}

	return reportTmpl.Execute(w, data)
}

func periodRange(rows []domain.LedgerRow) string {
	if len(rows) == 0 {
		return "sem dados"
	}
	return rows[0].Period + " - " + rows[len(rows)-1].Period
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>Relatório de Produtividade Judicial</title>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; margin: 20px; color: #333; }
    .header { text-align: center; margin-bottom: 30px; border-bottom: 2px solid #007bff; padding-bottom: 20px; }
    .title { font-size: 24px; font-weight: bold; color: #007bff; margin-bottom: 10px; }
    .subtitle { font-size: 14px; color: #666; }
    .section { margin: 25px 0; }
    .section-title { font-size: 18px; font-weight: bold; margin-bottom: 15px; color: #007bff; border-bottom: 1px solid #ddd; padding-bottom: 5px; }
    .kpi-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 15px; margin: 20px 0; }
    .kpi-card { background: #f8f9fa; padding: 15px; border-radius: 8px; border-left: 4px solid #007bff; }
    .kpi-title { font-size: 12px; color: #666; margin-bottom: 5px; }
    .kpi-value { font-size: 20px; font-weight: bold; color: #333; }
    table { width: 100%; border-collapse: collapse; margin: 15px 0; }
    th, td { padding: 8px 12px; text-align: left; border-bottom: 1px solid #ddd; }
    th { background-color: #f8f9fa; font-weight: bold; color: #007bff; }
    tr:nth-child(even) { background-color: #f9f9f9; }
    .data-table th, .data-table td { text-align: center; font-size: 11px; }
    .footer { margin-top: 40px; padding-top: 20px; border-top: 1px solid #ddd; text-align: center; color: #666; font-size: 12px; }
    @media print {
      body { margin: 10px; }
      .section { page-break-inside: avoid; }
    }
  </style>
</head>
<body>
  <div class="header">
    <div class="title">Relatório de Produtividade Judicial</div>
    <div class="subtitle">Período: {{.PeriodRange}}</div>
    <div class="subtitle">Gerado em: {{.GeneratedAt}}</div>
  </div>

  <div class="section">
    <div class="section-title">Indicadores Principais (Médias do Período)</div>
    <div class="kpi-grid">
      {{range .KPIs}}
      <div class="kpi-card">
        <div class="kpi-title">{{.Name}}</div>
        <div class="kpi-value">{{.Value}}</div>
      </div>
      {{end}}
    </div>
  </div>

  <div class="section">
    <div class="section-title">Resumo Estatístico (Top 5 Métricas)</div>
    <table>
      <thead>
        <tr>
          <th>Métrica</th>
          <th>Média</th>
          <th>Mediana</th>
          <th>Mínimo</th>
          <th>Máximo</th>
        </tr>
      </thead>
      <tbody>
        {{range .Stats}}
        <tr>
          <td><strong>{{.Metric}}</strong></td>
          <td>{{.Mean}}</td>
          <td>{{.Median}}</td>
          <td>{{.Min}}</td>
          <td>{{.Max}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </div>

  <div class="section">
    <div class="section-title">Dados Mensais Detalhados (Últimos 12 Períodos)</div>
    <table class="data-table">
      <thead>
        <tr>
          <th>Mês/Ano</th>
          <th>Conclusos</th>
          <th>Produtividade</th>
          <th>Entrada Total</th>
          <th>Baixados</th>
          <th>Acervo Total</th>
        </tr>
      </thead>
      <tbody>
        {{range .Months}}
        <tr>
          <td><strong>{{.Period}}</strong></td>
          {{range .Values}}<td>{{.}}</td>{{end}}
        </tr>
        {{end}}
      </tbody>
    </table>
  </div>

  <div class="footer">Relatório gerado automaticamente pelo painel de produtividade</div>
</body>
</html>
`))
