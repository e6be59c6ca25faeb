package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/courtmetrics/gavel/internal/analytics"
	"github.com/courtmetrics/gavel/internal/report"
)

// parseRange resolves the period filter of an analytics request. An
// explicit start/end pair wins over a named preset.
func parseRange(r *http.Request, now time.Time) (from, to *time.Time, err error) {
	q := r.URL.Query()
	if s := q.Get("start"); s != "" {
		t, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if s := q.Get("end"); s != "" {
		t, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	if from == nil && to == nil {
		from, to = analytics.PeriodBounds(q.Get("preset"), now)
	}
	return from, to, nil
}

// LedgerAnalytics handles GET /analytics/ledger.
func (h *Handler) LedgerAnalytics(w http.ResponseWriter, r *http.Request) {
	h.hydrate(r.Context())

	from, to, err := parseRange(r, time.Now().UTC())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "start and end must be YYYY-MM-DD",
		})
		return
	}

	rows := analytics.FilterLedgerByPeriod(h.ws.Ledger(), from, to)

	kpis := make([]map[string]any, 0, len(analytics.KPIMetrics))
	for _, metric := range analytics.KPIMetrics {
		kpis = append(kpis, map[string]any{
			"metric": metric,
			"mean":   analytics.Mean(analytics.MetricValues(rows, metric)),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"periods":      len(rows),
		"kpiAverages":  kpis,
		"statsTable":   analytics.LedgerStats(rows),
		"productivity": analytics.CompareProductivity(rows),
		"flow":         analytics.Flow(rows),
		"composition":  analytics.CaseloadComposition(rows),
		"heatmap":      analytics.Heatmap(rows),
	})
}

// CaseAnalytics handles GET /analytics/cases.
func (h *Handler) CaseAnalytics(w http.ResponseWriter, r *http.Request) {
	h.hydrate(r.Context())

	records := h.ws.Cases()
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":   analytics.CaseSummary(records),
		"filings": analytics.FilingSeries(records),
	})
}

// Alerts handles GET /alerts: run the rule catalogue over the current
// case dataset.
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	h.hydrate(r.Context())

	found, err := h.engine.EvaluateAll(r.Context(), h.ws.Cases())
	if err != nil {
		slog.Error("alert evaluation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "alert evaluation failed",
		})
		return
	}

	if h.metrics != nil {
		for _, a := range found {
			h.metrics.AlertsEmitted.WithLabelValues(a.Severity.String()).Inc()
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":  len(found),
		"alerts": found,
	})
}

// LedgerReport handles GET /reports/ledger: the printable HTML report.
func (h *Handler) LedgerReport(w http.ResponseWriter, r *http.Request) {
	h.hydrate(r.Context())

	from, to, err := parseRange(r, time.Now().UTC())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "start and end must be YYYY-MM-DD",
		})
		return
	}
	rows := analytics.FilterLedgerByPeriod(h.ws.Ledger(), from, to)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.Write(w, rows, time.Now()); err != nil {
		slog.Error("failed to render report", "error", err)
	}
}
