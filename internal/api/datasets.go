package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/courtmetrics/gavel/internal/domain"
	"github.com/courtmetrics/gavel/internal/ingest"
)

// GetLedger handles GET /datasets/ledger.
func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	h.hydrate(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"rows": h.ws.Ledger(),
	})
}

// PutLedger handles PUT /datasets/ledger: replace the dataset wholesale.
func (h *Handler) PutLedger(w http.ResponseWriter, r *http.Request) {
	var raw []ingest.RawRow
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	rows := ingest.NormalizeLedger(raw)
	h.ws.SetLedger(rows)

	if err := h.persistLedger(r.Context()); err != nil {
		slog.Error("failed to save ledger dataset", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "failed to persist dataset",
		})
		return
	}
	h.countRows(domain.KeyLedger, len(rows))
	writeJSON(w, http.StatusOK, map[string]any{
		"saved": len(rows),
	})
}

// GetCases handles GET /datasets/cases.
func (h *Handler) GetCases(w http.ResponseWriter, r *http.Request) {
	h.hydrate(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"records": h.ws.Cases(),
	})
}

// PutCases handles PUT /datasets/cases: replace the dataset wholesale.
func (h *Handler) PutCases(w http.ResponseWriter, r *http.Request) {
	var raw []ingest.RawRow
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	records := ingest.NormalizeCases(raw)
	h.ws.SetCases(records)

	if err := h.persistCases(r.Context()); err != nil {
		slog.Error("failed to save case dataset", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "failed to persist dataset",
		})
		return
	}
	h.countRows(domain.KeyCases, len(records))
	writeJSON(w, http.StatusOK, map[string]any{
		"saved": len(records),
	})
}

// AppendRowRequest is the request body for POST /datasets/ledger/rows.
type AppendRowRequest struct {
	Period string `json:"period"`
}

// AppendLedgerRow handles POST /datasets/ledger/rows: add a zeroed row
// for a period the export has not produced yet.
func (h *Handler) AppendLedgerRow(w http.ResponseWriter, r *http.Request) {
	h.hydrate(r.Context())

	var req AppendRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	date, err := ingest.ParsePeriod(req.Period)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "period must look like jan/25",
		})
		return
	}

	metrics := make(map[string]float64, len(domain.MetricColumns))
	for _, col := range domain.MetricColumns {
		metrics[col] = 0
	}
	h.ws.AppendLedgerRow(domain.LedgerRow{
		Period:  strings.ToLower(strings.TrimSpace(req.Period)),
		Date:    date,
		Metrics: metrics,
	})

	if err := h.persistLedger(r.Context()); err != nil {
		slog.Error("failed to save ledger dataset", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "failed to persist dataset",
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"rows": len(h.ws.Ledger()),
	})
}

// EditCellRequest is the request body for PUT /datasets/ledger/rows/{period}.
// Either a metric/value pair updates one cell, or a new period label
// renames the row itself.
type EditCellRequest struct {
	Metric string  `json:"metric,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Period string  `json:"period,omitempty"`
}

// EditLedgerCell handles PUT /datasets/ledger/rows/{period}: update one
// metric of one row, or relabel the row's period. The period arrives as
// the trailing wildcard since labels carry a slash.
func (h *Handler) EditLedgerCell(w http.ResponseWriter, r *http.Request) {
	h.hydrate(r.Context())

	period := chi.URLParam(r, "*")

	var req EditCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	if req.Period != "" {
		h.renameLedgerRow(w, r, period, req.Period)
		return
	}

	if !h.ws.SetLedgerCell(period, req.Metric, req.Value) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "unknown period or metric",
		})
		return
	}

	if err := h.persistLedger(r.Context()); err != nil {
		slog.Error("failed to save ledger dataset", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "failed to persist dataset",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"period": period,
		"metric": req.Metric,
	})
}

// renameLedgerRow relabels a row's period, the manual fix for a mistyped
// month label.
func (h *Handler) renameLedgerRow(w http.ResponseWriter, r *http.Request, oldPeriod, newPeriod string) {
	date, err := ingest.ParsePeriod(newPeriod)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "period must look like jan/25",
		})
		return
	}
	label := strings.ToLower(strings.TrimSpace(newPeriod))

	if !h.ws.RenameLedgerRow(oldPeriod, label, date) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "unknown period",
		})
		return
	}

	if err := h.persistLedger(r.Context()); err != nil {
		slog.Error("failed to save ledger dataset", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "failed to persist dataset",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"period": label,
	})
}

// IngestLedger handles POST /ingest/ledger: multipart XLSX or pasted
// tab-separated text.
func (h *Handler) IngestLedger(w http.ResponseWriter, r *http.Request) {
	raw, err := h.readUpload(r)
	if err != nil {
		h.rejectUpload(w, err)
		return
	}

	rows := ingest.NormalizeLedger(raw)
	h.ws.SetLedger(rows)

	if err := h.persistLedger(r.Context()); err != nil {
		slog.Error("failed to save ledger dataset", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "failed to persist dataset",
		})
		return
	}
	h.countRows(domain.KeyLedger, len(rows))
	writeJSON(w, http.StatusOK, map[string]any{
		"received": len(raw),
		"accepted": len(rows),
	})
}

// IngestCases handles POST /ingest/cases.
func (h *Handler) IngestCases(w http.ResponseWriter, r *http.Request) {
	raw, err := h.readUpload(r)
	if err != nil {
		h.rejectUpload(w, err)
		return
	}

	records := ingest.NormalizeCases(raw)
	h.ws.SetCases(records)

	if err := h.persistCases(r.Context()); err != nil {
		slog.Error("failed to save case dataset", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "failed to persist dataset",
		})
		return
	}
	h.countRows(domain.KeyCases, len(records))
	writeJSON(w, http.StatusOK, map[string]any{
		"received": len(raw),
		"accepted": len(records),
	})
}

// readUpload extracts raw rows from either a multipart "file" part
// (XLSX) or a raw tab-separated body.
func (h *Handler) readUpload(r *http.Request) ([]ingest.RawRow, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return ingest.ReadXLSX(file)
	}
	return ingest.ReadTSV(r.Body)
}

// rejectUpload reports a file-level parse failure. The previous dataset
// stays untouched.
func (h *Handler) rejectUpload(w http.ResponseWriter, err error) {
	if h.metrics != nil {
		h.metrics.IngestErrors.Inc()
	}
	slog.Warn("rejected upload", "error", err)
	writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
		"error": "could not read the uploaded spreadsheet",
	})
}

func (h *Handler) countRows(key string, n int) {
	if h.metrics != nil {
		h.metrics.RowsIngested.WithLabelValues(key).Add(float64(n))
	}
}

// MilestoneRequest is the request body for POST /milestones.
type MilestoneRequest struct {
	Period      string `json:"period"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// CreateMilestone handles POST /milestones.
func (h *Handler) CreateMilestone(w http.ResponseWriter, r *http.Request) {
	var req MilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "title is required",
		})
		return
	}

	m := domain.Milestone{
		ID:          uuid.New().String(),
		Period:      req.Period,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	h.ws.AddMilestone(m)
	writeJSON(w, http.StatusCreated, m)
}

// ListMilestones handles GET /milestones.
func (h *Handler) ListMilestones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"milestones": h.ws.Milestones(),
	})
}

// DeleteMilestone handles DELETE /milestones/{index}.
func (h *Handler) DeleteMilestone(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "index must be a number",
		})
		return
	}
	if !h.ws.RemoveMilestone(index) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "milestone not found",
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
