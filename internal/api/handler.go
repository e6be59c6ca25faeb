// Package api provides the HTTP surface of the dashboard backend.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/courtmetrics/gavel/internal/alerts"
	"github.com/courtmetrics/gavel/internal/domain"
	"github.com/courtmetrics/gavel/internal/ingest"
	"github.com/courtmetrics/gavel/internal/metrics"
	"github.com/courtmetrics/gavel/internal/state"
)

// Handler holds dependencies for API handlers.
type Handler struct {
	store    domain.Store
	ws       *state.Workspace
	engine   *alerts.Engine
	metrics  *metrics.Metrics
	version  string
	password string
}

// NewHandler creates a new API handler.
func NewHandler(store domain.Store, ws *state.Workspace, engine *alerts.Engine, m *metrics.Metrics, version, password string) *Handler {
	return &Handler{
		store:    store,
		ws:       ws,
		engine:   engine,
		metrics:  m,
		version:  version,
		password: password,
	}
}

// Health returns service and store health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"

	// Check store health
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"version": h.version,
	})
}

// Ready returns whether the server is ready to accept traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"ready": "true",
	})
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /auth/login. The response is always 200-shaped
// JSON with a boolean; a wrong password is not an error condition. With
// no password configured, every attempt fails rather than letting an
// empty password through.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	ok := h.password != "" &&
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) == 1
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]bool{"success": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Summary handles GET /summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	h.hydrate(r.Context())

	lastUpdated, err := h.store.LastUpdated(r.Context())
	if err != nil {
		slog.Error("failed to read last-updated", "error", err)
	}

	ledger := h.ws.Ledger()
	periodRange := ""
	if len(ledger) > 0 {
		periodRange = ledger[0].Period + " - " + ledger[len(ledger)-1].Period
	}

	resp := map[string]any{
		"ledgerRows":  len(ledger),
		"caseRecords": len(h.ws.Cases()),
		"periodRange": periodRange,
	}
	if !lastUpdated.IsZero() {
		resp["lastUpdated"] = lastUpdated.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

// hydrate lazily loads the workspace from the store. A store failure
// degrades to an empty workspace so the dashboard still renders.
func (h *Handler) hydrate(ctx context.Context) {
	if h.ws.Loaded() {
		return
	}

	if data, err := h.store.LoadDataset(ctx, domain.KeyLedger); err != nil {
		slog.Error("failed to load ledger dataset", "error", err)
	} else if data != nil {
		var raw []ingest.RawRow
		if err := json.Unmarshal(data, &raw); err != nil {
			slog.Error("stored ledger dataset is malformed", "error", err)
		} else {
			h.ws.SetLedger(ingest.NormalizeLedger(raw))
			h.countLoad(domain.KeyLedger)
		}
	}

	if data, err := h.store.LoadDataset(ctx, domain.KeyCases); err != nil {
		slog.Error("failed to load case dataset", "error", err)
	} else if data != nil {
		var raw []ingest.RawRow
		if err := json.Unmarshal(data, &raw); err != nil {
			slog.Error("stored case dataset is malformed", "error", err)
		} else {
			h.ws.SetCases(ingest.NormalizeCases(raw))
			h.countLoad(domain.KeyCases)
		}
	}

	h.ws.MarkLoaded()
}

func (h *Handler) countLoad(key string) {
	if h.metrics != nil {
		h.metrics.DatasetLoads.WithLabelValues(key).Inc()
	}
}

// persistLedger writes the current ledger dataset through the store.
func (h *Handler) persistLedger(ctx context.Context) error {
	data, err := json.Marshal(h.ws.Ledger())
	if err != nil {
		return err
	}
	if err := h.store.SaveDataset(ctx, domain.KeyLedger, data); err != nil {
		if h.metrics != nil {
			h.metrics.StoreFailures.Inc()
		}
		return err
	}
	if h.metrics != nil {
		h.metrics.DatasetSaves.WithLabelValues(domain.KeyLedger).Inc()
	}
	return nil
}

// persistCases writes the current case dataset through the store.
func (h *Handler) persistCases(ctx context.Context) error {
	records := h.ws.Cases()
	cores := make([]domain.CaseCore, len(records))
	for i, rec := range records {
		cores[i] = rec.CaseCore
	}
	data, err := json.Marshal(cores)
	if err != nil {
		return err
	}
	if err := h.store.SaveDataset(ctx, domain.KeyCases, data); err != nil {
		if h.metrics != nil {
			h.metrics.StoreFailures.Inc()
		}
		return err
	}
	if h.metrics != nil {
		h.metrics.DatasetSaves.WithLabelValues(domain.KeyCases).Inc()
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
