// Package state holds the in-process working copy of the dashboard
// datasets between persistence round-trips.
package state

import (
	"sort"
	"sync"
	"time"

	"github.com/courtmetrics/gavel/internal/domain"
)

// Workspace is the mutable working set behind the API handlers. All
// accessors return copies, so callers can aggregate without holding the
// lock.
type Workspace struct {
	mu         sync.RWMutex
	ledger     []domain.LedgerRow
	cases      []domain.CaseRecord
	milestones []domain.Milestone
	loaded     bool
}

// New creates an empty workspace.
func New() *Workspace {
	return &Workspace{}
}

// Loaded reports whether the workspace was hydrated from the store.
func (w *Workspace) Loaded() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loaded
}

// MarkLoaded flags the workspace as hydrated, even when the store had
// no datasets yet.
func (w *Workspace) MarkLoaded() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.loaded = true
}

// Ledger returns a copy of the current ledger rows. Metric maps are
// copied too, so a returned row never shares state with a later edit.
func (w *Workspace) Ledger() []domain.LedgerRow {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]domain.LedgerRow, len(w.ledger))
	for i, row := range w.ledger {
		metrics := make(map[string]float64, len(row.Metrics))
		for k, v := range row.Metrics {
			metrics[k] = v
		}
		row.Metrics = metrics
		out[i] = row
	}
	return out
}

// SetLedger replaces the ledger dataset.
func (w *Workspace) SetLedger(rows []domain.LedgerRow) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ledger = rows
	w.loaded = true
}

// AppendLedgerRow adds a row to the end of the ledger, the manual-entry
// path for a period the export has not produced yet.
func (w *Workspace) AppendLedgerRow(row domain.LedgerRow) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ledger = append(w.ledger, row)
}

// SetLedgerCell updates one metric of the row with the given period
// label. False when no row carries the label or the column is unknown.
func (w *Workspace) SetLedgerCell(period, metric string, value float64) bool {
	known := false
	for _, col := range domain.MetricColumns {
		if col == metric {
			known = true
			break
		}
	}
	if !known {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.ledger {
		if w.ledger[i].Period == period {
			if w.ledger[i].Metrics == nil {
				w.ledger[i].Metrics = map[string]float64{}
			}
			w.ledger[i].Metrics[metric] = value
			return true
		}
	}
	return false
}

// RenameLedgerRow relabels the row carrying the old period and re-sorts
// the ledger so chronological order survives the move. False when no
// row carries the old label.
func (w *Workspace) RenameLedgerRow(oldPeriod, newPeriod string, date time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.ledger {
		if w.ledger[i].Period == oldPeriod {
			w.ledger[i].Period = newPeriod
			w.ledger[i].Date = date
			sort.SliceStable(w.ledger, func(a, b int) bool {
				return w.ledger[a].Date.Before(w.ledger[b].Date)
			})
			return true
		}
	}
	return false
}

// Cases returns a copy of the current case records.
func (w *Workspace) Cases() []domain.CaseRecord {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]domain.CaseRecord, len(w.cases))
	copy(out, w.cases)
	return out
}

// SetCases replaces the case dataset.
func (w *Workspace) SetCases(records []domain.CaseRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cases = records
	w.loaded = true
}

// Milestones returns a copy of the milestone list.
func (w *Workspace) Milestones() []domain.Milestone {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]domain.Milestone, len(w.milestones))
	copy(out, w.milestones)
	return out
}

// AddMilestone appends a milestone annotation.
func (w *Workspace) AddMilestone(m domain.Milestone) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.milestones = append(w.milestones, m)
}

// RemoveMilestone deletes the milestone at index, false when out of
// range.
func (w *Workspace) RemoveMilestone(index int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if index < 0 || index >= len(w.milestones) {
		return false
	}
	w.milestones = append(w.milestones[:index], w.milestones[index+1:]...)
	return true
}
