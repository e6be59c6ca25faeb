package domain

import "time"

// Milestone is an operator-entered annotation pinned to a ledger period,
// shown alongside the charts to explain spikes and dips.
type Milestone struct {
	ID          string    `json:"id"`
	Period      string    `json:"period"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
