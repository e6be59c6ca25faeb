package domain

import (
	"encoding/json"
	"fmt"
)

// Severity ranks an alert. Higher values sort first in API responses.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalJSON emits the severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the lowercase name form.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "low":
		*s = SeverityLow
	case "medium":
		*s = SeverityMedium
	case "high":
		*s = SeverityHigh
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("unknown severity %q", name)
	}
	return nil
}

// Alert is one rule hit against a case record.
type Alert struct {
	ID                 string   `json:"id"`
	Severity           Severity `json:"severity"`
	Category           string   `json:"category"`
	CaseID             string   `json:"processo"`
	Message            string   `json:"message"`
	Value              float64  `json:"value"`
	Threshold          *float64 `json:"threshold,omitempty"`
	RecommendedActions []string `json:"recommendedActions"`
}
