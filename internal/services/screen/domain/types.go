// Package domain defines the types and ports for activity screening
package domain

import (
	"time"

	"trawlwatch/internal/core/classify"
	resolvedom "trawlwatch/internal/services/resolve/domain"
)

// ActivityEvent is one raw activity record from the events collaborator.
// Start/End are textual timestamps; events missing either endpoint or
// failing both accepted layouts are dropped from aggregation, not fatal
type ActivityEvent struct {
	ID    string `json:"id,omitempty"`
	Type  string `json:"type,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Input is one unit of work: a primary identifier plus an optional name
type Input struct {
	PrimaryID string
	Name      string
}

// Params gates and thresholds for one classification
type Params struct {
	// JurisdictionFilter is the expected flag code; empty disables the gate
	JurisdictionFilter string `json:"jurisdiction_filter" validate:"omitempty,len=3"`

	// EffortThresholdHours is the minimum merged effort for Genuine
	EffortThresholdHours float64 `json:"effort_threshold_hours" validate:"gte=0"`

	// Start/End bound the events query
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required,gtefield=Start"`
}

// Result is one classified unit, recomputed per request and never cached
type Result struct {
	Identity resolvedom.Record `json:"identity"`

	// TotalHours is nil when effort was not computed (short-circuit paths)
	TotalHours *float64 `json:"total_hours"`

	Label classify.Label `json:"label"`

	// DroppedEvents counts events excluded for unparseable or inverted
	// timestamps (observability only)
	DroppedEvents int `json:"dropped_events,omitempty"`

	Fishing      bool `json:"is_fishing"`
	SuperTrawler bool `json:"is_super_trawler"`
}
