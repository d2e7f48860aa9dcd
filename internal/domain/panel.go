package domain

import "time"

// PanelState is the dashboard panel lifecycle:
// idle → loading → {ready | error}. A new loading never clears prior ready
// data; the snapshot is marked stale instead.
type PanelState string

const (
	PanelIdle    PanelState = "idle"
	PanelLoading PanelState = "loading"
	PanelReady   PanelState = "ready"
	PanelError   PanelState = "error"
)

// Panel names used in snapshots, logs and metrics labels.
const (
	PanelAnalytics   = "analytics"
	PanelCompetitive = "competitive"
	PanelNegotiation = "negotiation_plan"
	PanelOutcomes    = "outcomes"
)

// Refresh triggers, recorded in metrics so manual and timer-driven
// refreshes can be told apart.
const (
	TriggerInitial = "initial"
	TriggerFilter  = "filter_change"
	TriggerManual  = "manual"
	TriggerTimer   = "timer"
	TriggerSave    = "save"
)

// PanelSnapshot is the serializable view of a panel's state machine. Data
// holds the last applied view; it survives reloads and errors so the UI
// never blanks out mid-refetch.
type PanelSnapshot struct {
	Panel       string     `json:"panel"`
	State       PanelState `json:"state"`
	Data        any        `json:"data,omitempty"`
	Error       string     `json:"error,omitempty"`
	Stale       bool       `json:"stale"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}
