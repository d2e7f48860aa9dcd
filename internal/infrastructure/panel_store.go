package infrastructure

import (
	"sync"
	"time"

	"github.com/adirathodd/cs-490-project-sub009/internal/domain"
)

// FetchTicket tags one issued fetch with the panel, the trigger that caused
// it, the sequence number it was issued at, and a snapshot of the params in
// effect at issue time. A completion is applied only while its ticket is
// still the most recently issued one for the panel.
type FetchTicket struct {
	Panel   string
	Trigger string
	Seq     uint64
	Params  domain.Params
}

// PanelStore holds one dashboard panel's state machine:
// idle → loading → {ready | error}. Previously applied data survives both a
// new loading and an error completion, so a refetch never blanks the panel.
type PanelStore struct {
	mu          sync.Mutex
	panel       string
	state       domain.PanelState
	data        any
	errMsg      string
	lastUpdated *time.Time
	seq         uint64
}

// NewPanelStore creates an idle panel store.
func NewPanelStore(panel string) *PanelStore {
	return &PanelStore{panel: panel, state: domain.PanelIdle}
}

// Name returns the panel identifier used in snapshots and metric labels.
func (p *PanelStore) Name() string { return p.panel }

// Begin enters loading and issues the ticket for a new fetch. Prior ready
// data is kept in place; the snapshot reports Stale=true until a completion
// lands.
func (p *PanelStore) Begin(trigger string, params domain.Params) FetchTicket {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.seq++
	p.state = domain.PanelLoading
	return FetchTicket{
		Panel:   p.panel,
		Trigger: trigger,
		Seq:     p.seq,
		Params:  params.Clone(),
	}
}

// Complete applies a fetch result. It reports false, and writes nothing,
// when a newer ticket has been issued since: the most recently issued
// request wins regardless of arrival order.
func (p *PanelStore) Complete(ticket FetchTicket, data any, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ticket.Seq != p.seq {
		return false
	}

	if err != nil {
		p.state = domain.PanelError
		p.errMsg = err.Error()
		return true
	}

	now := time.Now().UTC()
	p.state = domain.PanelReady
	p.data = data
	p.errMsg = ""
	p.lastUpdated = &now
	return true
}

// Loaded reports whether the panel has ever been fetched. An idle panel is
// fetched lazily on first read.
func (p *PanelStore) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state != domain.PanelIdle
}

// Snapshot returns the serializable view of the panel. Stale is true while
// a fetch newer than the applied data is still in flight.
func (p *PanelStore) Snapshot() domain.PanelSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	var updated *time.Time
	if p.lastUpdated != nil {
		t := *p.lastUpdated
		updated = &t
	}
	return domain.PanelSnapshot{
		Panel:       p.panel,
		State:       p.state,
		Data:        p.data,
		Error:       p.errMsg,
		Stale:       p.state == domain.PanelLoading && p.data != nil,
		LastUpdated: updated,
	}
}
