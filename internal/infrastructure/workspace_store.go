package infrastructure

import (
	"context"
	"sync"
	"time"

	"github.com/adirathodd/cs-490-project-sub009/internal/domain"
	"github.com/adirathodd/cs-490-project-sub009/pkg/logger"

	"github.com/google/uuid"
)

// Workspace is one user's open dashboard session: the filter state, the
// per-panel snapshots, and the pending-edit buffers. Edit buffers are only
// written by explicit user actions; background refreshes replace
// server-derived panel data and reseed a buffer only while it is clean.
type Workspace struct {
	ID       string
	UserID   string
	OpenedAt time.Time

	mu         sync.RWMutex
	credential string
	filters    domain.FilterState
	goalDraft  domain.GoalTargetDraft
	goalDirty  bool
	offerDraft domain.OfferDraft
	offerDirty bool
	watch      bool
	refreshing bool
	closed     bool

	panels map[string]*PanelStore
	ctx    context.Context
	cancel context.CancelFunc
}

func newWorkspace(userID, credential string) *Workspace {
	ctx, cancel := context.WithCancel(context.Background())
	ws := &Workspace{
		ID:         uuid.New().String(),
		UserID:     userID,
		OpenedAt:   time.Now().UTC(),
		credential: credential,
		filters:    domain.DefaultFilterState(),
		panels:     make(map[string]*PanelStore, 4),
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, panel := range []string{
		domain.PanelAnalytics,
		domain.PanelCompetitive,
		domain.PanelNegotiation,
		domain.PanelOutcomes,
	} {
		ws.panels[panel] = NewPanelStore(panel)
	}
	return ws
}

// Panel returns the store for the named panel.
func (w *Workspace) Panel(name string) *PanelStore {
	return w.panels[name]
}

// Context is the workspace lifetime context. Closing the workspace cancels
// it, aborting any upstream call issued on its behalf.
func (w *Workspace) Context() context.Context {
	return w.ctx
}

// Credential returns the Authorization value captured at open.
func (w *Workspace) Credential() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.credential
}

func (w *Workspace) setCredential(credential string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if credential != "" {
		w.credential = credential
	}
}

// Filters returns a copy of the current filter state.
func (w *Workspace) Filters() domain.FilterState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.filters.Clone()
}

// SetFilters replaces the filter state. Validation happens upstream of the
// store; by the time state lands here it is well formed.
func (w *Workspace) SetFilters(filters domain.FilterState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filters = filters.Clone()
}

// ResetFilters restores the default filter state and returns it.
func (w *Workspace) ResetFilters() domain.FilterState {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filters = domain.DefaultFilterState()
	return w.filters.Clone()
}

// GoalDraft returns the pending goal-target edits and their dirty flag.
func (w *Workspace) GoalDraft() (domain.GoalTargetDraft, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.goalDraft, w.goalDirty
}

// StageGoalDraft buffers goal-target edits without touching the network.
func (w *Workspace) StageGoalDraft(draft domain.GoalTargetDraft) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.goalDraft = draft
	w.goalDirty = true
}

// SeedGoalDraft reseeds the goal buffer from server state, but only while
// the buffer is clean: a refresh never clobbers unsaved user input.
func (w *Workspace) SeedGoalDraft(progress domain.GoalProgress) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.goalDirty {
		return
	}
	w.goalDraft = domain.SeedGoalDraft(progress)
}

// MarkGoalSaved clears the dirty flag after a successful save, letting the
// follow-up refetch reseed the buffer from the authoritative server state.
func (w *Workspace) MarkGoalSaved() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.goalDirty = false
}

// OfferDraft returns the pending offer edits and their dirty flag.
func (w *Workspace) OfferDraft() (domain.OfferDraft, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.offerDraft, w.offerDirty
}

// StageOfferDraft buffers offer edits without touching the network.
func (w *Workspace) StageOfferDraft(draft domain.OfferDraft) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.offerDraft = draft
	w.offerDirty = true
}

// SeedOfferDraft reseeds the offer buffer from hydrated server state. A
// forced seed (after an explicit save) overwrites staged edits; otherwise
// the buffer is reseeded only while clean.
func (w *Workspace) SeedOfferDraft(offer domain.OfferDetails, force bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.offerDirty && !force {
		return
	}
	w.offerDraft = domain.SeedOfferDraft(offer)
	w.offerDirty = false
}

// Watch reports whether the auto-refresh loop covers this workspace.
func (w *Workspace) Watch() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.watch
}

// SetWatch toggles auto-refresh for this workspace.
func (w *Workspace) SetWatch(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watch = enabled
}

// TryBeginRefresh claims the timer-refresh slot. It reports false while a
// previous timer refresh is still running, so ticks never stack. Manual
// refreshes bypass this guard: they are user-initiated and race safely via
// fetch tickets.
func (w *Workspace) TryBeginRefresh() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.refreshing || w.closed {
		return false
	}
	w.refreshing = true
	return true
}

// EndRefresh releases the timer-refresh slot.
func (w *Workspace) EndRefresh() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refreshing = false
}

// Closed reports whether the workspace has been closed.
func (w *Workspace) Closed() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.closed
}

// Close ends the session: watch stops, the workspace context is cancelled,
// and any fetch completion arriving afterwards is ignored. Close is
// idempotent and terminal.
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	w.watch = false
	w.cancel()
}

// CompletePanel applies a fetch result to the named panel unless the
// workspace is closed or a newer fetch was issued since. It reports whether
// the completion was applied.
func (w *Workspace) CompletePanel(ticket FetchTicket, data any, err error) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return false
	}
	panel := w.panels[ticket.Panel]
	if panel == nil {
		return false
	}
	return panel.Complete(ticket, data, err)
}

// WorkspaceStore keeps the open workspaces, one per user.
type WorkspaceStore struct {
	mu     sync.RWMutex
	byUser map[string]*Workspace
	logger *logger.Logger
}

// NewWorkspaceStore creates an empty workspace store.
func NewWorkspaceStore(logger *logger.Logger) *WorkspaceStore {
	return &WorkspaceStore{
		byUser: make(map[string]*Workspace),
		logger: logger,
	}
}

// Open returns the user's workspace, creating it when none is open. Opening
// is idempotent: a second open returns the existing workspace (with the
// credential refreshed) rather than resetting its state.
func (s *WorkspaceStore) Open(ctx context.Context, userID, credential string) (*Workspace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ws, ok := s.byUser[userID]; ok && !ws.Closed() {
		ws.setCredential(credential)
		return ws, false
	}

	ws := newWorkspace(userID, credential)
	s.byUser[userID] = ws

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"workspace_id": ws.ID,
		"user_id":      userID,
	}).Info("Workspace opened")

	return ws, true
}

// Get returns the user's open workspace.
func (s *WorkspaceStore) Get(userID string) (*Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ws, ok := s.byUser[userID]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	if ws.Closed() {
		return nil, domain.ErrWorkspaceClosed
	}
	return ws, nil
}

// Close closes and removes the user's workspace.
func (s *WorkspaceStore) Close(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.byUser[userID]
	if !ok {
		return domain.ErrWorkspaceNotFound
	}
	ws.Close()
	delete(s.byUser, userID)

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"workspace_id": ws.ID,
		"user_id":      userID,
	}).Info("Workspace closed")

	return nil
}

// WatchEnabled returns the open workspaces with auto-refresh enabled.
func (s *WorkspaceStore) WatchEnabled() []*Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var watched []*Workspace
	for _, ws := range s.byUser {
		if ws.Watch() && !ws.Closed() {
			watched = append(watched, ws)
		}
	}
	return watched
}

// ActiveCount returns the number of open workspaces.
func (s *WorkspaceStore) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUser)
}
