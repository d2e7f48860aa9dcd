package usecase

import (
	"context"
	"sync"

	"github.com/adirathodd/cs-490-project-sub009/internal/derive"
	"github.com/adirathodd/cs-490-project-sub009/internal/domain"
	"github.com/adirathodd/cs-490-project-sub009/internal/infrastructure"
	"github.com/adirathodd/cs-490-project-sub009/pkg/logger"
	"github.com/adirathodd/cs-490-project-sub009/pkg/metrics"
)

// WorkspaceView is the full dashboard state returned on open and after
// filter operations.
type WorkspaceView struct {
	WorkspaceID string               `json:"workspace_id"`
	Watch       bool                 `json:"watch"`
	Filters     domain.FilterState   `json:"filters"`
	Analytics   domain.PanelSnapshot `json:"analytics"`
	Competitive domain.PanelSnapshot `json:"competitive"`
}

// AnalyticsPanelView is the analytics snapshot together with the pending
// goal-target edit buffer that belongs to that panel.
type AnalyticsPanelView struct {
	domain.PanelSnapshot
	GoalDraft domain.GoalTargetDraft `json:"goal_draft"`
	GoalDirty bool                   `json:"goal_dirty"`
}

// DashboardService owns the analytics and competitive panels: opening and
// closing workspaces, filter changes, and every refresh path (initial,
// filter change, manual, timer). All refreshes run through fetch tickets so
// a stale response can never overwrite a newer one.
type DashboardService struct {
	workspaces *infrastructure.WorkspaceStore
	client     domain.AnalyticsClient
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewDashboardService(
	workspaces *infrastructure.WorkspaceStore,
	client domain.AnalyticsClient,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *DashboardService {
	return &DashboardService{
		workspaces: workspaces,
		client:     client,
		logger:     logger,
		metrics:    metrics,
	}
}

// Open creates (or returns) the user's workspace. A fresh workspace loads
// both dashboard panels before returning; reopening returns the current
// state without forcing a refetch.
func (s *DashboardService) Open(ctx context.Context, userID, credential string) (*WorkspaceView, bool, error) {
	ws, created := s.workspaces.Open(ctx, userID, credential)
	if created {
		s.refreshBoth(ctx, ws, domain.TriggerInitial)
	}
	s.metrics.SetWorkspacesActive(s.workspaces.ActiveCount())
	return s.workspaceView(ws), created, nil
}

// Close ends the user's session. Timers stop and any fetch still in flight
// resolves into the void.
func (s *DashboardService) Close(ctx context.Context, userID string) error {
	if err := s.workspaces.Close(ctx, userID); err != nil {
		return err
	}
	s.metrics.SetWorkspacesActive(s.workspaces.ActiveCount())
	return nil
}

// AnalyticsPanel returns the analytics snapshot plus the goal edit buffer.
func (s *DashboardService) AnalyticsPanel(ctx context.Context, userID string) (*AnalyticsPanelView, error) {
	ws, err := s.workspaces.Get(userID)
	if err != nil {
		return nil, err
	}
	return s.analyticsPanelView(ws), nil
}

// CompetitivePanel returns the competitive snapshot.
func (s *DashboardService) CompetitivePanel(ctx context.Context, userID string) (domain.PanelSnapshot, error) {
	ws, err := s.workspaces.Get(userID)
	if err != nil {
		return domain.PanelSnapshot{}, err
	}
	return ws.Panel(domain.PanelCompetitive).Snapshot(), nil
}

// UpdateFilters validates and stores a new filter state, then refetches both
// panels with it. Prior panel data stays visible until the new fetches land.
func (s *DashboardService) UpdateFilters(ctx context.Context, userID string, filters domain.FilterState) (*WorkspaceView, error) {
	ws, err := s.workspaces.Get(userID)
	if err != nil {
		return nil, err
	}
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	ws.SetFilters(filters)
	s.refreshBoth(ctx, ws, domain.TriggerFilter)
	return s.workspaceView(ws), nil
}

// ResetFilters restores the default filter state and refetches with the
// fresh params, never the stale ones.
func (s *DashboardService) ResetFilters(ctx context.Context, userID string) (*WorkspaceView, error) {
	ws, err := s.workspaces.Get(userID)
	if err != nil {
		return nil, err
	}
	ws.ResetFilters()
	s.refreshBoth(ctx, ws, domain.TriggerFilter)
	return s.workspaceView(ws), nil
}

// RefreshNow is the user-initiated refresh. It shares the fetch paths with
// the timer loop but never queues behind it.
func (s *DashboardService) RefreshNow(ctx context.Context, userID string) (*WorkspaceView, error) {
	ws, err := s.workspaces.Get(userID)
	if err != nil {
		return nil, err
	}
	s.refreshBoth(ctx, ws, domain.TriggerManual)
	return s.workspaceView(ws), nil
}

// SetWatch toggles the 30-second auto-refresh loop for the workspace.
func (s *DashboardService) SetWatch(ctx context.Context, userID string, enabled bool) (*WorkspaceView, error) {
	ws, err := s.workspaces.Get(userID)
	if err != nil {
		return nil, err
	}
	ws.SetWatch(enabled)
	s.logger.WithContext(ctx).WithFields(map[string]any{
		"workspace_id": ws.ID,
		"watch":        enabled,
	}).Info("Watch mode updated")
	return s.workspaceView(ws), nil
}

// RefreshWatched runs one timer tick: every watch-enabled workspace is
// refreshed concurrently, skipping any workspace whose previous timer
// refresh has not finished yet so intervals never stack.
func (s *DashboardService) RefreshWatched(ctx context.Context) {
	watched := s.workspaces.WatchEnabled()
	if len(watched) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, ws := range watched {
		if !ws.TryBeginRefresh() {
			s.logger.WithField("workspace_id", ws.ID).Debug("Timer refresh still running, skipping tick")
			continue
		}
		wg.Add(1)
		go func(ws *infrastructure.Workspace) {
			defer wg.Done()
			defer ws.EndRefresh()
			// Workspace context, so closing the workspace aborts the fetch.
			s.refreshBoth(ws.Context(), ws, domain.TriggerTimer)
		}(ws)
	}
	wg.Wait()
}

// RefreshAnalytics refetches the analytics panel. Exported for the goals
// service, whose save path must rehydrate server-owned progress figures.
func (s *DashboardService) RefreshAnalytics(ctx context.Context, ws *infrastructure.Workspace, trigger string) {
	params := ws.Filters().BuildParams()
	ticket := ws.Panel(domain.PanelAnalytics).Begin(trigger, params)
	ctx = domain.WithCredential(ctx, ws.Credential())

	report, err := s.client.GetAnalytics(ctx, ticket.Params)
	if err != nil {
		applyRefresh(ctx, s.logger, s.metrics, ws, ticket, nil, err)
		return
	}

	if applyRefresh(ctx, s.logger, s.metrics, ws, ticket, derive.BuildAnalyticsView(report), nil) {
		// Reseed the goal buffer only when the response was applied; a
		// stale fetch must not leak into the edit buffer either.
		ws.SeedGoalDraft(report.GoalProgress)
	}
}

// refreshCompetitive refetches the competitive panel.
func (s *DashboardService) refreshCompetitive(ctx context.Context, ws *infrastructure.Workspace, trigger string) {
	params := ws.Filters().BuildParams()
	ticket := ws.Panel(domain.PanelCompetitive).Begin(trigger, params)
	ctx = domain.WithCredential(ctx, ws.Credential())

	report, err := s.client.GetCompetitiveAnalysis(ctx, ticket.Params)
	if err != nil {
		applyRefresh(ctx, s.logger, s.metrics, ws, ticket, nil, err)
		return
	}

	applyRefresh(ctx, s.logger, s.metrics, ws, ticket, derive.BuildCompetitiveView(report), nil)
}

// refreshBoth fetches the two dashboard panels concurrently.
func (s *DashboardService) refreshBoth(ctx context.Context, ws *infrastructure.Workspace, trigger string) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		s.RefreshAnalytics(ctx, ws, trigger)
	}()

	go func() {
		defer wg.Done()
		s.refreshCompetitive(ctx, ws, trigger)
	}()

	wg.Wait()
}

func (s *DashboardService) workspaceView(ws *infrastructure.Workspace) *WorkspaceView {
	return &WorkspaceView{
		WorkspaceID: ws.ID,
		Watch:       ws.Watch(),
		Filters:     ws.Filters(),
		Analytics:   ws.Panel(domain.PanelAnalytics).Snapshot(),
		Competitive: ws.Panel(domain.PanelCompetitive).Snapshot(),
	}
}

func (s *DashboardService) analyticsPanelView(ws *infrastructure.Workspace) *AnalyticsPanelView {
	draft, dirty := ws.GoalDraft()
	return &AnalyticsPanelView{
		PanelSnapshot: ws.Panel(domain.PanelAnalytics).Snapshot(),
		GoalDraft:     draft,
		GoalDirty:     dirty,
	}
}
