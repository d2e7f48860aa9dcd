package usecase

import (
	"context"

	"github.com/adirathodd/cs-490-project-sub009/internal/domain"
	"github.com/adirathodd/cs-490-project-sub009/internal/infrastructure"
	"github.com/adirathodd/cs-490-project-sub009/pkg/logger"
	"github.com/adirathodd/cs-490-project-sub009/pkg/metrics"
)

// GoalsService reconciles the goal-target edit buffer with the backend.
// Saves go through the buffer: a rejected draft stays staged so a background
// refresh cannot clobber what the user typed.
type GoalsService struct {
	workspaces *infrastructure.WorkspaceStore
	client     domain.AnalyticsClient
	dashboards *DashboardService
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewGoalsService(
	workspaces *infrastructure.WorkspaceStore,
	client domain.AnalyticsClient,
	dashboards *DashboardService,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *GoalsService {
	return &GoalsService{
		workspaces: workspaces,
		client:     client,
		dashboards: dashboards,
		logger:     logger,
		metrics:    metrics,
	}
}

// SaveGoals validates the drafted targets and pushes them upstream. At least
// one field must parse to a positive integer or the save is rejected before
// any network call. On success the draft is marked clean and analytics is
// refetched, because the server owns the progress percentages.
func (s *GoalsService) SaveGoals(ctx context.Context, userID string, draft domain.GoalTargetDraft) (*AnalyticsPanelView, error) {
	ws, err := s.workspaces.Get(userID)
	if err != nil {
		return nil, err
	}

	// Stage before validating so rejected input survives in the buffer.
	ws.StageGoalDraft(draft)

	payload, err := domain.BuildGoalUpdate(draft)
	if err != nil {
		s.metrics.RecordEditSave("goals", "rejected")
		return nil, err
	}

	ctx = domain.WithCredential(ctx, ws.Credential())
	if err := s.client.UpdateGoals(ctx, payload); err != nil {
		s.metrics.RecordEditSave("goals", "failed")
		s.logger.WithContext(ctx).WithError(err).WithField("workspace_id", ws.ID).Error("Goal target save failed")
		return nil, err
	}

	ws.MarkGoalSaved()
	s.metrics.RecordEditSave("goals", "saved")
	s.logger.WithContext(ctx).WithFields(map[string]any{
		"workspace_id":   ws.ID,
		"weekly_target":  payload.WeeklyTarget,
		"monthly_target": payload.MonthlyTarget,
	}).Info("Goal targets saved")

	// Server-derived progress comes back with the refetch; the buffer is
	// clean now, so the fresh values reseed it.
	s.dashboards.RefreshAnalytics(ctx, ws, domain.TriggerSave)

	return s.dashboards.analyticsPanelView(ws), nil
}
