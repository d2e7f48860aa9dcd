package usecase

import (
	"context"

	"github.com/adirathodd/cs-490-project-sub009/internal/infrastructure"
	"github.com/adirathodd/cs-490-project-sub009/pkg/logger"
	"github.com/adirathodd/cs-490-project-sub009/pkg/metrics"
)

// applyRefresh pushes a fetch result through the workspace staleness guard
// and records the outcome. Results for superseded tickets (or a closed
// workspace) are discarded, never applied. Reports whether the result was
// applied.
func applyRefresh(ctx context.Context, log *logger.Logger, m *metrics.Metrics, ws *infrastructure.Workspace, ticket infrastructure.FetchTicket, data any, fetchErr error) bool {
	applied := ws.CompletePanel(ticket, data, fetchErr)
	if !applied {
		m.RecordStaleResponseDiscarded(ticket.Panel)
		log.WithPanel(ctx, ticket.Panel).WithFields(map[string]any{
			"workspace_id": ws.ID,
			"trigger":      ticket.Trigger,
		}).Debug("Discarded stale fetch response")
		return false
	}

	if fetchErr != nil {
		m.RecordPanelRefresh(ticket.Panel, ticket.Trigger, "error")
		log.WithPanel(ctx, ticket.Panel).WithError(fetchErr).WithFields(map[string]any{
			"workspace_id": ws.ID,
			"trigger":      ticket.Trigger,
		}).Error("Panel refresh failed, prior data retained")
		return true
	}

	m.RecordPanelRefresh(ticket.Panel, ticket.Trigger, "success")
	log.WithPanel(ctx, ticket.Panel).WithFields(map[string]any{
		"workspace_id": ws.ID,
		"trigger":      ticket.Trigger,
	}).Info("Panel refreshed")
	return true
}
