package usecase

import (
	"context"
	"time"

	"github.com/adirathodd/cs-490-project-sub009/internal/derive"
	"github.com/adirathodd/cs-490-project-sub009/internal/domain"
	"github.com/adirathodd/cs-490-project-sub009/internal/infrastructure"
	"github.com/adirathodd/cs-490-project-sub009/pkg/logger"
	"github.com/adirathodd/cs-490-project-sub009/pkg/metrics"
)

// PlanView is the negotiation plan snapshot together with the offer edit
// buffer that belongs to it.
type PlanView struct {
	domain.PanelSnapshot
	OfferDraft domain.OfferDraft `json:"offer_draft"`
	OfferDirty bool              `json:"offer_dirty"`
}

// NegotiationService owns the negotiation plan panel, the offer edit buffer
// and the outcome ledger. Both panels load lazily on first access; every
// mutation refetches server state instead of patching local copies.
type NegotiationService struct {
	workspaces *infrastructure.WorkspaceStore
	client     domain.NegotiationClient
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewNegotiationService(
	workspaces *infrastructure.WorkspaceStore,
	client domain.NegotiationClient,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *NegotiationService {
	return &NegotiationService{
		workspaces: workspaces,
		client:     client,
		logger:     logger,
		metrics:    metrics,
	}
}

// Plan returns the plan panel, fetching it on first access. With refresh set
// it refetches even when already loaded; prior data stays visible meanwhile.
func (s *NegotiationService) Plan(ctx context.Context, userID string, refresh bool) (*PlanView, error) {
	ws, err := s.workspaces.Get(userID)
	if err != nil {
		return nil, err
	}
	switch {
	case !ws.Panel(domain.PanelNegotiation).Loaded():
		s.refreshPlan(ctx, ws, false, domain.TriggerInitial)
	case refresh:
		s.refreshPlan(ctx, ws, false, domain.TriggerManual)
	}
	return s.planView(ws), nil
}

// StageOffer buffers offer edits without touching the backend. The buffer
// goes dirty, which shields it from background reseeding until a save.
func (s *NegotiationService) StageOffer(ctx context.Context, userID string, draft domain.OfferDraft) (*PlanView, error) {
	ws, err := s.workspaces.Get(userID)
	if err != nil {
		return nil, err
	}
	ws.StageOfferDraft(draft)
	return s.planView(ws), nil
}

// SaveOffer sanitizes the buffered offer and pushes it upstream, then pulls
// the plan back with force_refresh so server-side recomputation (readiness,
// talking points) lands, and overwrites the buffer from the rehydrated plan.
func (s *NegotiationService) SaveOffer(ctx context.Context, userID string) (*PlanView, error) {
	ws, err := s.workspaces.Get(userID)
	if err != nil {
		return nil, err
	}

	draft, _ := ws.OfferDraft()
	if draft.RespondBy != "" {
		if _, err := time.Parse("2006-01-02", draft.RespondBy); err != nil {
			s.metrics.RecordEditSave("offer", "rejected")
			return nil, domain.NewValidationError("respond-by must be a YYYY-MM-DD date")
		}
	}

	offer := draft.Sanitize()
	ctx = domain.WithCredential(ctx, ws.Credential())
	if err := s.client.SaveOffer(ctx, offer); err != nil {
		s.metrics.RecordEditSave("offer", "failed")
		s.logger.WithContext(ctx).WithError(err).WithField("workspace_id", ws.ID).Error("Offer save failed")
		return nil, err
	}

	// The saved offer is server state now; mark the buffer clean so the
	// follow-up refetch can reseed it.
	ws.SeedOfferDraft(offer, true)
	s.metrics.RecordEditSave("offer", "saved")
	s.logger.WithContext(ctx).WithField("workspace_id", ws.ID).Info("Offer details saved")

	s.refreshPlan(ctx, ws, true, domain.TriggerSave)
	return s.planView(ws), nil
}

// Outcomes returns the ledger panel, fetching it on first access.
func (s *NegotiationService) Outcomes(ctx context.Context, userID string, refresh bool) (domain.PanelSnapshot, error) {
	ws, err := s.workspaces.Get(userID)
	if err != nil {
		return domain.PanelSnapshot{}, err
	}
	switch {
	case !ws.Panel(domain.PanelOutcomes).Loaded():
		s.refreshLedger(ctx, ws, domain.TriggerInitial)
	case refresh:
		s.refreshLedger(ctx, ws, domain.TriggerManual)
	}
	return ws.Panel(domain.PanelOutcomes).Snapshot(), nil
}

// CreateOutcome validates and sanitizes the drafted outcome, logs it
// upstream, then refetches the ledger. The server computes lift and
// progression, so there is no local append.
func (s *NegotiationService) CreateOutcome(ctx context.Context, userID string, draft domain.OutcomeDraft) (domain.PanelSnapshot, error) {
	ws, err := s.workspaces.Get(userID)
	if err != nil {
		return domain.PanelSnapshot{}, err
	}

	payload, err := domain.BuildOutcomePayload(draft)
	if err != nil {
		s.metrics.RecordEditSave("outcome_create", "rejected")
		return domain.PanelSnapshot{}, err
	}

	ctx = domain.WithCredential(ctx, ws.Credential())
	created, err := s.client.CreateOutcome(ctx, payload)
	if err != nil {
		s.metrics.RecordEditSave("outcome_create", "failed")
		s.logger.WithContext(ctx).WithError(err).WithField("workspace_id", ws.ID).Error("Outcome create failed")
		return domain.PanelSnapshot{}, err
	}

	s.metrics.RecordEditSave("outcome_create", "saved")
	s.logger.WithContext(ctx).WithFields(map[string]any{
		"workspace_id": ws.ID,
		"outcome_id":   created.ID,
		"stage":        created.Stage,
	}).Info("Negotiation outcome logged")

	s.refreshLedger(ctx, ws, domain.TriggerSave)
	return ws.Panel(domain.PanelOutcomes).Snapshot(), nil
}

// DeleteOutcome removes one ledger row and refetches. A 404 from upstream
// surfaces as ErrOutcomeNotFound; deleting twice is an error, not a no-op.
func (s *NegotiationService) DeleteOutcome(ctx context.Context, userID, outcomeID string) (domain.PanelSnapshot, error) {
	ws, err := s.workspaces.Get(userID)
	if err != nil {
		return domain.PanelSnapshot{}, err
	}

	ctx = domain.WithCredential(ctx, ws.Credential())
	if err := s.client.DeleteOutcome(ctx, outcomeID); err != nil {
		s.metrics.RecordEditSave("outcome_delete", "failed")
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"workspace_id": ws.ID,
			"outcome_id":   outcomeID,
		}).Error("Outcome delete failed")
		return domain.PanelSnapshot{}, err
	}

	s.metrics.RecordEditSave("outcome_delete", "saved")
	s.logger.WithContext(ctx).WithFields(map[string]any{
		"workspace_id": ws.ID,
		"outcome_id":   outcomeID,
	}).Info("Negotiation outcome deleted")

	s.refreshLedger(ctx, ws, domain.TriggerSave)
	return ws.Panel(domain.PanelOutcomes).Snapshot(), nil
}

func (s *NegotiationService) refreshPlan(ctx context.Context, ws *infrastructure.Workspace, force bool, trigger string) {
	ticket := ws.Panel(domain.PanelNegotiation).Begin(trigger, nil)
	ctx = domain.WithCredential(ctx, ws.Credential())

	plan, err := s.client.GetNegotiationPlan(ctx, force)
	if err != nil {
		applyRefresh(ctx, s.logger, s.metrics, ws, ticket, nil, err)
		return
	}

	if applyRefresh(ctx, s.logger, s.metrics, ws, ticket, derive.BuildNegotiationView(plan), nil) {
		// Reseed the offer buffer from the hydrated plan. Forced after an
		// explicit save; otherwise dirty edits win.
		ws.SeedOfferDraft(plan.Offer, force)
	}
}

func (s *NegotiationService) refreshLedger(ctx context.Context, ws *infrastructure.Workspace, trigger string) {
	ticket := ws.Panel(domain.PanelOutcomes).Begin(trigger, nil)
	ctx = domain.WithCredential(ctx, ws.Credential())

	list, err := s.client.ListOutcomes(ctx)
	if err != nil {
		applyRefresh(ctx, s.logger, s.metrics, ws, ticket, nil, err)
		return
	}

	applyRefresh(ctx, s.logger, s.metrics, ws, ticket, derive.BuildLedgerView(list), nil)
}

func (s *NegotiationService) planView(ws *infrastructure.Workspace) *PlanView {
	draft, dirty := ws.OfferDraft()
	return &PlanView{
		PanelSnapshot: ws.Panel(domain.PanelNegotiation).Snapshot(),
		OfferDraft:    draft,
		OfferDirty:    dirty,
	}
}
