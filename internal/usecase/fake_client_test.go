package usecase_test

import (
	"context"
	"sync"

	"github.com/adirathodd/cs-490-project-sub009/internal/domain"
	"github.com/adirathodd/cs-490-project-sub009/pkg/logger"
	"github.com/adirathodd/cs-490-project-sub009/pkg/metrics"
)

// One metrics instance for the whole test binary; prometheus collectors
// cannot be registered twice.
var testMetrics = metrics.New()

func testLogger() *logger.Logger {
	return logger.New("error")
}

// fakeCareerClient implements domain.CareerClient with canned responses,
// call recording, and per-call hooks for tests that need to control timing.
type fakeCareerClient struct {
	mu sync.Mutex

	analyticsParams   []domain.Params
	analyticsCreds    []string
	competitiveParams []domain.Params
	goalPayloads      []domain.GoalUpdatePayload
	savedOffers       []domain.OfferDetails
	planForces        []bool
	outcomeListCalls  int
	createdOutcomes   []domain.OutcomePayload
	deletedIDs        []string

	analyticsReport   *domain.AnalyticsReport
	competitiveReport *domain.CompetitiveReport
	plan              *domain.NegotiationPlan
	outcomeList       *domain.OutcomeList

	analyticsHook func(domain.Params) (*domain.AnalyticsReport, error)

	analyticsErr     error
	competitiveErr   error
	updateGoalsErr   error
	planErr          error
	saveOfferErr     error
	listOutcomesErr  error
	createOutcomeErr error
	deleteOutcomeErr error
}

func newFakeClient() *fakeCareerClient {
	return &fakeCareerClient{
		analyticsReport: &domain.AnalyticsReport{
			FunnelAnalytics: domain.FunnelAnalytics{
				StatusCounts: map[string]int{"applied": 10, "interview": 2},
				SuccessRate:  domain.Float64Ptr(10),
			},
			GoalProgress: domain.GoalProgress{
				Weekly: domain.GoalPeriodProgress{Current: 2, Target: 5, ProgressPercent: domain.Float64Ptr(40)},
			},
		},
		competitiveReport: &domain.CompetitiveReport{
			Cohort:      domain.Cohort{Industry: "tech", ExperienceLevel: "mid", SampleSize: 40},
			UserMetrics: domain.CandidateMetrics{SuccessRate: domain.Float64Ptr(12)},
		},
		plan: &domain.NegotiationPlan{
			Offer:            domain.OfferDetails{BaseSalary: domain.Float64Ptr(150000)},
			ReadinessPercent: domain.Float64Ptr(40),
		},
		outcomeList: &domain.OutcomeList{
			Outcomes:    []domain.NegotiationOutcome{{ID: "out-1", Stage: domain.OutcomeStageOffer, Status: domain.OutcomeStatusPending}},
			Progression: domain.OutcomeProgression{Attempts: 1},
		},
	}
}

func (f *fakeCareerClient) GetAnalytics(ctx context.Context, params domain.Params) (*domain.AnalyticsReport, error) {
	f.mu.Lock()
	f.analyticsParams = append(f.analyticsParams, params.Clone())
	f.analyticsCreds = append(f.analyticsCreds, domain.CredentialFromContext(ctx))
	hook := f.analyticsHook
	err := f.analyticsErr
	report := f.analyticsReport
	f.mu.Unlock()

	// The hook runs outside the lock; tests use it to block a fetch.
	if hook != nil {
		return hook(params)
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (f *fakeCareerClient) GetCompetitiveAnalysis(ctx context.Context, params domain.Params) (*domain.CompetitiveReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.competitiveParams = append(f.competitiveParams, params.Clone())
	if f.competitiveErr != nil {
		return nil, f.competitiveErr
	}
	return f.competitiveReport, nil
}

func (f *fakeCareerClient) UpdateGoals(ctx context.Context, payload domain.GoalUpdatePayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateGoalsErr != nil {
		return f.updateGoalsErr
	}
	f.goalPayloads = append(f.goalPayloads, payload)
	return nil
}

func (f *fakeCareerClient) GetNegotiationPlan(ctx context.Context, forceRefresh bool) (*domain.NegotiationPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.planForces = append(f.planForces, forceRefresh)
	if f.planErr != nil {
		return nil, f.planErr
	}
	return f.plan, nil
}

func (f *fakeCareerClient) SaveOffer(ctx context.Context, offer domain.OfferDetails) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveOfferErr != nil {
		return f.saveOfferErr
	}
	f.savedOffers = append(f.savedOffers, offer)
	return nil
}

func (f *fakeCareerClient) ListOutcomes(ctx context.Context) (*domain.OutcomeList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomeListCalls++
	if f.listOutcomesErr != nil {
		return nil, f.listOutcomesErr
	}
	return f.outcomeList, nil
}

func (f *fakeCareerClient) CreateOutcome(ctx context.Context, payload domain.OutcomePayload) (*domain.NegotiationOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createOutcomeErr != nil {
		return nil, f.createOutcomeErr
	}
	f.createdOutcomes = append(f.createdOutcomes, payload)
	return &domain.NegotiationOutcome{ID: "out-new", Stage: payload.Stage, Status: payload.Status}, nil
}

func (f *fakeCareerClient) DeleteOutcome(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteOutcomeErr != nil {
		return f.deleteOutcomeErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeCareerClient) analyticsCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.analyticsParams)
}

func (f *fakeCareerClient) competitiveCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.competitiveParams)
}

func (f *fakeCareerClient) lastAnalyticsParams() domain.Params {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.analyticsParams) == 0 {
		return nil
	}
	return f.analyticsParams[len(f.analyticsParams)-1]
}

func (f *fakeCareerClient) ledgerCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcomeListCalls
}

func (f *fakeCareerClient) lastAnalyticsCredential() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.analyticsCreds) == 0 {
		return ""
	}
	return f.analyticsCreds[len(f.analyticsCreds)-1]
}

func (f *fakeCareerClient) recordedGoalPayloads() []domain.GoalUpdatePayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.GoalUpdatePayload(nil), f.goalPayloads...)
}

func (f *fakeCareerClient) recordedOffers() []domain.OfferDetails {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.OfferDetails(nil), f.savedOffers...)
}

func (f *fakeCareerClient) recordedPlanForces() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bool(nil), f.planForces...)
}

func (f *fakeCareerClient) recordedCreatedOutcomes() []domain.OutcomePayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.OutcomePayload(nil), f.createdOutcomes...)
}

func (f *fakeCareerClient) recordedDeletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletedIDs...)
}

func (f *fakeCareerClient) setAnalyticsReport(report *domain.AnalyticsReport) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyticsReport = report
}

func (f *fakeCareerClient) setPlan(plan *domain.NegotiationPlan) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plan = plan
}

func (f *fakeCareerClient) setOutcomeList(list *domain.OutcomeList) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomeList = list
}

func (f *fakeCareerClient) setAnalyticsErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyticsErr = err
}

func (f *fakeCareerClient) setUpdateGoalsErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateGoalsErr = err
}

func (f *fakeCareerClient) setSaveOfferErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveOfferErr = err
}

func (f *fakeCareerClient) setDeleteOutcomeErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteOutcomeErr = err
}

func (f *fakeCareerClient) setAnalyticsHook(hook func(domain.Params) (*domain.AnalyticsReport, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyticsHook = hook
}
