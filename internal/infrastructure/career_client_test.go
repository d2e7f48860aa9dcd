package infrastructure_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adirathodd/cs-490-project-sub009/internal/domain"
	"github.com/adirathodd/cs-490-project-sub009/internal/infrastructure"
	"github.com/adirathodd/cs-490-project-sub009/pkg/logger"
	"github.com/adirathodd/cs-490-project-sub009/pkg/metrics"
)

// One registry-backed metrics instance for the whole test binary; prometheus
// collectors cannot be registered twice.
var testMetrics = metrics.New()

func newTestClient(baseURL string) *infrastructure.CareerHTTPClient {
	return infrastructure.NewCareerHTTPClient(baseURL, 5*time.Second, 100, 100, logger.New("error"), testMetrics)
}

func TestCareerClient_AnalyticsParamsAndCredential(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"funnel_analytics": {"status_counts": {"applied": 12, "interview": 3}, "success_rate": 8.5},
			"goal_progress": {"weekly": {"target": 5, "current": 3, "progress_percent": 60}}
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := domain.WithCredential(context.Background(), "Bearer token-1")

	report, err := client.GetAnalytics(ctx, domain.Params{
		"start_date": "2025-01-01",
		"job_types":  "full_time,contract",
	})
	if err != nil {
		t.Fatalf("GetAnalytics() error = %v", err)
	}

	if gotPath != "/api/analytics" {
		t.Errorf("path = %q, want %q", gotPath, "/api/analytics")
	}
	if gotAuth != "Bearer token-1" {
		t.Errorf("Authorization = %q, want forwarded credential", gotAuth)
	}
	if got := gotQuery["start_date"]; len(got) != 1 || got[0] != "2025-01-01" {
		t.Errorf("start_date query = %v, want [2025-01-01]", got)
	}
	if got := gotQuery["job_types"]; len(got) != 1 || got[0] != "full_time,contract" {
		t.Errorf("job_types query = %v, want [full_time,contract]", got)
	}
	if _, present := gotQuery["end_date"]; present {
		t.Error("end_date sent on the wire despite being absent from params")
	}

	if report.FunnelAnalytics.StatusCounts["applied"] != 12 {
		t.Errorf("StatusCounts[applied] = %d, want 12", report.FunnelAnalytics.StatusCounts["applied"])
	}
	if report.GoalProgress.Weekly.Target != 5 {
		t.Errorf("GoalProgress.Weekly.Target = %d, want 5", report.GoalProgress.Weekly.Target)
	}
}

// A payload missing the expected root keys is an empty state, not an error.
func TestCareerClient_MissingRootKeysDecodeEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	report, err := client.GetAnalytics(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetAnalytics() error = %v, want nil for an empty payload", err)
	}
	if len(report.FunnelAnalytics.StatusCounts) != 0 {
		t.Errorf("StatusCounts = %v, want empty", report.FunnelAnalytics.StatusCounts)
	}
	if report.FunnelAnalytics.SuccessRate != nil {
		t.Errorf("SuccessRate = %v, want nil", *report.FunnelAnalytics.SuccessRate)
	}
}

func TestCareerClient_Non2xxMapsToUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetCompetitiveAnalysis(context.Background(), nil)
	var upstreamErr *domain.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("error = %v (%T), want UpstreamError", err, err)
	}
	if upstreamErr.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want %d", upstreamErr.Status, http.StatusServiceUnavailable)
	}
}

func TestCareerClient_PlanForceRefresh(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		io.WriteString(w, `{"readiness_percent": 75}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if _, err := client.GetNegotiationPlan(context.Background(), false); err != nil {
		t.Fatalf("GetNegotiationPlan(false) error = %v", err)
	}
	if _, present := gotQuery["force_refresh"]; present {
		t.Error("force_refresh sent on a plain fetch")
	}

	plan, err := client.GetNegotiationPlan(context.Background(), true)
	if err != nil {
		t.Fatalf("GetNegotiationPlan(true) error = %v", err)
	}
	if got := gotQuery["force_refresh"]; len(got) != 1 || got[0] != "true" {
		t.Errorf("force_refresh query = %v, want [true]", got)
	}
	if plan.ReadinessPercent == nil || *plan.ReadinessPercent != 75 {
		t.Errorf("ReadinessPercent = %v, want 75", plan.ReadinessPercent)
	}
}

// Blank monetary fields must travel as explicit JSON null, never as zero.
func TestCareerClient_SaveOfferSerializesNulls(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	offer := domain.OfferDraft{BaseSalary: "185000", Bonus: "", Equity: "abc"}.Sanitize()
	if err := client.SaveOffer(context.Background(), offer); err != nil {
		t.Fatalf("SaveOffer() error = %v", err)
	}

	if got, ok := gotBody["base_salary"].(float64); !ok || got != 185000 {
		t.Errorf("base_salary = %v, want 185000", gotBody["base_salary"])
	}
	for _, field := range []string{"bonus", "equity", "respond_by"} {
		value, present := gotBody[field]
		if !present {
			t.Errorf("%s absent from the wire, want explicit null", field)
			continue
		}
		if value != nil {
			t.Errorf("%s = %v, want null", field, value)
		}
	}
}

func TestCareerClient_UpdateGoalsWireShape(t *testing.T) {
	var rawBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	payload, err := domain.BuildGoalUpdate(domain.GoalTargetDraft{Weekly: "5"})
	if err != nil {
		t.Fatalf("BuildGoalUpdate() error = %v", err)
	}
	if err := client.UpdateGoals(context.Background(), payload); err != nil {
		t.Fatalf("UpdateGoals() error = %v", err)
	}

	if string(rawBody) != `{"weekly_target":5}` {
		t.Errorf("body = %s, want {\"weekly_target\":5}", rawBody)
	}
}

func TestCareerClient_DeleteOutcome(t *testing.T) {
	var gotPath, gotMethod string
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(status)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if err := client.DeleteOutcome(context.Background(), "out-42"); err != nil {
		t.Fatalf("DeleteOutcome() error = %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", gotMethod)
	}
	if gotPath != "/api/salary-negotiation/outcomes/out-42" {
		t.Errorf("path = %q, want /api/salary-negotiation/outcomes/out-42", gotPath)
	}

	// The second delete of the same row is an error, not a silent success.
	status = http.StatusNotFound
	if err := client.DeleteOutcome(context.Background(), "out-42"); !errors.Is(err, domain.ErrOutcomeNotFound) {
		t.Errorf("DeleteOutcome() error = %v, want ErrOutcomeNotFound", err)
	}
}

func TestCareerClient_CreateOutcomeDecodesCreated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": "out-7", "stage": "counter", "status": "pending", "lift_percent": 12.5}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	payload, err := domain.BuildOutcomePayload(domain.OutcomeDraft{Stage: "counter"})
	if err != nil {
		t.Fatalf("BuildOutcomePayload() error = %v", err)
	}
	outcome, err := client.CreateOutcome(context.Background(), payload)
	if err != nil {
		t.Fatalf("CreateOutcome() error = %v", err)
	}
	if outcome.ID != "out-7" {
		t.Errorf("ID = %q, want %q", outcome.ID, "out-7")
	}
	if outcome.Stage != domain.OutcomeStageCounter {
		t.Errorf("Stage = %q, want %q", outcome.Stage, domain.OutcomeStageCounter)
	}
	if outcome.LiftPercent == nil || *outcome.LiftPercent != 12.5 {
		t.Errorf("LiftPercent = %v, want 12.5", outcome.LiftPercent)
	}
}
