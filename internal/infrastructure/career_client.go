package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/adirathodd/cs-490-project-sub009/internal/domain"
	"github.com/adirathodd/cs-490-project-sub009/pkg/logger"
	"github.com/adirathodd/cs-490-project-sub009/pkg/metrics"
)

// API names used in metrics labels and error messages.
const (
	apiAnalytics   = "analytics"
	apiCompetitive = "competitive"
	apiGoals       = "goals"
	apiPlan        = "negotiation_plan"
	apiOffer       = "offer"
	apiOutcomes    = "outcomes"
)

// implements domain.CareerClient against the career backend REST API
type CareerHTTPClient struct {
	client      *http.Client
	baseURL     string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

// creates a new career backend client
func NewCareerHTTPClient(baseURL string, timeout time.Duration, ratePerSecond, burst int, logger *logger.Logger, metrics *metrics.Metrics) *CareerHTTPClient {
	return &CareerHTTPClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:     baseURL,
		logger:      logger,
		metrics:     metrics,
		rateLimiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

// GetAnalytics fetches the analytics dashboard payload. A payload missing
// the expected root keys decodes to a zero report: an empty state, never an
// error.
func (c *CareerHTTPClient) GetAnalytics(ctx context.Context, params domain.Params) (*domain.AnalyticsReport, error) {
	var report domain.AnalyticsReport
	duration, err := c.getJSON(ctx, apiAnalytics, "/api/analytics", queryOf(params), &report)
	if err != nil {
		return nil, err
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"duration": duration,
		"statuses": len(report.FunnelAnalytics.StatusCounts),
	}).Info("Fetched analytics report")

	return &report, nil
}

// GetCompetitiveAnalysis fetches the peer benchmarking payload.
func (c *CareerHTTPClient) GetCompetitiveAnalysis(ctx context.Context, params domain.Params) (*domain.CompetitiveReport, error) {
	var report domain.CompetitiveReport
	duration, err := c.getJSON(ctx, apiCompetitive, "/api/analytics/competitive", queryOf(params), &report)
	if err != nil {
		return nil, err
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"duration":    duration,
		"cohort_size": report.Cohort.SampleSize,
	}).Info("Fetched competitive analysis")

	return &report, nil
}

// UpdateGoals saves validated goal targets. The payload carries only the
// fields that parsed to a positive integer.
func (c *CareerHTTPClient) UpdateGoals(ctx context.Context, payload domain.GoalUpdatePayload) error {
	status, _, duration, err := c.send(ctx, apiGoals, http.MethodPut, "/api/analytics/goals", nil, payload)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &domain.UpstreamError{API: apiGoals, Status: status}
	}

	c.logger.WithContext(ctx).WithField("duration", duration).Info("Updated goal targets")
	return nil
}

// GetNegotiationPlan fetches the salary negotiation plan. forceRefresh asks
// the backend to recompute the plan instead of serving its cached copy.
func (c *CareerHTTPClient) GetNegotiationPlan(ctx context.Context, forceRefresh bool) (*domain.NegotiationPlan, error) {
	query := url.Values{}
	if forceRefresh {
		query.Set("force_refresh", "true")
	}

	var plan domain.NegotiationPlan
	duration, err := c.getJSON(ctx, apiPlan, "/api/salary-negotiation/plan", query, &plan)
	if err != nil {
		return nil, err
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"duration":      duration,
		"force_refresh": forceRefresh,
	}).Info("Fetched negotiation plan")

	return &plan, nil
}

// SaveOffer persists the full sanitized offer object. Blank monetary fields
// travel as JSON null, never as a silent zero.
func (c *CareerHTTPClient) SaveOffer(ctx context.Context, offer domain.OfferDetails) error {
	status, _, duration, err := c.send(ctx, apiOffer, http.MethodPut, "/api/salary-negotiation/offer", nil, offer)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &domain.UpstreamError{API: apiOffer, Status: status}
	}

	c.logger.WithContext(ctx).WithField("duration", duration).Info("Saved offer details")
	return nil
}

// ListOutcomes fetches the outcome ledger with its server-computed
// progression stats.
func (c *CareerHTTPClient) ListOutcomes(ctx context.Context) (*domain.OutcomeList, error) {
	var list domain.OutcomeList
	duration, err := c.getJSON(ctx, apiOutcomes, "/api/salary-negotiation/outcomes", nil, &list)
	if err != nil {
		return nil, err
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"duration": duration,
		"records":  len(list.Outcomes),
	}).Info("Fetched negotiation outcomes")

	return &list, nil
}

// CreateOutcome appends a sanitized outcome to the ledger.
func (c *CareerHTTPClient) CreateOutcome(ctx context.Context, payload domain.OutcomePayload) (*domain.NegotiationOutcome, error) {
	status, body, duration, err := c.send(ctx, apiOutcomes, http.MethodPost, "/api/salary-negotiation/outcomes", nil, payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &domain.UpstreamError{API: apiOutcomes, Status: status}
	}

	var outcome domain.NegotiationOutcome
	if err := json.Unmarshal(body, &outcome); err != nil {
		c.metrics.RecordUpstreamAPIFailure(apiOutcomes, "json_parse")
		return nil, fmt.Errorf("failed to parse created outcome: %w", err)
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"duration":   duration,
		"outcome_id": outcome.ID,
		"stage":      outcome.Stage,
	}).Info("Created negotiation outcome")

	return &outcome, nil
}

// DeleteOutcome removes one ledger row. A 404 surfaces ErrOutcomeNotFound:
// deleting an already-deleted row is an error, not a silent success.
func (c *CareerHTTPClient) DeleteOutcome(ctx context.Context, id string) error {
	path := "/api/salary-negotiation/outcomes/" + url.PathEscape(id)
	status, _, duration, err := c.send(ctx, apiOutcomes, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return domain.ErrOutcomeNotFound
	}
	if status < 200 || status >= 300 {
		return &domain.UpstreamError{API: apiOutcomes, Status: status}
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"duration":   duration,
		"outcome_id": id,
	}).Info("Deleted negotiation outcome")

	return nil
}

// getJSON issues a GET and decodes the response body.
func (c *CareerHTTPClient) getJSON(ctx context.Context, api, path string, query url.Values, out any) (time.Duration, error) {
	status, body, duration, err := c.send(ctx, api, http.MethodGet, path, query, nil)
	if err != nil {
		return duration, err
	}
	if status < 200 || status >= 300 {
		return duration, &domain.UpstreamError{API: api, Status: status}
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.metrics.RecordUpstreamAPIFailure(api, "json_parse")
		return duration, fmt.Errorf("failed to parse %s response: %w", api, err)
	}
	return duration, nil
}

// send performs one rate-limited, credential-forwarding call and returns the
// raw status and body. Non-2xx statuses are returned to the caller, not
// turned into errors here, so endpoints can map them (404 on delete).
func (c *CareerHTTPClient) send(ctx context.Context, api, method, path string, query url.Values, body any) (int, []byte, time.Duration, error) {
	start := time.Now()

	// Apply rate limiting
	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordUpstreamAPIFailure(api, "rate_limit")
		return 0, nil, time.Since(start), fmt.Errorf("rate limit exceeded: %w", err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.metrics.RecordUpstreamAPIFailure(api, "json_marshal")
			return 0, nil, time.Since(start), fmt.Errorf("failed to marshal %s payload: %w", api, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		c.metrics.RecordUpstreamAPIFailure(api, "request_creation")
		return 0, nil, time.Since(start), fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential := domain.CredentialFromContext(ctx); credential != "" {
		req.Header.Set("Authorization", credential)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordUpstreamAPIFailure(api, "network_error")
		return 0, nil, time.Since(start), fmt.Errorf("failed to call %s API: %w", api, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordUpstreamAPIFailure(api, "read_body")
		return 0, nil, time.Since(start), fmt.Errorf("failed to read response body: %w", err)
	}

	duration := time.Since(start)

	statusLabel := "success"
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusLabel = fmt.Sprintf("error_%d", resp.StatusCode)
	}
	c.metrics.RecordUpstreamAPICall(api, statusLabel, duration)

	return resp.StatusCode, data, duration, nil
}

// queryOf renders an outbound param set as URL query values. Keys absent
// from the params are absent on the wire.
func queryOf(params domain.Params) url.Values {
	if len(params) == 0 {
		return nil
	}
	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}
	return query
}
