package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/adirathodd/cs-490-project-sub009/internal/domain"
	"github.com/adirathodd/cs-490-project-sub009/internal/usecase"
	"github.com/adirathodd/cs-490-project-sub009/pkg/logger"
	"github.com/adirathodd/cs-490-project-sub009/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// handles HTTP requests
type HTTPHandlers struct {
	dashboards   *usecase.DashboardService
	goals        *usecase.GoalsService
	negotiations *usecase.NegotiationService
	logger       *logger.Logger
	metrics      *metrics.Metrics
}

// creates new HTTP handlers
func NewHTTPHandlers(
	dashboards *usecase.DashboardService,
	goals *usecase.GoalsService,
	negotiations *usecase.NegotiationService,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *HTTPHandlers {
	return &HTTPHandlers{
		dashboards:   dashboards,
		goals:        goals,
		negotiations: negotiations,
		logger:       logger,
		metrics:      metrics,
	}
}

// OpenWorkspace opens (or returns) the caller's workspace with both
// dashboard panels loaded
func (h *HTTPHandlers) OpenWorkspace(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "POST", "/workspace", start)
	if !ok {
		return
	}

	view, created, err := h.dashboards.Open(ctx, userID, c.GetHeader("Authorization"))
	if err != nil {
		h.respondError(c, "POST", "/workspace", start, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.metrics.RecordHTTPRequest("POST", "/workspace", strconv.Itoa(status), time.Since(start))

	c.JSON(status, gin.H{
		"workspace":  view,
		"created":    created,
		"request_id": requestID,
	})
}

// CloseWorkspace ends the caller's session; in-flight fetches resolve into
// the void
func (h *HTTPHandlers) CloseWorkspace(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "DELETE", "/workspace", start)
	if !ok {
		return
	}

	if err := h.dashboards.Close(ctx, userID); err != nil {
		h.respondError(c, "DELETE", "/workspace", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("DELETE", "/workspace", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"message":    "Workspace closed",
		"request_id": requestID,
	})
}

// GetAnalytics returns the analytics panel snapshot plus the goal edit buffer
func (h *HTTPHandlers) GetAnalytics(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "GET", "/dashboard/analytics", start)
	if !ok {
		return
	}

	view, err := h.dashboards.AnalyticsPanel(ctx, userID)
	if err != nil {
		h.respondError(c, "GET", "/dashboard/analytics", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/dashboard/analytics", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"analytics":  view,
		"request_id": requestID,
	})
}

// GetCompetitive returns the competitive panel snapshot
func (h *HTTPHandlers) GetCompetitive(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "GET", "/dashboard/competitive", start)
	if !ok {
		return
	}

	snapshot, err := h.dashboards.CompetitivePanel(ctx, userID)
	if err != nil {
		h.respondError(c, "GET", "/dashboard/competitive", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/dashboard/competitive", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"competitive": snapshot,
		"request_id":  requestID,
	})
}

// UpdateFilters stores a new filter state and refetches both panels with it
func (h *HTTPHandlers) UpdateFilters(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "PUT", "/dashboard/filters", start)
	if !ok {
		return
	}

	var filters domain.FilterState
	if err := c.ShouldBindJSON(&filters); err != nil {
		h.metrics.RecordHTTPRequest("PUT", "/dashboard/filters", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	view, err := h.dashboards.UpdateFilters(ctx, userID, filters)
	if err != nil {
		h.respondError(c, "PUT", "/dashboard/filters", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("PUT", "/dashboard/filters", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"workspace":  view,
		"request_id": requestID,
	})
}

// ResetFilters restores the default filters and refetches with them
func (h *HTTPHandlers) ResetFilters(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "POST", "/dashboard/filters/reset", start)
	if !ok {
		return
	}

	view, err := h.dashboards.ResetFilters(ctx, userID)
	if err != nil {
		h.respondError(c, "POST", "/dashboard/filters/reset", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("POST", "/dashboard/filters/reset", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"workspace":  view,
		"request_id": requestID,
	})
}

// RefreshDashboard is the user-initiated refresh of both dashboard panels
func (h *HTTPHandlers) RefreshDashboard(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "POST", "/dashboard/refresh", start)
	if !ok {
		return
	}

	view, err := h.dashboards.RefreshNow(ctx, userID)
	if err != nil {
		h.respondError(c, "POST", "/dashboard/refresh", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("POST", "/dashboard/refresh", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"workspace":  view,
		"request_id": requestID,
	})
}

// SaveGoals saves the drafted goal targets and refetches analytics
func (h *HTTPHandlers) SaveGoals(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "PUT", "/dashboard/goals", start)
	if !ok {
		return
	}

	var draft domain.GoalTargetDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.metrics.RecordHTTPRequest("PUT", "/dashboard/goals", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	view, err := h.goals.SaveGoals(ctx, userID, draft)
	if err != nil {
		h.respondError(c, "PUT", "/dashboard/goals", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("PUT", "/dashboard/goals", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"analytics":  view,
		"request_id": requestID,
	})
}

// SetWatch toggles the 30-second auto-refresh loop
func (h *HTTPHandlers) SetWatch(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "PUT", "/dashboard/watch", start)
	if !ok {
		return
	}

	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.metrics.RecordHTTPRequest("PUT", "/dashboard/watch", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	view, err := h.dashboards.SetWatch(ctx, userID, body.Enabled)
	if err != nil {
		h.respondError(c, "PUT", "/dashboard/watch", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("PUT", "/dashboard/watch", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"workspace":  view,
		"request_id": requestID,
	})
}

// GetNegotiationPlan returns the plan panel, loading it on first access;
// ?refresh=true forces a refetch
func (h *HTTPHandlers) GetNegotiationPlan(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "GET", "/negotiation/plan", start)
	if !ok {
		return
	}

	view, err := h.negotiations.Plan(ctx, userID, c.Query("refresh") == "true")
	if err != nil {
		h.respondError(c, "GET", "/negotiation/plan", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/negotiation/plan", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"plan":       view,
		"request_id": requestID,
	})
}

// StageOffer buffers offer edits without saving
func (h *HTTPHandlers) StageOffer(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "PUT", "/negotiation/offer", start)
	if !ok {
		return
	}

	var draft domain.OfferDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.metrics.RecordHTTPRequest("PUT", "/negotiation/offer", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	view, err := h.negotiations.StageOffer(ctx, userID, draft)
	if err != nil {
		h.respondError(c, "PUT", "/negotiation/offer", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("PUT", "/negotiation/offer", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"plan":       view,
		"request_id": requestID,
	})
}

// SaveOffer sanitizes and saves the buffered offer, then force-refreshes the
// plan
func (h *HTTPHandlers) SaveOffer(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "POST", "/negotiation/offer/save", start)
	if !ok {
		return
	}

	view, err := h.negotiations.SaveOffer(ctx, userID)
	if err != nil {
		h.respondError(c, "POST", "/negotiation/offer/save", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("POST", "/negotiation/offer/save", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"plan":       view,
		"request_id": requestID,
	})
}

// ListOutcomes returns the outcome ledger, loading it on first access;
// ?refresh=true forces a refetch
func (h *HTTPHandlers) ListOutcomes(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "GET", "/negotiation/outcomes", start)
	if !ok {
		return
	}

	snapshot, err := h.negotiations.Outcomes(ctx, userID, c.Query("refresh") == "true")
	if err != nil {
		h.respondError(c, "GET", "/negotiation/outcomes", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/negotiation/outcomes", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"outcomes":   snapshot,
		"request_id": requestID,
	})
}

// CreateOutcome logs a negotiation outcome and refetches the ledger
func (h *HTTPHandlers) CreateOutcome(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "POST", "/negotiation/outcomes", start)
	if !ok {
		return
	}

	var draft domain.OutcomeDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.metrics.RecordHTTPRequest("POST", "/negotiation/outcomes", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	snapshot, err := h.negotiations.CreateOutcome(ctx, userID, draft)
	if err != nil {
		h.respondError(c, "POST", "/negotiation/outcomes", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("POST", "/negotiation/outcomes", "201", time.Since(start))

	c.JSON(http.StatusCreated, gin.H{
		"outcomes":   snapshot,
		"request_id": requestID,
	})
}

// DeleteOutcome removes one ledger row and refetches; deleting a row that is
// already gone is a 404, not a silent success
func (h *HTTPHandlers) DeleteOutcome(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	userID, ok := h.requireUser(c, "DELETE", "/negotiation/outcomes/:id", start)
	if !ok {
		return
	}

	snapshot, err := h.negotiations.DeleteOutcome(ctx, userID, c.Param("id"))
	if err != nil {
		h.respondError(c, "DELETE", "/negotiation/outcomes/:id", start, err)
		return
	}

	h.metrics.RecordHTTPRequest("DELETE", "/negotiation/outcomes/:id", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"outcomes":   snapshot,
		"request_id": requestID,
	})
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")

	apiInfo := gin.H{
		"api_version": "v1",
		"service":     "Career Dashboard Gateway",
		"version":     "1.0.0",
		"description": "Derived-metrics and editable-state gateway for the career dashboard",
		"endpoints": gin.H{
			"workspace": gin.H{
				"description": "Per-user workspace lifecycle",
				"endpoints": gin.H{
					"open": gin.H{
						"path":        "/api/v1/workspace",
						"methods":     []string{"POST"},
						"description": "Open the workspace and load both dashboard panels (idempotent)",
						"headers":     gin.H{"X-User-ID": "Required caller identity", "Authorization": "Forwarded to the career backend"},
					},
					"close": gin.H{
						"path":        "/api/v1/workspace",
						"methods":     []string{"DELETE"},
						"description": "Close the workspace; stops watch mode and invalidates in-flight fetches",
					},
				},
			},
			"dashboard": gin.H{
				"description": "Analytics and competitive panels, filters, goals, watch mode",
				"endpoints": gin.H{
					"analytics":   gin.H{"path": "/api/v1/dashboard/analytics", "methods": []string{"GET"}},
					"competitive": gin.H{"path": "/api/v1/dashboard/competitive", "methods": []string{"GET"}},
					"filters": gin.H{
						"path":        "/api/v1/dashboard/filters",
						"methods":     []string{"PUT"},
						"description": "Update filters and refetch both panels with the new params",
					},
					"filters_reset": gin.H{"path": "/api/v1/dashboard/filters/reset", "methods": []string{"POST"}},
					"refresh":       gin.H{"path": "/api/v1/dashboard/refresh", "methods": []string{"POST"}},
					"goals": gin.H{
						"path":        "/api/v1/dashboard/goals",
						"methods":     []string{"PUT"},
						"description": "Save goal targets; at least one positive whole number required",
					},
					"watch": gin.H{"path": "/api/v1/dashboard/watch", "methods": []string{"PUT"}},
				},
			},
			"negotiation": gin.H{
				"description": "Salary negotiation plan, offer buffer and outcome ledger",
				"endpoints": gin.H{
					"plan":       gin.H{"path": "/api/v1/negotiation/plan", "methods": []string{"GET"}, "parameters": gin.H{"refresh": "Optional: true to refetch"}},
					"offer":      gin.H{"path": "/api/v1/negotiation/offer", "methods": []string{"PUT"}, "description": "Stage offer edits without saving"},
					"offer_save": gin.H{"path": "/api/v1/negotiation/offer/save", "methods": []string{"POST"}},
					"outcomes":   gin.H{"path": "/api/v1/negotiation/outcomes", "methods": []string{"GET", "POST"}},
					"outcome":    gin.H{"path": "/api/v1/negotiation/outcomes/:id", "methods": []string{"DELETE"}},
				},
			},
		},
		"request_id": requestID,
	}

	h.metrics.RecordHTTPRequest("GET", "/api/v1", "200", time.Since(start))
	c.JSON(http.StatusOK, apiInfo)
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")

	health := gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    "career-dashboard-gateway",
		"version":    "1.0.0",
		"request_id": requestID,
	}

	h.metrics.RecordHTTPRequest("GET", "/health", "200", time.Since(start))
	c.JSON(http.StatusOK, health)
}

// requireUser extracts the caller identity from the X-User-ID header,
// replying 400 when it is missing
func (h *HTTPHandlers) requireUser(c *gin.Context, method, endpoint string, start time.Time) (string, bool) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		h.metrics.RecordHTTPRequest(method, endpoint, "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Missing required header",
			"message":    "X-User-ID header is required",
			"request_id": c.GetString("request_id"),
		})
		return "", false
	}
	return userID, true
}

// respondError maps service errors onto the response envelope: validation
// failures are 422, unknown workspaces and outcomes 404, closed workspaces
// 409, upstream failures 502, everything else 500
func (h *HTTPHandlers) respondError(c *gin.Context, method, endpoint string, start time.Time, err error) {
	status := http.StatusInternalServerError
	title := "Internal server error"

	var validationErr *domain.ValidationError
	var upstreamErr *domain.UpstreamError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusUnprocessableEntity
		title = "Validation failed"
	case errors.Is(err, domain.ErrWorkspaceNotFound), errors.Is(err, domain.ErrOutcomeNotFound):
		status = http.StatusNotFound
		title = "Not found"
	case errors.Is(err, domain.ErrWorkspaceClosed):
		status = http.StatusConflict
		title = "Workspace closed"
	case errors.As(err, &upstreamErr):
		status = http.StatusBadGateway
		title = "Upstream request failed"
	default:
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Unhandled service error")
	}

	h.metrics.RecordHTTPRequest(method, endpoint, strconv.Itoa(status), time.Since(start))
	c.JSON(status, gin.H{
		"error":      title,
		"message":    err.Error(),
		"request_id": c.GetString("request_id"),
	})
}
