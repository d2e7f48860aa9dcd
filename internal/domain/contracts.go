package domain

import "context"

// AnalyticsClient covers the dashboard slices of the career backend.
type AnalyticsClient interface {
	GetAnalytics(ctx context.Context, params Params) (*AnalyticsReport, error)
	GetCompetitiveAnalysis(ctx context.Context, params Params) (*CompetitiveReport, error)
	UpdateGoals(ctx context.Context, payload GoalUpdatePayload) error
}

// NegotiationClient covers the salary negotiation workspace endpoints.
type NegotiationClient interface {
	GetNegotiationPlan(ctx context.Context, forceRefresh bool) (*NegotiationPlan, error)
	SaveOffer(ctx context.Context, offer OfferDetails) error
	ListOutcomes(ctx context.Context) (*OutcomeList, error)
	CreateOutcome(ctx context.Context, payload OutcomePayload) (*NegotiationOutcome, error)
	DeleteOutcome(ctx context.Context, id string) error
}

// CareerClient is the full collaborator surface implemented by the HTTP
// client in infrastructure.
type CareerClient interface {
	AnalyticsClient
	NegotiationClient
}

type contextKey string

const credentialKey contextKey = "upstream_credential"

// WithCredential attaches the caller's Authorization value to the context.
// The gateway forwards it opaquely; it never inspects or validates it.
func WithCredential(ctx context.Context, credential string) context.Context {
	if credential == "" {
		return ctx
	}
	return context.WithValue(ctx, credentialKey, credential)
}

// CredentialFromContext returns the forwarded Authorization value, or the
// empty string when the caller supplied none.
func CredentialFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(credentialKey).(string); ok {
		return v
	}
	return ""
}
