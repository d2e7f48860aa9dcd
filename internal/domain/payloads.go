package domain

import "encoding/json"

// Upstream payload shapes. The backend owns these contracts; slices the
// gateway only relays (trends, salary insights, skill gaps, employment) stay
// opaque as raw JSON. Missing root keys decode to zero values, which the
// view builders render as an empty state rather than an error.

// FunnelAnalytics carries the per-status application counts.
type FunnelAnalytics struct {
	StatusCounts map[string]int `json:"status_counts"`
	SuccessRate  *float64       `json:"success_rate"`
}

// IndustryBenchmarks is the industry-average baseline.
type IndustryBenchmarks struct {
	AvgSuccessRate         *float64 `json:"avg_success_rate"`
	AvgApplicationsPerWeek *float64 `json:"avg_applications_per_week"`
	AvgResponseDays        *float64 `json:"avg_response_days"`
	SampleSize             int      `json:"sample_size"`
}

// TimeToResponse summarizes how long applications wait for an answer.
type TimeToResponse struct {
	AverageDays *float64 `json:"average_days"`
	MedianDays  *float64 `json:"median_days"`
	FastestDays *float64 `json:"fastest_days"`
}

// AnalyticsReport is the getAnalytics root payload.
type AnalyticsReport struct {
	FunnelAnalytics    FunnelAnalytics    `json:"funnel_analytics"`
	IndustryBenchmarks IndustryBenchmarks `json:"industry_benchmarks"`
	ResponseTrends     json.RawMessage    `json:"response_trends"`
	VolumePatterns     json.RawMessage    `json:"volume_patterns"`
	GoalProgress       GoalProgress       `json:"goal_progress"`
	TimeToResponse     TimeToResponse     `json:"time_to_response"`
	SalaryInsights     json.RawMessage    `json:"salary_insights"`
}

// PeerBenchmarks is the same-level cohort baseline.
type PeerBenchmarks struct {
	Metrics    CandidateMetrics `json:"metrics"`
	SampleSize int              `json:"sample_size"`
}

// ProgressionBenchmarks is the next-level cohort baseline. It renders only
// when the sample is large enough for the comparison to mean anything.
type ProgressionBenchmarks struct {
	NextLevel  string           `json:"next_level"`
	SampleSize int              `json:"sample_size"`
	Metrics    CandidateMetrics `json:"metrics"`
}

// CompetitiveReport is the getCompetitiveAnalysis root payload.
type CompetitiveReport struct {
	Cohort          Cohort                `json:"cohort"`
	UserMetrics     CandidateMetrics      `json:"user_metrics"`
	PeerBenchmarks  PeerBenchmarks        `json:"peer_benchmarks"`
	SkillGaps       json.RawMessage       `json:"skill_gaps"`
	Differentiators []string              `json:"differentiators"`
	Recommendations []string              `json:"recommendations"`
	Progression     ProgressionBenchmarks `json:"progression"`
	Employment      json.RawMessage       `json:"employment"`
}

// NegotiationPlan is the getPlan root payload. ReadinessPercent is
// server-owned; the gateway never recomputes it from the checklist.
type NegotiationPlan struct {
	Offer            OfferDetails    `json:"offer_details"`
	ReadinessPercent *float64        `json:"readiness_percent"`
	Checklist        []ChecklistItem `json:"readiness_checklist"`
	TalkingPoints    []string        `json:"talking_points"`
	MarketData       json.RawMessage `json:"market_data"`
}

// OutcomeList is the getOutcomes root payload.
type OutcomeList struct {
	Outcomes    []NegotiationOutcome `json:"outcomes"`
	Progression OutcomeProgression   `json:"progression"`
}
