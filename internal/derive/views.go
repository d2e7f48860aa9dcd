package derive

import (
	"encoding/json"

	"github.com/adirathodd/cs-490-project-sub009/internal/domain"
)

// Tone classifies a highlight for the client palette.
const (
	ToneSuccess = "success"
	ToneWarning = "warning"
)

// BenchmarkHighlight is the analytics panel's industry comparison row.
type BenchmarkHighlight struct {
	UserRate     string       `json:"user_rate"`
	IndustryRate string       `json:"industry_rate"`
	Tone         string       `json:"tone"`
	Delta        domain.Delta `json:"delta"`
	SampleSize   int          `json:"sample_size"`
}

// GoalPeriodView renders one goal window with its server-computed progress.
type GoalPeriodView struct {
	Current  int    `json:"current"`
	Target   int    `json:"target"`
	Progress string `json:"progress"`
	HasData  bool   `json:"has_data"`
}

// GoalProgressView groups the weekly and monthly goal windows.
type GoalProgressView struct {
	Weekly  GoalPeriodView `json:"weekly"`
	Monthly GoalPeriodView `json:"monthly"`
}

// TimeToResponseView renders response-time aggregates as display strings.
type TimeToResponseView struct {
	Average string `json:"average"`
	Median  string `json:"median"`
	Fastest string `json:"fastest"`
}

// AnalyticsView is the derived analytics panel payload.
type AnalyticsView struct {
	Funnel         domain.FunnelView  `json:"funnel"`
	SuccessRate    BenchmarkHighlight `json:"success_rate"`
	Goals          GoalProgressView   `json:"goals"`
	TimeToResponse TimeToResponseView `json:"time_to_response"`
	ResponseTrends json.RawMessage    `json:"response_trends,omitempty"`
	VolumePatterns json.RawMessage    `json:"volume_patterns,omitempty"`
	SalaryInsights json.RawMessage    `json:"salary_insights,omitempty"`
}

// BuildAnalyticsView derives the analytics panel from an upstream report.
func BuildAnalyticsView(report *domain.AnalyticsReport) AnalyticsView {
	if report == nil {
		report = &domain.AnalyticsReport{}
	}
	return AnalyticsView{
		Funnel:         BuildFunnel(report.FunnelAnalytics.StatusCounts),
		SuccessRate:    buildHighlight(report),
		Goals:          buildGoals(report.GoalProgress),
		TimeToResponse: buildTimeToResponse(report.TimeToResponse),
		ResponseTrends: report.ResponseTrends,
		VolumePatterns: report.VolumePatterns,
		SalaryInsights: report.SalaryInsights,
	}
}

func buildHighlight(report *domain.AnalyticsReport) BenchmarkHighlight {
	user := report.FunnelAnalytics.SuccessRate
	peer := report.IndustryBenchmarks.AvgSuccessRate
	delta := ComputeDelta(user, peer)
	tone := ToneSuccess
	if delta.Sign == domain.DeltaBehind {
		tone = ToneWarning
	}
	return BenchmarkHighlight{
		UserRate:     FormatRate(user),
		IndustryRate: FormatRate(peer),
		Tone:         tone,
		Delta:        delta,
		SampleSize:   report.IndustryBenchmarks.SampleSize,
	}
}

func buildGoals(progress domain.GoalProgress) GoalProgressView {
	return GoalProgressView{
		Weekly:  buildGoalPeriod(progress.Weekly),
		Monthly: buildGoalPeriod(progress.Monthly),
	}
}

func buildGoalPeriod(period domain.GoalPeriodProgress) GoalPeriodView {
	progress := placeholderNoData
	if finite(period.ProgressPercent) {
		progress = FormatRate(period.ProgressPercent)
	}
	return GoalPeriodView{
		Current:  period.Current,
		Target:   period.Target,
		Progress: progress,
		HasData:  period.Target > 0,
	}
}

func buildTimeToResponse(t domain.TimeToResponse) TimeToResponseView {
	return TimeToResponseView{
		Average: FormatDaysOrHours(t.AverageDays),
		Median:  FormatDaysOrHours(t.MedianDays),
		Fastest: FormatDaysOrHours(t.FastestDays),
	}
}

// ProgressionView is the next-level comparison section of the competitive
// panel. When the cohort is too thin, Available is false and Message carries
// the fallback text.
type ProgressionView struct {
	Available  bool                `json:"available"`
	NextLevel  string              `json:"next_level,omitempty"`
	SampleSize int                 `json:"sample_size"`
	Message    string              `json:"message,omitempty"`
	Pairs      []domain.MetricPair `json:"pairs,omitempty"`
}

// CompetitiveView is the derived competitive panel payload.
type CompetitiveView struct {
	Cohort          domain.Cohort       `json:"cohort"`
	Pairs           []domain.MetricPair `json:"pairs"`
	Progression     ProgressionView     `json:"progression"`
	SkillGaps       json.RawMessage     `json:"skill_gaps,omitempty"`
	Differentiators []string            `json:"differentiators,omitempty"`
	Recommendations []string            `json:"recommendations,omitempty"`
	Employment      json.RawMessage     `json:"employment,omitempty"`
}

// BuildCompetitiveView derives the competitive panel from an upstream report.
func BuildCompetitiveView(report *domain.CompetitiveReport) CompetitiveView {
	if report == nil {
		report = &domain.CompetitiveReport{}
	}
	return CompetitiveView{
		Cohort:          report.Cohort,
		Pairs:           BuildComparison(report.UserMetrics, report.PeerBenchmarks.Metrics),
		Progression:     buildProgression(report.UserMetrics, report.Progression),
		SkillGaps:       report.SkillGaps,
		Differentiators: report.Differentiators,
		Recommendations: NormalizeRecommendations(report.Recommendations),
		Employment:      report.Employment,
	}
}

func buildProgression(user domain.CandidateMetrics, prog domain.ProgressionBenchmarks) ProgressionView {
	if prog.SampleSize < minProgressionSample {
		return ProgressionView{
			Available:  false,
			NextLevel:  prog.NextLevel,
			SampleSize: prog.SampleSize,
			Message:    ProgressionFallback,
		}
	}
	return ProgressionView{
		Available:  true,
		NextLevel:  prog.NextLevel,
		SampleSize: prog.SampleSize,
		Pairs:      BuildComparison(user, prog.Metrics),
	}
}

// ReadinessView renders negotiation readiness as a percentage plus the
// checklist behind it.
type ReadinessView struct {
	Percent  string                 `json:"percent"`
	Complete int                    `json:"complete"`
	Total    int                    `json:"total"`
	Items    []domain.ChecklistItem `json:"items"`
}

// NegotiationView is the derived negotiation panel payload.
type NegotiationView struct {
	Offer         domain.OfferDetails `json:"offer"`
	Readiness     ReadinessView       `json:"readiness"`
	TalkingPoints []string            `json:"talking_points,omitempty"`
	MarketData    json.RawMessage     `json:"market_data,omitempty"`
}

// BuildNegotiationView derives the negotiation panel from an upstream plan.
func BuildNegotiationView(plan *domain.NegotiationPlan) NegotiationView {
	if plan == nil {
		plan = &domain.NegotiationPlan{}
	}
	complete := 0
	for _, item := range plan.Checklist {
		if item.Done {
			complete++
		}
	}
	return NegotiationView{
		Offer: plan.Offer,
		Readiness: ReadinessView{
			Percent:  FormatRate(plan.ReadinessPercent),
			Complete: complete,
			Total:    len(plan.Checklist),
			Items:    plan.Checklist,
		},
		TalkingPoints: plan.TalkingPoints,
		MarketData:    plan.MarketData,
	}
}

// OutcomeRow is one ledger entry with its monetary fields pre-formatted.
type OutcomeRow struct {
	domain.NegotiationOutcome
	CompanyOfferDisplay string `json:"company_offer_display"`
	CounterDisplay      string `json:"counter_display"`
	FinalResultDisplay  string `json:"final_result_display"`
	LiftDisplay         string `json:"lift_display"`
}

// LedgerStats summarizes negotiation attempts across the ledger.
type LedgerStats struct {
	Attempts int    `json:"attempts"`
	Wins     int    `json:"wins"`
	AvgLift  string `json:"avg_lift"`
}

// LedgerView is the derived outcomes panel payload.
type LedgerView struct {
	Outcomes []OutcomeRow `json:"outcomes"`
	Stats    LedgerStats  `json:"stats"`
}

// BuildLedgerView derives the outcomes panel from an upstream outcome list.
// Lift percentages come from the server as-is; they are formatted here but
// never recomputed.
func BuildLedgerView(list *domain.OutcomeList) LedgerView {
	if list == nil {
		list = &domain.OutcomeList{}
	}
	rows := make([]OutcomeRow, 0, len(list.Outcomes))
	for _, outcome := range list.Outcomes {
		rows = append(rows, OutcomeRow{
			NegotiationOutcome:  outcome,
			CompanyOfferDisplay: FormatCurrency(outcome.CompanyOffer),
			CounterDisplay:      FormatCurrency(outcome.CounterAmount),
			FinalResultDisplay:  FormatCurrency(outcome.FinalResult),
			LiftDisplay:         FormatPercent(outcome.LiftPercent),
		})
	}
	return LedgerView{
		Outcomes: rows,
		Stats: LedgerStats{
			Attempts: list.Progression.Attempts,
			Wins:     list.Progression.Wins,
			AvgLift:  FormatPercent(list.Progression.AvgLiftPercent),
		},
	}
}
