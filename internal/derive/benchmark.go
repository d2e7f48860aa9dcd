package derive

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/adirathodd/cs-490-project-sub009/internal/domain"
)

// minProgressionSample is the smallest next-level cohort worth comparing
// against. Below it the progression section shows a fallback message.
const minProgressionSample = 1

// ProgressionFallback is shown when the next-level cohort is too small to
// compare against.
const ProgressionFallback = "Not enough peers at the next level yet"

// ComputeDelta compares a user metric against a peer metric, rounded to one
// decimal place. A missing or zero peer value yields a neutral zero delta so
// thin cohorts never read as the user being ahead or behind.
func ComputeDelta(user, peer *float64) domain.Delta {
	if !finite(peer) || *peer == 0 {
		return domain.Delta{Value: 0, Sign: domain.DeltaEven, Display: "+0"}
	}
	u := 0.0
	if finite(user) {
		u = *user
	}
	value := Round1(u - *peer)
	sign := domain.DeltaEven
	switch {
	case value > 0:
		sign = domain.DeltaAhead
	case value < 0:
		sign = domain.DeltaBehind
	}
	display := strconv.FormatFloat(value, 'f', -1, 64)
	if value >= 0 {
		display = "+" + display
	}
	return domain.Delta{Value: value, Sign: sign, Display: display}
}

type metricSpec struct {
	key   string
	label string
	unit  string
	pick  func(domain.CandidateMetrics) *float64
}

var comparisonMetrics = []metricSpec{
	{"success_rate", "Success Rate", "%", func(m domain.CandidateMetrics) *float64 { return m.SuccessRate }},
	{"response_rate", "Response Rate", "%", func(m domain.CandidateMetrics) *float64 { return m.ResponseRate }},
	{"interview_rate", "Interview Rate", "%", func(m domain.CandidateMetrics) *float64 { return m.InterviewRate }},
	{"applications_per_week", "Applications / Week", "", func(m domain.CandidateMetrics) *float64 { return m.ApplicationsPerWeek }},
	{"avg_response_days", "Avg Response Time", "days", func(m domain.CandidateMetrics) *float64 { return m.AvgResponseDays }},
}

// BuildComparison pairs each user metric with its peer cohort counterpart.
func BuildComparison(user, peer domain.CandidateMetrics) []domain.MetricPair {
	pairs := make([]domain.MetricPair, 0, len(comparisonMetrics))
	for _, spec := range comparisonMetrics {
		u, p := spec.pick(user), spec.pick(peer)
		pairs = append(pairs, domain.MetricPair{
			Key:   spec.key,
			Label: spec.label,
			User:  u,
			Peer:  p,
			Unit:  spec.unit,
			Delta: ComputeDelta(u, p),
		})
	}
	return pairs
}

var (
	preambleLine   = regexp.MustCompile(`(?i)^\s*here\s+(?:are|is)\b[^:]*:\s*$`)
	preamblePrefix = regexp.MustCompile(`(?i)^\s*here\s+(?:are|is)\b[^:]{0,60}:\s*`)
	bulletPrefix   = regexp.MustCompile(`^\s*(?:[-*\x{2022}]+|\d+[.)])\s+`)
)

// NormalizeRecommendations cleans up generated recommendation text: a
// leading "here are N tips:" style preamble is dropped, and bullet or
// numbering markers are stripped from each line. Text that does not match
// any known shape passes through unmodified rather than being discarded.
func NormalizeRecommendations(recs []string) []string {
	if len(recs) == 0 {
		return nil
	}
	out := make([]string, 0, len(recs))
	for i, rec := range recs {
		if strings.TrimSpace(rec) == "" {
			continue
		}
		if i == 0 {
			if preambleLine.MatchString(rec) {
				continue
			}
			rec = preamblePrefix.ReplaceAllString(rec, "")
		}
		cleaned := strings.TrimSpace(bulletPrefix.ReplaceAllString(rec, ""))
		if cleaned == "" {
			cleaned = strings.TrimSpace(rec)
		}
		out = append(out, cleaned)
	}
	return out
}
