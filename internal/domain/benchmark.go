package domain

// DeltaSign classifies a user-versus-peer gap for display tone.
type DeltaSign string

const (
	DeltaAhead  DeltaSign = "ahead"
	DeltaBehind DeltaSign = "behind"
	DeltaEven   DeltaSign = "even"
)

// Delta is a signed user-minus-peer gap, rounded to one decimal. A missing
// or zero baseline yields an explicit zero delta ("+0"), never a hidden row.
type Delta struct {
	Value   float64   `json:"value"`
	Sign    DeltaSign `json:"sign"`
	Display string    `json:"display"`
}

// MetricPair is one benchmark row: the user's value against a peer baseline.
type MetricPair struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	User  *float64 `json:"user"`
	Peer  *float64 `json:"peer"`
	Unit  string   `json:"unit,omitempty"`
	Delta Delta    `json:"delta"`
}

// Cohort identifies the peer group used as a comparison baseline.
type Cohort struct {
	Industry        string `json:"industry"`
	ExperienceLevel string `json:"experience_level"`
	SampleSize      int    `json:"sample_size"`
}

// CandidateMetrics is the named metric set shared by the user and each peer
// baseline. Every field is nullable: a cohort may only have partial data.
type CandidateMetrics struct {
	SuccessRate         *float64 `json:"success_rate"`
	ResponseRate        *float64 `json:"response_rate"`
	InterviewRate       *float64 `json:"interview_rate"`
	ApplicationsPerWeek *float64 `json:"applications_per_week"`
	AvgResponseDays     *float64 `json:"avg_response_days"`
}
