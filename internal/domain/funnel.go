package domain

// Stage is one step of the application pipeline funnel.
type Stage string

const (
	StageInterested  Stage = "interested"
	StageApplied     Stage = "applied"
	StagePhoneScreen Stage = "phone_screen"
	StageInterview   Stage = "interview"
	StageOffer       Stage = "offer"
	StageRejected    Stage = "rejected"
)

// FunnelStages is the fixed display order of the pipeline. Statuses outside
// this list are ignored by the aggregator; stages missing from a payload
// count as zero.
var FunnelStages = []Stage{
	StageInterested,
	StageApplied,
	StagePhoneScreen,
	StageInterview,
	StageOffer,
	StageRejected,
}

var stageLabels = map[Stage]string{
	StageInterested:  "Interested",
	StageApplied:     "Applied",
	StagePhoneScreen: "Phone Screen",
	StageInterview:   "Interview",
	StageOffer:       "Offer",
	StageRejected:    "Rejected",
}

var stageColors = map[Stage]string{
	StageInterested:  "#64748b",
	StageApplied:     "#3b82f6",
	StagePhoneScreen: "#8b5cf6",
	StageInterview:   "#f59e0b",
	StageOffer:       "#22c55e",
	StageRejected:    "#ef4444",
}

// Label returns the display label for the stage.
func (s Stage) Label() string { return stageLabels[s] }

// Color returns the display color for the stage.
func (s Stage) Color() string { return stageColors[s] }

// StageBucket is one rendered bar of the funnel. Opacity is proportional to
// the bucket's share of the largest count, clamped to a visible floor so an
// empty stage still renders as a ghost bar.
type StageBucket struct {
	Stage   Stage   `json:"stage"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// FunnelView is the ordered, scaled funnel with its total.
type FunnelView struct {
	Stages []StageBucket `json:"stages"`
	Total  int           `json:"total"`
}
