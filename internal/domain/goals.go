package domain

import "strconv"

// GoalPeriodProgress is the server-owned progress for one goal period.
// ProgressPercent stays nil when the server did not supply it; the gateway
// never recomputes it from current/target, it surfaces "no data" instead.
type GoalPeriodProgress struct {
	Current         int      `json:"current"`
	Target          int      `json:"target"`
	ProgressPercent *float64 `json:"progress_percent"`
}

// GoalProgress is the goal_progress slice of the analytics payload.
type GoalProgress struct {
	Weekly  GoalPeriodProgress `json:"weekly"`
	Monthly GoalPeriodProgress `json:"monthly"`
}

// GoalTargetDraft is the pending-edit buffer for goal targets. Values are
// raw UI strings until an explicit save parses them.
type GoalTargetDraft struct {
	Weekly  string `json:"weekly"`
	Monthly string `json:"monthly"`
}

// GoalUpdatePayload is the outbound save body. Only fields that parsed to a
// positive integer are present; the other is omitted, not zeroed.
type GoalUpdatePayload struct {
	WeeklyTarget  *int `json:"weekly_target,omitempty"`
	MonthlyTarget *int `json:"monthly_target,omitempty"`
}

// BuildGoalUpdate validates the draft and produces the minimal save payload.
// It rejects with a ValidationError, before any network call, unless at
// least one field parses to a positive integer.
func BuildGoalUpdate(draft GoalTargetDraft) (GoalUpdatePayload, error) {
	payload := GoalUpdatePayload{
		WeeklyTarget:  PositiveIntOrNull(draft.Weekly),
		MonthlyTarget: PositiveIntOrNull(draft.Monthly),
	}
	if payload.WeeklyTarget == nil && payload.MonthlyTarget == nil {
		return GoalUpdatePayload{}, NewValidationError("enter a positive whole number for the weekly or monthly goal")
	}
	return payload, nil
}

// SeedGoalDraft builds the edit buffer from server state. Zero targets seed
// as blank fields rather than a literal "0".
func SeedGoalDraft(progress GoalProgress) GoalTargetDraft {
	draft := GoalTargetDraft{}
	if progress.Weekly.Target > 0 {
		draft.Weekly = strconv.Itoa(progress.Weekly.Target)
	}
	if progress.Monthly.Target > 0 {
		draft.Monthly = strconv.Itoa(progress.Monthly.Target)
	}
	return draft
}
