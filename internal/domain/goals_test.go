package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/adirathodd/cs-490-project-sub009/internal/domain"
)

func TestBuildGoalUpdate(t *testing.T) {
	cases := []struct {
		name        string
		draft       domain.GoalTargetDraft
		wantWeekly  *int
		wantMonthly *int
		wantErr     bool
	}{
		{"both valid", domain.GoalTargetDraft{Weekly: "5", Monthly: "20"}, domain.IntPtr(5), domain.IntPtr(20), false},
		{"weekly only", domain.GoalTargetDraft{Weekly: "5"}, domain.IntPtr(5), nil, false},
		{"monthly only", domain.GoalTargetDraft{Monthly: "20"}, nil, domain.IntPtr(20), false},
		{"both blank", domain.GoalTargetDraft{}, nil, nil, true},
		{"zero rejected", domain.GoalTargetDraft{Weekly: "0"}, nil, nil, true},
		{"negative rejected", domain.GoalTargetDraft{Weekly: "-3"}, nil, nil, true},
		{"fractional rejected", domain.GoalTargetDraft{Weekly: "2.5"}, nil, nil, true},
		{"garbage rejected", domain.GoalTargetDraft{Weekly: "five"}, nil, nil, true},
		{"one bad one good", domain.GoalTargetDraft{Weekly: "oops", Monthly: "12"}, nil, domain.IntPtr(12), false},
	}
	for _, c := range cases {
		payload, err := domain.BuildGoalUpdate(c.draft)
		if c.wantErr {
			if err == nil {
				t.Errorf("%s: BuildGoalUpdate() = nil error, want ValidationError", c.name)
				continue
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("%s: error %T is not a ValidationError", c.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: BuildGoalUpdate() error = %v", c.name, err)
			continue
		}
		if !intPtrEq(payload.WeeklyTarget, c.wantWeekly) {
			t.Errorf("%s: WeeklyTarget = %v, want %v", c.name, fmtIntPtr(payload.WeeklyTarget), fmtIntPtr(c.wantWeekly))
		}
		if !intPtrEq(payload.MonthlyTarget, c.wantMonthly) {
			t.Errorf("%s: MonthlyTarget = %v, want %v", c.name, fmtIntPtr(payload.MonthlyTarget), fmtIntPtr(c.wantMonthly))
		}
	}
}

// The save body must carry only the fields that parsed; a blank monthly
// field is omitted, not sent as zero.
func TestGoalUpdatePayload_WireShape(t *testing.T) {
	payload, err := domain.BuildGoalUpdate(domain.GoalTargetDraft{Weekly: "5"})
	if err != nil {
		t.Fatalf("BuildGoalUpdate() error = %v", err)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"weekly_target":5}` {
		t.Errorf("payload = %s, want {\"weekly_target\":5}", raw)
	}
}

func TestSeedGoalDraft(t *testing.T) {
	draft := domain.SeedGoalDraft(domain.GoalProgress{
		Weekly:  domain.GoalPeriodProgress{Target: 5},
		Monthly: domain.GoalPeriodProgress{Target: 0},
	})
	if draft.Weekly != "5" {
		t.Errorf("Weekly = %q, want %q", draft.Weekly, "5")
	}
	if draft.Monthly != "" {
		t.Errorf("Monthly = %q, want blank for zero target", draft.Monthly)
	}
}

func intPtrEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtIntPtr(v *int) any {
	if v == nil {
		return "nil"
	}
	return *v
}
