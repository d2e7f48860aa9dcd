package domain_test

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/adirathodd/cs-490-project-sub009/internal/domain"
)

// ── Enum parsing ───────────────────────────────────────────────────────────

func TestParseOutcomeStage(t *testing.T) {
	for _, s := range []string{"offer", "counter", "final", "promotion"} {
		got, err := domain.ParseOutcomeStage(s)
		if err != nil {
			t.Errorf("ParseOutcomeStage(%q) error = %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseOutcomeStage(%q) = %q", s, got)
		}
	}
	if got, err := domain.ParseOutcomeStage(""); err != nil || got != domain.OutcomeStageOffer {
		t.Errorf("ParseOutcomeStage(\"\") = %q, %v, want offer default", got, err)
	}
	if _, err := domain.ParseOutcomeStage("renege"); err == nil {
		t.Error("ParseOutcomeStage(\"renege\") expected error, got nil")
	}
}

func TestParseOutcomeStatus(t *testing.T) {
	if got, err := domain.ParseOutcomeStatus(""); err != nil || got != domain.OutcomeStatusPending {
		t.Errorf("ParseOutcomeStatus(\"\") = %q, %v, want pending default", got, err)
	}
	if _, err := domain.ParseOutcomeStatus("maybe"); err == nil {
		t.Error("ParseOutcomeStatus(\"maybe\") expected error, got nil")
	}
}

// ── BuildOutcomePayload ────────────────────────────────────────────────────

func TestBuildOutcomePayload_MonetarySanitization(t *testing.T) {
	cases := []struct {
		name string
		in   *float64
		want *float64
	}{
		{"nil stays nil", nil, nil},
		{"zero collapses to null", domain.Float64Ptr(0), nil},
		{"negative collapses to null", domain.Float64Ptr(-500), nil},
		{"nan collapses to null", domain.Float64Ptr(math.NaN()), nil},
		{"positive survives", domain.Float64Ptr(85000), domain.Float64Ptr(85000)},
	}
	for _, c := range cases {
		payload, err := domain.BuildOutcomePayload(domain.OutcomeDraft{CompanyOffer: c.in})
		if err != nil {
			t.Fatalf("%s: BuildOutcomePayload() error = %v", c.name, err)
		}
		got := payload.CompanyOffer
		if (got == nil) != (c.want == nil) {
			t.Errorf("%s: CompanyOffer = %v, want %v", c.name, got, c.want)
			continue
		}
		if got != nil && *got != *c.want {
			t.Errorf("%s: CompanyOffer = %v, want %v", c.name, *got, *c.want)
		}
	}
}

func TestBuildOutcomePayload_Defaults(t *testing.T) {
	payload, err := domain.BuildOutcomePayload(domain.OutcomeDraft{})
	if err != nil {
		t.Fatalf("BuildOutcomePayload() error = %v", err)
	}
	if payload.Stage != domain.OutcomeStageOffer {
		t.Errorf("Stage = %q, want default offer", payload.Stage)
	}
	if payload.Status != domain.OutcomeStatusPending {
		t.Errorf("Status = %q, want default pending", payload.Status)
	}
}

func TestBuildOutcomePayload_RejectsBadEnums(t *testing.T) {
	if _, err := domain.BuildOutcomePayload(domain.OutcomeDraft{Stage: "renege"}); err == nil {
		t.Error("bad stage expected error, got nil")
	}
	if _, err := domain.BuildOutcomePayload(domain.OutcomeDraft{Status: "maybe"}); err == nil {
		t.Error("bad status expected error, got nil")
	}
}

func TestBuildOutcomePayload_ConfidenceRange(t *testing.T) {
	for _, v := range []int{1, 3, 5} {
		if _, err := domain.BuildOutcomePayload(domain.OutcomeDraft{ConfidenceScore: domain.IntPtr(v)}); err != nil {
			t.Errorf("confidence %d rejected: %v", v, err)
		}
	}
	for _, v := range []int{0, 6, -1} {
		_, err := domain.BuildOutcomePayload(domain.OutcomeDraft{ConfidenceScore: domain.IntPtr(v)})
		if err == nil {
			t.Errorf("confidence %d accepted, want ValidationError", v)
			continue
		}
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("confidence %d: error %T is not a ValidationError", v, err)
		}
	}
}

// Monetary fields are explicit nulls on the wire so the server never
// records a phantom zero-dollar offer; optional metadata is omitted.
func TestOutcomePayload_WireShape(t *testing.T) {
	payload, err := domain.BuildOutcomePayload(domain.OutcomeDraft{
		Stage:        "counter",
		Status:       "won",
		CompanyOffer: domain.Float64Ptr(85000),
		FinalResult:  domain.Float64Ptr(0),
	})
	if err != nil {
		t.Fatalf("BuildOutcomePayload() error = %v", err)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)

	for _, want := range []string{
		`"stage":"counter"`,
		`"status":"won"`,
		`"company_offer":85000`,
		`"final_result":null`,
		`"counter_amount":null`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("payload %s missing %s", body, want)
		}
	}
	for _, reject := range []string{"confidence_score", "leverage_used", "notes"} {
		if strings.Contains(body, reject) {
			t.Errorf("payload %s carries empty optional field %q", body, reject)
		}
	}
}

// ── Offer draft ────────────────────────────────────────────────────────────

// The offer buffer rule differs from the outcome rule: blank input becomes
// null, but an explicit zero is preserved.
func TestOfferDraftSanitize(t *testing.T) {
	offer := domain.OfferDraft{
		BaseSalary: "95000",
		Bonus:      "0",
		Equity:     "not a number",
		RespondBy:  "2026-09-15",
		Notes:      "recruiter said flexible",
	}.Sanitize()

	if offer.BaseSalary == nil || *offer.BaseSalary != 95000 {
		t.Errorf("BaseSalary = %v, want 95000", offer.BaseSalary)
	}
	if offer.Bonus == nil || *offer.Bonus != 0 {
		t.Errorf("Bonus = %v, want explicit 0", offer.Bonus)
	}
	if offer.Equity != nil {
		t.Errorf("Equity = %v, want nil for unparsable input", *offer.Equity)
	}
	if offer.RespondBy == nil || *offer.RespondBy != "2026-09-15" {
		t.Errorf("RespondBy = %v, want date string", offer.RespondBy)
	}
	if offer.Notes != "recruiter said flexible" {
		t.Errorf("Notes = %q", offer.Notes)
	}
}

func TestOfferDraftSanitize_BlankBecomesNull(t *testing.T) {
	offer := domain.OfferDraft{}.Sanitize()
	if offer.BaseSalary != nil || offer.Bonus != nil || offer.Equity != nil {
		t.Error("blank monetary fields must sanitize to nil")
	}
	if offer.RespondBy != nil {
		t.Error("blank respond_by must sanitize to nil")
	}
	raw, err := json.Marshal(offer)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"base_salary":null`, `"bonus":null`, `"equity":null`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("offer %s missing explicit %s", raw, want)
		}
	}
}

func TestSeedOfferDraft(t *testing.T) {
	respondBy := "2026-09-15"
	draft := domain.SeedOfferDraft(domain.OfferDetails{
		BaseSalary: domain.Float64Ptr(95000),
		Bonus:      domain.Float64Ptr(10500.5),
		RespondBy:  &respondBy,
		Notes:      "signing bonus negotiable",
	})
	if draft.BaseSalary != "95000" {
		t.Errorf("BaseSalary = %q, want %q", draft.BaseSalary, "95000")
	}
	if draft.Bonus != "10500.5" {
		t.Errorf("Bonus = %q, want %q", draft.Bonus, "10500.5")
	}
	if draft.Equity != "" {
		t.Errorf("Equity = %q, want blank for nil", draft.Equity)
	}
	if draft.RespondBy != respondBy {
		t.Errorf("RespondBy = %q, want %q", draft.RespondBy, respondBy)
	}
}
