package domain

import (
	"fmt"
	"strconv"
	"time"
)

// OutcomeStage is the negotiation step an outcome was logged at.
type OutcomeStage string

const (
	OutcomeStageOffer     OutcomeStage = "offer"
	OutcomeStageCounter   OutcomeStage = "counter"
	OutcomeStageFinal     OutcomeStage = "final"
	OutcomeStagePromotion OutcomeStage = "promotion"
)

// OutcomeStatus is the resolution state of a logged outcome.
type OutcomeStatus string

const (
	OutcomeStatusPending OutcomeStatus = "pending"
	OutcomeStatusWon     OutcomeStatus = "won"
	OutcomeStatusLost    OutcomeStatus = "lost"
)

// ParseOutcomeStage converts a raw string to an OutcomeStage. A blank value
// falls back to the default stage; unknown values are rejected.
func ParseOutcomeStage(s string) (OutcomeStage, error) {
	if s == "" {
		return OutcomeStageOffer, nil
	}
	st := OutcomeStage(s)
	switch st {
	case OutcomeStageOffer, OutcomeStageCounter, OutcomeStageFinal, OutcomeStagePromotion:
		return st, nil
	}
	return "", fmt.Errorf("unknown outcome stage %q", s)
}

// ParseOutcomeStatus converts a raw string to an OutcomeStatus. A blank
// value falls back to pending; unknown values are rejected.
func ParseOutcomeStatus(s string) (OutcomeStatus, error) {
	if s == "" {
		return OutcomeStatusPending, nil
	}
	st := OutcomeStatus(s)
	switch st {
	case OutcomeStatusPending, OutcomeStatusWon, OutcomeStatusLost:
		return st, nil
	}
	return "", fmt.Errorf("unknown outcome status %q", s)
}

// OfferDetails is the server-owned offer slice of the negotiation plan.
// Monetary fields are nullable: null means "not entered", which is distinct
// from a real zero offer.
type OfferDetails struct {
	BaseSalary *float64 `json:"base_salary"`
	Bonus      *float64 `json:"bonus"`
	Equity     *float64 `json:"equity"`
	RespondBy  *string  `json:"respond_by"`
	Notes      string   `json:"notes"`
}

// OfferDraft is the pending-edit buffer for offer details, carrying raw UI
// strings until an explicit save.
type OfferDraft struct {
	BaseSalary string `json:"base_salary"`
	Bonus      string `json:"bonus"`
	Equity     string `json:"equity"`
	RespondBy  string `json:"respond_by"`
	Notes      string `json:"notes"`
}

// Sanitize renders the draft into the outbound offer object. Blank or
// unparsable monetary input serializes to null, never to a silent zero.
func (d OfferDraft) Sanitize() OfferDetails {
	offer := OfferDetails{
		BaseSalary: ToNumberOrNull(d.BaseSalary),
		Bonus:      ToNumberOrNull(d.Bonus),
		Equity:     ToNumberOrNull(d.Equity),
		Notes:      d.Notes,
	}
	if d.RespondBy != "" {
		respondBy := d.RespondBy
		offer.RespondBy = &respondBy
	}
	return offer
}

// SeedOfferDraft rebuilds the edit buffer from freshly hydrated server
// state, replacing whatever was staged locally.
func SeedOfferDraft(offer OfferDetails) OfferDraft {
	draft := OfferDraft{Notes: offer.Notes}
	if offer.BaseSalary != nil {
		draft.BaseSalary = trimFloat(*offer.BaseSalary)
	}
	if offer.Bonus != nil {
		draft.Bonus = trimFloat(*offer.Bonus)
	}
	if offer.Equity != nil {
		draft.Equity = trimFloat(*offer.Equity)
	}
	if offer.RespondBy != nil {
		draft.RespondBy = *offer.RespondBy
	}
	return draft
}

// trimFloat renders an amount in plain decimal form with no trailing zeros.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NegotiationOutcome is one row of the outcome ledger as the server returns
// it. LiftPercent is server-derived and never recomputed here.
type NegotiationOutcome struct {
	ID              string        `json:"id"`
	Stage           OutcomeStage  `json:"stage"`
	Status          OutcomeStatus `json:"status"`
	CompanyOffer    *float64      `json:"company_offer"`
	CounterAmount   *float64      `json:"counter_amount"`
	FinalResult     *float64      `json:"final_result"`
	BaseSalary      *float64      `json:"base_salary"`
	Bonus           *float64      `json:"bonus"`
	Equity          *float64      `json:"equity"`
	TotalCompValue  *float64      `json:"total_comp_value"`
	LiftPercent     *float64      `json:"lift_percent"`
	ConfidenceScore *int          `json:"confidence_score"`
	LeverageUsed    string        `json:"leverage_used"`
	Notes           string        `json:"notes"`
	CreatedAt       time.Time     `json:"created_at"`
}

// OutcomeDraft is the inbound body for logging an outcome. Stage and status
// are enums with defaults; everything else is optional.
type OutcomeDraft struct {
	Stage           string   `json:"stage"`
	Status          string   `json:"status"`
	CompanyOffer    *float64 `json:"company_offer"`
	CounterAmount   *float64 `json:"counter_amount"`
	FinalResult     *float64 `json:"final_result"`
	BaseSalary      *float64 `json:"base_salary"`
	Bonus           *float64 `json:"bonus"`
	Equity          *float64 `json:"equity"`
	TotalCompValue  *float64 `json:"total_comp_value"`
	ConfidenceScore *int     `json:"confidence_score"`
	LeverageUsed    string   `json:"leverage_used"`
	Notes           string   `json:"notes"`
}

// OutcomePayload is the sanitized outbound POST body. Monetary fields keep
// explicit nulls so the server never sees a bogus zero-dollar outcome.
type OutcomePayload struct {
	Stage           OutcomeStage  `json:"stage"`
	Status          OutcomeStatus `json:"status"`
	CompanyOffer    *float64      `json:"company_offer"`
	CounterAmount   *float64      `json:"counter_amount"`
	FinalResult     *float64      `json:"final_result"`
	BaseSalary      *float64      `json:"base_salary"`
	Bonus           *float64      `json:"bonus"`
	Equity          *float64      `json:"equity"`
	TotalCompValue  *float64      `json:"total_comp_value"`
	ConfidenceScore *int          `json:"confidence_score,omitempty"`
	LeverageUsed    string        `json:"leverage_used,omitempty"`
	Notes           string        `json:"notes,omitempty"`
}

// BuildOutcomePayload validates enums and applies the monetary sanitization
// rule (non-finite or ≤0 collapses to null) to every dollar field.
func BuildOutcomePayload(draft OutcomeDraft) (OutcomePayload, error) {
	stage, err := ParseOutcomeStage(draft.Stage)
	if err != nil {
		return OutcomePayload{}, NewValidationError("%v", err)
	}
	status, err := ParseOutcomeStatus(draft.Status)
	if err != nil {
		return OutcomePayload{}, NewValidationError("%v", err)
	}
	if draft.ConfidenceScore != nil && (*draft.ConfidenceScore < 1 || *draft.ConfidenceScore > 5) {
		return OutcomePayload{}, NewValidationError("confidence score must be between 1 and 5")
	}
	return OutcomePayload{
		Stage:           stage,
		Status:          status,
		CompanyOffer:    PositiveOrNull(draft.CompanyOffer),
		CounterAmount:   PositiveOrNull(draft.CounterAmount),
		FinalResult:     PositiveOrNull(draft.FinalResult),
		BaseSalary:      PositiveOrNull(draft.BaseSalary),
		Bonus:           PositiveOrNull(draft.Bonus),
		Equity:          PositiveOrNull(draft.Equity),
		TotalCompValue:  PositiveOrNull(draft.TotalCompValue),
		ConfidenceScore: draft.ConfidenceScore,
		LeverageUsed:    draft.LeverageUsed,
		Notes:           draft.Notes,
	}, nil
}

// OutcomeProgression is the server-computed aggregate over the ledger.
type OutcomeProgression struct {
	Attempts       int      `json:"attempts"`
	Wins           int      `json:"wins"`
	AvgLiftPercent *float64 `json:"avg_lift_percent"`
}

// ChecklistItem is one boolean preparation step of the readiness checklist.
type ChecklistItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Done  bool   `json:"done"`
}
