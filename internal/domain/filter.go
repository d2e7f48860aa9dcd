package domain

import (
	"strconv"
	"strings"
	"time"
)

type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

// AllJobTypes lists the job type flags in canonical order. The order is part
// of the outbound contract: job_types is always emitted in this order.
var AllJobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}

// FilterState holds the user-controlled dashboard filters. Date and salary
// fields carry the raw UI strings; parsing happens at encode time so a bad
// keystroke never poisons stored state.
type FilterState struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	SalaryMin string           `json:"salary_min"`
	SalaryMax string           `json:"salary_max"`
	JobTypes  map[JobType]bool `json:"job_types"`
}

// Params is the outbound query parameter set. Absent keys are absent on the
// wire; values are already rendered as strings.
type Params map[string]string

// DefaultFilterState returns the initial filter state: all job types
// selected, everything else blank.
func DefaultFilterState() FilterState {
	types := make(map[JobType]bool, len(AllJobTypes))
	for _, t := range AllJobTypes {
		types[t] = true
	}
	return FilterState{JobTypes: types}
}

// Validate rejects filter states the UI should never submit. The codec
// itself never errors; validation runs before the state is stored.
func (f FilterState) Validate() error {
	if f.StartDate != "" && f.EndDate != "" {
		start, errStart := time.Parse("2006-01-02", f.StartDate)
		end, errEnd := time.Parse("2006-01-02", f.EndDate)
		if errStart != nil || errEnd != nil {
			return NewValidationError("dates must use YYYY-MM-DD format")
		}
		if start.After(end) {
			return NewValidationError("start date must not be after end date")
		}
	}
	if f.JobTypes != nil && len(f.selectedTypes()) == 0 {
		return NewValidationError("at least one job type must stay selected")
	}
	return nil
}

// BuildParams translates the filter state into the outbound query object.
// Blank fields are omitted; salary bounds are included only when they parse
// to a finite number; job_types lists the selected flags and is omitted
// entirely when none are selected (the server default is all types, so an
// omitted key means no filter, never "filter everything out").
func (f FilterState) BuildParams() Params {
	params := Params{}

	if strings.TrimSpace(f.StartDate) != "" {
		params["start_date"] = strings.TrimSpace(f.StartDate)
	}
	if strings.TrimSpace(f.EndDate) != "" {
		params["end_date"] = strings.TrimSpace(f.EndDate)
	}

	if v := ToNumberOrNull(f.SalaryMin); v != nil {
		params["salary_min"] = strconv.FormatFloat(*v, 'f', -1, 64)
	}
	if v := ToNumberOrNull(f.SalaryMax); v != nil {
		params["salary_max"] = strconv.FormatFloat(*v, 'f', -1, 64)
	}

	if selected := f.selectedTypes(); len(selected) > 0 {
		names := make([]string, len(selected))
		for i, t := range selected {
			names[i] = string(t)
		}
		params["job_types"] = strings.Join(names, ",")
	}

	return params
}

// selectedTypes returns the true flags in canonical order.
func (f FilterState) selectedTypes() []JobType {
	var selected []JobType
	for _, t := range AllJobTypes {
		if f.JobTypes[t] {
			selected = append(selected, t)
		}
	}
	return selected
}

// Clone returns a deep copy so stored state is never aliased by callers.
func (f FilterState) Clone() FilterState {
	out := f
	out.JobTypes = make(map[JobType]bool, len(f.JobTypes))
	for k, v := range f.JobTypes {
		out.JobTypes[k] = v
	}
	return out
}

// Clone returns a copy of the param set.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
