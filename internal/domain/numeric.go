package domain

import (
	"math"
	"strconv"
	"strings"
)

// ToNumberOrNull parses a raw input field into a nullable numeric value.
// Blank strings, unparsable strings, and non-finite results all collapse to
// nil so that NaN never reaches an outbound payload.
func ToNumberOrNull(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// PositiveOrNull applies the monetary sanitization rule: a non-finite or
// non-positive dollar amount is not a valid recorded value and collapses to
// nil rather than being conflated with a real zero.
func PositiveOrNull(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
		return nil
	}
	value := *v
	return &value
}

// PositiveIntOrNull parses a raw input field into a positive integer target.
// Anything blank, unparsable, fractional, zero or negative collapses to nil.
func PositiveIntOrNull(raw string) *int {
	num := ToNumberOrNull(raw)
	if num == nil {
		return nil
	}
	if *num <= 0 || *num != math.Trunc(*num) {
		return nil
	}
	value := int(*num)
	return &value
}

// Float64Ptr returns a pointer to v. Convenience for building payloads.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
