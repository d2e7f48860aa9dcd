// Package derive holds the pure derivation layer of the dashboard: display
// formatting, funnel aggregation, benchmark deltas and view composition.
// Every function is total over missing, zero and negative inputs; a bad
// payload degrades to a placeholder, it never panics.
package derive

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	placeholderNA     = "N/A"
	placeholderZeroPc = "0%"
	placeholderNoData = "No data"
)

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders a nullable dollar amount with thousands separators
// and no decimal places. Missing or non-finite values render as "N/A".
func FormatCurrency(v *float64) string {
	if !finite(v) {
		return placeholderNA
	}
	return currencyPrinter.Sprintf("$%v", number.Decimal(*v, number.MaxFractionDigits(0)))
}

// FormatPercent renders a signed percentage to one decimal place with an
// explicit "+" for positive values. Missing values render as "0%".
func FormatPercent(v *float64) string {
	if !finite(v) {
		return placeholderZeroPc
	}
	formatted := strconv.FormatFloat(*v, 'f', 1, 64)
	if *v > 0 {
		formatted = "+" + formatted
	}
	return formatted + "%"
}

// FormatRate renders an unsigned percentage (a rate rather than a delta) to
// one decimal place. Missing values render as "0%".
func FormatRate(v *float64) string {
	if !finite(v) {
		return placeholderZeroPc
	}
	return strconv.FormatFloat(*v, 'f', 1, 64) + "%"
}

// FormatDaysOrHours renders a duration expressed in days, switching to
// hours below one day. The one-day threshold is fixed, not configurable.
// Missing or non-positive values render as "No data".
func FormatDaysOrHours(v *float64) string {
	if !finite(v) || *v <= 0 {
		return placeholderNoData
	}
	if *v >= 1 {
		return strconv.FormatFloat(*v, 'f', 1, 64) + " days"
	}
	return strconv.FormatFloat(*v*24, 'f', 1, 64) + " hours"
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
