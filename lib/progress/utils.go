// Package progress provides utility functions for progress calculation and formatting.
package progress

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	percentageMultiplier = 100 // Multiplier to convert decimal to percentage
)

// CalculatePercentage calculates the percentage of a given value relative to a total, formatted to two decimal places.
// It returns "0.00%" if the total is zero to prevent division by zero errors.
func CalculatePercentage(value, total float64) string {
	if total == 0 {
		return "0.00%"
	}

	percentage := (value / total) * percentageMultiplier

	return fmt.Sprintf("%.2f%%", percentage)
}

// Fraction returns done/total clamped to [0, 1], or 0 when total is zero.
func Fraction(done, total uint64) float64 {
	if total == 0 {
		return 0
	}

	return math.Min(float64(done)/float64(total), 1)
}

// FormatETA renders a remaining duration as whole seconds with thousands
// separators, e.g. "1,234s".
func FormatETA(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	return humanize.Comma(int64(math.Round(d.Seconds()))) + "s"
}

// FormatElapsed renders a run duration the way completion messages print it: seconds with two decimals.
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
