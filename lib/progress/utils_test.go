package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected string
	}{
		{name: "one length of two", value: 26, total: 702, expected: "3.70%"},
		{name: "half of lengths 1-3", value: 9139, total: 18278, expected: "50.00%"},
		{name: "first sample of eight letters", value: 100_000, total: 217_180_147_158, expected: "0.00%"},
		{name: "finished", value: 18278, total: 18278, expected: "100.00%"},
		{name: "unknown total", value: 1500, total: 0, expected: "0.00%"},
		{name: "overshoot is not clamped", value: 30, total: 20, expected: "150.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculatePercentage(tt.value, tt.total))
		})
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		name     string
		done     uint64
		total    uint64
		expected float64
	}{
		{name: "unknown total", done: 10, total: 0, expected: 0},
		{name: "half", done: 351, total: 702, expected: 0.5},
		{name: "complete", done: 702, total: 702, expected: 1},
		{name: "overshoot clamped", done: 800, total: 702, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Fraction(tt.done, tt.total), 1e-9)
		})
	}
}

func TestFormatETA(t *testing.T) {
	tests := []struct {
		name     string
		eta      time.Duration
		expected string
	}{
		{name: "zero", eta: 0, expected: "0s"},
		{name: "negative", eta: -time.Second, expected: "0s"},
		{name: "rounds", eta: 1500 * time.Millisecond, expected: "2s"},
		{name: "thousands", eta: 1234 * time.Second, expected: "1,234s"},
		{name: "days", eta: 48 * time.Hour, expected: "172,800s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatETA(tt.eta))
		})
	}
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0.00s", FormatElapsed(0))
	assert.Equal(t, "12.50s", FormatElapsed(12500*time.Millisecond))
}
