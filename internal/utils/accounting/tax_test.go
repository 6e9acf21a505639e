package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateWHT(t *testing.T) {
	tests := []struct {
		name string
		base string
		rate string
		want string
	}{
		{"professional services 3%", "1000.00", "3.00", "30"},
		{"salary 1%", "1000.00", "1.00", "10"},
		{"rental 5%", "12345.67", "5.00", "617.28"},
		{"dividends 10%", "999.99", "10.00", "100"},
		{"rounds half up", "100.25", "3.00", "3.01"}, // 3.0075 -> 3.01
		{"zero base", "0.00", "3.00", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateWHT(decimal.RequireFromString(tt.base), decimal.RequireFromString(tt.rate))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"CalculateWHT(%s, %s) = %s, want %s", tt.base, tt.rate, got, tt.want)
		})
	}
}

func TestCalculateVAT(t *testing.T) {
	tests := []struct {
		name string
		base string
		rate string
		want string
	}{
		{"standard 7%", "1000.00", "7.00", "70"},
		{"zero rated", "1000.00", "0.00", "0"},
		{"rounds to minor unit", "14.28", "7.00", "1"}, // 0.9996 -> 1.00
		{"large base", "1234567.89", "7.00", "86419.75"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateVAT(decimal.RequireFromString(tt.base), decimal.RequireFromString(tt.rate))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"CalculateVAT(%s, %s) = %s, want %s", tt.base, tt.rate, got, tt.want)
		})
	}
}

func TestCalculateVAT_NoCentDrift(t *testing.T) {
	// Summing many per-line VAT amounts must stay exact; binary floats would
	// drift across thousands of postings.
	rate := decimal.RequireFromString("7.00")
	base := decimal.RequireFromString("0.10")
	sum := decimal.Zero
	for i := 0; i < 10000; i++ {
		sum = sum.Add(CalculateVAT(base, rate))
	}
	assert.True(t, sum.Equal(decimal.RequireFromString("100.00")), "sum = %s", sum)
}
