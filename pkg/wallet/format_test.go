package wallet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatLovelace(t *testing.T) {
	tests := []struct {
		quantity string
		expected string
	}{
		{"1000000", "1.000000"},
		{"1", "0.000001"},
		{"0", "0.000000"},
		{"999999", "0.999999"},
		{"1000001", "1.000001"},
		{"45000000", "45.000000"},
		// larger than what float64 or int53 arithmetic could represent exactly
		{"123456789012345678901", "123456789012345.678901"},
		// malformed input normalizes to zero
		{"", "0.000000"},
		{"  ", "0.000000"},
		{"abc", "0.000000"},
		{"-5", "0.000000"},
		{"1.5", "0.000000"},
	}
	for _, tt := range tests {
		t.Run(tt.quantity, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatLovelace(tt.quantity))
		})
	}
}

func TestSumLovelace(t *testing.T) {
	require.Equal(t, "0", SumLovelace(nil))
	require.Equal(t, "3000000", SumLovelace([]Asset{
		{Unit: UnitLovelace, Quantity: "1000000"},
		{Unit: "token.acme", Quantity: "42"},
		{Unit: UnitLovelace, Quantity: "2000000"},
		{Unit: UnitLovelace, Quantity: "not a number"},
	}))
}
