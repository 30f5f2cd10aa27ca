package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		expected string
	}{
		{
			name:     "Zero price is price on request",
			price:    0,
			expected: "По запросу",
		},
		{
			name:     "Negative price is price on request",
			price:    -10,
			expected: "По запросу",
		},
		{
			name:     "Small amount has no grouping",
			price:    450,
			expected: "450 ₽",
		},
		{
			name:     "Four digits grouped",
			price:    1250,
			expected: "1 250 ₽",
		},
		{
			name:     "Six digits grouped",
			price:    125000,
			expected: "125 000 ₽",
		},
		{
			name:     "Seven digits grouped twice",
			price:    1250000,
			expected: "1 250 000 ₽",
		},
		{
			name:     "Fractional amount rounded",
			price:    999.6,
			expected: "1 000 ₽",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPrice(tt.price))
		})
	}
}
