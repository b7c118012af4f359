package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		places   int32
		expected string
	}{
		{
			name:     "zero value",
			input:    0.0,
			places:   2,
			expected: "0.00",
		},
		{
			name:     "whole percentage",
			input:    100.0,
			places:   2,
			expected: "100.00",
		},
		{
			name:     "two thirds",
			input:    200.0 / 3,
			places:   2,
			expected: "66.67",
		},
		{
			name:     "half rounds away from zero",
			input:    2.675,
			places:   2,
			expected: "2.68",
		},
		{
			name:     "no decimals",
			input:    50.5,
			places:   0,
			expected: "51",
		},
		{
			name:     "one decimal",
			input:    12.34,
			places:   1,
			expected: "12.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatFloat(tt.input, tt.places)
			assert.Equal(t, tt.expected, result, "formatFloat(%f, %d) = %s, want %s", tt.input, tt.places, result, tt.expected)
		})
	}
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 66.67, roundPercent(200.0/3, 2))
	assert.Equal(t, 2.68, roundPercent(2.675, 2))
	assert.Equal(t, 33.0, roundPercent(33.3333, 0))
	assert.Equal(t, 0.0, roundPercent(0, 2))
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "ผ่าน", "ผ่าน"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float", 12.5, "12.50"},
		{"bool", true, "true"},
		{"nil", nil, ""},
		{"other", uint8(3), "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatCell(tt.input, 2))
		})
	}
}

func TestPercentNumFmt(t *testing.T) {
	assert.Equal(t, "0", percentNumFmt(0))
	assert.Equal(t, "0.00", percentNumFmt(2))
	assert.Equal(t, "0.0000", percentNumFmt(4))
}

func TestIsPercentColumn(t *testing.T) {
	assert.True(t, isPercentColumn("Percentage"))
	assert.True(t, isPercentColumn("Percentage_With_Doc_A"))
	assert.False(t, isPercentColumn("Total_Centers"))
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 5, displayWidth("Dusit"))
	// ไม่ยอม: the tone mark over ม is combining
	assert.Equal(t, 5, displayWidth("ไม่ยอม"))
	assert.Equal(t, 0, displayWidth(""))
}

func TestColumnWidths(t *testing.T) {
	columns := []string{"ID", "Name"}
	rows := [][]any{
		{1, "a much longer station name than the header"},
	}

	widths := columnWidths(columns, rows, 2)
	assert.Equal(t, float64(minColumnWidth), widths[0])
	assert.Equal(t, float64(len("a much longer station name than the header")+2), widths[1])

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	widths = columnWidths([]string{string(long)}, nil, 2)
	assert.Equal(t, float64(maxColumnWidth), widths[0])
}

// BenchmarkFormatFloat tests the performance of formatFloat function
func BenchmarkFormatFloat(b *testing.B) {
	testValues := []float64{0.0, 66.666666, 100.0, 12.5, 33.333333}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, val := range testValues {
			formatFloat(val, 2)
		}
	}
}
