package exporter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"stationdocs/internal/config"
)

const (
	minColumnWidth = 8
	maxColumnWidth = 60
)

// roundPercent rounds a percentage half away from zero to places decimals.
func roundPercent(f float64, places int32) float64 {
	return decimal.NewFromFloat(f).Round(places).InexactFloat64()
}

// formatFloat formats a percentage for CSV output with exactly places decimals
func formatFloat(f float64, places int32) string {
	return decimal.NewFromFloat(f).StringFixed(places)
}

// formatCell renders a sheet cell as CSV text
func formatCell(v any, places int32) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return formatFloat(val, places)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// isPercentColumn reports whether a header names a percentage column
func isPercentColumn(name string) bool {
	return strings.HasPrefix(name, config.ColumnPercentage)
}

// percentNumFmt is the custom number format showing places decimals
func percentNumFmt(places int32) string {
	if places <= 0 {
		return "0"
	}
	return "0." + strings.Repeat("0", int(places))
}

// displayWidth approximates the rendered width of s in characters.
// Thai tone marks and vowel signs are combining and take no column.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		n++
	}
	return n
}

// columnWidths sizes each column to its widest header or cell
func columnWidths(columns []string, rows [][]any, places int32) []float64 {
	widths := make([]float64, len(columns))
	for i, col := range columns {
		w := displayWidth(col)
		for _, row := range rows {
			if i < len(row) {
				if cw := displayWidth(formatCell(row[i], places)); cw > w {
					w = cw
				}
			}
		}
		w += 2
		if w < minColumnWidth {
			w = minColumnWidth
		}
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		widths[i] = float64(w)
	}
	return widths
}
