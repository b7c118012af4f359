package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"stationdocs/internal/config"
	"stationdocs/pkg/contracts/domain"
)

// Coercion describes how a raw cell became an integer.
type Coercion int

const (
	// CoercedExact means the cell held an integer value (possibly as "1.0" or TRUE).
	CoercedExact Coercion = iota
	// CoercedEmpty means the cell was blank and defaulted to 0.
	CoercedEmpty
	// CoercedTruncated means a fractional value was truncated toward zero.
	CoercedTruncated
	// CoercedInvalid means the cell was not numeric and defaulted to 0.
	CoercedInvalid
)

// CoerceFlag converts a raw flag or progress-code cell to an integer.
// It is total: every input yields a value, with the outcome saying how.
func CoerceFlag(raw string) (int, Coercion) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, CoercedEmpty
	}

	switch strings.ToUpper(s) {
	case "TRUE":
		return 1, CoercedExact
	case "FALSE":
		return 0, CoercedExact
	}

	s = strings.ReplaceAll(s, ",", "")

	if n, err := strconv.Atoi(s); err == nil {
		return n, CoercedExact
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, CoercedInvalid
	}

	t := math.Trunc(f)
	if t > math.MaxInt32 || t < math.MinInt32 {
		return 0, CoercedInvalid
	}
	if t != f {
		return int(t), CoercedTruncated
	}
	return int(t), CoercedExact
}

// ColumnStats counts non-exact coercions for one source column.
type ColumnStats struct {
	Empty     int `json:"empty"`
	Truncated int `json:"truncated"`
	Invalid   int `json:"invalid"`
}

// NormalizeStats summarizes what normalization had to repair.
type NormalizeStats struct {
	Records int                    `json:"records"`
	Columns map[string]ColumnStats `json:"columns"`
	// BlankKeys counts records with an empty district or landowner.
	BlankKeys int `json:"blank_keys"`
}

// Issues returns the number of cells that were not numeric at all.
func (s NormalizeStats) Issues() int {
	total := 0
	for _, c := range s.Columns {
		total += c.Invalid
	}
	return total
}

// Repaired returns the number of cells that were blank, truncated or invalid.
func (s NormalizeStats) Repaired() int {
	total := 0
	for _, c := range s.Columns {
		total += c.Empty + c.Truncated + c.Invalid
	}
	return total
}

func (s *NormalizeStats) record(column string, c Coercion) {
	if c == CoercedExact {
		return
	}
	cs := s.Columns[column]
	switch c {
	case CoercedEmpty:
		cs.Empty++
	case CoercedTruncated:
		cs.Truncated++
	case CoercedInvalid:
		cs.Invalid++
	}
	s.Columns[column] = cs
}

// Normalize coerces the flag and progress-code cells of every record to
// integers and cleans the text fields. Record order and count are preserved.
func Normalize(raws []domain.RawStation) ([]domain.Station, NormalizeStats) {
	stats := NormalizeStats{
		Records: len(raws),
		Columns: make(map[string]ColumnStats),
	}
	out := make([]domain.Station, len(raws))

	coerce := func(column, raw string) int {
		v, c := CoerceFlag(raw)
		stats.record(column, c)
		return v
	}

	for i, r := range raws {
		st := domain.Station{
			Row:          r.Row,
			District:     normalizeText(r.District),
			Landowner:    normalizeText(r.Landowner),
			StationName:  normalizeText(r.StationName),
			DocA:         coerce(config.ColumnDocA, r.DocA),
			DocB:         coerce(config.ColumnDocB, r.DocB),
			DocC:         coerce(config.ColumnDocC, r.DocC),
			ProgressCode: coerce(config.ColumnProgressCode, r.ProgressCode),
		}
		if st.District == "" || st.Landowner == "" {
			stats.BlankKeys++
		}
		out[i] = st
	}

	return out, stats
}

// NormalizeStations re-normalizes already normalized records. The result
// equals the input.
func NormalizeStations(stations []domain.Station) []domain.Station {
	raws := make([]domain.RawStation, len(stations))
	for i, s := range stations {
		raws[i] = s.Raw()
	}
	out, _ := Normalize(raws)
	return out
}

// normalizeText trims whitespace and applies Unicode NFC so composed and
// decomposed Thai spellings group together.
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
