package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stationdocs/internal/config"
	"stationdocs/pkg/contracts/domain"
)

func TestCoerceFlag(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		outcome Coercion
	}{
		{"empty", "", 0, CoercedEmpty},
		{"whitespace", "   ", 0, CoercedEmpty},
		{"one", "1", 1, CoercedExact},
		{"zero", "0", 0, CoercedExact},
		{"negative", "-2", -2, CoercedExact},
		{"padded", " 3 ", 3, CoercedExact},
		{"float integral", "1.0", 1, CoercedExact},
		{"float fraction", "2.9", 2, CoercedTruncated},
		{"negative fraction", "-1.5", -1, CoercedTruncated},
		{"thousands", "1,000", 1000, CoercedExact},
		{"true", "TRUE", 1, CoercedExact},
		{"false lower", "false", 0, CoercedExact},
		{"text", "yes", 0, CoercedInvalid},
		{"nan", "NaN", 0, CoercedInvalid},
		{"inf", "+Inf", 0, CoercedInvalid},
		{"huge", "1e300", 0, CoercedInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outcome := CoerceFlag(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.outcome, outcome)
		})
	}
}

func TestNormalize(t *testing.T) {
	stations, stats := Normalize(sampleRaws())
	require.Len(t, stations, 8)

	assert.Equal(t, 8, stats.Records)

	// S1: blank C
	assert.Equal(t, 1, stations[0].DocA)
	assert.Equal(t, 0, stations[0].DocC)
	// S3: "1.0"
	assert.Equal(t, 1, stations[2].DocA)
	// S4: all blank
	assert.Equal(t, domain.Station{District: "Dusit", Landowner: "Government", StationName: "S4"}, stations[3])
	// S6: "yes" and unmapped code pass through
	assert.Equal(t, 0, stations[5].DocA)
	assert.Equal(t, 2, stations[5].DocB)
	assert.Equal(t, 9, stations[5].ProgressCode)
	// S8: "2.7" truncated
	assert.Equal(t, 2, stations[7].ProgressCode)

	assert.Equal(t, 1, stats.Issues())
	assert.Equal(t, 1, stats.Columns[config.ColumnDocA].Invalid)
	assert.Equal(t, 2, stats.Columns[config.ColumnDocC].Empty)
	assert.Equal(t, 1, stats.Columns[config.ColumnProgressCode].Truncated)
	assert.Equal(t, 0, stats.BlankKeys)
	// 1 invalid + 1+1+2+1 empty + 1 truncated
	assert.Equal(t, 7, stats.Repaired())
}

func TestNormalizeCleansText(t *testing.T) {
	decomposed := "Cafe\u0301"
	stations, stats := Normalize([]domain.RawStation{
		raw("  Dusit ", decomposed, " S1", "1", "1", "1", "1"),
		raw("", "Temple", "S2", "1", "1", "1", "1"),
	})

	assert.Equal(t, "Dusit", stations[0].District)
	assert.Equal(t, "Caf\u00e9", stations[0].Landowner)
	assert.Equal(t, "S1", stations[0].StationName)
	assert.Equal(t, 1, stats.BlankKeys)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once, _ := Normalize(sampleRaws())
	twice := NormalizeStations(once)
	assert.Equal(t, once, twice)

	thrice := NormalizeStations(twice)
	assert.Equal(t, once, thrice)
}

func TestNormalizeEmpty(t *testing.T) {
	stations, stats := Normalize(nil)
	assert.Empty(t, stations)
	assert.Equal(t, 0, stats.Records)
	assert.Equal(t, 0, stats.Issues())
}

func TestEnrich(t *testing.T) {
	stations, _ := Normalize(sampleRaws())
	enriched := Enrich(stations)
	require.Len(t, enriched, len(stations))

	s1 := enriched[0]
	assert.Equal(t, "ผ่าน", s1.TranslatedProgressCode)
	assert.Equal(t, "Yes", s1.HasDocA)
	assert.Equal(t, "No", s1.HasDocB)
	assert.Equal(t, "No", s1.HasDocC)
	assert.Equal(t, "Temple", s1.LandownerType)

	// DocB == 2 is not presence
	assert.Equal(t, "No", enriched[5].HasDocB)
	assert.Equal(t, domain.UnknownProgressLabel, enriched[5].TranslatedProgressCode)

	for i, e := range enriched {
		assert.Equal(t, stations[i], e.Station, "enrichment must not alter source fields")
	}
}
