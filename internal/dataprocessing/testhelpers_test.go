package dataprocessing

import (
	"testing"

	"stationdocs/internal/shared/testutil"
	"stationdocs/pkg/contracts/domain"
)

// raw builds a raw station with string flags.
func raw(district, landowner, name, a, b, c, code string) domain.RawStation {
	return domain.RawStation{
		District:     district,
		Landowner:    landowner,
		StationName:  name,
		DocA:         a,
		DocB:         b,
		DocC:         c,
		ProgressCode: code,
	}
}

// station builds an enriched station from integer flags.
func station(district, landowner, name string, a, b, c, code int) domain.EnrichedStation {
	return Enrich([]domain.Station{{
		District:     district,
		Landowner:    landowner,
		StationName:  name,
		DocA:         a,
		DocB:         b,
		DocC:         c,
		ProgressCode: code,
	}})[0]
}

// sampleRaws is a small mixed dataset covering blanks, decimals and text.
func sampleRaws() []domain.RawStation {
	return []domain.RawStation{
		raw("Bang Kapi", "Temple", "S1", "1", "0", "", "3"),
		raw("Bang Kapi", "Private", "S2", "0", "1", "1", "0"),
		raw("Bang Kapi", "Temple", "S3", "1.0", "1", "0", "5"),
		raw("Dusit", "Government", "S4", "", "", "", ""),
		raw("Dusit", "Temple", "S5", "1", "1", "1", "3"),
		raw("Chatuchak", "Private", "S6", "yes", "2", "0", "9"),
		raw("Chatuchak", "Government", "S7", "0", "0", "1", "6"),
		raw("Dusit", "Private", "S8", "1", "0", "0", "2.7"),
	}
}

// writeWorkbook saves rows to sheet in a fresh xlsx file and returns its path.
func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	return testutil.WriteWorkbook(t, t.TempDir(), "stations.xlsx", sheet, rows)
}

// surveyHeader is the header row in source column order.
func surveyHeader() []interface{} {
	return testutil.SurveyHeader()
}
