package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"stationdocs/internal/config"
)

// SurveyHeader is the survey header row in source column order
func SurveyHeader() []interface{} {
	return []interface{}{
		config.ColumnDistrict,
		config.ColumnLandowner,
		config.ColumnStationName,
		config.ColumnDocA,
		config.ColumnDocB,
		config.ColumnDocC,
		config.ColumnProgressCode,
	}
}

// SurveyRows lays out a survey sheet the way the source workbook does: a
// banner row, the header, then data.
func SurveyRows(data ...[]interface{}) [][]interface{} {
	rows := make([][]interface{}, 0, len(data)+2)
	rows = append(rows, []interface{}{"Kid stations document survey"}, SurveyHeader())
	return append(rows, data...)
}

// WriteWorkbook saves rows to sheet of a new workbook at dir/name and
// returns its path.
func WriteWorkbook(t *testing.T, dir, name, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("failed to add sheet %q: %v", sheet, err)
		}
		if err := f.DeleteSheet("Sheet1"); err != nil {
			t.Fatalf("failed to drop default sheet: %v", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("bad row %d: %v", i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("failed to write row %d: %v", i, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

// WriteSurvey writes rows to the first sheet of dir/KidStationsDocs.xlsx
func WriteSurvey(t *testing.T, dir string, rows [][]interface{}) string {
	t.Helper()
	return WriteWorkbook(t, dir, config.DefaultInputFileName, "Sheet1", rows)
}
