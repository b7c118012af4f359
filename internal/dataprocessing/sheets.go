package dataprocessing

import (
	"fmt"
	"strings"

	"stationdocs/internal/config"
	"stationdocs/pkg/contracts/domain"
)

// DocSummaryColumns returns the header of a document summary sheet keyed by keyColumn.
func DocSummaryColumns(keyColumn string) []string {
	cols := []string{keyColumn}
	for _, doc := range domain.DocKinds {
		cols = append(cols,
			fmt.Sprintf("Without_Doc_%s", doc),
			fmt.Sprintf("With_Doc_%s", doc))
	}
	cols = append(cols, config.ColumnTotalCenters)
	for _, doc := range domain.DocKinds {
		cols = append(cols, fmt.Sprintf("Percentage_With_Doc_%s", doc))
	}
	return cols
}

// DocSummarySheet lays out document summaries as a sheet.
func DocSummarySheet(name, keyColumn string, rows []DocSummary) domain.Sheet {
	sheet := domain.Sheet{Name: name, Columns: DocSummaryColumns(keyColumn), Rows: [][]any{}}
	for _, r := range rows {
		cells := []any{r.Key}
		for _, doc := range domain.DocKinds {
			cells = append(cells, r.Doc(doc).Without, r.Doc(doc).With)
		}
		cells = append(cells, r.Total)
		for _, doc := range domain.DocKinds {
			cells = append(cells, r.Doc(doc).Percentage)
		}
		sheet.AddRow(cells...)
	}
	return sheet
}

// CrossTabSheet lays out a progress cross-tab with the key as index column.
func CrossTabSheet(name, keyColumn string, tab ProgressCrossTab) domain.Sheet {
	sheet := domain.Sheet{
		Name:         name,
		Columns:      append([]string{keyColumn}, tab.Labels...),
		Rows:         [][]any{},
		IndexColumns: 1,
	}
	for _, r := range tab.Rows {
		cells := make([]any, 0, len(r.Counts)+1)
		cells = append(cells, r.Key)
		for _, n := range r.Counts {
			cells = append(cells, n)
		}
		sheet.AddRow(cells...)
	}
	return sheet
}

// ListingSheet lays out the sorted station listing.
func ListingSheet(rows []ListingRow) domain.Sheet {
	sheet := domain.Sheet{
		Name: config.SheetSortedCenters,
		Columns: []string{
			config.ColumnLandowner,
			config.ColumnDistrict,
			config.ColumnTranslatedProgressCode,
			config.ColumnStationName,
			config.ColumnHasDocA,
			config.ColumnHasDocB,
			config.ColumnHasDocC,
		},
		Rows: [][]any{},
	}
	for _, r := range rows {
		sheet.AddRow(r.Landowner, r.District, r.TranslatedProgressCode, r.StationName,
			r.HasDocA, r.HasDocB, r.HasDocC)
	}
	return sheet
}

// PercentageSheet lays out landowner shares with the landowner as index column.
func PercentageSheet(shares []LandownerShare) domain.Sheet {
	sheet := domain.Sheet{
		Name:         config.SheetLandownerPercentages,
		Columns:      []string{config.ColumnLandowner, config.ColumnPercentage},
		Rows:         [][]any{},
		IndexColumns: 1,
	}
	for _, s := range shares {
		sheet.AddRow(s.Landowner, s.Percentage)
	}
	return sheet
}

// DistrictsSheet lists the districts each landowner covers.
func DistrictsSheet(coverage []LandownerCoverage) domain.Sheet {
	sheet := domain.Sheet{
		Name:    config.SheetLandownerDistricts,
		Columns: []string{config.ColumnLandowner, config.ColumnDistricts},
		Rows:    [][]any{},
	}
	for _, c := range coverage {
		sheet.AddRow(c.Landowner, strings.Join(c.Districts, config.DistrictJoinSeparator))
	}
	return sheet
}

// CoverageSheet lays out the landowner coverage summary.
func CoverageSheet(coverage []LandownerCoverage) domain.Sheet {
	sheet := domain.Sheet{
		Name: config.SheetLandownerSummary,
		Columns: []string{
			config.ColumnLandowner,
			config.ColumnTotalCenters,
			config.ColumnTotalDistricts,
			config.ColumnDistrictsSpanned,
		},
		Rows: [][]any{},
	}
	for _, c := range coverage {
		sheet.AddRow(c.Landowner, c.TotalCenters, c.TotalDistricts(),
			strings.Join(c.Districts, config.DistrictJoinSeparator))
	}
	return sheet
}
