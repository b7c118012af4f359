package dataprocessing

import (
	"sort"

	"stationdocs/pkg/contracts/domain"
)

// ListingRow is one line of the sorted station listing.
type ListingRow struct {
	Landowner              string `json:"landowner"`
	District               string `json:"district"`
	TranslatedProgressCode string `json:"translated_progress_code"`
	StationName            string `json:"station_name"`
	HasDocA                string `json:"has_doc_a"`
	HasDocB                string `json:"has_doc_b"`
	HasDocC                string `json:"has_doc_c"`
}

// SortStations orders stations by landowner, district, translated progress
// label and station name, and projects them to listing rows. The sort is
// stable so equal keys keep their source order.
func SortStations(stations []domain.EnrichedStation) []ListingRow {
	sorted := make([]domain.EnrichedStation, len(stations))
	copy(sorted, stations)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Landowner != b.Landowner {
			return a.Landowner < b.Landowner
		}
		if a.District != b.District {
			return a.District < b.District
		}
		if a.TranslatedProgressCode != b.TranslatedProgressCode {
			return a.TranslatedProgressCode < b.TranslatedProgressCode
		}
		return a.StationName < b.StationName
	})

	rows := make([]ListingRow, len(sorted))
	for i, s := range sorted {
		rows[i] = ListingRow{
			Landowner:              s.Landowner,
			District:               s.District,
			TranslatedProgressCode: s.TranslatedProgressCode,
			StationName:            s.StationName,
			HasDocA:                s.HasDocA,
			HasDocB:                s.HasDocB,
			HasDocC:                s.HasDocC,
		}
	}
	return rows
}
