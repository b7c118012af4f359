package dataprocessing

import "stationdocs/pkg/contracts/domain"

// Enrich derives the display labels for every station.
func Enrich(stations []domain.Station) []domain.EnrichedStation {
	out := make([]domain.EnrichedStation, len(stations))
	for i, s := range stations {
		out[i] = domain.EnrichedStation{
			Station:                s,
			LandownerType:          s.Landowner,
			TranslatedProgressCode: domain.ProgressLabel(s.ProgressCode),
			HasDocA:                domain.PresenceLabel(s.DocA),
			HasDocB:                domain.PresenceLabel(s.DocB),
			HasDocC:                domain.PresenceLabel(s.DocC),
		}
	}
	return out
}

// KeyFunc selects the grouping key of a station.
type KeyFunc func(domain.EnrichedStation) string

// ByDistrict groups stations by district.
func ByDistrict(s domain.EnrichedStation) string { return s.District }

// ByLandowner groups stations by landowner type.
func ByLandowner(s domain.EnrichedStation) string { return s.LandownerType }
