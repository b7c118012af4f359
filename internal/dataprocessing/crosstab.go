package dataprocessing

import (
	"stationdocs/pkg/contracts/domain"
)

// CrossTabRow holds the per-label station counts for one group key.
// Counts align with ProgressCrossTab.Labels.
type CrossTabRow struct {
	Key    string `json:"key"`
	Counts []int  `json:"counts"`
	Total  int    `json:"total"`
}

// ProgressCrossTab counts stations per (group key, progress label).
type ProgressCrossTab struct {
	Labels []string      `json:"labels"`
	Rows   []CrossTabRow `json:"rows"`
}

// HasUnknown reports whether an Unknown column was added for unmapped codes.
func (c ProgressCrossTab) HasUnknown() bool {
	return len(c.Labels) > domain.MaxProgressCode+1
}

// CrossTabulateProgress counts stations by group key and raw progress code,
// then labels the code columns through the progress mapping. The seven
// mapped labels always appear in code order; an Unknown column follows
// only when some station carries an unmapped code. Rows are ascending by key.
func CrossTabulateProgress(stations []domain.EnrichedStation, key KeyFunc) ProgressCrossTab {
	counts := make(map[string]map[int]int)
	unmapped := false
	for _, s := range stations {
		k := key(s)
		byCode, ok := counts[k]
		if !ok {
			byCode = make(map[int]int)
			counts[k] = byCode
		}
		byCode[s.ProgressCode]++
		if !domain.IsMappedProgressCode(s.ProgressCode) {
			unmapped = true
		}
	}

	labels := domain.ProgressLabels()
	unknownCol := -1
	if unmapped {
		unknownCol = len(labels)
		labels = append(labels, domain.UnknownProgressLabel)
	}

	tab := ProgressCrossTab{Labels: labels, Rows: make([]CrossTabRow, 0, len(counts))}
	for _, k := range sortedKeys(counts) {
		row := CrossTabRow{Key: k, Counts: make([]int, len(labels))}
		for code, n := range counts[k] {
			col := unknownCol
			if domain.IsMappedProgressCode(code) {
				col = code - domain.MinProgressCode
			}
			row.Counts[col] += n
			row.Total += n
		}
		tab.Rows = append(tab.Rows, row)
	}
	return tab
}
