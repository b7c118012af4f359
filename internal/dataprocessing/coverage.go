package dataprocessing

import (
	"sort"

	"stationdocs/pkg/contracts/domain"
)

// LandownerCoverage describes how widely one landowner type is spread.
type LandownerCoverage struct {
	Landowner    string `json:"landowner"`
	TotalCenters int    `json:"total_centers"`
	// Districts lists distinct districts in first-occurrence order.
	Districts  []string `json:"districts"`
	Percentage float64  `json:"percentage"`
}

// TotalDistricts is the number of distinct districts spanned.
func (c LandownerCoverage) TotalDistricts() int {
	return len(c.Districts)
}

// LandownerShare is one row of the landowner percentage table.
type LandownerShare struct {
	Landowner  string  `json:"landowner"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CoverageSummary holds both landowner views of the dataset.
type CoverageSummary struct {
	// Coverage is ordered ascending by landowner.
	Coverage []LandownerCoverage `json:"coverage"`
	// Shares is ordered by count descending, then landowner ascending.
	Shares     []LandownerShare `json:"shares"`
	GrandTotal int              `json:"grand_total"`
}

// SummarizeCoverage computes per-landowner station counts, district spans
// and shares of the grand total.
func SummarizeCoverage(stations []domain.EnrichedStation) CoverageSummary {
	type acc struct {
		count     int
		districts []string
		seen      map[string]struct{}
	}

	groups := make(map[string]*acc)
	for _, s := range stations {
		g, ok := groups[s.Landowner]
		if !ok {
			g = &acc{seen: make(map[string]struct{})}
			groups[s.Landowner] = g
		}
		g.count++
		if _, dup := g.seen[s.District]; !dup {
			g.seen[s.District] = struct{}{}
			g.districts = append(g.districts, s.District)
		}
	}

	total := len(stations)
	summary := CoverageSummary{
		Coverage:   make([]LandownerCoverage, 0, len(groups)),
		Shares:     make([]LandownerShare, 0, len(groups)),
		GrandTotal: total,
	}

	for _, k := range sortedKeys(groups) {
		g := groups[k]
		pct := percentOf(g.count, total)
		summary.Coverage = append(summary.Coverage, LandownerCoverage{
			Landowner:    k,
			TotalCenters: g.count,
			Districts:    g.districts,
			Percentage:   pct,
		})
		summary.Shares = append(summary.Shares, LandownerShare{
			Landowner:  k,
			Count:      g.count,
			Percentage: pct,
		})
	}

	// Shares start ascending by key, so a stable sort on count keeps ties ordered.
	sort.SliceStable(summary.Shares, func(i, j int) bool {
		return summary.Shares[i].Count > summary.Shares[j].Count
	})

	return summary
}
