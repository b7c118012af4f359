package dataprocessing

import (
	"sort"

	"stationdocs/pkg/contracts/domain"
)

// DocCount tallies one document within a group.
type DocCount struct {
	Without int `json:"without"`
	With    int `json:"with"`
	// Percentage is With/Total*100 for the owning group.
	Percentage float64 `json:"percentage"`
}

// DocSummary is the document-completion tally for one group key.
type DocSummary struct {
	Key   string      `json:"key"`
	Docs  [3]DocCount `json:"docs"`
	Total int         `json:"total"`
}

// Doc returns the tally for the given document.
func (d DocSummary) Doc(k domain.DocKind) DocCount {
	return d.Docs[k]
}

// SummarizeDocs tallies document presence per group key. Flags other than
// 0 and 1 count toward Total only. Rows are ordered ascending by key.
func SummarizeDocs(stations []domain.EnrichedStation, key KeyFunc) []DocSummary {
	groups := make(map[string]*DocSummary)
	for _, s := range stations {
		k := key(s)
		g, ok := groups[k]
		if !ok {
			g = &DocSummary{Key: k}
			groups[k] = g
		}
		g.Total++
		for _, doc := range domain.DocKinds {
			switch s.Flag(doc) {
			case 0:
				g.Docs[doc].Without++
			case 1:
				g.Docs[doc].With++
			}
		}
	}

	out := make([]DocSummary, 0, len(groups))
	for _, k := range sortedKeys(groups) {
		g := groups[k]
		for _, doc := range domain.DocKinds {
			g.Docs[doc].Percentage = percentOf(g.Docs[doc].With, g.Total)
		}
		out = append(out, *g)
	}
	return out
}

func percentOf(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
