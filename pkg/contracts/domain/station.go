package domain

import "strconv"

// RawStation is one worksheet row as read from the source workbook.
// Flag and code fields hold the raw cell text; empty means the cell was blank.
type RawStation struct {
	Row          int    `json:"row"`
	District     string `json:"district"`
	Landowner    string `json:"landowner"`
	StationName  string `json:"station_name"`
	DocA         string `json:"doc_a"`
	DocB         string `json:"doc_b"`
	DocC         string `json:"doc_c"`
	ProgressCode string `json:"progress_code"`
}

// Station is a normalized station record. Flags and the progress code are
// always defined after normalization.
type Station struct {
	Row          int    `json:"row"`
	District     string `json:"district"`
	Landowner    string `json:"landowner"`
	StationName  string `json:"station_name"`
	DocA         int    `json:"doc_a"`
	DocB         int    `json:"doc_b"`
	DocC         int    `json:"doc_c"`
	ProgressCode int    `json:"progress_code"`
}

// Raw renders the station back into its raw cell form.
func (s Station) Raw() RawStation {
	return RawStation{
		Row:          s.Row,
		District:     s.District,
		Landowner:    s.Landowner,
		StationName:  s.StationName,
		DocA:         strconv.Itoa(s.DocA),
		DocB:         strconv.Itoa(s.DocB),
		DocC:         strconv.Itoa(s.DocC),
		ProgressCode: strconv.Itoa(s.ProgressCode),
	}
}

// EnrichedStation carries the derived labels used by the report sheets.
type EnrichedStation struct {
	Station
	LandownerType          string `json:"landowner_type"`
	TranslatedProgressCode string `json:"translated_progress_code"`
	HasDocA                string `json:"has_doc_a"`
	HasDocB                string `json:"has_doc_b"`
	HasDocC                string `json:"has_doc_c"`
}

// DocKind identifies one of the three supporting documents.
type DocKind int

const (
	DocA DocKind = iota
	DocB
	DocC
)

// DocKinds lists the documents in report column order.
var DocKinds = [...]DocKind{DocA, DocB, DocC}

// String returns the document letter.
func (k DocKind) String() string {
	switch k {
	case DocA:
		return "A"
	case DocB:
		return "B"
	case DocC:
		return "C"
	default:
		return "?"
	}
}

// Flag returns the station's flag value for the given document.
func (s Station) Flag(k DocKind) int {
	switch k {
	case DocA:
		return s.DocA
	case DocB:
		return s.DocB
	case DocC:
		return s.DocC
	default:
		return 0
	}
}

const (
	PresenceYes = "Yes"
	PresenceNo  = "No"
)

// PresenceLabel is "Yes" only for a flag of exactly 1.
func PresenceLabel(flag int) string {
	if flag == 1 {
		return PresenceYes
	}
	return PresenceNo
}
