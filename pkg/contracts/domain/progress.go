package domain

// Progress codes describe how far a station's documentation has advanced.
const (
	ProgressRefused        = 0
	ProgressNothing        = 1
	ProgressVerbalConsent  = 2
	ProgressPassed         = 3
	ProgressIncompleteDocs = 4
	ProgressRequesting     = 5
	ProgressAwaitingOffice = 6

	MinProgressCode = ProgressRefused
	MaxProgressCode = ProgressAwaitingOffice
)

// UnknownProgressLabel is returned for codes outside MinProgressCode..MaxProgressCode.
const UnknownProgressLabel = "Unknown"

var progressLabels = [...]string{
	ProgressRefused:        "ไม่ยอม",
	ProgressNothing:        "ไม่มีอะไรเลย / ไม่รู้",
	ProgressVerbalConsent:  "ยอม แต่ไม่มีลายลักอักษร",
	ProgressPassed:         "ผ่าน",
	ProgressIncompleteDocs: "ยอมแต่เอกสารไม่ครบ",
	ProgressRequesting:     "ระหว่างดำเนินการขอเอกสาร",
	ProgressAwaitingOffice: "รอทางเขตติดต่อกลับ",
}

// ProgressLabel translates a progress code into its status label.
func ProgressLabel(code int) string {
	if !IsMappedProgressCode(code) {
		return UnknownProgressLabel
	}
	return progressLabels[code]
}

// IsMappedProgressCode reports whether code has a label of its own.
func IsMappedProgressCode(code int) bool {
	return code >= MinProgressCode && code <= MaxProgressCode
}

// ProgressLabels returns the mapped labels in code order. The result is a copy.
func ProgressLabels() []string {
	out := make([]string, len(progressLabels))
	copy(out, progressLabels[:])
	return out
}
