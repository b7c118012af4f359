package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressLabel(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{name: "refused", code: 0, want: "ไม่ยอม"},
		{name: "nothing", code: 1, want: "ไม่มีอะไรเลย / ไม่รู้"},
		{name: "verbal consent", code: 2, want: "ยอม แต่ไม่มีลายลักอักษร"},
		{name: "passed", code: 3, want: "ผ่าน"},
		{name: "incomplete docs", code: 4, want: "ยอมแต่เอกสารไม่ครบ"},
		{name: "requesting", code: 5, want: "ระหว่างดำเนินการขอเอกสาร"},
		{name: "awaiting office", code: 6, want: "รอทางเขตติดต่อกลับ"},
		{name: "above range", code: 99, want: UnknownProgressLabel},
		{name: "negative", code: -1, want: UnknownProgressLabel},
		{name: "just past max", code: 7, want: UnknownProgressLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressLabel(tt.code))
			// same input, same label
			assert.Equal(t, ProgressLabel(tt.code), ProgressLabel(tt.code))
		})
	}
}

func TestProgressLabelsIsCopy(t *testing.T) {
	labels := ProgressLabels()
	assert.Len(t, labels, MaxProgressCode-MinProgressCode+1)

	labels[ProgressPassed] = "changed"
	assert.Equal(t, "ผ่าน", ProgressLabel(ProgressPassed))
}

func TestIsMappedProgressCode(t *testing.T) {
	for code := MinProgressCode; code <= MaxProgressCode; code++ {
		assert.True(t, IsMappedProgressCode(code), "code %d", code)
	}
	assert.False(t, IsMappedProgressCode(MinProgressCode-1))
	assert.False(t, IsMappedProgressCode(MaxProgressCode+1))
}
