package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crlf and cr", "a\r\nb\rc", "a\nb\nc"},
		{"en dash and hour markers", "09h00 \u2013 12H30", "09:00 - 12:30"},
		{"em dash and minus sign", "10:00\u201411:00 \u2212", "10:00-11:00 -"},
		{"dotted time", "Exam at 09.00.", "Exam at 09:00."},
		{"dotted date untouched", "03.11.2025", "03.11.2025"},
		{"invalid hour marker untouched", "25h99", "25h99"},
		{"non-breaking space folded", "ACC321\u00a009:00", "ACC321 09:00"},
		{"tabs and runs collapsed", "STUDIES\t09:00   180", "STUDIES 09:00 180"},
		{"full-width digits folded", "\uff10\uff19:\uff10\uff10", "09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_KeepsBlankLines(t *testing.T) {
	got := Normalize("line one\n   \nline two")
	assert.Equal(t, "line one\n\nline two", got)
}

func TestDetect(t *testing.T) {
	assert.Equal(t, FormatTabular, Detect("Final_Exams_2025\n..."))
	assert.Equal(t, FormatTabular, Detect("November Exam Timetable"))
	assert.Equal(t, FormatHeuristic, Detect("ACC321 03/11/2025 09:00"))
	assert.Equal(t, FormatHeuristic, Detect("final exam timetable"), "detection is case-sensitive")
}

func TestParseFormatAndKind(t *testing.T) {
	f, ok := ParseFormat("")
	assert.True(t, ok)
	assert.Equal(t, FormatAuto, f)

	f, ok = ParseFormat(" Tabular ")
	assert.True(t, ok)
	assert.Equal(t, FormatTabular, f)

	_, ok = ParseFormat("csv")
	assert.False(t, ok)

	k, ok := ParseKind("")
	assert.True(t, ok)
	assert.Equal(t, KindExam, k)

	k, ok = ParseKind("SESSION")
	assert.True(t, ok)
	assert.Equal(t, KindSession, k)
}
