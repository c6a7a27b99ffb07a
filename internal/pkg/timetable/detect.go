package timetable

import "strings"

// Signature tokens of the official bulk exam export.
const (
	tabularMarker = "Final_"
	tabularTitle  = "Exam Timetable"
)

// Detect picks the grammar for a document. Only the bulk export carries the
// tabular signature tokens; everything else, including ambiguous text, is
// read with the heuristic grammar.
func Detect(text string) Format {
	if strings.Contains(text, tabularMarker) || strings.Contains(text, tabularTitle) {
		return FormatTabular
	}
	return FormatHeuristic
}

// ParseFormat maps user input onto a Format. Empty input means auto.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatAuto:
		return FormatAuto, true
	case FormatTabular:
		return FormatTabular, true
	case FormatHeuristic:
		return FormatHeuristic, true
	}
	return "", false
}

// ParseKind maps user input onto a Kind. Empty input means exam.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindExam:
		return KindExam, true
	case KindSession:
		return KindSession, true
	}
	return "", false
}
