package timetable

import (
	"fmt"
	"strings"
	"time"
)

// DefaultDurationMinutes is assumed when neither a duration nor an end time
// can be recovered from the source document.
const DefaultDurationMinutes = 180

// Plausible duration window in minutes. Numbers outside it are not durations.
const (
	MinDurationMinutes = 30
	MaxDurationMinutes = 300
)

// Format names the grammar used to read a document.
type Format string

const (
	FormatAuto      Format = "auto"
	FormatTabular   Format = "tabular"
	FormatHeuristic Format = "heuristic"
)

// Kind selects which schedule record an import produces.
type Kind string

const (
	KindExam    Kind = "exam"
	KindSession Kind = "session"
)

// Clock is a time of day stored as minutes since midnight.
type Clock int

const minutesPerDay = 24 * 60

// NewClock builds a Clock, reporting false for out-of-range values.
func NewClock(hour, minute int) (Clock, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return Clock(hour*60 + minute), true
}

// ParseClock accepts "HH:MM" and "HH:MM:SS".
func ParseClock(s string) (Clock, error) {
	var h, m, sec int
	s = strings.TrimSpace(s)
	switch strings.Count(s, ":") {
	case 1:
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, fmt.Errorf("invalid time %q: %w", s, err)
		}
	case 2:
		if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
			return 0, fmt.Errorf("invalid time %q: %w", s, err)
		}
	default:
		return 0, fmt.Errorf("invalid time %q", s)
	}
	c, ok := NewClock(h, m)
	if !ok || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("time out of range %q", s)
	}
	return c, nil
}

// Hour returns the hour component.
func (c Clock) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c Clock) Minute() int { return int(c) % 60 }

// Add returns the clock shifted by minutes, wrapping at midnight.
func (c Clock) Add(minutes int) Clock {
	v := (int(c) + minutes) % minutesPerDay
	if v < 0 {
		v += minutesPerDay
	}
	return Clock(v)
}

// String renders the clock as HH:MM:SS.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:00", c.Hour(), c.Minute())
}

// MinutesBetween is the wrap-aware distance from start to end: an end earlier
// than the start is read as falling on the next day.
func MinutesBetween(start, end Clock) int {
	if end < start {
		end += minutesPerDay
	}
	return int(end - start)
}

// Entry is a schedule record recovered from text, before persistence.
// Optional fields are nil when the document did not supply them.
type Entry struct {
	ModuleCode string
	Date       *time.Time
	Weekday    *time.Weekday
	StartTime  *Clock
	EndTime    *Clock
	Duration   *int
	Venue      string
	Lecturer   string
	SourceText string
}

// Complete reports whether the entry carries its identity fields. Session
// timetables may name a weekday instead of a calendar date.
func (e *Entry) Complete(kind Kind) bool {
	if e.ModuleCode == "" || e.StartTime == nil {
		return false
	}
	if e.Date != nil {
		return true
	}
	return kind == KindSession && e.Weekday != nil
}

// DateString renders the date as YYYY-MM-DD, or "" when absent.
func (e *Entry) DateString() string {
	if e.Date == nil {
		return ""
	}
	return e.Date.Format(DateLayout)
}

// DateLayout is the canonical calendar date notation.
const DateLayout = "2006-01-02"

// deriveTimes fills whichever of end time and duration is missing.
func (e *Entry) deriveTimes() {
	if e.StartTime == nil {
		return
	}
	switch {
	case e.EndTime == nil && e.Duration != nil:
		end := e.StartTime.Add(*e.Duration)
		e.EndTime = &end
	case e.EndTime != nil && e.Duration == nil:
		d := MinutesBetween(*e.StartTime, *e.EndTime)
		e.Duration = &d
	case e.EndTime == nil && e.Duration == nil:
		d := DefaultDurationMinutes
		end := e.StartTime.Add(d)
		e.Duration = &d
		e.EndTime = &end
	}
}

func (e *Entry) appendSource(line string) {
	if e.SourceText == "" {
		e.SourceText = line
		return
	}
	e.SourceText += "\n" + line
}

func intPtr(v int) *int { return &v }
