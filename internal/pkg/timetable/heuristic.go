package timetable

import (
	"strings"
	"time"
)

// lineFields holds whatever a single physical line yielded.
type lineFields struct {
	module   string
	date     *time.Time
	weekday  *time.Weekday
	times    *TimeRange
	duration *int
	venue    string
	lecturer string
}

func (f lineFields) empty() bool {
	return f.module == "" && f.date == nil && f.weekday == nil && f.times == nil &&
		f.duration == nil && f.venue == "" && f.lecturer == ""
}

// extractFields runs every field's rule list over one line.
func extractFields(line string) lineFields {
	var f lineFields
	if v, _, ok := FirstMatch(ModuleCodeRules, line); ok {
		f.module = strings.ToUpper(v)
	}
	if v, _, ok := FirstMatch(DateRules, line); ok {
		f.date = &v
	}
	if v, _, ok := FirstMatch(WeekdayRules, line); ok {
		f.weekday = &v
	}
	if v, _, ok := FirstMatch(TimeRules, line); ok {
		f.times = &v
	}
	if v, _, ok := FirstMatch(DurationRules, line); ok {
		f.duration = &v
	}
	if v, _, ok := FirstMatch(VenueRules, line); ok {
		f.venue = v
	}
	if v, _, ok := FirstMatch(LecturerRules, line); ok {
		f.lecturer = v
	}
	return f
}

// HeuristicAssembler reads freeform documents line by line. A line that only
// carries some fields is merged into the pending entry, and the entry is
// emitted as soon as it is complete rather than at a blank line.
type HeuristicAssembler struct {
	kind    Kind
	pending *Entry
	entries []Entry
}

// NewHeuristicAssembler returns an assembler with no pending entry.
func NewHeuristicAssembler(kind Kind) *HeuristicAssembler {
	return &HeuristicAssembler{kind: kind}
}

// Pending returns the entry being accumulated, or nil.
func (a *HeuristicAssembler) Pending() *Entry { return a.pending }

// Feed consumes one normalized physical line.
func (a *HeuristicAssembler) Feed(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	f := extractFields(line)
	if f.empty() {
		return
	}

	// A field the pending entry already holds means this line belongs to a
	// new record; the incomplete one is dropped.
	if a.pending != nil && conflicts(a.pending, f) {
		a.pending = nil
	}
	if a.pending == nil {
		a.pending = &Entry{}
	}
	merge(a.pending, f)
	a.pending.appendSource(line)

	if a.pending.Complete(a.kind) {
		a.pending.deriveTimes()
		a.entries = append(a.entries, *a.pending)
		a.pending = nil
	}
}

// Finish returns the emitted entries. A pending entry is by definition
// incomplete and is discarded.
func (a *HeuristicAssembler) Finish() []Entry {
	a.pending = nil
	return a.entries
}

func conflicts(e *Entry, f lineFields) bool {
	switch {
	case f.module != "" && e.ModuleCode != "" && f.module != e.ModuleCode:
		return true
	case f.date != nil && e.Date != nil && !f.date.Equal(*e.Date):
		return true
	case f.weekday != nil && e.Weekday != nil && *f.weekday != *e.Weekday:
		return true
	case f.times != nil && e.StartTime != nil && f.times.Start != *e.StartTime:
		return true
	case f.venue != "" && e.Venue != "" && f.venue != e.Venue:
		return true
	}
	return false
}

func merge(e *Entry, f lineFields) {
	if e.ModuleCode == "" {
		e.ModuleCode = f.module
	}
	if e.Date == nil {
		e.Date = f.date
	}
	if e.Weekday == nil {
		e.Weekday = f.weekday
	}
	if e.StartTime == nil && f.times != nil {
		start := f.times.Start
		e.StartTime = &start
		e.EndTime = f.times.End
	}
	if e.Duration == nil {
		e.Duration = f.duration
	}
	if e.Venue == "" {
		e.Venue = f.venue
	}
	if e.Lecturer == "" {
		e.Lecturer = f.lecturer
	}
}
