package timetable

import (
	"regexp"
	"strings"
)

var (
	// signaturePattern matches the first line of a bulk export record:
	// "2025/11/03ACC321_P_1_1AUDITING 321".
	signaturePattern = regexp.MustCompile(`^(\d{4})/(\d{2})/(\d{2})\s*([A-Z]{2,4})\s?(\d{3}[A-Z]?)_P_\d+_\d+(.*)$`)

	pageNumberPattern    = regexp.MustCompile(`^\d{1,4}$`)
	columnHeaderPattern  = regexp.MustCompile(`(?i)^(?:exam timetable\b|date\s.*\bmodule\b|module\s.*\bdate\b|(?:session|venue|time|duration|room|page)\b)`)
	clockTokenPattern    = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})?$`)
	durationTokenPattern = regexp.MustCompile(`^\d{2,3}$`)
)

// TabularState is a state of the bulk export reader.
type TabularState int

const (
	// StateIdle waits for a record signature line.
	StateIdle TabularState = iota
	// StateAccumulating collects fields for the current record.
	StateAccumulating
)

func (s TabularState) String() string {
	if s == StateAccumulating {
		return "accumulating"
	}
	return "idle"
}

// TabularAssembler reads the multi-line bulk export grammar, where one record
// spans several physical lines and records are separated by blank lines.
type TabularAssembler struct {
	kind            Kind
	state           TabularState
	current         *Entry
	afterPageNumber bool
	entries         []Entry
}

// NewTabularAssembler returns an assembler in the idle state.
func NewTabularAssembler(kind Kind) *TabularAssembler {
	return &TabularAssembler{kind: kind}
}

// State exposes the current state for tests and diagnostics.
func (a *TabularAssembler) State() TabularState { return a.state }

// Feed consumes one normalized physical line.
func (a *TabularAssembler) Feed(line string) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		a.onBlank()
		return
	case pageNumberPattern.MatchString(line):
		a.afterPageNumber = true
		return
	case columnHeaderPattern.MatchString(line):
		return
	}
	a.afterPageNumber = false

	if m := signaturePattern.FindStringSubmatch(line); m != nil {
		a.begin(m, line)
		return
	}
	if a.state == StateAccumulating {
		a.current.appendSource(line)
		a.scan(line)
	}
}

// Finish flushes any pending record and returns everything assembled.
func (a *TabularAssembler) Finish() []Entry {
	a.flush()
	return a.entries
}

func (a *TabularAssembler) onBlank() {
	// A page break renders as "<page number>\n\n"; that blank does not end
	// the record that straddles the break.
	if a.afterPageNumber {
		a.afterPageNumber = false
		return
	}
	a.flush()
}

func (a *TabularAssembler) begin(m []string, line string) {
	a.flush()

	e := &Entry{ModuleCode: m[4] + m[5]}
	if d, ok := makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
		e.Date = &d
	}
	e.appendSource(line)
	a.current = e
	a.state = StateAccumulating
	a.scan(m[6])
}

// scan sets fields the current record does not have yet; first match wins.
func (a *TabularAssembler) scan(line string) {
	e := a.current
	if e.StartTime == nil || e.Duration == nil {
		a.scanTimeAndDuration(line)
	}
	if e.Venue == "" {
		if v, ok := TabularVenue(line); ok {
			e.Venue = v
		}
	}
}

func (a *TabularAssembler) scanTimeAndDuration(line string) {
	e := a.current
	tokens := strings.Fields(line)
	for i, tok := range tokens {
		m := clockTokenPattern.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		c, ok := NewClock(atoi(m[1]), atoi(m[2]))
		if !ok {
			continue
		}
		if e.StartTime == nil {
			e.StartTime = &c
		}
		// The duration belongs to the start clock; a later clock's figure
		// would describe a different sitting.
		if c != *e.StartTime {
			continue
		}
		if e.Duration == nil && i+1 < len(tokens) && durationTokenPattern.MatchString(tokens[i+1]) {
			if d := atoi(tokens[i+1]); PlausibleDuration(d) {
				e.Duration = intPtr(d)
			}
		}
		if e.Duration != nil {
			return
		}
	}
}

// flush emits the current record if complete and discards it otherwise.
func (a *TabularAssembler) flush() {
	if a.current != nil && a.current.Complete(a.kind) {
		a.current.deriveTimes()
		a.entries = append(a.entries, *a.current)
	}
	a.current = nil
	a.state = StateIdle
}
