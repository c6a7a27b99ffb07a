package timetable

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Rule is one named recognizer for a single field.
type Rule[T any] struct {
	Name  string
	Match func(line string) (T, bool)
}

// FirstMatch evaluates rules in order and returns the value of the first one
// that matches, together with its name.
func FirstMatch[T any](rules []Rule[T], line string) (T, string, bool) {
	for _, r := range rules {
		if v, ok := r.Match(line); ok {
			return v, r.Name, true
		}
	}
	var zero T
	return zero, "", false
}

// TimeRange is a start time with an optional end time.
type TimeRange struct {
	Start Clock
	End   *Clock
}

// ── Module code ─────────────────────────────────────────────

var (
	labeledModulePattern = regexp.MustCompile(`(?i)\b(?:module|course|subject|code)\s*(?:code)?\s*[:#]?\s*([A-Za-z]{2,4})\s?(\d{3}[A-Za-z]?)(?:[^A-Za-z0-9]|$)`)
	compactModulePattern = regexp.MustCompile(`(?:^|[^A-Za-z])([A-Z]{2,4}\d{3}[A-Z]?)(?:[^A-Za-z0-9]|$)`)
	spacedModulePattern  = regexp.MustCompile(`(?:^|[^A-Za-z])([A-Z]{2,4}) (\d{3}[A-Z]?)(?:[^A-Za-z0-9]|$)`)

	// Words that precede room numbers and would otherwise read as a code.
	moduleStopWords = map[string]bool{
		"ROOM": true, "HALL": true, "LAB": true, "LABS": true, "LT": true,
		"RM": true, "NO": true, "PG": true, "PAGE": true, "TEL": true,
		"EXT": true, "BLK": true, "BLDG": true, "WING": true, "UNIT": true,
		"FLR": true, "LVL": true, "SEAT": true, "AREA": true, "GATE": true,
	}
)

// ModuleCodeRules recognize a module code such as ACC321 or "ACC 321".
var ModuleCodeRules = []Rule[string]{
	{Name: "labeled", Match: func(line string) (string, bool) {
		m := labeledModulePattern.FindStringSubmatch(line)
		if m == nil {
			return "", false
		}
		return strings.ToUpper(m[1] + m[2]), true
	}},
	{Name: "compact", Match: func(line string) (string, bool) {
		m := compactModulePattern.FindStringSubmatch(line)
		if m == nil {
			return "", false
		}
		return m[1], true
	}},
	{Name: "spaced", Match: func(line string) (string, bool) {
		for _, m := range spacedModulePattern.FindAllStringSubmatch(line, -1) {
			if moduleStopWords[m[1]] {
				continue
			}
			return m[1] + m[2], true
		}
		return "", false
	}},
}

// ── Date ────────────────────────────────────────────────────

var (
	isoDashDatePattern  = regexp.MustCompile(`(?:^|\D)(\d{4})-(\d{1,2})-(\d{1,2})(?:\D|$)`)
	isoSlashDatePattern = regexp.MustCompile(`(?:^|\D)(\d{4})/(\d{1,2})/(\d{1,2})(?:\D|$)`)
	dmySlashDatePattern = regexp.MustCompile(`(?:^|\D)(\d{1,2})/(\d{1,2})/(\d{4})(?:\D|$)`)
	dmyDashDatePattern  = regexp.MustCompile(`(?:^|\D)(\d{1,2})-(\d{1,2})-(\d{4})(?:\D|$)`)
	dmyShortDatePattern = regexp.MustCompile(`(?:^|[^\d/])(\d{1,2})/(\d{1,2})/(\d{2})(?:[^\d/]|$)`)
	dayMonthNamePattern = regexp.MustCompile(`(?i)(?:^|[^\dA-Za-z])(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]{3,9})\.?,?\s+(\d{4})(?:\D|$)`)
	monthNameDayPattern = regexp.MustCompile(`(?i)(?:^|[^A-Za-z])([A-Za-z]{3,9})\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})(?:\D|$)`)
	twoDigitYearPivot   = 50
	monthsByName        = map[string]time.Month{}
	weekdaysByPrefix    = map[string]time.Weekday{}
)

func init() {
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		monthsByName[name] = m
		monthsByName[name[:3]] = m
	}
	monthsByName["sept"] = time.September

	for d := time.Sunday; d <= time.Saturday; d++ {
		weekdaysByPrefix[strings.ToLower(d.String()[:3])] = d
	}
}

// DateRules recognize a calendar date, in order of precedence.
var DateRules = []Rule[time.Time]{
	{Name: "yyyy-mm-dd", Match: ymdMatcher(isoDashDatePattern)},
	{Name: "yyyy/mm/dd", Match: ymdMatcher(isoSlashDatePattern)},
	{Name: "dd/mm/yyyy", Match: dmyMatcher(dmySlashDatePattern)},
	{Name: "dd-mm-yyyy", Match: dmyMatcher(dmyDashDatePattern)},
	{Name: "dd/mm/yy", Match: func(line string) (time.Time, bool) {
		for _, m := range dmyShortDatePattern.FindAllStringSubmatch(line, -1) {
			yy := atoi(m[3])
			year := 1900 + yy
			if yy < twoDigitYearPivot {
				year = 2000 + yy
			}
			if t, ok := makeDate(year, atoi(m[2]), atoi(m[1])); ok {
				return t, true
			}
		}
		return time.Time{}, false
	}},
	{Name: "dd month yyyy", Match: func(line string) (time.Time, bool) {
		for _, m := range dayMonthNamePattern.FindAllStringSubmatch(line, -1) {
			month, ok := monthsByName[strings.ToLower(m[2])]
			if !ok {
				continue
			}
			if t, ok := makeDate(atoi(m[3]), int(month), atoi(m[1])); ok {
				return t, true
			}
		}
		return time.Time{}, false
	}},
	{Name: "month dd, yyyy", Match: func(line string) (time.Time, bool) {
		for _, m := range monthNameDayPattern.FindAllStringSubmatch(line, -1) {
			month, ok := monthsByName[strings.ToLower(m[1])]
			if !ok {
				continue
			}
			if t, ok := makeDate(atoi(m[3]), int(month), atoi(m[2])); ok {
				return t, true
			}
		}
		return time.Time{}, false
	}},
}

// ParseDate reads a date in any supported notation.
func ParseDate(s string) (time.Time, bool) {
	t, _, ok := FirstMatch(DateRules, s)
	return t, ok
}

func ymdMatcher(p *regexp.Regexp) func(string) (time.Time, bool) {
	return func(line string) (time.Time, bool) {
		for _, m := range p.FindAllStringSubmatch(line, -1) {
			if t, ok := makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
				return t, true
			}
		}
		return time.Time{}, false
	}
}

func dmyMatcher(p *regexp.Regexp) func(string) (time.Time, bool) {
	return func(line string) (time.Time, bool) {
		for _, m := range p.FindAllStringSubmatch(line, -1) {
			if t, ok := makeDate(atoi(m[3]), atoi(m[2]), atoi(m[1])); ok {
				return t, true
			}
		}
		return time.Time{}, false
	}
}

// makeDate rejects dates time.Date would silently roll over (31/02).
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ── Time ────────────────────────────────────────────────────

var (
	timeRangePattern  = regexp.MustCompile(`(?i)(?:^|[^\d:])(\d{1,2}):(\d{2})(?::\d{2})?\s*([ap]\.?m\.?)?\s*(?:-|to|until)\s*(\d{1,2}):(\d{2})(?::\d{2})?\s*([ap]\.?m\.?)?(?:[^\d:A-Za-z]|$)`)
	singleTimePattern = regexp.MustCompile(`(?i)(?:^|[^\d:])(\d{1,2}):(\d{2})(?::\d{2})?\s*([ap]\.?m\.?)?(?:[^\d:A-Za-z]|$)`)
)

// TimeRules recognize a time range first, then a lone start time.
var TimeRules = []Rule[TimeRange]{
	{Name: "range", Match: func(line string) (TimeRange, bool) {
		for _, m := range timeRangePattern.FindAllStringSubmatch(line, -1) {
			start, ok1 := clockFrom(m[1], m[2], m[3])
			end, ok2 := clockFrom(m[4], m[5], m[6])
			if ok1 && ok2 {
				return TimeRange{Start: start, End: &end}, true
			}
		}
		return TimeRange{}, false
	}},
	{Name: "single", Match: func(line string) (TimeRange, bool) {
		for _, m := range singleTimePattern.FindAllStringSubmatch(line, -1) {
			if start, ok := clockFrom(m[1], m[2], m[3]); ok {
				return TimeRange{Start: start}, true
			}
		}
		return TimeRange{}, false
	}},
}

func clockFrom(hour, minute, meridiem string) (Clock, bool) {
	h, m := atoi(hour), atoi(minute)
	mer := strings.ToLower(meridiem)
	switch {
	case strings.HasPrefix(mer, "p") && h < 12:
		h += 12
	case strings.HasPrefix(mer, "a") && h == 12:
		h = 0
	}
	return NewClock(h, m)
}

// ── Duration ────────────────────────────────────────────────

var (
	labeledDurationPattern = regexp.MustCompile(`(?i)\bduration\s*[:=]?\s*(\d{2,3})\b`)
	minutesDurationPattern = regexp.MustCompile(`(?i)(?:^|[^\d:.])(\d{2,3})\s*(?:minutes|minute|mins|min)\b`)
	hoursDurationPattern   = regexp.MustCompile(`(?i)(?:^|[^\d:.])(\d{1,2}(?:\.\d{1,2})?)\s*(?:hours|hour|hrs|hr|h)\b`)
)

// DurationRules recognize an explicit duration in minutes. Candidates outside
// the plausible window are skipped and the search continues.
var DurationRules = []Rule[int]{
	{Name: "labeled", Match: minutesMatcher(labeledDurationPattern, 1)},
	{Name: "minutes", Match: minutesMatcher(minutesDurationPattern, 1)},
	{Name: "hours", Match: minutesMatcher(hoursDurationPattern, 60)},
}

// PlausibleDuration reports whether minutes falls inside the accepted window.
func PlausibleDuration(minutes int) bool {
	return minutes >= MinDurationMinutes && minutes <= MaxDurationMinutes
}

func minutesMatcher(p *regexp.Regexp, unit float64) func(string) (int, bool) {
	return func(line string) (int, bool) {
		for _, m := range p.FindAllStringSubmatch(line, -1) {
			f, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			minutes := int(math.Round(f * unit))
			if PlausibleDuration(minutes) {
				return minutes, true
			}
		}
		return 0, false
	}
}

// ── Venue ───────────────────────────────────────────────────

var (
	labeledVenuePattern = regexp.MustCompile(`(?i)\b(?:venue|room|location|hall)\s*[:\-]\s*([^|;,]+)`)
	namedVenuePattern   = regexp.MustCompile(`(?:^|[^A-Za-z0-9])((?:[A-Z][A-Za-z&']*\s+){0,3}(?:Hall|Room|Lab|Laboratory|Auditorium|Theatre|Centre|Center|HALL|ROOM|LAB|AUDITORIUM|THEATRE|CENTRE)(?:\s+[A-Z0-9][A-Za-z0-9-]*)?)(?:$|[\s,;|)])`)
	venueCutPattern     = regexp.MustCompile(`\s*(?:\d{1,2}:\d{2}|\d{4}[-/]\d{1,2}[-/]\d{1,2}|\d{1,2}[-/]\d{1,2}[-/]\d{2,4}).*$`)
)

// VenueRules recognize a venue name on a freeform line.
var VenueRules = []Rule[string]{
	{Name: "labeled", Match: func(line string) (string, bool) {
		m := labeledVenuePattern.FindStringSubmatch(line)
		if m == nil {
			return "", false
		}
		return cleanVenue(m[1])
	}},
	{Name: "named", Match: func(line string) (string, bool) {
		for _, m := range namedVenuePattern.FindAllStringSubmatch(line, -1) {
			if v, ok := cleanVenue(m[1]); ok {
				return v, true
			}
		}
		return "", false
	}},
}

// cleanVenue drops trailing times/dates and leading weekday words.
func cleanVenue(s string) (string, bool) {
	s = venueCutPattern.ReplaceAllString(s, "")
	words := strings.Fields(s)
	for len(words) > 0 {
		if personTitles[strings.TrimSuffix(words[0], ".")] && len(words) > 2 {
			words = words[2:]
			continue
		}
		if _, isDay := weekdayFromWord(words[0]); !isDay {
			break
		}
		words = words[1:]
	}
	s = strings.Trim(strings.Join(words, " "), " -.:")
	return s, s != ""
}

// ── Tabular room ────────────────────────────────────────────

var (
	roomCodePattern       = regexp.MustCompile(`(?:^|\s)(\d+_\d+_[A-Za-z0-9]+)\s+(.+)$`)
	trailingNumberPattern = regexp.MustCompile(`\s+(\d+)$`)
)

// TabularVenue reads "<room code> <room name>" from a bulk export line. A
// trailing one or two digit number is a renumbering artifact and is dropped;
// three or more digits distinguish rooms (ROOM 001 vs ROOM 002) and stay.
func TabularVenue(line string) (string, bool) {
	m := roomCodePattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[2])
	if s := trailingNumberPattern.FindStringSubmatch(name); s != nil && len(s[1]) < 3 {
		name = strings.TrimSpace(strings.TrimSuffix(name, s[0]))
	}
	return name, name != ""
}

// ── Weekday & lecturer ──────────────────────────────────────

var (
	weekdayPattern  = regexp.MustCompile(`(?i)(?:^|[^A-Za-z])(monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tues|tue|wed|thurs|thur|thu|fri|sat|sun)(?:[^A-Za-z]|$)`)
	lecturerPattern = regexp.MustCompile(`(?:^|[^A-Za-z])((?:Prof|Mrs|Mr|Ms|Dr)\.?\s+[A-Z][A-Za-z'-]+(?:\s+[A-Z][A-Za-z'-]+)?)`)
	personTitles    = map[string]bool{"Dr": true, "Prof": true, "Mr": true, "Mrs": true, "Ms": true}
	venueWords      = map[string]bool{
		"Hall": true, "Room": true, "Lab": true, "Laboratory": true, "Auditorium": true,
		"Theatre": true, "Centre": true, "Center": true,
	}
)

// WeekdayRules recognize an English day name.
var WeekdayRules = []Rule[time.Weekday]{
	{Name: "day-name", Match: func(line string) (time.Weekday, bool) {
		m := weekdayPattern.FindStringSubmatch(line)
		if m == nil {
			return 0, false
		}
		return weekdayFromWord(m[1])
	}},
}

// LecturerRules recognize a title-prefixed person name.
var LecturerRules = []Rule[string]{
	{Name: "titled-name", Match: func(line string) (string, bool) {
		m := lecturerPattern.FindStringSubmatch(line)
		if m == nil {
			return "", false
		}
		words := strings.Fields(m[1])
		if len(words) == 3 && venueWords[words[2]] {
			words = words[:2]
		}
		if len(words) >= 2 && venueWords[words[1]] {
			return "", false
		}
		return strings.Join(words, " "), true
	}},
}

func weekdayFromWord(word string) (time.Weekday, bool) {
	w := strings.ToLower(strings.Trim(word, ".,"))
	if len(w) < 3 {
		return 0, false
	}
	d, ok := weekdaysByPrefix[w[:3]]
	if !ok {
		return 0, false
	}
	full := strings.ToLower(d.String())
	if w != full && !strings.HasPrefix(full, w) {
		return 0, false
	}
	return d, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
