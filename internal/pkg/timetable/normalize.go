package timetable

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// dashReplacer folds typographic dashes and minus signs into ASCII hyphen.
	dashReplacer = strings.NewReplacer(
		"‐", "-", // hyphen
		"‑", "-", // non-breaking hyphen
		"‒", "-", // figure dash
		"–", "-", // en dash
		"—", "-", // em dash
		"―", "-", // horizontal bar
		"−", "-", // minus sign
		"﹘", "-",
		"﹣", "-",
	)

	// hourMarkerPattern matches "9h00" and "09H30".
	hourMarkerPattern = regexp.MustCompile(`(^|[^0-9A-Za-z])(\d{1,2})[hH](\d{2})($|[^0-9A-Za-z])`)

	// dottedTimePattern matches "09.00"; neighbours are checked separately so
	// dates like 03.11.2025 and decimals are left alone.
	dottedTimePattern = regexp.MustCompile(`\d{1,2}\.\d{2}`)

	// inlineSpacePattern collapses runs of horizontal whitespace.
	inlineSpacePattern = regexp.MustCompile(`[ \t\f\v]+`)
)

// Normalize canonicalizes raw document text: unified line endings, Unicode
// compatibility folding, ASCII dashes, colon hour notation and single spaces.
// It never fails; text it cannot improve is returned as is.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = norm.NFKC.String(text)
	text = dashReplacer.Replace(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = rewriteHourMarkers(line)
		line = rewriteDottedTimes(line)
		line = inlineSpacePattern.ReplaceAllString(line, " ")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

func rewriteHourMarkers(line string) string {
	// Adjacent matches share a boundary character, so run to a fixed point.
	for {
		next := hourMarkerPattern.ReplaceAllStringFunc(line, func(m string) string {
			sub := hourMarkerPattern.FindStringSubmatch(m)
			h, _ := strconv.Atoi(sub[2])
			minute, _ := strconv.Atoi(sub[3])
			if _, ok := NewClock(h, minute); !ok {
				return m
			}
			return sub[1] + sub[2] + ":" + sub[3] + sub[4]
		})
		if next == line {
			return line
		}
		line = next
	}
}

func rewriteDottedTimes(line string) string {
	locs := dottedTimePattern.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return line
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if !isStandaloneDotted(line, start, end) {
			continue
		}
		candidate := line[start:end]
		dot := strings.IndexByte(candidate, '.')
		h, _ := strconv.Atoi(candidate[:dot])
		minute, _ := strconv.Atoi(candidate[dot+1:])
		if _, ok := NewClock(h, minute); !ok {
			continue
		}
		b.WriteString(line[last:start])
		b.WriteString(candidate[:dot] + ":" + candidate[dot+1:])
		last = end
	}
	b.WriteString(line[last:])
	return b.String()
}

// isStandaloneDotted rejects matches glued to digits, dots or letters.
func isStandaloneDotted(line string, start, end int) bool {
	if start > 0 {
		prev := line[start-1]
		if isDigit(prev) || prev == '.' || isLetter(prev) || prev == ',' {
			return false
		}
	}
	if end < len(line) {
		next := line[end]
		if next == '.' {
			// sentence-final "at 09.00."
			return end+1 == len(line) || line[end+1] == ' '
		}
		if isDigit(next) || isLetter(next) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
