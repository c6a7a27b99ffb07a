// Package timetable turns loosely structured timetable and exam schedule text
// into schedule entries. It has no I/O and no persistence; see the services
// package for the import pipeline built on it.
package timetable

import "strings"

// Assembler accumulates physical lines into entries.
type Assembler interface {
	Feed(line string)
	Finish() []Entry
}

// Options controls a parse.
type Options struct {
	// Format forces a grammar; empty or FormatAuto detects it.
	Format Format
	// Kind selects the completeness rule; empty means KindExam.
	Kind Kind
}

// Result is the outcome of a parse.
type Result struct {
	Format  Format
	Entries []Entry
}

// NewAssembler returns the assembler implementing format.
func NewAssembler(format Format, kind Kind) Assembler {
	if format == FormatTabular {
		return NewTabularAssembler(kind)
	}
	return NewHeuristicAssembler(kind)
}

// Parse normalizes text, picks a grammar and assembles entries in document
// order. Unrecognized lines and incomplete entries are dropped silently.
func Parse(text string, opts Options) Result {
	kind := opts.Kind
	if kind == "" {
		kind = KindExam
	}

	normalized := Normalize(text)
	format := opts.Format
	if format == "" || format == FormatAuto {
		format = Detect(normalized)
	}

	asm := NewAssembler(format, kind)
	for _, line := range strings.Split(normalized, "\n") {
		asm.Feed(line)
	}
	return Result{Format: format, Entries: asm.Finish()}
}
