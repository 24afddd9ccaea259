// Package prefilter provides fast candidate-offset scanning ahead of the
// backtracking matcher, driven by a literal.Requirement.
//
// This mirrors coregx-coregex/prefilter's role exactly (see its package
// doc for the "find candidates cheaply, verify with the full engine"
// design) but at the scale this module needs: one compiled pattern, one
// input line at a time, so there is no multi-literal/Teddy tier to
// select between — just a literal-or-class-or-nothing dispatch.
package prefilter

import (
	"github.com/coregx/ahocorasick"
	"github.com/coregx/regexgrep/literal"
	"github.com/coregx/regexgrep/simd"
)

// Prefilter narrows the set of offsets the matcher must attempt.
//
// A prefilter never changes what counts as a match: Find only returns
// candidate offsets, and IsComplete is always false here because a
// backtracking matcher with backreferences can fail at a position a
// prefilter accepted (see DESIGN.md). The matcher must still run at
// every candidate offset Find returns.
type Prefilter interface {
	// Find returns the index of the first candidate offset at or after
	// start in haystack, or -1 if none exists.
	Find(haystack []byte, start int) int
	// IsComplete reports whether a Find hit is itself a confirmed match,
	// with no verification required. Always false in this package.
	IsComplete() bool
}

// Build returns the Prefilter appropriate for req.
func Build(req literal.Requirement) Prefilter {
	switch req.Kind {
	case literal.KindLiteral:
		return newLiteralPrefilter(req.Text)
	case literal.KindDigit:
		return digitPrefilter{}
	case literal.KindAlphanumeric:
		return alnumPrefilter{}
	default:
		return noPrefilter{}
	}
}

// literalPrefilter wraps a one-pattern github.com/coregx/ahocorasick
// automaton. A single-needle Aho-Corasick automaton degenerates to (and
// remains a correct implementation of) substring search; see DESIGN.md
// for why this is a faithful reuse of the teacher's dependency rather
// than a mismatch of scale.
type literalPrefilter struct {
	auto *ahocorasick.Automaton
}

func newLiteralPrefilter(text string) Prefilter {
	builder := ahocorasick.NewBuilder()
	builder.AddPattern([]byte(text))
	auto, err := builder.Build()
	if err != nil {
		// Degenerate build failure (e.g. empty pattern): fall back to
		// accepting every offset, dropping the requirement, rather than
		// rejecting offsets that could match.
		return noPrefilter{}
	}
	return literalPrefilter{auto: auto}
}

func (p literalPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (literalPrefilter) IsComplete() bool { return false }

// digitPrefilter finds the next ASCII digit, for patterns proven to
// require one at the match's start. Grounded on
// coregx-coregex/prefilter/digit.go's DigitPrefilter.
type digitPrefilter struct{}

func (digitPrefilter) Find(haystack []byte, start int) int {
	return simd.MemchrDigitAt(haystack, start)
}

func (digitPrefilter) IsComplete() bool { return false }

// alnumPrefilter finds the next ASCII letter, digit, or underscore.
type alnumPrefilter struct{}

func (alnumPrefilter) Find(haystack []byte, start int) int {
	return simd.MemchrAlnumAt(haystack, start)
}

func (alnumPrefilter) IsComplete() bool { return false }

// noPrefilter accepts every offset: used when literal.Extract proved
// nothing, so the matcher must try every start position anyway.
type noPrefilter struct{}

func (noPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		start = 0
	}
	if start > len(haystack) {
		return -1
	}
	return start
}

func (noPrefilter) IsComplete() bool { return false }
