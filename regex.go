// Package regexgrep provides a small backtracking regular expression
// engine with numeric backreferences, and the grep-style driver built on
// top of it.
//
// This package follows coregx-coregex's public API shape (Compile /
// MustCompile / a reusable Regex type with FindString) but a different
// engine underneath: coregex compiles to an NFA/DFA and cannot support
// backreferences; this package supports them by walking the parsed
// pattern with a backtracking matcher (see package matcher).
//
// Basic usage:
//
//	re, err := regexgrep.Compile(`(\w+) and \1`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	match, _ := re.FindString("cat and cat")
//	fmt.Println(match) // "cat and cat"
//
// Or, for a single one-off match:
//
//	matched, ok := regexgrep.MatchRegex("cat and cat", `(\w+) and \1`)
package regexgrep

import (
	"github.com/coregx/regexgrep/ast"
	"github.com/coregx/regexgrep/literal"
	"github.com/coregx/regexgrep/matcher"
	"github.com/coregx/regexgrep/prefilter"
	"github.com/coregx/regexgrep/simd"
	"github.com/coregx/regexgrep/syntax"
)

// Regex represents a compiled pattern. A Regex is safe to use
// concurrently from multiple goroutines: FindString allocates only
// short-lived state per call and never mutates the Regex itself.
type Regex struct {
	pattern  string
	prog     *ast.Program
	pf       prefilter.Prefilter
	anchored bool
}

// Compile parses pattern and returns a reusable Regex, or a wrapped
// *syntax.ParseError if pattern is malformed.
//
// Example:
//
//	re, err := regexgrep.Compile(`\d\d\d`)
func Compile(pattern string) (*Regex, error) {
	prog, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	req := literal.Extract(prog)
	return &Regex{
		pattern:  pattern,
		prog:     prog,
		pf:       prefilter.Build(req),
		anchored: req.Anchored,
	}, nil
}

// MustCompile is like Compile but panics if pattern is invalid. Intended
// for patterns known to be valid at compile time, such as those baked
// into a program's source.
//
// Example:
//
//	var logLine = regexgrep.MustCompile(`^(\w+) (\d+)$`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("regexgrep: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// FindString returns the matched substring of line (after trimming
// surrounding whitespace) and true, or "" and false if no match exists.
//
// FindString uses the Regex's prefilter to skip start offsets that
// literal.Extract proved cannot begin a match, then verifies with the
// full backtracking matcher at each remaining candidate — a candidate
// offset is never itself trusted as a match (see package prefilter).
// Candidate byte offsets from the prefilter are used directly as rune
// offsets, which holds only for ASCII lines; a line containing non-ASCII
// bytes skips the prefilter and is searched at every start offset.
//
// Example:
//
//	re := regexgrep.MustCompile(`\d+`)
//	match, ok := re.FindString("age: 42")
//	// match == "42", ok == true
func (r *Regex) FindString(line string) (string, bool) {
	trimmed := matcher.Trim(line)
	raw := []byte(trimmed)

	var runes []rune
	var haystack []byte
	if simd.IsASCII(raw) {
		// Every byte is its own rune here, so build the rune slice
		// directly off raw instead of round-tripping through a full
		// UTF-8 decode (trimmed -> []rune) and re-encode ([]rune ->
		// []byte) for the prefilter haystack.
		runes = make([]rune, len(raw))
		for i, b := range raw {
			runes[i] = rune(b)
		}
		haystack = raw
	} else {
		// Prefilter offsets are byte offsets, which line up with rune
		// offsets only on ASCII input, so search every start offset.
		return matcher.Run(r.prog, line)
	}

	for start := r.pf.Find(haystack, 0); start != -1 && start <= len(runes); start = r.pf.Find(haystack, start+1) {
		if r.anchored && start != 0 {
			break
		}
		if m, ok := matcher.TryFrom(r.prog, runes, start); ok {
			return m, true
		}
		if r.anchored {
			break
		}
	}
	return "", false
}

// String returns the source pattern text the Regex was compiled from.
func (r *Regex) String() string {
	return r.pattern
}

// NumSubexp returns the number of numbered capture groups in the
// pattern. Backreferences \1...\9 are only valid up to this count.
func (r *Regex) NumSubexp() int {
	return r.prog.GroupCount()
}

// MatchRegex is the package's single-call entry point: compile pattern
// and match it against line in one step, returning the matched
// substring and true on success.
//
// Prefer Compile/FindString when matching the same pattern against many
// lines, since Compile parses the pattern and extracts its prefilter
// requirement once.
//
// Example:
//
//	matched, ok := regexgrep.MatchRegex("cat and cat", `(\w+) and \1`)
//	// matched == "cat and cat", ok == true
func MatchRegex(line, pattern string) (string, bool) {
	re, err := Compile(pattern)
	if err != nil {
		return "", false
	}
	return re.FindString(line)
}
