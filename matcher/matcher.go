// Package matcher implements the backtracking search described by
// spec.md §4.2: greedy quantifiers with retry, leftmost-earliest start
// search, numbered capture recording, and numeric backreferences
// resolved against exact previously-captured text.
//
// This is a tree-walking backtracker over an *ast.Program, not a
// compiled automaton — unlike coregx-coregex's Thompson NFA / lazy DFA
// engines (which this package is grounded on for naming and checkpoint
// discipline, see coregx-coregex/nfa/backtrack.go and
// coregx-coregex/nfa/slot_table.go), it supports backreferences, which
// RE2-style automata cannot represent at all.
package matcher

import "github.com/coregx/regexgrep/ast"

// Run attempts to match prog against line, trying start offsets
// left-to-right (or only offset 0 when prog.StartAnchor is set) and
// returning the first successful match's slice. It reports ok == false
// if no start offset produces a match.
//
// Run is a pure function: it allocates only short-lived state (the rune
// slice, capture-table snapshots, and accumulator strings) and never
// mutates anything the caller can observe on a failed attempt — a failed
// branch operates on a clone and is discarded.
func Run(prog *ast.Program, line string) (string, bool) {
	runes := []rune(Trim(line))

	if prog.StartAnchor {
		return TryFrom(prog, runes, 0)
	}
	for i := 0; i <= len(runes); i++ {
		if m, ok := TryFrom(prog, runes, i); ok {
			return m, true
		}
	}
	return "", false
}

// Trim strips surrounding ASCII whitespace from line, the same
// normalization Run applies before searching. Callers that drive their
// own start-offset search (package prefilter's consumers) should trim
// with this function so offsets stay consistent with Run's.
func Trim(line string) string {
	return trimSpace(line)
}

// TryFrom attempts a match of prog against runes beginning at exactly
// start, honoring prog.EndAnchor. It does not try any other start
// offset; callers that want leftmost-earliest search across the whole
// line should call Run, or drive TryFrom themselves (as package
// regexgrep's Regex.FindString does, guided by a prefilter's candidate
// offsets).
func TryFrom(prog *ast.Program, runes []rune, start int) (string, bool) {
	endPos, _, acc, ok := matchSequence(runes, start, prog.Patterns, nil, "")
	if !ok {
		return "", false
	}
	if prog.EndAnchor && endPos != len(runes) {
		return "", false
	}
	return acc, true
}

// matchSequence is the core routine from spec.md §4.2: if patterns is
// empty, the sequence trivially succeeds at pos with the accumulator
// built so far. Otherwise it dispatches the first pattern and threads
// the rest through the appropriate quantified/group/backreference
// handler.
func matchSequence(runes []rune, pos int, patterns []ast.Pattern, caps captures, acc string) (endPos int, newCaps captures, newAcc string, ok bool) {
	if len(patterns) == 0 {
		return pos, caps, acc, true
	}

	first, rest := patterns[0], patterns[1:]

	switch p := first.(type) {
	case ast.Literal:
		return tryQuantified(runes, pos, rest, caps, acc, p.Count, func(r rune) bool { return r == p.Char })
	case ast.Digit:
		return tryQuantified(runes, pos, rest, caps, acc, p.Count, isDigit)
	case ast.Alphanumeric:
		return tryQuantified(runes, pos, rest, caps, acc, p.Count, isWordChar)
	case ast.Wildcard:
		return tryQuantified(runes, pos, rest, caps, acc, p.Count, isWildcardRune)
	case ast.CharGroup:
		return tryQuantified(runes, pos, rest, caps, acc, p.Count, p.Matches)
	case ast.Alternation:
		return tryGroupLike(runes, pos, rest, caps, acc, p.Count, func(pos int, caps captures) (int, string, captures, bool) {
			return runAlternation(runes, pos, caps, p)
		})
	case ast.CapturedGroup:
		return tryGroupLike(runes, pos, rest, caps, acc, p.Count, func(pos int, caps captures) (int, string, captures, bool) {
			return runCapturedGroup(runes, pos, caps, p)
		})
	case ast.Backreference:
		return matchBackreference(runes, pos, rest, caps, acc, p.N)
	default:
		panic("matcher: unreachable pattern kind")
	}
}

// tryQuantified implements spec.md §4.2 "try_quantified": greedily
// consume the longest run of pred-matching runes, then try candidate
// repetition counts from largest to smallest (per Count), recursing on
// rest at each candidate and committing on the first success.
func tryQuantified(runes []rune, pos int, rest []ast.Pattern, caps captures, acc string, count ast.Count, pred func(rune) bool) (int, captures, string, bool) {
	max := 0
	for pos+max < len(runes) && pred(runes[pos+max]) {
		max++
	}

	for _, k := range candidateCounts(count, max) {
		newPos := pos + k
		newAcc := acc + string(runes[pos:newPos])
		if endPos, newCaps, finalAcc, ok := matchSequence(runes, newPos, rest, caps, newAcc); ok {
			return endPos, newCaps, finalAcc, true
		}
	}
	return pos, caps, acc, false
}

// repetition is one successful application of a group-like node's inner
// sequence, collected by tryGroupLike before any repetition count is
// chosen.
type repetition struct {
	endPos int
	slice  string
	caps   captures
}

// tryGroupLike implements spec.md §4.2 "try_group_like": repeatedly run
// a single repetition of a capturing group or alternation, collecting
// per-repetition (cursor, slice, captures) snapshots in greedy order,
// then try candidate repetition counts from largest to smallest.
func tryGroupLike(runes []rune, pos int, rest []ast.Pattern, caps captures, acc string, count ast.Count, runOnce func(int, captures) (int, string, captures, bool)) (int, captures, string, bool) {
	var reps []repetition
	curPos, curCaps := pos, caps
	for {
		endPos, slice, newCaps, ok := runOnce(curPos, curCaps)
		if !ok {
			break
		}
		reps = append(reps, repetition{endPos: endPos, slice: slice, caps: newCaps})
		if endPos == curPos {
			break // zero-width repetition: stop to avoid looping forever
		}
		curPos, curCaps = endPos, newCaps
	}

	for _, k := range candidateCounts(count, len(reps)) {
		endPos, useCaps, consumed := pos, caps, ""
		if k > 0 {
			endPos = reps[k-1].endPos
			useCaps = reps[k-1].caps
			for i := 0; i < k; i++ {
				consumed += reps[i].slice
			}
		}
		if finalPos, finalCaps, finalAcc, ok := matchSequence(runes, endPos, rest, useCaps, acc+consumed); ok {
			return finalPos, finalCaps, finalAcc, true
		}
	}
	return pos, caps, acc, false
}

// candidateCounts returns the repetition counts to try, in the greedy
// order spec.md §4.2 specifies, given that max repetitions/runs were
// collected.
func candidateCounts(count ast.Count, max int) []int {
	switch count {
	case ast.CountOneOrMore:
		out := make([]int, 0, max)
		for k := max; k >= 1; k-- {
			out = append(out, k)
		}
		return out
	case ast.CountZeroOrOne:
		if max >= 1 {
			return []int{1, 0}
		}
		return []int{0}
	default: // ast.CountOne
		if max >= 1 {
			return []int{1}
		}
		return nil
	}
}

// runAlternation runs spec.md §4.2.1: try each alternative in source
// order on a cloned cursor/capture state; on success, record the
// consumed slice under the alternation's own capture index and return
// it, leaving the caller's (pre-call) state untouched on failure.
func runAlternation(runes []rune, pos int, caps captures, alt ast.Alternation) (int, string, captures, bool) {
	for _, branch := range alt.Alternatives {
		endPos, branchCaps, slice, ok := matchSequence(runes, pos, branch, caps.clone(), "")
		if !ok {
			continue
		}
		return endPos, slice, branchCaps.withSet(alt.Idx, slice), true
	}
	return pos, "", caps, false
}

// runCapturedGroup runs spec.md §4.2.2: identical to runAlternation but
// with a single inner sequence.
func runCapturedGroup(runes []rune, pos int, caps captures, group ast.CapturedGroup) (int, string, captures, bool) {
	endPos, branchCaps, slice, ok := matchSequence(runes, pos, group.Patterns, caps.clone(), "")
	if !ok {
		return pos, "", caps, false
	}
	return endPos, slice, branchCaps.withSet(group.Idx, slice), true
}

// matchBackreference implements spec.md's backreference semantics: \N
// succeeds iff group N has captured something on this path and the
// input at pos begins with that exact text.
func matchBackreference(runes []rune, pos int, rest []ast.Pattern, caps captures, acc string, n int) (int, captures, string, bool) {
	text, set := caps.get(n)
	if !set {
		return pos, caps, acc, false
	}
	want := []rune(text)
	if pos+len(want) > len(runes) {
		return pos, caps, acc, false
	}
	for i, r := range want {
		if runes[pos+i] != r {
			return pos, caps, acc, false
		}
	}
	return matchSequence(runes, pos+len(want), rest, caps, acc+text)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

func isWildcardRune(r rune) bool {
	switch r {
	case '\\', '[', ']', '(', '|', ')':
		return false
	default:
		return true
	}
}

// trimSpace strips ASCII whitespace from both ends, matching spec.md
// §4.2's "trim the line of surrounding whitespace once".
func trimSpace(s string) string {
	start := 0
	for start < len(s) && isASCIISpace(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isASCIISpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
