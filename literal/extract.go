// Package literal extracts a required leading literal (or character
// class) from a parsed pattern, for use by package prefilter.
//
// This is a much smaller relative of coregx-coregex/literal/extractor.go:
// that extractor walks a compiled regexp/syntax.Regexp and produces sets
// of candidate literals (with cross-product expansion over small classes,
// configurable limits, etc.) for an NFA/DFA engine that never backtracks.
// Our matcher backtracks, so a required leading literal only ever narrows
// candidate start offsets — it never changes what counts as a match — and
// the walk stops at the first node that doesn't guarantee a fixed prefix.
package literal

import "github.com/coregx/regexgrep/ast"

// Kind identifies what a Requirement proves about a match's start.
type Kind int

const (
	// KindNone means no fixed requirement could be proven; every offset
	// is a candidate.
	KindNone Kind = iota
	// KindLiteral means the match must begin with Text.
	KindLiteral
	// KindDigit means the match must begin with an ASCII digit.
	KindDigit
	// KindAlphanumeric means the match must begin with an ASCII letter,
	// digit, or underscore.
	KindAlphanumeric
)

// Requirement describes what Extract proved about a program's leading
// bytes.
type Requirement struct {
	Kind Kind
	// Text is the required literal prefix, set only when Kind ==
	// KindLiteral.
	Text string
	// Anchored is true when prog.StartAnchor held, meaning the
	// requirement must be satisfied at offset 0 and nowhere else.
	Anchored bool
}

// Extract walks the leading run of prog's top-level patterns and proves
// the strongest Requirement it can. It stops at the first node that
// doesn't guarantee a fixed literal: an Alternation, CapturedGroup,
// Wildcard, CharGroup, Backreference, or any node whose Count isn't
// ast.CountOne (an optional
// or repeated atom doesn't have to appear at all, or might appear more
// than once, so it can't anchor a required prefix).
func Extract(prog *ast.Program) Requirement {
	req := Requirement{Kind: KindNone, Anchored: prog.StartAnchor}

	var lit []rune
	for _, p := range prog.Patterns {
		switch n := p.(type) {
		case ast.Literal:
			if n.Count != ast.CountOne {
				return finish(req, lit)
			}
			lit = append(lit, n.Char)
		case ast.Digit:
			if len(lit) > 0 {
				return finish(req, lit)
			}
			if n.Count == ast.CountZeroOrOne {
				return req
			}
			req.Kind = KindDigit
			return req
		case ast.Alphanumeric:
			if len(lit) > 0 {
				return finish(req, lit)
			}
			if n.Count == ast.CountZeroOrOne {
				return req
			}
			req.Kind = KindAlphanumeric
			return req
		default:
			// Alternation, Wildcard, CharGroup, CapturedGroup,
			// Backreference: none guarantee a fixed prefix byte.
			return finish(req, lit)
		}
	}
	return finish(req, lit)
}

// finish converts an accumulated run of mandatory literal runes (if any)
// into a KindLiteral requirement, otherwise returns req unchanged.
func finish(req Requirement, lit []rune) Requirement {
	if len(lit) == 0 {
		return req
	}
	req.Kind = KindLiteral
	req.Text = string(lit)
	return req
}
