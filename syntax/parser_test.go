package syntax

import (
	"errors"
	"testing"

	"github.com/coregx/regexgrep/ast"
)

func TestParseAnchors(t *testing.T) {
	tests := []struct {
		pattern     string
		startAnchor bool
		endAnchor   bool
	}{
		{"abc", false, false},
		{"^abc", true, false},
		{"abc$", false, true},
		{"^abc$", true, true},
		{"^$", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			prog, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
			}
			if prog.StartAnchor != tt.startAnchor || prog.EndAnchor != tt.endAnchor {
				t.Errorf("Parse(%q) anchors = (%v,%v), want (%v,%v)",
					tt.pattern, prog.StartAnchor, prog.EndAnchor, tt.startAnchor, tt.endAnchor)
			}
		})
	}
}

func TestParseCaptureNumbering(t *testing.T) {
	// (a(b)(c|d))e -- outer group is 1, (b) is 2, (c|d) is 3: outer-first,
	// then left-to-right, pre-order.
	prog, err := Parse(`(a(b)(c|d))e`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(prog.Patterns) != 2 {
		t.Fatalf("expected 2 top-level patterns, got %d", len(prog.Patterns))
	}
	outer, ok := prog.Patterns[0].(ast.CapturedGroup)
	if !ok {
		t.Fatalf("expected outer CapturedGroup, got %T", prog.Patterns[0])
	}
	if outer.Idx != 1 {
		t.Errorf("outer.Idx = %d, want 1", outer.Idx)
	}
	inner, ok := outer.Patterns[1].(ast.CapturedGroup)
	if !ok {
		t.Fatalf("expected inner CapturedGroup, got %T", outer.Patterns[1])
	}
	if inner.Idx != 2 {
		t.Errorf("inner.Idx = %d, want 2", inner.Idx)
	}
	alt, ok := outer.Patterns[2].(ast.Alternation)
	if !ok {
		t.Fatalf("expected Alternation, got %T", outer.Patterns[2])
	}
	if alt.Idx != 3 {
		t.Errorf("alt.Idx = %d, want 3", alt.Idx)
	}
	if prog.GroupCount() != 3 {
		t.Errorf("GroupCount() = %d, want 3", prog.GroupCount())
	}
}

func TestParseQuantifiers(t *testing.T) {
	prog, err := Parse(`a+b?c`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(prog.Patterns) != 3 {
		t.Fatalf("expected 3 patterns, got %d", len(prog.Patterns))
	}
	lit0 := prog.Patterns[0].(ast.Literal)
	if lit0.Count != ast.CountOneOrMore {
		t.Errorf("a Count = %v, want OneOrMore", lit0.Count)
	}
	lit1 := prog.Patterns[1].(ast.Literal)
	if lit1.Count != ast.CountZeroOrOne {
		t.Errorf("b Count = %v, want ZeroOrOne", lit1.Count)
	}
	lit2 := prog.Patterns[2].(ast.Literal)
	if lit2.Count != ast.CountOne {
		t.Errorf("c Count = %v, want One", lit2.Count)
	}
}

func TestParseEscapes(t *testing.T) {
	prog, err := Parse(`\d\w\\`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(prog.Patterns) != 3 {
		t.Fatalf("expected 3 patterns, got %d", len(prog.Patterns))
	}
	if _, ok := prog.Patterns[0].(ast.Digit); !ok {
		t.Errorf("patterns[0] = %T, want Digit", prog.Patterns[0])
	}
	if _, ok := prog.Patterns[1].(ast.Alphanumeric); !ok {
		t.Errorf("patterns[1] = %T, want Alphanumeric", prog.Patterns[1])
	}
	lit, ok := prog.Patterns[2].(ast.Literal)
	if !ok || lit.Char != '\\' {
		t.Errorf("patterns[2] = %v, want Literal('\\\\')", prog.Patterns[2])
	}
}

func TestParseMultiDigitBackreference(t *testing.T) {
	// \10 parses as Backreference(1) followed by Literal('0') -- there is
	// no multi-digit backreference in this dialect.
	prog, err := Parse(`\10`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(prog.Patterns) != 2 {
		t.Fatalf("expected 2 patterns, got %d", len(prog.Patterns))
	}
	ref, ok := prog.Patterns[0].(ast.Backreference)
	if !ok || ref.N != 1 {
		t.Errorf("patterns[0] = %v, want Backreference(1)", prog.Patterns[0])
	}
	lit, ok := prog.Patterns[1].(ast.Literal)
	if !ok || lit.Char != '0' {
		t.Errorf("patterns[1] = %v, want Literal('0')", prog.Patterns[1])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    error
	}{
		{"unterminated group", "(abc", ErrUnterminatedGroup},
		{"empty group", "()", ErrEmptyGroupBody},
		{"empty alternative", "(a|)", ErrEmptyGroupBody},
		{"dangling plus", "+abc", ErrDanglingQuantifier},
		{"dangling question", "?abc", ErrDanglingQuantifier},
		{"chained quantifier", "a++", ErrChainedQuantifier},
		{"mixed chained quantifier", "a+?", ErrChainedQuantifier},
		{"unknown escape", `\z`, ErrUnknownEscape},
		{"dangling backslash", `abc\`, ErrDanglingBackslash},
		{"non-alnum class member", "[a-c]", ErrInvalidClassMember},
		{"unterminated class", "[abc", ErrUnterminatedClass},
		{"unmatched close paren", "abc)", ErrUnmatchedParen},
		{"stray pipe", "a|b", ErrUnexpectedAlternation},
		{"quantified backreference", `(a)\1+`, ErrBackreferenceQuantifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			if err == nil {
				t.Fatalf("Parse(%q) = nil error, want %v", tt.pattern, tt.want)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want wrapping %v", tt.pattern, err, tt.want)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Parse(%q) error is not a *ParseError: %T", tt.pattern, err)
			}
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	pattern := `((\w\w\w\w) (\d\d\d)) is \2 \3`
	first, err := Parse(pattern)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	second, err := Parse(pattern)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(first.Patterns) != len(second.Patterns) {
		t.Fatalf("repeated Parse produced different shapes: %d vs %d patterns",
			len(first.Patterns), len(second.Patterns))
	}
	if first.GroupCount() != second.GroupCount() {
		t.Errorf("repeated Parse produced different GroupCount: %d vs %d",
			first.GroupCount(), second.GroupCount())
	}
}

func TestParseSeedScenarioShapes(t *testing.T) {
	// Grammar/shape checks for the spec's seed scenarios; end-to-end
	// matching is covered in package matcher.
	patterns := []string{
		`('(cat) and \2') is the same as \1`,
		`((\w\w\w\w) (\d\d\d)) is doing \2 \3 times, and again \1 times`,
		`(([abc]+)-([def]+)) is \1, not ([^xyz]+), \2, or \3`,
		`^((\w+) (pie)) is made of \2 and \3. love \1$`,
		`((c.t|d.g) and (f..h|b..d)), \2 with \3, \1`,
	}
	for _, p := range patterns {
		if _, err := Parse(p); err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", p, err)
		}
	}
}
