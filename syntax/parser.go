// Package syntax implements a recursive-descent parser for the dialect of
// regular expressions described in the package documentation for
// github.com/coregx/regexgrep: ASCII literals, \d, \w, \\, ., bracket
// classes, '+'/'?' quantifiers, capturing groups, alternation, numeric
// backreferences \1-\9, and the ^/$ anchors at the extremes of the
// pattern. There is no Kleene star, no bounded repetition, no
// lookaround, and no Unicode character classes.
package syntax

import (
	"strings"

	"github.com/coregx/regexgrep/ast"
)

// Parse compiles pattern into a Program. Parsing is pure: calling Parse
// twice with the same pattern yields structurally identical programs.
//
// Parse returns a *ParseError (always non-nil on failure, always wrapping
// one of the sentinel errors in this package) for any malformed pattern:
// an unterminated group, an empty group branch, a dangling or chained
// quantifier, an unknown escape, a quantified backreference, or a
// non-alphanumeric character class member. A ']' outside a character
// class is not rejected; it parses as a literal.
func Parse(pattern string) (*ast.Program, error) {
	body := pattern
	startAnchor := false
	endAnchor := false

	if strings.HasPrefix(body, "^") {
		startAnchor = true
		body = body[1:]
	}
	if strings.HasSuffix(body, "$") {
		endAnchor = true
		body = body[:len(body)-1]
	}

	p := &parser{original: pattern, runes: []rune(body)}
	patterns, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.runes) {
		if p.runes[p.pos] == ')' {
			return nil, p.fail(ErrUnmatchedParen, "")
		}
		return nil, p.fail(ErrUnexpectedAlternation, "")
	}

	return &ast.Program{
		Patterns:    patterns,
		StartAnchor: startAnchor,
		EndAnchor:   endAnchor,
	}, nil
}

// parser walks an anchor-stripped pattern body one rune at a time,
// assigning capture group indices strictly in the order their opening
// '(' is encountered.
type parser struct {
	original     string
	runes        []rune
	pos          int
	nextGroupIdx int
}

func (p *parser) fail(sentinel error, detail string) error {
	return &ParseError{Pattern: p.original, Pos: p.pos, Err: sentinel, Detail: detail}
}

// parseSequence parses atom* until end of input or an unconsumed ')' or
// '|', which it leaves for the caller (parseGroup, or Parse itself at the
// top level) to interpret.
func (p *parser) parseSequence() ([]ast.Pattern, error) {
	var out []ast.Pattern
	for p.pos < len(p.runes) {
		r := p.runes[p.pos]
		if r == ')' || r == '|' {
			break
		}
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		out = append(out, atom)
	}
	return out, nil
}

// parseAtom parses exactly one atom: a primitive with an optional
// quantifier, a group, or a backreference.
func (p *parser) parseAtom() (ast.Pattern, error) {
	r := p.runes[p.pos]

	switch r {
	case '(':
		return p.parseGroup()
	case '[':
		return p.parseCharClass()
	case '\\':
		return p.parseEscape()
	case '.':
		p.pos++
		return p.finishQuant(func(c ast.Count) ast.Pattern { return ast.Wildcard{Count: c} })
	case '+', '?':
		return nil, p.fail(ErrDanglingQuantifier, string(r))
	default:
		p.pos++
		return p.finishQuant(func(c ast.Count) ast.Pattern { return ast.Literal{Char: r, Count: c} })
	}
}

// finishQuant consumes a trailing '+' or '?' (if present) and builds the
// node via build. A quantifier immediately followed by another quantifier
// is a chained-quantifier error ("++", "?+", ... are all rejected).
func (p *parser) finishQuant(build func(ast.Count) ast.Pattern) (ast.Pattern, error) {
	if p.pos >= len(p.runes) {
		return build(ast.CountOne), nil
	}

	switch p.runes[p.pos] {
	case '+':
		p.pos++
		if p.pos < len(p.runes) && (p.runes[p.pos] == '+' || p.runes[p.pos] == '?') {
			return nil, p.fail(ErrChainedQuantifier, string(p.runes[p.pos]))
		}
		return build(ast.CountOneOrMore), nil
	case '?':
		p.pos++
		if p.pos < len(p.runes) && (p.runes[p.pos] == '+' || p.runes[p.pos] == '?') {
			return nil, p.fail(ErrChainedQuantifier, string(p.runes[p.pos]))
		}
		return build(ast.CountZeroOrOne), nil
	default:
		return build(ast.CountOne), nil
	}
}

// parseGroup parses "(" branch ("|" branch)* ")", assigning this group's
// capture index before descending into its body so outer groups always
// hold smaller indices than the groups nested inside them.
func (p *parser) parseGroup() (ast.Pattern, error) {
	p.pos++ // consume '('
	p.nextGroupIdx++
	idx := p.nextGroupIdx

	var branches [][]ast.Pattern
	for {
		branch, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		if len(branch) == 0 {
			return nil, p.fail(ErrEmptyGroupBody, "")
		}
		branches = append(branches, branch)

		if p.pos >= len(p.runes) {
			return nil, p.fail(ErrUnterminatedGroup, "")
		}
		if p.runes[p.pos] == '|' {
			p.pos++
			continue
		}
		break // must be ')'
	}

	if p.pos >= len(p.runes) || p.runes[p.pos] != ')' {
		return nil, p.fail(ErrUnterminatedGroup, "")
	}
	p.pos++ // consume ')'

	if len(branches) == 1 {
		return p.finishQuant(func(c ast.Count) ast.Pattern {
			return ast.CapturedGroup{Idx: idx, Patterns: branches[0], Count: c}
		})
	}
	return p.finishQuant(func(c ast.Count) ast.Pattern {
		return ast.Alternation{Idx: idx, Alternatives: branches, Count: c}
	})
}

// parseCharClass parses "[" "^"? chars "]". Every member must be ASCII
// alphanumeric; anything else is a parse error.
func (p *parser) parseCharClass() (ast.Pattern, error) {
	p.pos++ // consume '['

	negated := false
	if p.pos < len(p.runes) && p.runes[p.pos] == '^' {
		negated = true
		p.pos++
	}

	var members strings.Builder
	for {
		if p.pos >= len(p.runes) {
			return nil, p.fail(ErrUnterminatedClass, "")
		}
		r := p.runes[p.pos]
		if r == ']' {
			break
		}
		if !isASCIIAlnum(r) {
			return nil, p.fail(ErrInvalidClassMember, string(r))
		}
		members.WriteRune(r)
		p.pos++
	}
	p.pos++ // consume ']'

	return p.finishQuant(func(c ast.Count) ast.Pattern {
		return ast.CharGroup{Negated: negated, Members: members.String(), Count: c}
	})
}

// parseEscape parses "\" followed by d, w, \, or a backreference digit
// 1-9. Any other escape is a parse error.
func (p *parser) parseEscape() (ast.Pattern, error) {
	p.pos++ // consume '\'
	if p.pos >= len(p.runes) {
		return nil, p.fail(ErrDanglingBackslash, "")
	}
	r := p.runes[p.pos]

	switch {
	case r == 'd':
		p.pos++
		return p.finishQuant(func(c ast.Count) ast.Pattern { return ast.Digit{Count: c} })
	case r == 'w':
		p.pos++
		return p.finishQuant(func(c ast.Count) ast.Pattern { return ast.Alphanumeric{Count: c} })
	case r == '\\':
		p.pos++
		return p.finishQuant(func(c ast.Count) ast.Pattern { return ast.Literal{Char: '\\', Count: c} })
	case r >= '1' && r <= '9':
		p.pos++
		n := int(r - '0')
		if p.pos < len(p.runes) && (p.runes[p.pos] == '+' || p.runes[p.pos] == '?') {
			return nil, p.fail(ErrBackreferenceQuantifier, string(p.runes[p.pos]))
		}
		return ast.Backreference{N: n}, nil
	default:
		return nil, p.fail(ErrUnknownEscape, string(r))
	}
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
