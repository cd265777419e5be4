// Package parser implements the recursive-descent fieldspec parser.
//
// Grammar:
//
//	fields := field (',' field)*
//	field  := [identifier ':'] type
//	type   := identifier array* | integer array* | struct array*
//	struct := '{' fields '}'
//	array  := ('[' | '(') integer (']' | ')')
//
// Commas between fields are optional; whitespace alone also separates
// fields. The parser validates shape only — type names are resolved
// against a registry at compile time.
package parser

import (
	"math"

	"github.com/fieldview/fieldview/errors"
	"github.com/fieldview/fieldview/schema/internal/ast"
	"github.com/fieldview/fieldview/schema/internal/token"
)

type Parser struct {
	tokens []token.Token
	pos    int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the whole token stream and returns the field list.
// A source consisting of exactly one anonymous brace group is
// unwrapped, so "{a: u8}" and "a: u8" parse identically.
func Parse(tokens []token.Token) ([]ast.Field, error) {
	p := New(tokens)
	fields, err := p.parseFields()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t != nil {
		return nil, errors.Syntax(t.Offset, "unexpected %s", t.Type)
	}
	if len(fields) == 1 && fields[0].Name == "" &&
		fields[0].Type.Kind == ast.Struct && len(fields[0].Type.Counts) == 0 {
		fields = fields[0].Type.Fields
	}
	return fields, nil
}

func (p *Parser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) *token.Token {
	if p.pos+n >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos+n]
}

func (p *Parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *Parser) endOffset() int {
	if len(p.tokens) == 0 {
		return 0
	}
	last := p.tokens[len(p.tokens)-1]
	return last.Offset + len(last.Value)
}

func (p *Parser) parseFields() ([]ast.Field, error) {
	var fields []ast.Field
	for {
		for t := p.peek(); t != nil && t.Type == token.Comma; t = p.peek() {
			p.next()
		}
		t := p.peek()
		if t == nil || t.Type == token.RBrace {
			return fields, nil
		}
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
}

func (p *Parser) parseField() (ast.Field, error) {
	var f ast.Field

	t := p.peek()
	switch {
	case t.Type == token.Colon:
		return f, errors.Syntax(t.Offset, "missing field name before ':'")
	case t.Type == token.Ident && p.hasColonAt(1):
		f.Name = t.Value
		p.next()
		p.next()
	case t.Type == token.Number && p.hasColonAt(1):
		return f, errors.Syntax(t.Offset, "invalid field name %q", t.Value)
	}

	typ, err := p.parseType()
	if err != nil {
		return f, err
	}
	f.Type = typ
	return f, nil
}

func (p *Parser) hasColonAt(n int) bool {
	t := p.peekAt(n)
	return t != nil && t.Type == token.Colon
}

func (p *Parser) parseType() (ast.Type, error) {
	var typ ast.Type

	t := p.next()
	if t == nil {
		return typ, errors.Syntax(p.endOffset(), "missing field type")
	}

	switch t.Type {
	case token.Ident:
		typ = ast.Type{Kind: ast.Named, Name: t.Value}
	case token.Number:
		span, err := literalInt(t)
		if err != nil {
			return typ, err
		}
		typ = ast.Type{Kind: ast.Span, Span: span}
	case token.LBrace:
		fields, err := p.parseFields()
		if err != nil {
			return typ, err
		}
		if c := p.next(); c == nil || c.Type != token.RBrace {
			return typ, errors.Syntax(t.Offset, "unmatched '{'")
		}
		typ = ast.Type{Kind: ast.Struct, Fields: fields}
	default:
		return typ, errors.Syntax(t.Offset, "expected a type, got %s", t.Type)
	}

	for {
		open := p.peek()
		if open == nil || (open.Type != token.LBracket && open.Type != token.LParen) {
			return typ, nil
		}
		p.next()

		num := p.next()
		if num == nil || num.Type != token.Number {
			return typ, errors.Syntax(open.Offset, "missing array length after %s", open.Type)
		}
		count, err := literalInt(num)
		if err != nil {
			return typ, err
		}

		want := token.RBracket
		if open.Type == token.LParen {
			want = token.RParen
		}
		if c := p.next(); c == nil || c.Type != want {
			return typ, errors.Syntax(open.Offset, "mismatched brackets: %s is not closed by %s", open.Type, want)
		}
		typ.Counts = append(typ.Counts, count)
	}
}

func literalInt(t *token.Token) (int, error) {
	if t.Num > math.MaxInt32 {
		return 0, errors.Syntax(t.Offset, "integer literal %s too large", t.Value)
	}
	return int(t.Num), nil
}
