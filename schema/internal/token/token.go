package token

import (
	"strconv"
	"unicode"

	"github.com/fieldview/fieldview/errors"
)

type Type int

const (
	Ident Type = iota
	Number
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Colon
	Comma
)

func (t Type) String() string {
	switch t {
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case Colon:
		return "':'"
	case Comma:
		return "','"
	}
	return "unknown"
}

type Token struct {
	Value  string
	Type   Type
	Offset int // byte offset into the source

	// Num holds the parsed value for Number tokens.
	Num uint64
}

var punct = map[rune]Type{
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	'{': LBrace,
	'}': RBrace,
	':': Colon,
	',': Comma,
}

// Tokenize lexes a fieldspec source string. It fails on the first
// unrecognized character, reporting its byte offset.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	runes := []rune(input)
	off := 0 // byte offset of runes[i]

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		start := off
		off += len(string(r))

		if unicode.IsSpace(r) {
			continue
		}

		if typ, ok := punct[r]; ok {
			tokens = append(tokens, Token{Value: string(r), Type: typ, Offset: start})
			continue
		}

		// Integer literal, optionally 0x/0o/0b prefixed
		if r >= '0' && r <= '9' {
			j := i
			for j < len(runes) && isNumRune(runes[j]) {
				j++
			}
			text := string(runes[i:j])
			n, err := strconv.ParseUint(text, 0, 64)
			if err != nil {
				return nil, errors.BadNumber(start, text)
			}
			tokens = append(tokens, Token{Value: text, Type: Number, Offset: start, Num: n})
			off = start + len(text)
			i = j - 1
			continue
		}

		// Identifier: [A-Za-z_]\w*
		if r == '_' || unicode.IsLetter(r) {
			j := i
			for j < len(runes) && isIdentRune(runes[j]) {
				j++
			}
			text := string(runes[i:j])
			tokens = append(tokens, Token{Value: text, Type: Ident, Offset: start})
			off = start + len(text)
			i = j - 1
			continue
		}

		return nil, errors.BadToken(start, r)
	}

	return tokens, nil
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNumRune(r rune) bool {
	// Wide enough to swallow malformed literals in one token so the
	// strconv error points at the whole run, e.g. "0xzz".
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
