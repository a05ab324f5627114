// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package decode

import (
	"fmt"
	"strings"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Float                // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Float:   "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// tokenAt classifies the token that begins with the byte b.
func tokenAt(b byte) Token {
	if i := strings.IndexByte("{}[],:", b); i >= 0 {
		return self[i]
	}
	switch {
	case b == '"':
		return String
	case isNumStart(b):
		return Float
	case b == 't':
		return True
	case b == 'f':
		return False
	case b == 'n':
		return Null
	}
	return Invalid
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

// describe renders b for an error message, naming its token if it starts one.
func describe(b byte) string {
	switch tok := tokenAt(b); tok {
	case Invalid, Float, True, False, Null:
		return fmt.Sprintf("%q", b)
	default:
		return tok.String()
	}
}

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprint(got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, len(tokens)-1)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\r' || b == '\n' || b == '\t'
}

func isNumStart(b byte) bool { return b == '-' || isDigit(b) }
func isExpStart(b byte) bool { return b == '-' || b == '+' || isDigit(b) }
func isDigit(b byte) bool    { return '0' <= b && b <= '9' }

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
