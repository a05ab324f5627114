// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package track

// Mode is the state of the lexer that classifies each byte of the input as
// it is emitted to the decoder.
type Mode byte

// Constants defining the valid Mode values.
const (
	Normal       Mode = iota // between tokens, or inside a token other than a string
	String                   // inside a quoted string
	StringEscape             // after a backslash inside a quoted string
	LineComment              // inside a "//" comment
	BlockOpen                // at the "*" that opens a "/*" comment
	BlockComment             // inside a "/* */" comment
	BlockStar                // after a "*" inside a "/* */" comment
)

var modeStr = [...]string{
	Normal:       "Normal",
	String:       "String",
	StringEscape: "StringEscape",
	LineComment:  "LineComment",
	BlockOpen:    "BlockOpen",
	BlockComment: "BlockComment",
	BlockStar:    "BlockStar",
}

func (m Mode) String() string {
	if int(m) >= len(modeStr) {
		return "invalid mode"
	}
	return modeStr[m]
}

// Step computes the lexer transition for emitting src[pos] in mode m.
// It returns the new mode and the byte to emit in place of src[pos].
//
// Bytes belonging to a comment are blanked: they are replaced by a space,
// unless they are already whitespace, so line structure is kept. With
// trailing commas enabled, a comma whose next token is "]" or "}" is
// replaced by a space. No other byte is changed, so the output has exactly
// the same length and line structure as src.
//
// Precondition: 0 <= pos < len(src).
func Step(m Mode, src []byte, pos int, opts Options) (Mode, byte) {
	c := src[pos]
	switch m {
	case Normal:
		switch c {
		case '"':
			return String, c
		case ',':
			if opts.TrailingCommas {
				if t := NextToken(src, pos+1, opts.Comments); t < len(src) && (src[t] == ']' || src[t] == '}') {
					return Normal, ' '
				}
			}
		case '/':
			if opts.Comments && pos+1 < len(src) {
				switch src[pos+1] {
				case '/':
					return LineComment, ' '
				case '*':
					return BlockOpen, ' '
				}
			}
		}
		return Normal, c

	case String:
		switch c {
		case '\\':
			return StringEscape, c
		case '"':
			return Normal, c
		}
		return String, c

	case StringEscape:
		return String, c

	case LineComment:
		if c == '\n' {
			return Normal, c
		}
		return LineComment, blank(c)

	case BlockOpen:
		return BlockComment, ' '

	case BlockComment, BlockStar:
		if c == '*' {
			return BlockStar, ' '
		} else if c == '/' && m == BlockStar {
			return Normal, ' '
		}
		return BlockComment, blank(c)
	}
	panic("invalid lexer mode " + m.String())
}

// NextToken returns the offset of the first byte at or after pos that may
// begin a JSON value or close a container, skipping whitespace, colons, and
// (if comments is true) comments. It returns len(src) if there is none.
func NextToken(src []byte, pos int, comments bool) int {
	for pos < len(src) {
		switch c := src[pos]; {
		case c == ':' || isSpace(c):
			pos++
		case c == '/' && comments && pos+1 < len(src) && src[pos+1] == '/':
			pos += 2
			for pos < len(src) {
				pos++
				if src[pos-1] == '\n' {
					break
				}
			}
		case c == '/' && comments && pos+1 < len(src) && src[pos+1] == '*':
			pos += 2
			for pos < len(src) && !(src[pos] == '*' && pos+1 < len(src) && src[pos+1] == '/') {
				pos++
			}
			pos = min(pos+2, len(src))
		default:
			return pos
		}
	}
	return len(src)
}

// blank returns the byte that replaces c when c is elided.
func blank(c byte) byte {
	if isSpace(c) {
		return c
	}
	return ' '
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
