// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package decode

import (
	"errors"
	"io"

	"github.com/creachadair/jspan/internal/escape"
	"go4.org/mem"
)

// skipSpace consumes whitespace up to the next significant byte, which is
// left as lookahead. It returns io.EOF if the input ends first.
func (d *Decoder) skipSpace() error {
	for {
		b, err := d.in.peek()
		if err != nil {
			return err
		} else if !isSpace(b) {
			return nil
		}
		d.in.advance()
	}
}

// scanString consumes a quoted string and returns its decoded contents.
// Precondition: the lookahead byte is '"'.
func (d *Decoder) scanString() (string, error) {
	d.buf.Reset()
	d.in.advance() // the open quote
	var esc bool
	for {
		b, err := d.in.peek()
		if err != nil {
			return "", d.readError(err, "unterminated string")
		}
		if esc {
			// We are awaiting the completion of a \-escape.
			switch b {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				d.buf.WriteByte(b)
				d.in.advance()
			case 'u':
				d.buf.WriteByte(b)
				d.in.advance()
				if err := d.readHex4(); err != nil {
					return "", err
				}
			default:
				return "", d.syntaxError(nil, "invalid %q after escape", b)
			}
			esc = false
			continue
		}
		if b == '"' {
			d.in.advance()
			break
		} else if b < ' ' {
			return "", d.syntaxError(nil, "unescaped control %q", b)
		}
		d.buf.WriteByte(b)
		d.in.advance()
		esc = b == '\\'
	}
	dec, err := escape.Unquote(mem.B(d.buf.Bytes()))
	if err != nil {
		return "", d.syntaxError(err, "invalid string: %v", err)
	}
	return string(dec), nil
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (d *Decoder) readHex4() error {
	for range 4 {
		b, err := d.in.peek()
		if err != nil {
			return d.readError(err, "invalid Unicode escape")
		} else if !isHexDigit(b) {
			return d.syntaxError(nil, "invalid Unicode escape: not a hex digit: %q", b)
		}
		d.buf.WriteByte(b)
		d.in.advance()
	}
	return nil
}

// scanNumber consumes a number and returns its text as written.
// Precondition: the lookahead byte satisfies isNumStart.
//
// A number has no closing delimiter, so the byte following it is read from
// the source to find its end and left as lookahead.
func (d *Decoder) scanNumber() (Token, string, error) {
	d.buf.Reset()
	first, _ := d.in.read()
	d.buf.WriteByte(first)

	if first == '-' {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in first.
		b, err := d.require(isDigit, "digit")
		if err != nil {
			return Invalid, "", err
		}
		first = b
	}

	// Consume the remainder of an integer. A leading zero must be the only
	// digit of the integer part: 0.12 is OK, 01.2 is not.
	if first == '0' {
		if b, err := d.in.peek(); err == nil && isDigit(b) {
			return Invalid, "", d.syntaxError(nil, "extra leading zeroes")
		}
	} else if err := d.readWhile(isDigit); err != nil {
		return d.endNumber(Integer, err)
	}

	// If a decimal point follows, consume a fractional part.
	tok := Integer
	if b, err := d.in.peek(); err != nil {
		return d.endNumber(tok, err)
	} else if b == '.' {
		d.buf.WriteByte(b)
		d.in.advance()
		if _, err := d.require(isDigit, "digit after decimal point"); err != nil {
			return Invalid, "", err
		}
		if err := d.readWhile(isDigit); err != nil {
			return d.endNumber(Float, err)
		}
		tok = Float
	}

	// If an exponent follows, consume it.
	if b, err := d.in.peek(); err != nil {
		return d.endNumber(tok, err)
	} else if b != 'e' && b != 'E' {
		return tok, d.buf.String(), nil
	} else {
		d.buf.WriteByte(b)
		d.in.advance()
	}
	b, err := d.require(isExpStart, "sign or digit")
	if err != nil {
		return Invalid, "", err
	}
	if b == '-' || b == '+' {
		// It's OK to have no further digits if the previous byte was not a
		// sign, otherwise we have to have at least one.
		if _, err := d.require(isDigit, "exponent digit"); err != nil {
			return Invalid, "", err
		}
	}
	if err := d.readWhile(isDigit); err != nil {
		return d.endNumber(Float, err)
	}
	return Float, d.buf.String(), nil
}

// endNumber completes a number whose lookahead read reported err.
// End of input is a valid terminator; anything else is a failure.
func (d *Decoder) endNumber(tok Token, err error) (Token, string, error) {
	if errors.Is(err, io.EOF) {
		return tok, d.buf.String(), nil
	}
	return Invalid, "", d.syntaxError(err, "reading number: %v", err)
}

// require consumes a single byte matching f from the input, or returns an
// error mentioning the desired label.
func (d *Decoder) require(f func(byte) bool, label string) (byte, error) {
	b, err := d.in.peek()
	if err != nil {
		return 0, d.readError(err, "want "+label)
	} else if !f(b) {
		return 0, d.syntaxError(nil, "got %q, want %s", b, label)
	}
	d.buf.WriteByte(b)
	d.in.advance()
	return b, nil
}

// readWhile consumes bytes matching f from the input until EOF or until a
// byte not matching f is found, which is left as lookahead. It returns the
// error from the lookahead read, if any.
func (d *Decoder) readWhile(f func(byte) bool) error {
	for {
		b, err := d.in.peek()
		if err != nil {
			return err
		} else if !f(b) {
			return nil
		}
		d.buf.WriteByte(b)
		d.in.advance()
	}
}

// scanConstant consumes exactly the bytes of the constant named by tok.
// Unlike a number, a constant is recognized without reading past its end.
// Precondition: the lookahead byte is the first byte of the constant.
func (d *Decoder) scanConstant(tok Token) error {
	want := tok.String()
	for i := 0; i < len(want); i++ {
		b, err := d.in.peek()
		if err != nil {
			return d.readError(err, "incomplete constant "+want)
		} else if b != want[i] {
			return d.syntaxError(nil, "invalid %q in constant %s", b, want)
		}
		d.in.advance()
	}
	return nil
}
