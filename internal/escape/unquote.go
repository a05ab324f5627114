// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A \u escape
// for the high half of a UTF-16 surrogate pair combines with an immediately
// following \u escape for the low half. Unpaired surrogates and invalid
// escapes are replaced by the Unicode replacement rune. Unquote reports an
// error for an incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(nil, src), nil
	}

	dec := make([]byte, 0, src.Len())
	for i >= 0 {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			dec = append(dec, c)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, rest, err := unescapeRune(src)
			if err != nil {
				return nil, err
			}
			dec = utf8.AppendRune(dec, r)
			src = rest
		default:
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}
		i = mem.IndexByte(src, '\\')
	}
	return mem.Append(dec, src), nil
}

// unescapeRune decodes the hex digits of a \u escape at the front of src,
// consuming a second escape if the first is the high half of a surrogate
// pair. It returns the decoded rune and the remaining input.
func unescapeRune(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, errors.New("incomplete Unicode escape")
	}
	hi, ok := parseHex4(src)
	src = src.SliceFrom(4)
	if !ok {
		return utf8.RuneError, src, nil
	} else if !utf16.IsSurrogate(hi) {
		return hi, src, nil
	}

	// A low surrogate must follow as a separate escape; if it does not, the
	// high surrogate stands alone and the input is left for the caller.
	if src.Len() < 6 || src.At(0) != '\\' || src.At(1) != 'u' {
		return utf8.RuneError, src, nil
	}
	lo, ok := parseHex4(src.SliceFrom(2))
	if !ok {
		return utf8.RuneError, src, nil
	}
	r := utf16.DecodeRune(hi, lo)
	if r == utf8.RuneError {
		return r, src, nil
	}
	return r, src.SliceFrom(6), nil
}

// parseHex4 decodes the first four bytes of data as a hexadecimal value.
func parseHex4(data mem.RO) (rune, bool) {
	var v rune
	for i := range 4 {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
