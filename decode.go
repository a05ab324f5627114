// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jspan

import (
	"bytes"
	"errors"

	"github.com/creachadair/jspan/decode"
)

// ErrDuplicateKey is reported when an object contains more than one member
// with the same key, and the settings do not allow it.
var ErrDuplicateKey = errors.New("duplicate field")

// Error is the concrete type of errors reported by the decoding functions of
// this package. It wraps the error reported by the decoder, which is usually
// a *decode.SyntaxError or a *decode.ValueError.
type Error struct {
	Offset int   // byte offset of the error in the input, or -1 if unknown
	Err    error // the underlying error
}

// Error satisfies the error interface.
func (e *Error) Error() string { return e.Err.Error() }

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.Err }

func newError(err error, text []byte) error {
	off, ok := OffsetWithin(err, text)
	if !ok {
		off = -1
	}
	return &Error{Offset: off, Err: err}
}

// OffsetWithin reports the byte offset in text of the location recorded by
// err, which must be or wrap an error carrying a line and column from the
// decode package. It reports false if err has no location, or if the
// location lies at or past the end of text.
func OffsetWithin(err error, text []byte) (int, bool) {
	pos, ok := decode.Position(err)
	if !ok || pos.Line < 1 || pos.Column < 0 {
		return 0, false
	}
	start := 0
	for line := 1; line < pos.Line; line++ {
		i := bytes.IndexByte(text[start:], '\n')
		if i < 0 {
			return 0, false
		}
		start += i + 1
	}
	off := start + pos.Column
	if off >= len(text) {
		return 0, false
	}
	return off, true
}

// Decode decodes a single JSON value of type T from data, subject to the
// given settings. Values of type Spanned, and Spanned fields within T, record
// the spans of data from which they were decoded.
//
// If decoding fails, the error has concrete type *Error.
func Decode[T any](data []byte, s Settings) (T, error) {
	var v T
	if err := s.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// DecodeString decodes a single JSON value of type T from text.
// It is a convenience wrapper for Decode.
func DecodeString[T any](text string, s Settings) (T, error) {
	return Decode[T]([]byte(text), s)
}

// Unmarshal decodes a single strict JSON value from data into v.
// It is shorthand for Settings{}.Unmarshal(data, v).
func Unmarshal(data []byte, v any) error { return Settings{}.Unmarshal(data, v) }
