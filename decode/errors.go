// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package decode

import (
	"errors"
	"fmt"
	"io"
)

// SyntaxError is the concrete type of errors reported for malformed input.
// The location is that of the offending byte, or the end of the input if the
// input ended early.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
	src *Decoder
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// ValueError is the concrete type of errors reported while decoding a
// well-formed value, for example a type mismatch or an error reported by an
// Unmarshaler or Visitor. The location is the position of the decoder when
// the error was reported.
type ValueError struct {
	Location LineCol
	Err      error

	src *Decoder
}

// Error satisfies the error interface.
func (v *ValueError) Error() string {
	return fmt.Sprintf("at %s: %v", v.Location, v.Err)
}

// Unwrap supports error wrapping.
func (v *ValueError) Unwrap() error { return v.Err }

// Position reports the input location recorded by err, if err is or wraps a
// *SyntaxError or a *ValueError. If there are several, the outermost wins.
func Position(err error) (LineCol, bool) {
	for ; err != nil; err = errors.Unwrap(err) {
		switch e := err.(type) {
		case *SyntaxError:
			return e.Location, true
		case *ValueError:
			return e.Location, true
		}
	}
	return LineCol{}, false
}

// locatedBy reports whether err already carries a location from d.
// Errors located by a different decoder (for example, one used to decode
// embedded text inside an Unmarshaler) do not count.
func locatedBy(err error, d *Decoder) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		switch e := err.(type) {
		case *SyntaxError:
			if e.src == d {
				return true
			}
		case *ValueError:
			if e.src == d {
				return true
			}
		}
	}
	return false
}

func (d *Decoder) syntaxError(err error, msg string, args ...any) error {
	return &SyntaxError{
		Location: d.in.pos(),
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
		src:      d,
	}
}

// readError reports a failure to read the next byte, where want describes
// what the decoder expected to find.
func (d *Decoder) readError(err error, want string) error {
	if errors.Is(err, io.EOF) {
		return d.syntaxError(io.ErrUnexpectedEOF, "%s, got end of input", want)
	}
	return d.syntaxError(err, "%s, got error: %v", want, err)
}

// wrap attaches the current location to err, unless it already has one.
func (d *Decoder) wrap(err error) error {
	if err == nil || locatedBy(err, d) {
		return err
	}
	return &ValueError{Location: d.in.pos(), Err: err, src: d}
}
