// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jspan

import (
	"github.com/creachadair/jspan/decode"
	"github.com/creachadair/jspan/internal/track"
)

// Settings control the syntax accepted by a decoder, and the shape of the
// values it constructs. The zero value accepts strict JSON, and keeps object
// members in the order they were written.
type Settings struct {
	// If true, an object may contain more than one member with the same key.
	// The value of the last such member is kept, at the position of the first.
	AllowDuplicateKeys bool

	// If true, the last element of an array or the last member of an object
	// may be followed by a comma.
	AllowTrailingCommas bool

	// If true, "//" line comments and "/* */" block comments are permitted
	// wherever whitespace is.
	AllowComments bool

	// If true, the members of a decoded Map are ordered by key rather than by
	// their position in the input.
	SortKeys bool
}

func (s Settings) options() track.Options {
	return track.Options{
		Comments:       s.AllowComments,
		TrailingCommas: s.AllowTrailingCommas,
		DuplicateKeys:  s.AllowDuplicateKeys,
		SortKeys:       s.SortKeys,
	}
}

// newDecoder constructs a decoder over data whose source tracks the spans of
// the values it decodes.
func (s Settings) newDecoder(data []byte) *decode.Decoder {
	return decode.NewDecoder(track.New(data, s.options()))
}

// optionsOf returns the options in effect for d, or the zero options if d
// does not read from a tracking source.
func optionsOf(d *decode.Decoder) track.Options {
	if t := track.Of(d.Source()); t != nil {
		return t.Options()
	}
	return track.Options{}
}

// Unmarshal decodes a single JSON value from data into v, which must be a
// non-nil pointer or implement decode.Unmarshaler. Only whitespace (and
// comments, if allowed) may follow the value.
//
// If decoding fails, the error has concrete type *Error.
func (s Settings) Unmarshal(data []byte, v any) error {
	d := s.newDecoder(data)
	if err := d.Decode(v); err != nil {
		return newError(err, data)
	}
	if err := d.End(); err != nil {
		return newError(err, data)
	}
	return nil
}
