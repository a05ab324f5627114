// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jspan

import (
	"cmp"
	"fmt"

	"github.com/creachadair/jspan/decode"
	"github.com/creachadair/jspan/internal/track"
)

// Spanned is a value of type V together with the span of the input from which
// it was decoded. The span is metadata: it does not participate in Equal,
// Compare, or Key.
//
// When a Spanned value is decoded by a function of this package, its span
// runs from the first byte of the value to the byte after its last, so that
// Span.Slice returns the text of the value as written. A Spanned value
// decoded by some other means has an empty span at offset 0.
type Spanned[V any] struct {
	Span
	Value V
}

// Wrap returns a Spanned with value v and an empty span at offset 0.
func Wrap[V any](v V) Spanned[V] { return Spanned[V]{Value: v} }

func (s Spanned[V]) String() string { return fmt.Sprintf("%v@%v", s.Value, s.Span) }

// Get returns the value of s.
func (s Spanned[V]) Get() V { return s.Value }

// Key returns the value of s, for use as a map key.
func (s Spanned[V]) Key() V { return s.Value }

// Equal reports whether a and b have equal values, regardless of their spans.
func Equal[V comparable](a, b Spanned[V]) bool { return a.Value == b.Value }

// Compare compares the values of a and b, regardless of their spans.
func Compare[V cmp.Ordered](a, b Spanned[V]) int { return cmp.Compare(a.Value, b.Value) }

// DecodeJSON implements the decode.Unmarshaler interface. It decodes the
// value of s, and records its span if d reads from a tracking source.
func (s *Spanned[V]) DecodeJSON(d *decode.Decoder) error {
	t := track.Of(d.Source())
	if t == nil {
		s.Span = Span{}
		return d.Decode(&s.Value)
	}
	start, first := t.TokenStart()
	if err := d.Decode(&s.Value); err != nil {
		return err
	}
	s.Span = Span{Pos: start, End: valueEnd(t, start, first)}
	return nil
}

// valueEnd computes the end of a value beginning with first at offset start,
// once the decoder has finished with it. A delimited value ends at the last
// byte read. The end of a number is found only by reading the byte after it,
// which is not part of the value, unless the input ended instead.
func valueEnd(t *track.Tracker, start int, first byte) int {
	end := t.ReadPos()
	switch first {
	case '[', '{', '"', 'n', 't', 'f':
	default:
		if !t.AtEOF() {
			end--
		}
	}
	return max(end, start)
}
