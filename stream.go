// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jspan

import (
	"io"
	"iter"

	"github.com/creachadair/jspan/decode"
)

// A Stream decodes a sequence of JSON values of type T from a single input.
// The values may be separated by whitespace (and comments, if allowed).
// Spans of the decoded values are offsets in the whole input.
//
// A Stream is single-pass: each call to Next resumes where the previous call
// stopped. Once Next reports an error, including io.EOF, it reports the same
// error on every later call.
type Stream[T any] struct {
	data []byte
	dec  *decode.Decoder
	err  error
	off  int
}

// NewStream constructs a Stream that decodes values of type T from data.
func NewStream[T any](data []byte, s Settings) *Stream[T] {
	return &Stream[T]{data: data, dec: s.newDecoder(data)}
}

// Next decodes and returns the next value from the stream. It returns io.EOF
// if no further values remain. If the input ends partway through a value,
// Next reports the error from the decoder, with concrete type *Error.
func (s *Stream[T]) Next() (T, error) {
	var v T
	if s.err != nil {
		return v, s.err
	}
	if ok, err := s.dec.More(); err != nil {
		s.err = newError(err, s.data)
		return v, s.err
	} else if !ok {
		s.err = io.EOF
		return v, s.err
	}
	if err := s.dec.Decode(&v); err != nil {
		s.err = newError(err, s.data)
		var zero T
		return zero, s.err
	}
	s.off = s.dec.Offset()
	return v, nil
}

// ByteOffset reports the number of bytes of input consumed by the values
// decoded so far. It does not include any lookahead past the last value.
func (s *Stream[T]) ByteOffset() int { return s.off }

// All is a range function over the remaining values of s. If an error other
// than io.EOF occurs, it is yielded with a zero value, and iteration stops.
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, err := s.Next()
			if err == io.EOF {
				return
			} else if !yield(v, err) || err != nil {
				return
			}
		}
	}
}
