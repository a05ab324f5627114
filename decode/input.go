// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package decode

import "io"

// maxEmptyReads bounds the number of consecutive empty reads tolerated from
// the underlying reader before reporting io.ErrNoProgress.
const maxEmptyReads = 100

// input reads a byte source exactly one byte per Read call, keeping at most
// one byte of lookahead. It tracks the offset, line, and column of the next
// byte not yet consumed; a byte held as lookahead has been read from the
// source but is not consumed.
type input struct {
	r    io.Reader
	buf  [1]byte
	next int   // lookahead byte, or -1 if none
	err  error // sticky error from r

	off       int // offset of the next unconsumed byte
	line, col int // 0-based line and column of the next unconsumed byte
}

func newInput(r io.Reader) input { return input{r: r, next: -1} }

// peek returns the next byte of input without consuming it.
func (in *input) peek() (byte, error) {
	if in.next >= 0 {
		return byte(in.next), nil
	}
	if in.err != nil {
		return 0, in.err
	}
	for range maxEmptyReads {
		n, err := in.r.Read(in.buf[:])
		if n > 0 {
			in.next = int(in.buf[0])
			in.err = err // deliver the error after this byte
			return in.buf[0], nil
		} else if err != nil {
			in.err = err
			return 0, err
		}
	}
	in.err = io.ErrNoProgress
	return 0, in.err
}

// advance consumes the lookahead byte.
// Precondition: a successful call to peek.
func (in *input) advance() {
	b := byte(in.next)
	in.next = -1
	in.off++
	if b == '\n' {
		in.line++
		in.col = 0
	} else {
		in.col++
	}
}

// read consumes and returns the next byte of input.
func (in *input) read() (byte, error) {
	b, err := in.peek()
	if err == nil {
		in.advance()
	}
	return b, err
}

// pos reports the location of the next unconsumed byte.
func (in *input) pos() LineCol { return LineCol{Line: in.line + 1, Column: in.col} }
