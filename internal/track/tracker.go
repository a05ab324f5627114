// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package track implements a byte source that records the position of a
// decoder within its input, and the start of the next token.
//
// A Reader delivers its input one byte per call to Read, and updates its
// Tracker as it does so. A decoder that reads its input one byte at a time
// can therefore find its own exact position, and the span of each value it
// decodes, by consulting the Tracker of its source:
//
//	r := track.New(src, opts)
//	dec := decode.NewDecoder(r)
//	...
//	t := track.Of(dec.Source())
//	start, _ := t.TokenStart()
//
// The Reader also elides comments and trailing commas when its options allow
// them, replacing them with whitespace so that offsets are not disturbed.
package track

import "io"

// Options control the syntax accepted by a Reader, and record policies for
// the decoder that consumes it.
type Options struct {
	Comments       bool // elide "//" and "/* */" comments
	TrailingCommas bool // elide a comma before "]" or "}"
	DuplicateKeys  bool // allow duplicate object keys
	SortKeys       bool // order object members by key
}

// A Tracker records the progress of a Reader through its input.
// The Reader is the only writer.
type Tracker struct {
	src  []byte
	opts Options

	pos   int  // read cursor: the number of bytes emitted
	mode  Mode // lexer mode after the last byte emitted
	eof   bool // end of input has been reported
	start int  // offset of the cached token start
	first byte // the byte at start, or 0 at the end of input
}

// ReadPos reports the number of bytes of input emitted so far.
func (t *Tracker) ReadPos() int { return t.pos }

// TokenStart reports the offset and first byte of the first token at or
// after the last byte emitted. At the end of input the byte is 0.
func (t *Tracker) TokenStart() (int, byte) { return t.start, t.first }

// AtEOF reports whether the Reader has reported the end of its input.
func (t *Tracker) AtEOF() bool { return t.eof }

// Mode reports the lexer mode after the last byte emitted.
func (t *Tracker) Mode() Mode { return t.mode }

// Options returns the options the Tracker was created with.
func (t *Tracker) Options() Options { return t.opts }

// seek updates the cached token start for the byte at pos.
// The cache is monotonic: a start already beyond pos is still valid, since
// only skippable bytes can lie between pos and it.
func (t *Tracker) seek(pos int) {
	if t.start > pos {
		return
	}
	t.start = NextToken(t.src, pos, t.opts.Comments)
	if t.start < len(t.src) {
		t.first = t.src[t.start]
	} else {
		t.first = 0
	}
}

// A Reader is an io.Reader over a byte slice that emits one byte per call to
// Read, updating its Tracker.
type Reader struct{ t *Tracker }

// New constructs a Reader over src with the given options.
// The Reader does not modify src.
func New(src []byte, opts Options) *Reader {
	t := &Tracker{src: src, opts: opts}
	t.seek(0)
	return &Reader{t: t}
}

// Tracker returns the tracker for r.
func (r *Reader) Tracker() *Tracker { return r.t }

// Read emits the next byte of input into p[0], and reports io.EOF at the
// end of input. Read never emits more than one byte.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	t := r.t
	if t.pos >= len(t.src) {
		t.eof = true
		return 0, io.EOF
	}
	pos := t.pos
	t.pos++
	if t.mode == Normal {
		t.seek(pos)
	}
	t.mode, p[0] = Step(t.mode, t.src, pos, t.opts)
	return 1, nil
}

// Of returns the Tracker for r, or nil if r is not a *Reader.
func Of(r io.Reader) *Tracker {
	if tr, ok := r.(*Reader); ok {
		return tr.t
	}
	return nil
}
