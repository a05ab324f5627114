// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package decode

import (
	"bytes"
	"errors"
	"io"
)

// MaxDepth is the maximum number of nested calls to Decode and DecodeAny a
// Decoder will accept. Each level of nesting in the input uses at least one.
const MaxDepth = 10000

// An Unmarshaler decodes itself from a Decoder. When Decode is called with an
// Unmarshaler, the decoder has already skipped any leading whitespace and
// read the first byte of the value, so the value begins at the next byte the
// decoder consumes.
//
// DecodeJSON must consume exactly one complete value from d, for example by
// calling d.Decode or d.DecodeAny once.
type Unmarshaler interface {
	DecodeJSON(d *Decoder) error
}

// A Decoder reads a sequence of JSON values from an io.Reader.
//
// The decoder issues only single-byte Read calls to its source, and never
// reads more than one byte past the end of a value. This means that the
// number of Read calls made on the source exactly tracks the position of the
// decoder within the input:
//
//   - Strings, arrays, objects, and the constants true, false, and null are
//     recognized by their final byte, and no further bytes are read.
//
//   - A number is recognized only by reading the byte after it, which is held
//     as lookahead and is not consumed. If the input ends instead, the number
//     is complete.
//
// Before decoding each value, the decoder skips whitespace and reads the
// first byte of the value.
type Decoder struct {
	src   io.Reader
	in    input
	buf   bytes.Buffer
	depth int
}

// NewDecoder constructs a new Decoder that reads input from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{src: r, in: newInput(r)}
}

// Source returns the reader from which d consumes its input.
func (d *Decoder) Source() io.Reader { return d.src }

// Offset reports the number of bytes of input consumed by d. A byte held as
// lookahead after a number has been read from the source but is not counted.
func (d *Decoder) Offset() int { return d.in.off }

// Position reports the location of the next unconsumed byte of input.
func (d *Decoder) Position() LineCol { return d.in.pos() }

// More reports whether another value follows in the input, skipping any
// leading whitespace. It returns false without error at the end of the input.
func (d *Decoder) More() (bool, error) {
	if err := d.skipSpace(); errors.Is(err, io.EOF) {
		return false, nil
	} else if err != nil {
		return false, d.readError(err, "expected value")
	}
	return true, nil
}

// End reports an error if any input other than whitespace remains.
func (d *Decoder) End() error {
	if err := d.skipSpace(); errors.Is(err, io.EOF) {
		return nil
	} else if err != nil {
		return d.readError(err, "expected end of input")
	}
	b, _ := d.in.peek()
	return d.syntaxError(nil, "unexpected %s after value", describe(b))
}

// Decode decodes the next value from the input into v.
//
// If v implements Unmarshaler, its DecodeJSON method is called to decode the
// value. If v is nil, the value is read and discarded. Otherwise v must be a
// non-nil pointer, and the value is decoded into the location it points to by
// reflection. See Unmarshal for the supported types.
func (d *Decoder) Decode(v any) error {
	if v == nil {
		return d.Skip()
	}
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	if u, ok := v.(Unmarshaler); ok {
		return d.wrap(u.DecodeJSON(d))
	}
	return d.wrap(d.decodeReflect(v))
}

// DecodeAny decodes the next value from the input, calling the method of vis
// that corresponds to the type of the value.
//
// If vis.VisitArray or vis.VisitObject returns without error, any elements
// or members it did not consume are read and discarded.
func (d *Decoder) DecodeAny(vis Visitor) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	b, _ := d.in.peek()
	switch tok := tokenAt(b); tok {
	case LBrace:
		d.in.advance()
		obj := &ObjectAccess{d: d}
		if err := vis.VisitObject(obj); err != nil {
			return d.wrap(err)
		}
		return obj.finish()

	case LSquare:
		d.in.advance()
		arr := &ArrayAccess{d: d}
		if err := vis.VisitArray(arr); err != nil {
			return d.wrap(err)
		}
		return arr.finish()

	case String:
		s, err := d.scanString()
		if err != nil {
			return err
		}
		return d.wrap(vis.VisitString(s))

	case Float:
		_, text, err := d.scanNumber()
		if err != nil {
			return err
		}
		return d.wrap(vis.VisitNumber(Number(text)))

	case True, False:
		if err := d.scanConstant(tok); err != nil {
			return err
		}
		return d.wrap(vis.VisitBool(tok == True))

	case Null:
		if err := d.scanConstant(tok); err != nil {
			return err
		}
		return d.wrap(vis.VisitNull())

	default:
		return d.syntaxError(nil, "unexpected %s, expected value", describe(b))
	}
}

// Skip reads and discards the next value from the input.
func (d *Decoder) Skip() error { return d.DecodeAny(discard{}) }

// enter skips whitespace up to the start of the next value and records one
// level of nesting. If enter succeeds, the caller must call leave.
func (d *Decoder) enter() error {
	if err := d.skipSpace(); err != nil {
		return d.readError(err, "expected value")
	}
	if d.depth >= MaxDepth {
		return d.syntaxError(nil, "exceeded maximum nesting depth %d", MaxDepth)
	}
	d.depth++
	return nil
}

func (d *Decoder) leave() { d.depth-- }

// An ArrayAccess provides access to the elements of an array being decoded.
type ArrayAccess struct {
	d    *Decoder
	n    int
	done bool
}

// Next decodes the next element of the array into v, as if by Decode.
// It reports false without error when no elements remain.
func (a *ArrayAccess) Next(v any) (bool, error) {
	if a.done {
		return false, nil
	}
	d := a.d
	if err := d.skipSpace(); err != nil {
		return false, d.readError(err, `expected value or "]"`)
	}
	b, _ := d.in.peek()
	if b == ']' {
		d.in.advance()
		a.done = true
		return false, nil
	}
	if a.n > 0 {
		if b != ',' {
			return false, d.syntaxError(nil, "%s", tokLabel([]Token{Comma, RSquare}, describe(b)))
		}
		d.in.advance()
		if err := d.skipSpace(); err != nil {
			return false, d.readError(err, "expected value")
		} else if b, _ := d.in.peek(); b == ']' {
			return false, d.syntaxError(nil, "unexpected %s after %s", RSquare, Comma)
		}
	}
	a.n++
	return true, d.Decode(v)
}

// Len reports the number of elements decoded so far.
func (a *ArrayAccess) Len() int { return a.n }

func (a *ArrayAccess) finish() error {
	for {
		ok, err := a.Next(nil)
		if err != nil || !ok {
			return err
		}
	}
}

// An ObjectAccess provides access to the members of an object being decoded.
// Each call to NextKey that reports true must be followed by a call to Value
// before the next call to NextKey; if it is not, the value is discarded.
type ObjectAccess struct {
	d       *Decoder
	n       int
	done    bool
	pending bool // a key has been read, but not its value
}

// NextKey decodes the key of the next member into k, as if by Decode.
// It reports false without error when no members remain. The value is not
// read until Value is called, so an error reported between NextKey and Value
// is located immediately after the key.
func (o *ObjectAccess) NextKey(k any) (bool, error) {
	if o.done {
		return false, nil
	}
	if o.pending {
		if err := o.Value(nil); err != nil {
			return false, err
		}
	}
	d := o.d
	if err := d.skipSpace(); err != nil {
		return false, d.readError(err, `expected string or "}"`)
	}
	b, _ := d.in.peek()
	if b == '}' {
		d.in.advance()
		o.done = true
		return false, nil
	}
	if o.n > 0 {
		if b != ',' {
			return false, d.syntaxError(nil, "%s", tokLabel([]Token{Comma, RBrace}, describe(b)))
		}
		d.in.advance()
		if err := d.skipSpace(); err != nil {
			return false, d.readError(err, "expected string")
		}
		b, _ = d.in.peek()
		if b == '}' {
			return false, d.syntaxError(nil, "unexpected %s after %s", RBrace, Comma)
		}
	}
	if b != '"' {
		want := []Token{String}
		if o.n == 0 {
			want = append(want, RBrace)
		}
		return false, d.syntaxError(nil, "%s", tokLabel(want, describe(b)))
	}
	o.n++
	o.pending = true
	return true, d.Decode(k)
}

// Value decodes the value of the member whose key was most recently returned
// by NextKey into v, as if by Decode.
func (o *ObjectAccess) Value(v any) error {
	if !o.pending {
		return errors.New("no object key is pending")
	}
	o.pending = false
	d := o.d
	if err := d.skipSpace(); err != nil {
		return d.readError(err, `expected ":"`)
	}
	if b, _ := d.in.peek(); b != ':' {
		return d.syntaxError(nil, "%s", tokLabel([]Token{Colon}, describe(b)))
	}
	d.in.advance()
	return d.Decode(v)
}

// Len reports the number of members whose keys have been decoded so far.
func (o *ObjectAccess) Len() int { return o.n }

func (o *ObjectAccess) finish() error {
	for {
		ok, err := o.NextKey(nil)
		if err != nil || !ok {
			return err
		}
	}
}
