// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jspan

import (
	"strings"

	"github.com/creachadair/jspan/decode"
	"github.com/creachadair/jspan/internal/escape"
	"go4.org/mem"
)

// A Number is the text of a JSON number as written in the input.
type Number = decode.Number

// Kind identifies the type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindStr = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid"
	}
	return kindStr[k]
}

// A Value is an arbitrary JSON value. The zero Value is null.
//
// The elements of an array and the members of an object are spanned, so a
// Value decoded from source records the location of each value it contains.
type Value struct {
	kind Kind
	b    bool
	text string // number text, or string content
	arr  []Spanned[Value]
	obj  *Map[Spanned[Value]]
}

// NullValue returns a null Value.
func NullValue() Value { return Value{} }

// BoolValue returns a Value for b.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue returns a Value for n.
func NumberValue(n Number) Value { return Value{kind: KindNumber, text: string(n)} }

// StringValue returns a Value for s.
func StringValue(s string) Value { return Value{kind: KindString, text: s} }

// ArrayValue returns an array Value with the given elements.
func ArrayValue(elts ...Spanned[Value]) Value {
	if elts == nil {
		elts = []Spanned[Value]{}
	}
	return Value{kind: KindArray, arr: elts}
}

// ObjectValue returns an object Value with the members of m.
// If m == nil, the object is empty.
func ObjectValue(m *Map[Spanned[Value]]) Value {
	if m == nil {
		m = NewMap[Spanned[Value]]()
	}
	return Value{kind: KindObject, obj: m}
}

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsArray() bool  { return v.kind == KindArray }
func (v Value) IsObject() bool { return v.kind == KindObject }

// AsBool returns the value of a bool, and reports whether v is a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the text of a number, and reports whether v is a number.
func (v Value) AsNumber() (Number, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return Number(v.text), true
}

// AsString returns the content of a string, and reports whether v is a
// string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// AsArray returns the elements of an array, and reports whether v is an
// array. The caller may modify the elements in place.
func (v Value) AsArray() ([]Spanned[Value], bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsObject returns the members of an object, and reports whether v is an
// object.
func (v Value) AsObject() (*Map[Spanned[Value]], bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// JSON returns the compact JSON encoding of v.
func (v Value) JSON() string {
	var buf strings.Builder
	v.encode(&buf, -1)
	return buf.String()
}

// maxElide is the number of elements beyond which String abbreviates a
// container.
const maxElide = 32

// String returns a JSON representation of v in which any array or object
// with more than 32 elements is abbreviated to "[...]" or "{...}".
func (v Value) String() string {
	var buf strings.Builder
	v.encode(&buf, maxElide)
	return buf.String()
}

// encode writes the encoding of v to buf. If limit >= 0, containers with
// more than limit elements are abbreviated.
func (v Value) encode(buf *strings.Builder, limit int) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(v.text)
	case KindString:
		buf.Write(escape.AppendQuote(nil, mem.S(v.text)))
	case KindArray:
		if limit >= 0 && len(v.arr) > limit {
			buf.WriteString("[...]")
			return
		}
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			e.Value.encode(buf, limit)
		}
		buf.WriteByte(']')
	case KindObject:
		if limit >= 0 && v.obj.Len() > limit {
			buf.WriteString("{...}")
			return
		}
		buf.WriteByte('{')
		i := 0
		for key, val := range v.obj.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			buf.Write(escape.AppendQuote(nil, mem.S(key.Value)))
			buf.WriteByte(':')
			val.Value.encode(buf, limit)
		}
		buf.WriteByte('}')
	}
}

// DecodeJSON implements the decode.Unmarshaler interface.
func (v *Value) DecodeJSON(d *decode.Decoder) error {
	return d.DecodeAny(&valueVisitor{v: v, d: d})
}

type valueVisitor struct {
	v *Value
	d *decode.Decoder
}

func (vv *valueVisitor) VisitNull() error           { *vv.v = NullValue(); return nil }
func (vv *valueVisitor) VisitBool(b bool) error     { *vv.v = BoolValue(b); return nil }
func (vv *valueVisitor) VisitNumber(n Number) error { *vv.v = NumberValue(n); return nil }
func (vv *valueVisitor) VisitString(s string) error { *vv.v = StringValue(s); return nil }

func (vv *valueVisitor) VisitArray(a *decode.ArrayAccess) error {
	elts := []Spanned[Value]{}
	for {
		var e Spanned[Value]
		ok, err := a.Next(&e)
		if err != nil {
			return err
		} else if !ok {
			break
		}
		elts = append(elts, e)
	}
	*vv.v = ArrayValue(elts...)
	return nil
}

func (vv *valueVisitor) VisitObject(o *decode.ObjectAccess) error {
	opts := optionsOf(vv.d)
	m := NewMap[Spanned[Value]]()
	if opts.SortKeys {
		m = NewSortedMap[Spanned[Value]]()
	}
	if err := m.decodeMembers(o, opts.DuplicateKeys); err != nil {
		return err
	}
	*vv.v = ObjectValue(m)
	return nil
}

// AsSpanNull reports whether s is null, and if so returns its span.
func AsSpanNull(s Spanned[Value]) (Spanned[struct{}], bool) {
	return Spanned[struct{}]{Span: s.Span}, s.Value.IsNull()
}

// AsSpanBool returns the value of a spanned bool, with its span.
func AsSpanBool(s Spanned[Value]) (Spanned[bool], bool) {
	b, ok := s.Value.AsBool()
	return Spanned[bool]{Span: s.Span, Value: b}, ok
}

// AsSpanNumber returns the value of a spanned number, with its span.
func AsSpanNumber(s Spanned[Value]) (Spanned[Number], bool) {
	n, ok := s.Value.AsNumber()
	return Spanned[Number]{Span: s.Span, Value: n}, ok
}

// AsSpanString returns the value of a spanned string, with its span.
func AsSpanString(s Spanned[Value]) (Spanned[string], bool) {
	str, ok := s.Value.AsString()
	return Spanned[string]{Span: s.Span, Value: str}, ok
}

// AsSpanArray returns the elements of a spanned array, with its span.
func AsSpanArray(s Spanned[Value]) (Spanned[[]Spanned[Value]], bool) {
	a, ok := s.Value.AsArray()
	return Spanned[[]Spanned[Value]]{Span: s.Span, Value: a}, ok
}

// AsSpanObject returns the members of a spanned object, with its span.
func AsSpanObject(s Spanned[Value]) (Spanned[*Map[Spanned[Value]]], bool) {
	m, ok := s.Value.AsObject()
	return Spanned[*Map[Spanned[Value]]]{Span: s.Span, Value: m}, ok
}
