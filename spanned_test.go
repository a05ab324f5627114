// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jspan_test

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/creachadair/jspan"
	"github.com/creachadair/jspan/decode"
	"github.com/google/go-cmp/cmp"
)

func mustDecode(t *testing.T, input string, s jspan.Settings) jspan.Spanned[jspan.Value] {
	t.Helper()
	v, err := jspan.DecodeString[jspan.Spanned[jspan.Value]](input, s)
	if err != nil {
		t.Fatalf("Decode %q: unexpected error: %v", input, err)
	}
	return v
}

// checkSpans verifies that the span of v and of every value within it covers
// exactly the text of that value in src.
func checkSpans(t *testing.T, src []byte, v jspan.Spanned[jspan.Value], s jspan.Settings) {
	t.Helper()
	text := v.Slice(src)
	if !json.Valid(text) {
		t.Errorf("Span %v: text %q is not a valid value", v.Span, text)
		return
	}
	if isSpace(text[0]) || isSpace(text[len(text)-1]) {
		t.Errorf("Span %v: text %q has surrounding space", v.Span, text)
	}
	sub, err := jspan.Decode[jspan.Spanned[jspan.Value]](text, s)
	if err != nil {
		t.Errorf("Span %v: decode %q: %v", v.Span, text, err)
	} else if got, want := sub.Value.JSON(), v.Value.JSON(); got != want {
		t.Errorf("Span %v: text decodes to %s, want %s", v.Span, got, want)
	}

	switch v.Value.Kind() {
	case jspan.KindArray:
		elts, _ := v.Value.AsArray()
		for _, e := range elts {
			checkSpans(t, src, e, s)
		}
	case jspan.KindObject:
		m, _ := v.Value.AsObject()
		for key, val := range m.All() {
			if got, want := string(key.Slice(src)), strconv.Quote(key.Value); got != want {
				t.Errorf("Key span %v: got %q, want %q", key.Span, got, want)
			}
			checkSpans(t, src, val, s)
		}
	}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func TestSpans(t *testing.T) {
	tests := []string{
		`null`, `true`, `false`, `0`, `-12.5e3`, `""`, `"a\"b\\c"`, `[]`, `{}`,
		`  15  `,
		"\n\t[ 1 ,2,\n3 ]\r\n",
		`{"a": {"b": [0, [0, 1, {"c": "value"}]]}}`,
		`{
  "name": "x",
  "n": -12.5e3,
  "ok": true,
  "list": [1, null, false, "s", [], {}, [[-0.5]]],
  "nested" : { "a" :[0] , "b":{"c":{}}},
  "esc": "é😀\n"
}`,
	}
	for _, input := range tests {
		v := mustDecode(t, input, jspan.Settings{})
		checkSpans(t, []byte(input), v, jspan.Settings{})
	}
}

func TestSpanBoundaries(t *testing.T) {
	tests := []struct {
		input string
		want  jspan.Span
	}{
		{`null`, jspan.Span{Pos: 0, End: 4}},
		{` true `, jspan.Span{Pos: 1, End: 5}},
		{`false`, jspan.Span{Pos: 0, End: 5}},
		{`"xyz"  `, jspan.Span{Pos: 0, End: 5}},
		{`  [1, 2]`, jspan.Span{Pos: 2, End: 8}},
		{"{}\n", jspan.Span{Pos: 0, End: 2}},
		{`7`, jspan.Span{Pos: 0, End: 1}},
		{`-7.5e+3 `, jspan.Span{Pos: 0, End: 7}},
		{"\n\n123\n", jspan.Span{Pos: 2, End: 5}},
	}
	for _, test := range tests {
		v := mustDecode(t, test.input, jspan.Settings{})
		if v.Span != test.want {
			t.Errorf("Decode %q: span is %v, want %v", test.input, v.Span, test.want)
		}
	}
}

type point struct {
	X   jspan.Spanned[int]     `json:"x"`
	Y   jspan.Spanned[float64] `json:"y"`
	Tag jspan.Spanned[string]  `json:"tag"`
}

func TestStructFields(t *testing.T) {
	const input = `{"x": 10, "y":2.5 , "tag" : "hi"}`
	got, err := jspan.DecodeString[point](input, jspan.Settings{})
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	want := point{
		X:   jspan.Spanned[int]{Span: jspan.Span{Pos: 6, End: 8}, Value: 10},
		Y:   jspan.Spanned[float64]{Span: jspan.Span{Pos: 14, End: 17}, Value: 2.5},
		Tag: jspan.Spanned[string]{Span: jspan.Span{Pos: 28, End: 32}, Value: "hi"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode (-want, +got):\n%s", diff)
	}
}

// embedded decodes a JSON string whose content is itself a JSON document,
// with an independent decode.
type embedded struct {
	Inner jspan.Spanned[jspan.Value]
}

func (e *embedded) DecodeJSON(d *decode.Decoder) error {
	var s string
	if err := d.Decode(&s); err != nil {
		return err
	}
	v, err := jspan.DecodeString[jspan.Spanned[jspan.Value]](s, jspan.Settings{})
	if err != nil {
		return err
	}
	e.Inner = v
	return nil
}

type outer struct {
	Before jspan.Spanned[int]      `json:"before"`
	Doc    jspan.Spanned[embedded] `json:"doc"`
	After  jspan.Spanned[bool]     `json:"after"`
}

func TestNestedDecode(t *testing.T) {
	const input = `{"before": 1, "doc": "[10, 20]", "after": true}`
	got, err := jspan.DecodeString[outer](input, jspan.Settings{})
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	checkSpan := func(name string, got, want jspan.Span) {
		t.Helper()
		if got != want {
			t.Errorf("%s: span is %v, want %v", name, got, want)
		}
	}
	checkSpan("before", got.Before.Span, jspan.Span{Pos: 11, End: 12})
	checkSpan("doc", got.Doc.Span, jspan.Span{Pos: 21, End: 31})
	checkSpan("after", got.After.Span, jspan.Span{Pos: 42, End: 46})

	inner := got.Doc.Value.Inner
	checkSpan("inner", inner.Span, jspan.Span{Pos: 0, End: 8})
	if v := jspan.Pointer(&inner, "/1"); v == nil {
		t.Error("Pointer /1: not found")
	} else {
		checkSpan("inner/1", v.Span, jspan.Span{Pos: 5, End: 7})
	}

	t.Run("Error", func(t *testing.T) {
		const input = `{"doc": "[1,"}`
		_, err := jspan.DecodeString[outer](input, jspan.Settings{})
		var je *jspan.Error
		if !errors.As(err, &je) {
			t.Fatalf("Decode: got %v, want *jspan.Error", err)
		}
		if je.Offset != 13 {
			t.Errorf("Error offset: got %d, want 13", je.Offset)
		}
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("Decode: got %v, want %v", err, io.ErrUnexpectedEOF)
		}
	})
}

func TestNoTracker(t *testing.T) {
	// Decoding by some other means yields empty spans.
	var v jspan.Spanned[jspan.Value]
	if err := decode.Unmarshal([]byte(`  [1, {"a": "b"}]`), &v); err != nil {
		t.Fatalf("Unmarshal: unexpected error: %v", err)
	}
	if v.Span != (jspan.Span{}) {
		t.Errorf("Span: got %v, want empty", v.Span)
	}
	if got, want := v.Value.JSON(), `[1,{"a":"b"}]`; got != want {
		t.Errorf("Value: got %s, want %s", got, want)
	}
	if a := jspan.Pointer(&v, "/1/a"); a == nil || a.Span != (jspan.Span{}) {
		t.Errorf("Pointer /1/a: got %+v, want empty span", a)
	}
}

func TestSpannedHelpers(t *testing.T) {
	a := jspan.Spanned[int]{Span: jspan.Span{Pos: 1, End: 2}, Value: 5}
	b := jspan.Wrap(5)
	if b.Span != (jspan.Span{}) {
		t.Errorf("Wrap: span is %v, want empty", b.Span)
	}
	if !jspan.Equal(a, b) {
		t.Errorf("Equal(%v, %v): got false, want true", a, b)
	}
	if got := jspan.Compare(a, jspan.Wrap(7)); got >= 0 {
		t.Errorf("Compare(5, 7): got %d, want < 0", got)
	}
	if a.Get() != 5 || a.Key() != 5 {
		t.Errorf("Get/Key: got %d, %d, want 5", a.Get(), a.Key())
	}

	// Keys forward to the value, so spans do not split map entries.
	counts := make(map[int]int)
	for _, s := range []jspan.Spanned[int]{a, b, jspan.Wrap(7)} {
		counts[s.Key()]++
	}
	if diff := cmp.Diff(map[int]int{5: 2, 7: 1}, counts); diff != "" {
		t.Errorf("Counts (-want, +got):\n%s", diff)
	}
}
