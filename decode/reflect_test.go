// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package decode_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/creachadair/jspan/decode"
	"github.com/google/go-cmp/cmp"
)

type Base struct {
	ID   int    `json:"id"`
	Note string `json:"note"`
}

type Record struct {
	Base
	Name    string         `json:"name"`
	Tags    []string       `json:"tags"`
	Pair    [2]int         `json:"pair"`
	Attrs   map[string]any `json:"attrs"`
	Next    *Record        `json:"next"`
	Size    decode.Number  `json:"size"`
	Ratio   float64        `json:"ratio"`
	Flag    bool           `json:"flag"`
	Count   uint8          `json:"count"`
	Skipped string         `json:"-"`
	Plain   int
	Labels  map[string]string `json:"labels"`

	hidden int
}

// upper decodes a string and records it in upper case.
type upper string

func (u *upper) DecodeJSON(d *decode.Decoder) error {
	var s string
	if err := d.Decode(&s); err != nil {
		return err
	}
	*u = upper(strings.ToUpper(s))
	return nil
}

func TestUnmarshal(t *testing.T) {
	const input = `{
  "id": 7, "note": "embedded",
  "name": "top",
  "tags": ["a", "b"],
  "pair": [1, 2, 3],
  "attrs": {"x": [1, true, null], "y": {"z": "w"}},
  "next": {"name": "inner", "next": null, "pair": [9]},
  "size": 1.50e10,
  "ratio": -0.25,
  "flag": true,
  "count": 255,
  "-": "not skipped by name",
  "Skipped": "ignored",
  "PLAIN": 3,
  "labels": {"k": "v"},
  "hidden": 1,
  "unknown": {"deep": [1, 2, {"x": null}]}
}`
	var got Record
	got.Tags = []string{"stale"}
	if err := decode.Unmarshal([]byte(input), &got); err != nil {
		t.Fatalf("Unmarshal: unexpected error: %v", err)
	}
	want := Record{
		Base:  Base{ID: 7, Note: "embedded"},
		Name:  "top",
		Tags:  []string{"a", "b"},
		Pair:  [2]int{1, 2},
		Attrs: map[string]any{
			"x": []any{decode.Number("1"), true, nil},
			"y": map[string]any{"z": "w"},
		},
		Next:   &Record{Name: "inner", Pair: [2]int{9, 0}},
		Size:   "1.50e10",
		Ratio:  -0.25,
		Flag:   true,
		Count:  255,
		Plain:  3,
		Labels: map[string]string{"k": "v"},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Record{})); diff != "" {
		t.Errorf("Unmarshal (-want, +got):\n%s", diff)
	}
}

func TestUnmarshalScalars(t *testing.T) {
	t.Run("Pointers", func(t *testing.T) {
		var p **int
		if err := decode.Unmarshal([]byte("12"), &p); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		} else if p == nil || *p == nil || **p != 12 {
			t.Fatalf("Unmarshal: got %v, want pointer to 12", p)
		}
		if err := decode.Unmarshal([]byte("null"), &p); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		} else if p != nil {
			t.Errorf("Unmarshal null: got %v, want nil", p)
		}
	})
	t.Run("Unmarshaler", func(t *testing.T) {
		var got []upper
		if err := decode.Unmarshal([]byte(`["a", "bc"]`), &got); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if diff := cmp.Diff([]upper{"A", "BC"}, got); diff != "" {
			t.Errorf("Unmarshal (-want, +got):\n%s", diff)
		}
	})
	t.Run("NullLeavesScalars", func(t *testing.T) {
		v := struct{ A int }{A: 5}
		if err := decode.Unmarshal([]byte(`{"A": null}`), &v); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		} else if v.A != 5 {
			t.Errorf("Unmarshal: got %d, want 5", v.A)
		}
	})
	t.Run("EmptySlice", func(t *testing.T) {
		var v []int
		if err := decode.Unmarshal([]byte(`[]`), &v); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		} else if v == nil || len(v) != 0 {
			t.Errorf("Unmarshal: got %#v, want empty slice", v)
		}
	})
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		input string
		dst   any
		pos   string
	}{
		{`"x"`, new(int), "1:3"},
		{`1`, new(string), "1:1"},
		{`true`, new([]int), "1:4"},
		{`{"a": 1}`, new([]int), "1:1"},
		{`[1]`, new(map[string]int), "1:1"},
		{`{"a": "b"}`, new(struct{ A int }), "1:9"},
		{`[1, "2"]`, new([]int), "1:7"},
		{`256`, new(uint8), "1:3"},
		{`-1`, new(uint), "1:2"},
		{`1.5`, new(int), "1:3"},
		{`1e400`, new(float64), "1:5"},
		{`"1"`, new(decode.Number), "1:3"},
		{`{}`, new(map[int]int), "1:1"},
	}
	for _, test := range tests {
		err := decode.Unmarshal([]byte(test.input), test.dst)
		var ve *decode.ValueError
		if !errors.As(err, &ve) {
			t.Errorf("Unmarshal %q into %T: got %v, want *ValueError", test.input, test.dst, err)
			continue
		}
		if got := ve.Location.String(); got != test.pos {
			t.Errorf("Unmarshal %q into %T: error at %s, want %s (%v)", test.input, test.dst, got, test.pos, err)
		}
	}

	t.Run("NonPointer", func(t *testing.T) {
		var v int
		if err := decode.Unmarshal([]byte("1"), v); err == nil {
			t.Error("Unmarshal into non-pointer: got nil, want error")
		}
		if err := decode.Unmarshal([]byte("1"), (*int)(nil)); err == nil {
			t.Error("Unmarshal into nil pointer: got nil, want error")
		}
	})
	t.Run("Range", func(t *testing.T) {
		err := decode.Unmarshal([]byte("300"), new(int8))
		if !errors.Is(err, strconv.ErrRange) {
			t.Errorf("Unmarshal: got %v, want %v", err, strconv.ErrRange)
		}
	})
}
