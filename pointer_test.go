// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jspan_test

import (
	"testing"

	"github.com/creachadair/jspan"
	"github.com/google/go-cmp/cmp"
)

func TestPointer(t *testing.T) {
	const input = `{"a": {"b": [0, [0, 1, {"c": "value"}]]}}`
	src := []byte(input)
	root := mustDecode(t, input, jspan.Settings{})

	tests := []struct {
		path string
		span jspan.Span
		text string
	}{
		{"", jspan.Span{Pos: 0, End: 41}, input},
		{"/a", jspan.Span{Pos: 6, End: 40}, `{"b": [0, [0, 1, {"c": "value"}]]}`},
		{"/a/b", jspan.Span{Pos: 12, End: 39}, `[0, [0, 1, {"c": "value"}]]`},
		{"/a/b/0", jspan.Span{Pos: 13, End: 14}, `0`},
		{"/a/b/1", jspan.Span{Pos: 16, End: 38}, `[0, 1, {"c": "value"}]`},
		{"/a/b/1/1", jspan.Span{Pos: 20, End: 21}, `1`},
		{"/a/b/1/2", jspan.Span{Pos: 23, End: 37}, `{"c": "value"}`},
		{"/a/b/1/2/c", jspan.Span{Pos: 29, End: 36}, `"value"`},
	}
	for _, test := range tests {
		v := jspan.Pointer(&root, test.path)
		if v == nil {
			t.Errorf("Pointer %q: not found", test.path)
			continue
		}
		if v.Span != test.span {
			t.Errorf("Pointer %q: span is %v, want %v", test.path, v.Span, test.span)
		}
		if got := string(v.Slice(src)); got != test.text {
			t.Errorf("Pointer %q: text is %q, want %q", test.path, got, test.text)
		}
		if w, ok := jspan.Lookup(root, test.path); !ok || w.Span != v.Span {
			t.Errorf("Lookup %q: got %v, %v; want %v", test.path, w.Span, ok, v.Span)
		}
	}

	misses := []string{
		"a",                         // not a pointer
		"/b",                        // unknown key
		"/a/b/2",                    // out of range
		"/a/b/-",                    // past the end
		"/a/b/-1",                   // negative
		"/a/b/01",                   // leading zero
		"/a/b/+1",                   // sign
		"/a/b/x",                    // non-numeric on an array
		"/a/b/0/0",                  // index on a number
		"/a/b/1/2/c/d",              // key on a string
		"/a/b/1/2/c/0",              // index on a string
		"/a/~1",                     // key "/" is absent
		"/a/b/1/3",                  // out of range
		"/a/b/1/2/c~",               // invalid escape
		"/a/b/1/2/",                 // empty key is absent
		"/a/b/99999999999999999999", // overflow
	}
	for _, path := range misses {
		if v := jspan.Pointer(&root, path); v != nil {
			t.Errorf("Pointer %q: got %v, want nil", path, v)
		}
		if _, ok := jspan.Lookup(root, path); ok {
			t.Errorf("Lookup %q: got true, want false", path)
		}
	}
}

func TestPointerEscapes(t *testing.T) {
	const input = `{"a/b": 1, "m~n": 2, "": 3, " ": 4, "~1": 5}`
	root := mustDecode(t, input, jspan.Settings{})
	tests := []struct {
		path, want string
	}{
		{"/a~1b", "1"},
		{"/m~0n", "2"},
		{"/", "3"},
		{"/ ", "4"},
		{"/~01", "5"},
	}
	for _, test := range tests {
		v := jspan.Pointer(&root, test.path)
		if v == nil {
			t.Errorf("Pointer %q: not found", test.path)
			continue
		}
		if got := v.Value.JSON(); got != test.want {
			t.Errorf("Pointer %q: got %s, want %s", test.path, got, test.want)
		}
	}
}

func TestPointerModify(t *testing.T) {
	root := mustDecode(t, `{"list": [1, 2, 3]}`, jspan.Settings{})
	v := jspan.Pointer(&root, "/list/1")
	if v == nil {
		t.Fatal("Pointer: not found")
	}
	*v = jspan.Wrap(jspan.StringValue("two"))
	if got, want := root.Value.JSON(), `{"list":[1,"two",3]}`; got != want {
		t.Errorf("After update: got %s, want %s", got, want)
	}
}

const storeJSON = `{"store": {
  "book": [
    {"category": "reference", "author": "Nigel Rees", "title": "Sayings of the Century", "price": 8.95},
    {"category": "fiction", "author": "Evelyn Waugh", "title": "Sword of Honour", "price": 12.99},
    {"category": "fiction", "author": "Herman Melville", "title": "Moby Dick", "isbn": "0-553-21311-3", "price": 8.99},
    {"category": "fiction", "author": "J. R. R. Tolkien", "title": "The Lord of the Rings", "isbn": "0-395-19395-8", "price": 22.99}
  ],
  "bicycle": {"color": "red", "price": 19.95}
}}`

func TestQuery(t *testing.T) {
	src := []byte(storeJSON)
	root := mustDecode(t, storeJSON, jspan.Settings{})

	authors := []string{`"Nigel Rees"`, `"Evelyn Waugh"`, `"Herman Melville"`, `"J. R. R. Tolkien"`}
	tests := []struct {
		query string
		want  []string
	}{
		{"$.store.book[*].author", authors},
		{"$..author", authors},
		{"$.store..price", []string{"8.95", "12.99", "8.99", "22.99", "19.95"}},
		{"$..book[2].title", []string{`"Moby Dick"`}},
		{"$..book[-1:].title", []string{`"The Lord of the Rings"`}},
		{"$..book[0,1].author", authors[:2]},
		{"$..book[:2].author", authors[:2]},
		{"$..book[-1,0,9].price", []string{"22.99", "8.95"}},
		{"$.store.bicycle.*", []string{`"red"`, "19.95"}},
		{"$['store']['bicycle']['color']", []string{`"red"`}},
		{"$..isbn", []string{`"0-553-21311-3"`, `"0-395-19395-8"`}},
		{"$.nonesuch", nil},
		{"$.store.book.author", nil},
		{"$.store.bicycle[0]", nil},
	}
	for _, test := range tests {
		vs, err := jspan.Query(&root, test.query)
		if err != nil {
			t.Errorf("Query %q: unexpected error: %v", test.query, err)
			continue
		}
		var got []string
		for _, v := range vs {
			got = append(got, string(v.Slice(src)))
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Query %q: (-want, +got)\n%s", test.query, diff)
		}
	}

	t.Run("Root", func(t *testing.T) {
		vs, err := jspan.Query(&root, "$")
		if err != nil {
			t.Fatalf("Query: unexpected error: %v", err)
		}
		if len(vs) != 1 || vs[0] != &root {
			t.Errorf("Query $: got %v, want root", vs)
		}
	})

	t.Run("Descendants", func(t *testing.T) {
		vs, err := jspan.Query(&root, "$..*")
		if err != nil {
			t.Fatalf("Query: unexpected error: %v", err)
		}
		if len(vs) != 27 {
			t.Errorf("Query $..*: got %d values, want 27", len(vs))
		}
	})

	for _, bad := range []string{"$..book[?(@.isbn)]", "$..book[(@.length-1)]", "store", "$["} {
		if vs, err := jspan.Query(&root, bad); err == nil {
			t.Errorf("Query %q: got %v, want error", bad, vs)
		}
	}
}
