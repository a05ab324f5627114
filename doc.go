// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jspan decodes JSON values together with the spans of the input
// from which they were decoded.
//
// # Decoding
//
// Decode reads a single value of any type the decode package supports. Any
// field of type Spanned[V] records the half-open byte range [Pos, End) of the
// text of its value, so that Span.Slice recovers the text exactly as written:
//
//	type Config struct {
//	   Name  jspan.Spanned[string] `json:"name"`
//	   Ports []jspan.Spanned[int]  `json:"ports"`
//	}
//	cfg, err := jspan.Decode[Config](data, jspan.Settings{})
//	if err != nil {
//	   log.Fatalf("Decode: %v", err)
//	}
//	log.Printf("name is at %v: %s", cfg.Name.Span, cfg.Name.Slice(data))
//
// When no schema is known, decode a Spanned[Value], a tree in which every
// element and member is spanned:
//
//	root, err := jspan.Decode[jspan.Spanned[jspan.Value]](data, jspan.Settings{})
//
// Values within the tree can be found with a JSON Pointer or a JSONPath
// query:
//
//	v := jspan.Pointer(&root, "/servers/0/host")
//	vs, err := jspan.Query(&root, "$..host")
//
// # Settings
//
// The zero Settings accept strict JSON. Settings may also permit comments,
// trailing commas, and duplicate object keys, none of which disturb the
// offsets of the values that are decoded. Comments and trailing commas are
// replaced by whitespace in the byte stream seen by the decoder.
//
// # Errors
//
// Decoding errors have concrete type *Error, which records the byte offset of
// the error in the input and wraps the error reported by the decoder. Use
// OffsetWithin to find the offset of a decoder error in some other text.
//
// # Streams
//
// A Stream decodes a sequence of values from one input:
//
//	s := jspan.NewStream[jspan.Spanned[int]](data, jspan.Settings{})
//	for v, err := range s.All() {
//	   if err != nil {
//	      log.Fatalf("Next: %v", err)
//	   }
//	   log.Printf("%d at %v", v.Value, v.Span)
//	}
package jspan
