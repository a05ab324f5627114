// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jspan

import (
	"errors"
	"fmt"

	"github.com/creachadair/jspan/jpath"
)

// Pointer returns the value within root selected by the JSON Pointer path
// (RFC 6901), or nil if path is not a valid pointer or selects no value.
// The empty path selects root itself.
//
// A token selects the member of an object with that key, or the element of
// an array at that offset. An array offset must be a decimal integer without
// sign or leading zeros, and in range. Any token applied to a scalar selects
// nothing.
//
// The result points into root, and may be used to modify it.
func Pointer(root *Spanned[Value], path string) *Spanned[Value] {
	p, err := jpath.ParsePointer(path)
	if err != nil || root == nil {
		return nil
	}
	cur := root
	for _, tok := range p {
		switch cur.Value.Kind() {
		case KindObject:
			cur = cur.Value.obj.Lookup(tok)
		case KindArray:
			i, ok := jpath.ArrayIndex(tok)
			if !ok || i >= len(cur.Value.arr) {
				return nil
			}
			cur = &cur.Value.arr[i]
		default:
			return nil
		}
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Lookup returns a copy of the value within root selected by path, and
// reports whether it was found. See Pointer.
func Lookup(root Spanned[Value], path string) (Spanned[Value], bool) {
	if v := Pointer(&root, path); v != nil {
		return *v, true
	}
	return Spanned[Value]{}, false
}

// Query returns the values within root selected by the JSONPath expression
// expr, in document order. Each result points into root.
//
// Member names, wildcards, recursive descent, index lists, and slices are
// supported. Filter and script expressions are not, and report an error.
// A query that selects nothing returns an empty result without error.
func Query(root *Spanned[Value], expr string) ([]*Spanned[Value], error) {
	e, err := jpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	} else if root == nil {
		return nil, nil
	}
	cur := []*Spanned[Value]{root}
	for _, step := range e {
		var next []*Spanned[Value]
		for _, v := range cur {
			out, err := applyStep(step, v)
			if err != nil {
				return nil, fmt.Errorf("step %s: %w", step, err)
			}
			next = append(next, out...)
		}
		cur = next
	}
	return cur, nil
}

var errUnsupported = errors.New("unsupported expression")

func applyStep(step jpath.Step, v *Spanned[Value]) ([]*Spanned[Value], error) {
	switch step.Op {
	case jpath.Member:
		return members(step, v), nil

	case jpath.Recur:
		var out []*Spanned[Value]
		stk := []*Spanned[Value]{v}
		for len(stk) != 0 {
			next := stk[len(stk)-1]
			stk = stk[:len(stk)-1]
			out = append(out, members(step, next)...)

			// Push in reverse order, so we visit in lexical order.
			kids := children(next)
			for i := len(kids) - 1; i >= 0; i-- {
				stk = append(stk, kids[i])
			}
		}
		return out, nil

	case jpath.Index:
		arr, ok := v.Value.AsArray()
		if !ok {
			return nil, nil
		}
		var out []*Spanned[Value]
		for _, off := range step.Offsets {
			if i, ok := fixArrayBound(len(arr), off); ok {
				out = append(out, &arr[i])
			}
		}
		return out, nil

	case jpath.Slice:
		arr, ok := v.Value.AsArray()
		if !ok {
			return nil, nil
		}
		lo, hi := step.Range(len(arr))
		out := make([]*Spanned[Value], 0, hi-lo)
		for i := lo; i < hi; i++ {
			out = append(out, &arr[i])
		}
		return out, nil
	}
	return nil, errUnsupported
}

// members returns the values of v selected by a named or wildcard step.
func members(step jpath.Step, v *Spanned[Value]) []*Spanned[Value] {
	if step.Wildcard {
		return children(v)
	}
	if obj, ok := v.Value.AsObject(); ok {
		if p := obj.Lookup(step.Name); p != nil {
			return []*Spanned[Value]{p}
		}
	}
	return nil
}

// children returns the elements of an array or the member values of an
// object, in order.
func children(v *Spanned[Value]) []*Spanned[Value] {
	var out []*Spanned[Value]
	switch v.Value.Kind() {
	case KindArray:
		for i := range v.Value.arr {
			out = append(out, &v.Value.arr[i])
		}
	case KindObject:
		for key := range v.Value.obj.Keys() {
			out = append(out, v.Value.obj.Lookup(key.Value))
		}
	}
	return out
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
