// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jspan

import (
	"fmt"
	"iter"
	"slices"

	"github.com/creachadair/jspan/decode"
	"github.com/creachadair/jspan/internal/track"
	"github.com/creachadair/mds/omap"
)

// A Map is an ordered collection of values of type V indexed by string keys.
// Each key records the span of its text in the input.
//
// A Map keeps its members either in the order they were added (the default),
// or in order by key. The choice is made when the map is created and does not
// change. The zero value is an empty map in insertion order, ready for use.
type Map[V any] struct {
	sorted bool
	list   []*member[V]                 // insertion order
	index  map[string]*member[V]        // by key
	order  omap.Map[string, *member[V]] // by key, if sorted
}

type member[V any] struct {
	key Spanned[string]
	val V
}

// NewMap constructs an empty Map that keeps its members in insertion order.
func NewMap[V any]() *Map[V] { return new(Map[V]) }

// NewSortedMap constructs an empty Map that keeps its members in order by key.
func NewSortedMap[V any]() *Map[V] {
	return &Map[V]{sorted: true, order: omap.New[string, *member[V]]()}
}

// Sorted reports whether m keeps its members in order by key.
func (m *Map[V]) Sorted() bool { return m.sorted }

// Len reports the number of members in m.
func (m *Map[V]) Len() int { return len(m.index) }

// Get returns the value for key and reports whether it is present.
func (m *Map[V]) Get(key string) (V, bool) {
	if e, ok := m.index[key]; ok {
		return e.val, true
	}
	var zero V
	return zero, false
}

// GetKey returns the spanned key matching key, and reports whether it is
// present.
func (m *Map[V]) GetKey(key string) (Spanned[string], bool) {
	if e, ok := m.index[key]; ok {
		return e.key, true
	}
	return Spanned[string]{}, false
}

// Lookup returns a pointer to the value for key, or nil if key is not
// present. The pointer remains valid until key is deleted.
func (m *Map[V]) Lookup(key string) *V {
	if e, ok := m.index[key]; ok {
		return &e.val
	}
	return nil
}

// Has reports whether key is present in m.
func (m *Map[V]) Has(key string) bool { _, ok := m.index[key]; return ok }

// Set sets the value for key.Value to val, and reports whether the key was
// newly added. If the key was already present, its position is unchanged but
// its span is replaced by that of key.
func (m *Map[V]) Set(key Spanned[string], val V) bool {
	if e, ok := m.index[key.Value]; ok {
		e.key, e.val = key, val
		return false
	}
	if m.index == nil {
		m.index = make(map[string]*member[V])
	}
	e := &member[V]{key: key, val: val}
	m.index[key.Value] = e
	if m.sorted {
		m.order.Set(key.Value, e)
	} else {
		m.list = append(m.list, e)
	}
	return true
}

// Delete removes key from m, and reports whether it was present.
func (m *Map[V]) Delete(key string) bool {
	e, ok := m.index[key]
	if !ok {
		return false
	}
	delete(m.index, key)
	if m.sorted {
		m.order.Delete(key)
	} else {
		m.list = slices.DeleteFunc(m.list, func(x *member[V]) bool { return x == e })
	}
	return true
}

// Clear removes all the members of m.
func (m *Map[V]) Clear() {
	clear(m.index)
	if m.sorted {
		m.order.Clear()
	} else {
		m.list = nil
	}
}

// All is a range function over the keys and values of m, in order.
func (m *Map[V]) All() iter.Seq2[Spanned[string], V] {
	return func(yield func(Spanned[string], V) bool) {
		for e := range m.members() {
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}

// Keys is a range function over the keys of m, in order.
func (m *Map[V]) Keys() iter.Seq[Spanned[string]] {
	return func(yield func(Spanned[string]) bool) {
		for e := range m.members() {
			if !yield(e.key) {
				return
			}
		}
	}
}

// Values is a range function over the values of m, in order.
func (m *Map[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for e := range m.members() {
			if !yield(e.val) {
				return
			}
		}
	}
}

func (m *Map[V]) members() iter.Seq[*member[V]] {
	if !m.sorted {
		return slices.Values(m.list)
	}
	return func(yield func(*member[V]) bool) {
		for it := m.order.First(); it.IsValid(); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// DecodeJSON implements the decode.Unmarshaler interface. The value must be
// a JSON object. If d reads from a tracking source, its settings determine
// the order of the map and whether duplicate keys are allowed. Members
// already in m are discarded.
func (m *Map[V]) DecodeJSON(d *decode.Decoder) error {
	return d.DecodeAny(mapVisitor[V]{Expecting: "a JSON object", m: m, opts: optionsOf(d)})
}

type mapVisitor[V any] struct {
	decode.Expecting
	m    *Map[V]
	opts track.Options
}

func (v mapVisitor[V]) VisitObject(o *decode.ObjectAccess) error {
	if v.opts.SortKeys {
		*v.m = *NewSortedMap[V]()
	} else {
		*v.m = Map[V]{}
	}
	return v.m.decodeMembers(o, v.opts.DuplicateKeys)
}

// decodeMembers decodes the members of o into m. Unless dupOK is true, a key
// that is already present is an error, reported before its value is read.
func (m *Map[V]) decodeMembers(o *decode.ObjectAccess, dupOK bool) error {
	for {
		var key Spanned[string]
		ok, err := o.NextKey(&key)
		if err != nil {
			return err
		} else if !ok {
			return nil
		}
		if !dupOK && m.Has(key.Value) {
			return fmt.Errorf("%w %q", ErrDuplicateKey, key.Value)
		}
		var val V
		if err := o.Value(&val); err != nil {
			return err
		}
		m.Set(key, val)
	}
}
