// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package decode

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Unmarshal decodes a single JSON value from data into v. It is an error if
// data contains anything other than whitespace after the value.
//
// If v implements Unmarshaler, it decodes itself. Otherwise v must be a
// non-nil pointer to one of:
//
//   - bool, any integer or floating-point type, string, or Number
//   - a slice or array of a supported type
//   - a map with string keys and values of a supported type
//   - a struct whose exported fields have supported types
//   - a pointer to a supported type
//   - an empty interface, which receives nil, bool, Number, string, []any, or
//     map[string]any
//
// Struct fields are matched to object keys by the name given in a "json"
// field tag, or by the field name. An exact match is preferred, otherwise the
// match is case-insensitive. Keys with no matching field are skipped.
// Values of any type whose pointer implements Unmarshaler decode themselves.
func Unmarshal(data []byte, v any) error {
	d := NewDecoder(bytes.NewReader(data))
	if err := d.Decode(v); err != nil {
		return err
	}
	return d.End()
}

var (
	unmarshalerType = reflect.TypeFor[Unmarshaler]()
	numberType      = reflect.TypeFor[Number]()
)

// decodeReflect decodes the next value into the location v points to.
// Precondition: v is not an Unmarshaler.
func (d *Decoder) decodeReflect(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("cannot decode into non-pointer %T", v)
	}
	return d.decodeValue(rv.Elem())
}

// decodeValue decodes the next value into rv, which must be settable.
func (d *Decoder) decodeValue(rv reflect.Value) error {
	if rv.CanAddr() && rv.Addr().Type().Implements(unmarshalerType) {
		return d.Decode(rv.Addr().Interface())
	}
	switch rv.Kind() {
	case reflect.Pointer:
		if b, _ := d.in.peek(); b == 'n' {
			if err := d.scanConstant(Null); err != nil {
				return err
			}
			rv.SetZero()
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return d.decodeValue(rv.Elem())

	case reflect.Interface:
		if rv.NumMethod() == 0 {
			var av anyVisitor
			if err := d.DecodeAny(&av); err != nil {
				return err
			}
			if av.v == nil {
				rv.SetZero()
			} else {
				rv.Set(reflect.ValueOf(av.v))
			}
			return nil
		}
	}
	return d.DecodeAny(reflectVisitor{rv: rv})
}

// reflectVisitor decodes values into a Go value by reflection.
type reflectVisitor struct{ rv reflect.Value }

func (r reflectVisitor) mismatch(got string) error {
	return &TypeError{Got: got, Want: "Go value of type " + r.rv.Type().String()}
}

func (r reflectVisitor) VisitNull() error {
	switch r.rv.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
		r.rv.SetZero()
	}
	return nil
}

func (r reflectVisitor) VisitBool(b bool) error {
	if r.rv.Kind() != reflect.Bool {
		return r.mismatch("boolean")
	}
	r.rv.SetBool(b)
	return nil
}

func (r reflectVisitor) VisitNumber(n Number) error {
	rv := r.rv
	if rv.Type() == numberType {
		rv.SetString(string(n))
		return nil
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		z, err := strconv.ParseInt(string(n), 10, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("number %s: %w", n, errors.Unwrap(err))
		}
		rv.SetInt(z)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		z, err := strconv.ParseUint(string(n), 10, rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("number %s: %w", n, errors.Unwrap(err))
		}
		rv.SetUint(z)
	case reflect.Float32, reflect.Float64:
		z, err := strconv.ParseFloat(string(n), rv.Type().Bits())
		if err != nil {
			return fmt.Errorf("number %s: %w", n, errors.Unwrap(err))
		}
		rv.SetFloat(z)
	default:
		return r.mismatch("number")
	}
	return nil
}

func (r reflectVisitor) VisitString(s string) error {
	if r.rv.Kind() != reflect.String || r.rv.Type() == numberType {
		return r.mismatch("string")
	}
	r.rv.SetString(s)
	return nil
}

func (r reflectVisitor) VisitArray(a *ArrayAccess) error {
	rv := r.rv
	switch rv.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(rv.Type(), 0, 0)
		for {
			elt := reflect.New(rv.Type().Elem())
			ok, err := a.Next(elt.Interface())
			if err != nil {
				return err
			} else if !ok {
				break
			}
			out = reflect.Append(out, elt.Elem())
		}
		rv.Set(out)
		return nil

	case reflect.Array:
		for i := 0; ; i++ {
			var dst any // discard elements past the end of the array
			if i < rv.Len() {
				dst = rv.Index(i).Addr().Interface()
			}
			ok, err := a.Next(dst)
			if err != nil {
				return err
			} else if !ok {
				for ; i < rv.Len(); i++ {
					rv.Index(i).SetZero()
				}
				return nil
			}
		}
	}
	return r.mismatch("array")
}

func (r reflectVisitor) VisitObject(o *ObjectAccess) error {
	rv := r.rv
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeMap(rv.Type()))
		}
		for {
			var key string
			ok, err := o.NextKey(&key)
			if err != nil {
				return err
			} else if !ok {
				return nil
			}
			elt := reflect.New(rv.Type().Elem())
			if err := o.Value(elt.Interface()); err != nil {
				return err
			}
			rv.SetMapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()), elt.Elem())
		}

	case reflect.Struct:
		fields := fieldsOf(rv.Type())
		for {
			var key string
			ok, err := o.NextKey(&key)
			if err != nil {
				return err
			} else if !ok {
				return nil
			}
			var dst any // discard members with no matching field
			if f, ok := fields.lookup(key); ok {
				dst = rv.FieldByIndex(f.index).Addr().Interface()
			}
			if err := o.Value(dst); err != nil {
				return err
			}
		}
	}
	return r.mismatch("object")
}

// anyVisitor decodes a value into its generic Go representation.
type anyVisitor struct{ v any }

func (a *anyVisitor) VisitNull() error           { a.v = nil; return nil }
func (a *anyVisitor) VisitBool(b bool) error     { a.v = b; return nil }
func (a *anyVisitor) VisitNumber(n Number) error { a.v = n; return nil }
func (a *anyVisitor) VisitString(s string) error { a.v = s; return nil }

func (a *anyVisitor) VisitArray(arr *ArrayAccess) error {
	out := []any{}
	for {
		var elt any
		ok, err := arr.Next(&elt)
		if err != nil {
			return err
		} else if !ok {
			break
		}
		out = append(out, elt)
	}
	a.v = out
	return nil
}

func (a *anyVisitor) VisitObject(obj *ObjectAccess) error {
	out := make(map[string]any)
	for {
		var key string
		ok, err := obj.NextKey(&key)
		if err != nil {
			return err
		} else if !ok {
			break
		}
		var val any
		if err := obj.Value(&val); err != nil {
			return err
		}
		out[key] = val
	}
	a.v = out
	return nil
}

// A field records the decoding name and location of a struct field.
type field struct {
	name  string
	index []int
}

type structFields struct {
	list   []field
	byName map[string]int // exact name to index in list
}

// lookup finds the field matching key, preferring an exact match.
func (s *structFields) lookup(key string) (field, bool) {
	if i, ok := s.byName[key]; ok {
		return s.list[i], true
	}
	for _, f := range s.list {
		if strings.EqualFold(f.name, key) {
			return f, true
		}
	}
	return field{}, false
}

var fieldCache sync.Map // reflect.Type to *structFields

// fieldsOf returns the decodable fields of struct type t.
func fieldsOf(t reflect.Type) *structFields {
	if v, ok := fieldCache.Load(t); ok {
		return v.(*structFields)
	}
	s := &structFields{byName: make(map[string]int)}
	var walk func(t reflect.Type, index []int)
	walk = func(t reflect.Type, index []int) {
		for i := range t.NumField() {
			sf := t.Field(i)
			tag, hasTag := sf.Tag.Lookup("json")
			name, _, _ := strings.Cut(tag, ",")
			if name == "-" && tag == "-" {
				continue
			}
			idx := append(index[:len(index):len(index)], i)

			// Promote the fields of an untagged embedded struct.
			if sf.Anonymous && !hasTag && sf.Type.Kind() == reflect.Struct {
				walk(sf.Type, idx)
				continue
			}
			if !sf.IsExported() {
				continue
			}
			if name == "" {
				name = sf.Name
			}
			if _, dup := s.byName[name]; dup {
				continue // the first field with a name wins
			}
			s.byName[name] = len(s.list)
			s.list = append(s.list, field{name: name, index: idx})
		}
	}
	walk(t, nil)
	v, _ := fieldCache.LoadOrStore(t, s)
	return v.(*structFields)
}
