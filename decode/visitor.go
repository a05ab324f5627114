// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package decode

import "fmt"

// A Visitor receives the value decoded by a call to DecodeAny. Exactly one
// method is called per value.
//
// VisitArray and VisitObject receive an accessor for the elements or members
// of the container, which are decoded on demand. The accessor is only valid
// until the method returns.
type Visitor interface {
	VisitNull() error
	VisitBool(bool) error
	VisitNumber(Number) error
	VisitString(string) error
	VisitArray(*ArrayAccess) error
	VisitObject(*ObjectAccess) error
}

// Expecting is a Visitor that rejects every value with a *TypeError. Its
// value describes what the visitor wants, for example "a JSON object".
// Embed it in a visitor to reject the kinds of value it does not handle.
type Expecting string

func (e Expecting) VisitNull() error                { return e.reject("null") }
func (e Expecting) VisitBool(bool) error            { return e.reject("boolean") }
func (e Expecting) VisitNumber(Number) error        { return e.reject("number") }
func (e Expecting) VisitString(string) error        { return e.reject("string") }
func (e Expecting) VisitArray(*ArrayAccess) error   { return e.reject("array") }
func (e Expecting) VisitObject(*ObjectAccess) error { return e.reject("object") }

func (e Expecting) reject(got string) error { return &TypeError{Got: got, Want: string(e)} }

// TypeError reports a JSON value that cannot be decoded into its destination.
type TypeError struct {
	Got  string // the kind of JSON value found, e.g. "string"
	Want string // a description of the destination
}

func (t *TypeError) Error() string {
	return fmt.Sprintf("cannot decode %s into %s", t.Got, t.Want)
}

// discard is a Visitor that accepts and discards any value.
type discard struct{}

func (discard) VisitNull() error         { return nil }
func (discard) VisitBool(bool) error     { return nil }
func (discard) VisitNumber(Number) error { return nil }
func (discard) VisitString(string) error { return nil }

func (discard) VisitArray(a *ArrayAccess) error { return a.finish() }

func (discard) VisitObject(o *ObjectAccess) error { return o.finish() }
