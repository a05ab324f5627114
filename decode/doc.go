// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package decode implements a push-style JSON decoder.
//
// A Decoder reads JSON values from an io.Reader one byte at a time. Values
// are decoded either into Go values by reflection, or by a Visitor whose
// methods are called with the structure of the input:
//
//	JSON type  | Visitor method | Access
//	---------- | -------------- | ----------------------------------
//	null       | VisitNull      | --
//	true/false | VisitBool      | --
//	number     | VisitNumber    | Number (text as written)
//	string     | VisitString    | unescaped bytes
//	array      | VisitArray     | ArrayAccess.Next
//	object     | VisitObject    | ObjectAccess.NextKey, Value
//
// A type that implements Unmarshaler takes control of decoding its own
// value, and may consult the source of the Decoder to learn where the value
// lies in the input. Because the decoder never reads ahead of the value it
// is decoding by more than one byte, the number of bytes read from the
// source at any point is an exact measure of its progress.
//
// Errors in the syntax of the input are reported as *SyntaxError, and errors
// decoding a well-formed value as *ValueError. Both carry the line and column
// of the input where the error was found.
package decode
