// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package decode

import (
	"strconv"
	"strings"
)

// A Number is the text of a JSON number exactly as written in the input.
// It is not converted to a Go numeric type until requested, so no precision
// is lost by decoding.
type Number string

// String returns the text of n.
func (n Number) String() string { return string(n) }

// IsInt reports whether n is written as an integer, without a fraction or an
// exponent.
func (n Number) IsInt() bool { return n != "" && !strings.ContainsAny(string(n), ".eE") }

// Int64 returns n as an int64, or an error if n is not an integer in range.
func (n Number) Int64() (int64, error) { return strconv.ParseInt(string(n), 10, 64) }

// Uint64 returns n as a uint64, or an error if n is not a non-negative
// integer in range.
func (n Number) Uint64() (uint64, error) { return strconv.ParseUint(string(n), 10, 64) }

// Float64 returns n as a float64. Values out of range report an error.
func (n Number) Float64() (float64, error) { return strconv.ParseFloat(string(n), 64) }
