package jpath

import (
	"errors"
	"strconv"
	"strings"
)

// A Pointer is a parsed JSON Pointer (RFC 6901): a sequence of reference
// tokens, each naming an object member or an array element. The empty
// Pointer refers to the whole document.
type Pointer []string

// ParsePointer parses s as a JSON Pointer. The empty string is the empty
// pointer. Otherwise s must begin with "/", and each "/" begins a new token,
// so "/" is a pointer to the member whose name is the empty string.
//
// In each token "~1" denotes "/" and "~0" denotes "~". Any other use of "~"
// is an error.
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	t, ok := strings.CutPrefix(s, "/")
	if !ok {
		return nil, errors.New(`pointer must be empty or begin with "/"`)
	}
	p := Pointer(strings.Split(t, "/"))
	for i, tok := range p {
		if !strings.Contains(tok, "~") {
			continue
		}
		dec, err := unescapeToken(tok)
		if err != nil {
			return nil, err
		}
		p[i] = dec
	}
	return p, nil
}

// unescapeToken decodes "~1" before "~0", so "~01" becomes "~1" and not "/".
func unescapeToken(tok string) (string, error) {
	for i := 0; i < len(tok); i++ {
		if tok[i] == '~' && (i+1 == len(tok) || (tok[i+1] != '0' && tok[i+1] != '1')) {
			return "", errors.New(`invalid "~" escape in pointer token`)
		}
	}
	return strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~"), nil
}

// String returns the encoding of p, escaping "~" and "/" in its tokens.
func (p Pointer) String() string {
	var buf strings.Builder
	for _, tok := range p {
		buf.WriteByte('/')
		buf.WriteString(strings.ReplaceAll(strings.ReplaceAll(tok, "~", "~0"), "/", "~1"))
	}
	return buf.String()
}

// ArrayIndex reports whether tok is an array index token: "0", or a decimal
// integer with no sign or leading zero. If so, it returns the index.
// The token "-", denoting the element past the end, is not an index.
func ArrayIndex(tok string) (int, bool) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return v, true
}
