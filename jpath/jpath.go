// Package jpath parses the path expressions used to select values from a
// decoded JSON document: JSONPath expressions and JSON Pointers (RFC 6901).
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = ".." name
  step = "[" value "]"
  name = WORD
  name = "'" QTEXT "'"
  name = "*"
 value = name
 value = INDEX {"," INDEX}
 value = [INDEX] ":" [INDEX]
 value = "(" TEXT ")"
 value = "?(" TEXT ")"

  WORD = RE `\w+`
 QTEXT = RE `[^']*`
 INDEX = RE `-?\d+`
  TEXT = { all text with nested parentheses }

Source:
  https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
*/

// An Expr is a parsed JSONPath expression.
type Expr []Step

// Parse parses s as a JSONPath expression.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var steps Expr
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, fmt.Errorf("at offset %d: %w", len(s)-len(t), err)
		}
		steps = append(steps, step)
		t = rest
	}
	return steps, nil
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		buf.WriteString(s.String())
	}
	return buf.String()
}

// An Op is a path operator.
type Op byte

// Constants defining the valid Op values.
const (
	Invalid Op = iota // invalid operator
	Member            // member of an object, or all elements (.name)
	Recur             // recursive descent (..name)
	Index             // array elements by offset ([i,j,...])
	Slice             // array elements in a range ([lo:hi])
	Filter            // filter expression ([?(...)])
	Script            // script expression ([(...)])
)

var opText = [...]string{
	Invalid: "invalid",
	Member:  "member",
	Recur:   "recur",
	Index:   "index",
	Slice:   "slice",
	Filter:  "filter",
	Script:  "script",
}

func (o Op) String() string {
	if int(o) >= len(opText) {
		return opText[Invalid]
	}
	return opText[o]
}

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op Op

	// Member, Recur: the member name. Wildcard is true for "*", which selects
	// every member of an object and every element of an array.
	Name     string
	Wildcard bool
	Bracket  bool // written in brackets, "['name']" or "[*]"
	Quoted   bool // written in quotes

	// Index: the selected offsets. Negative offsets count from the end.
	Offsets []int

	// Slice: the bounds of the range, which includes Lo and excludes Hi.
	// Negative bounds count from the end. A nil bound is omitted, and selects
	// the corresponding end of the array.
	Lo, Hi *int

	// Filter, Script: the text of the expression.
	Text string
}

func (s Step) String() string {
	switch s.Op {
	case Member, Recur:
		name := s.Name
		if s.Quoted {
			name = "'" + name + "'"
		}
		if s.Bracket {
			name = "[" + name + "]"
		} else {
			name = "." + name
		}
		if s.Op == Recur && s.Bracket {
			name = ".." + name
		} else if s.Op == Recur {
			name = "." + name
		}
		return name
	case Index:
		ss := make([]string, len(s.Offsets))
		for i, off := range s.Offsets {
			ss[i] = strconv.Itoa(off)
		}
		return "[" + strings.Join(ss, ",") + "]"
	case Slice:
		return fmt.Sprintf("[%s:%s]", boundString(s.Lo), boundString(s.Hi))
	case Filter:
		return "[?(" + s.Text + ")]"
	case Script:
		return "[(" + s.Text + ")]"
	}
	return "[invalid]"
}

func boundString(b *int) string {
	if b == nil {
		return ""
	}
	return strconv.Itoa(*b)
}

// Range resolves the bounds of a Slice step for an array of length n,
// returning a half-open range of offsets with 0 <= lo <= hi <= n.
func (s Step) Range(n int) (lo, hi int) {
	lo, hi = 0, n
	if s.Lo != nil {
		lo = clampBound(*s.Lo, n)
	}
	if s.Hi != nil {
		hi = clampBound(*s.Hi, n)
	}
	return lo, max(lo, hi)
}

func clampBound(i, n int) int {
	if i < 0 {
		i += n
	}
	return min(max(i, 0), n)
}

func parseStep(s string) (_ Step, rest string, _ error) {
	op := Member
	t, ok := strings.CutPrefix(s, "..")
	if ok {
		op = Recur
	} else if t, ok = strings.CutPrefix(s, "."); !ok {
		if u, ok := strings.CutPrefix(s, "["); ok {
			return parseBracket(u)
		}
		return Step{}, s, errors.New("invalid path step")
	}

	// A recursive step may use a bracketed name: $..['a'] or $..[*]
	if u, ok := strings.CutPrefix(t, "["); ok && op == Recur {
		step, rest, err := parseBracket(u)
		if err != nil {
			return Step{}, s, err
		}
		switch step.Op {
		case Member:
			step.Op = Recur
		default:
			return Step{}, s, fmt.Errorf("invalid recursive %s", step.Op)
		}
		return step, rest, nil
	}

	step, rest, err := parseName(t)
	if err != nil {
		return Step{}, s, fmt.Errorf("invalid %s name: %w", op, err)
	}
	step.Op = op
	return step, rest, nil
}

// parseName parses a member name following "." or "..".
func parseName(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return Step{Name: "*", Wildcard: true}, t, nil
	}
	if m := wordRE.FindStringSubmatch(s); m != nil {
		return Step{Name: m[1]}, s[len(m[0]):], nil
	}
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return Step{Name: m[1], Quoted: true}, s[len(m[0]):], nil
	}
	return Step{}, s, errors.New("invalid name")
}

// parseBracket parses the contents of a bracketed step, after the "[".
func parseBracket(s string) (_ Step, rest string, _ error) {
	var step Step
	var err error
	switch {
	case strings.HasPrefix(s, "?("):
		step.Op = Filter
		step.Text, rest, err = parseScript(s[2:])
	case strings.HasPrefix(s, "("):
		step.Op = Script
		step.Text, rest, err = parseScript(s[1:])
	default:
		step, rest, err = parseRange(s)
		if err != nil {
			step, rest, err = parseName(s)
			step.Op, step.Bracket = Member, true
		}
	}
	if err != nil {
		return Step{}, s, err
	}
	rest, ok := strings.CutPrefix(rest, "]")
	if !ok {
		return Step{}, s, errors.New("missing close bracket")
	}
	return step, rest, nil
}

// parseRange parses an index list or a slice.
func parseRange(s string) (_ Step, rest string, _ error) {
	lo, rest, ok := parseIndex(s)
	if t, isSlice := strings.CutPrefix(rest, ":"); isSlice {
		step := Step{Op: Slice}
		if ok {
			step.Lo = &lo
		}
		if hi, u, ok := parseIndex(t); ok {
			step.Hi = &hi
			t = u
		}
		return step, t, nil
	} else if !ok {
		return Step{}, s, fmt.Errorf("invalid value: %q", s)
	}
	step := Step{Op: Index, Offsets: []int{lo}}
	for {
		t, ok := strings.CutPrefix(rest, ",")
		if !ok {
			return step, rest, nil
		}
		next, u, ok := parseIndex(t)
		if !ok {
			return Step{}, s, errors.New("invalid index list")
		}
		step.Offsets = append(step.Offsets, next)
		rest = u
	}
}

func parseIndex(s string) (int, string, bool) {
	m := indexRE.FindString(s)
	if m == "" {
		return 0, s, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, s, false
	}
	return v, s[len(m):], true
}

func parseScript(s string) (text, rest string, _ error) {
	i, np := 0, 1
	for i < len(s) {
		if s[i] == ')' {
			np--
			if np == 0 {
				break
			}
		} else if s[i] == '(' {
			np++
		}
		i++
	}
	if np > 0 {
		return "", s, errors.New("unbalanced parentheses")
	}
	return s[:i], s[i+1:], nil
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	indexRE = regexp.MustCompile(`^-?\d+`)
	quoteRE = regexp.MustCompile(`^'([^']*)'`)
)
