// Package naming validates the hierarchical names given to arrays so that
// hook output and recordings can tell instances apart.
package naming

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// A Name is a dotted series of elements, such as "Demo.Scores[2]".
type Name struct {
	Elems []Elem
}

// Elem is one dot-separated element of a Name.
type Elem struct {
	Label   string
	Indices []int
}

// String reassembles the name.
func (n Name) String() string {
	parts := make([]string, len(n.Elems))
	for i, e := range n.Elems {
		parts[i] = e.String()
	}

	return strings.Join(parts, ".")
}

func (e Elem) String() string {
	var sb strings.Builder

	sb.WriteString(e.Label)
	for _, idx := range e.Indices {
		sb.WriteString("[" + strconv.Itoa(idx) + "]")
	}

	return sb.String()
}

// Parse splits a name into its elements. It does not apply the labelling
// rules; use Validate for that.
func Parse(name string) (Name, error) {
	raw := strings.Split(name, ".")
	n := Name{Elems: make([]Elem, 0, len(raw))}

	for _, r := range raw {
		e, err := parseElem(r)
		if err != nil {
			return Name{}, err
		}

		n.Elems = append(n.Elems, e)
	}

	return n, nil
}

func parseElem(s string) (Elem, error) {
	open := strings.IndexByte(s, '[')
	if open < 0 {
		if strings.IndexByte(s, ']') >= 0 {
			return Elem{}, errors.New("brackets must match")
		}

		return Elem{Label: s}, nil
	}

	e := Elem{Label: s[:open]}
	rest := s[open:]

	for rest != "" {
		if rest[0] != '[' {
			return Elem{}, errors.Newf("unexpected %q after index", rest)
		}

		closing := strings.IndexByte(rest, ']')
		if closing < 0 {
			return Elem{}, errors.New("brackets must match")
		}

		idx, err := strconv.Atoi(rest[1:closing])
		if err != nil {
			return Elem{}, errors.Newf("index %q must be an integer", rest[1:closing])
		}

		e.Indices = append(e.Indices, idx)
		rest = rest[closing+1:]
	}

	return e, nil
}

// Validate reports why a name breaks the naming rules, or nil.
//
// Rules:
//  1. Elements are separated by dots and none may be empty ("A..B" fails).
//  2. Elements start with a capital letter.
//  3. Elements must not contain _ " ' or -.
//  4. Series members use square-bracket integer indices ("Bank[3]").
func Validate(name string) error {
	n, err := Parse(name)
	if err != nil {
		return errors.Wrapf(err, "name %s is not valid", name)
	}

	for _, e := range n.Elems {
		if err := labelMustBeValid(e.Label); err != nil {
			return errors.Wrapf(err, "name %s is not valid", name)
		}
	}

	return nil
}

func labelMustBeValid(label string) error {
	if label == "" {
		return errors.New("element must not be empty")
	}

	for _, c := range []string{"_", "\"", "'", "-"} {
		if strings.Contains(label, c) {
			return errors.Newf("element must not contain %s", c)
		}
	}

	if label[0] < 'A' || label[0] > 'Z' {
		return errors.New("element must start with a capital letter")
	}

	return nil
}

// MustBeValid panics if the name does not follow the naming rules.
func MustBeValid(name string) {
	if err := Validate(name); err != nil {
		panic(err.Error())
	}
}

// Join builds a child name under parent.
func Join(parent, elem string) string {
	if parent == "" {
		return elem
	}

	return parent + "." + elem
}

// JoinIndexed builds a child name under parent for a member of a series.
func JoinIndexed(parent, elem string, index int) string {
	return Join(parent, elem+"["+strconv.Itoa(index)+"]")
}
