// Package scenario loads YAML scripts of array operations and plays them on
// a fresh fixedarray.Array.
//
// A script looks like:
//
//	name: Demo.Scores
//	capacity: 4
//	steps:
//	  - append: [10, 10, 3, 2, 19, 44]
//	  - remove_last: 1
//	  - append: [5]
package scenario

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/bobbthebuilder/goodies/fixedarray"
	"github.com/bobbthebuilder/goodies/instrumentation/hooking"
	"github.com/bobbthebuilder/goodies/naming"
)

// ErrInvalid marks scenarios that parse but cannot be played.
var ErrInvalid = errors.New("invalid scenario")

// Step is one operation. Exactly one field must be set.
type Step struct {
	Append     []string `yaml:"append,omitempty"`
	RemoveLast *int     `yaml:"remove_last,omitempty"`
}

// Scenario is a named array and the steps to apply to it.
type Scenario struct {
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
	Steps    []Step `yaml:"steps"`
}

// Load decodes and validates a scenario. Unknown fields are rejected.
func Load(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	s := &Scenario{}
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Mark(errors.New("empty scenario"), ErrInvalid)
		}

		return nil, errors.Wrap(err, "decoding scenario")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// LoadFile loads the scenario stored at path.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	s, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}

	return s, nil
}

// Validate checks the scenario can be played.
func (s *Scenario) Validate() error {
	if err := naming.Validate(s.Name); err != nil {
		return errors.Mark(err, ErrInvalid)
	}

	if s.Capacity < 0 {
		return errors.Mark(
			errors.Newf("capacity %d must not be negative", s.Capacity),
			ErrInvalid)
	}

	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return errors.Mark(errors.Wrapf(err, "step %d", i), ErrInvalid)
		}
	}

	return nil
}

func (st Step) validate() error {
	hasAppend := st.Append != nil
	hasRemove := st.RemoveLast != nil

	switch {
	case hasAppend && hasRemove:
		return errors.New("append and remove_last must not be combined")
	case !hasAppend && !hasRemove:
		return errors.New("one of append or remove_last is required")
	case hasRemove && *st.RemoveLast < 0:
		return errors.Newf("remove_last %d must not be negative", *st.RemoveLast)
	}

	return nil
}

// Play builds the array, attaches hooks, and applies every step in order.
func (s *Scenario) Play(hooks ...hooking.Hook) (*fixedarray.Array[string], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	arr := fixedarray.New[string](s.Name, s.Capacity)
	for _, h := range hooks {
		arr.AcceptHook(h)
	}

	for _, st := range s.Steps {
		if st.RemoveLast != nil {
			for i := 0; i < *st.RemoveLast; i++ {
				arr.RemoveLast()
			}

			continue
		}

		arr.AppendMany(st.Append...)
	}

	return arr, nil
}
