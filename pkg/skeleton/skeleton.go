// Package skeleton loads and represents the structure description backing a
// Reference Energy System graph: a static document with per-identifier
// parameter and variable sections.
package skeleton

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound covers a missing document and a missing lookup identifier
	ErrNotFound = errors.New("not found")
	// ErrMalformed means the document does not decode into the expected
	// nested-mapping shape
	ErrMalformed = errors.New("malformed structure description")
)

// Attributes maps a parameter or variable name to its value
type Attributes map[string]any

// Clone creates a shallow copy of the attribute map
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	clone := make(Attributes, len(a))
	for k, v := range a {
		clone[k] = v
	}
	return clone
}

// Structure is a decoded structure description. Each section maps an
// identifier (an index prefix or a concrete label) to its attributes.
type Structure struct {
	Params    map[string]Attributes `json:"params,omitempty" yaml:"params,omitempty"`
	Variables map[string]Attributes `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// ParamsFor returns the parameter attributes recorded under the identifier.
// The result is a copy; mutating it does not touch the structure.
func (s *Structure) ParamsFor(index string) (Attributes, error) {
	attrs, ok := s.Params[index]
	if !ok {
		return nil, fmt.Errorf("params %q: %w", index, ErrNotFound)
	}
	return attrs.Clone(), nil
}

// VariablesFor returns the variable attributes recorded under the identifier.
func (s *Structure) VariablesFor(index string) (Attributes, error) {
	attrs, ok := s.Variables[index]
	if !ok {
		return nil, fmt.Errorf("variables %q: %w", index, ErrNotFound)
	}
	return attrs.Clone(), nil
}

// Clone creates a deep copy of the structure
func (s *Structure) Clone() *Structure {
	clone := &Structure{
		Params:    make(map[string]Attributes, len(s.Params)),
		Variables: make(map[string]Attributes, len(s.Variables)),
	}
	for k, v := range s.Params {
		clone.Params[k] = v.Clone()
	}
	for k, v := range s.Variables {
		clone.Variables[k] = v.Clone()
	}
	return clone
}
