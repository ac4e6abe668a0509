package skeleton

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// MaxIdentifierLength bounds identifiers in either section
const MaxIdentifierLength = 50

var (
	// validate is a singleton validator instance
	validate = validator.New()

	identifierPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)

// Source is a location a structure description can be fetched from
type Source interface {
	// Fetch reads the raw document bytes
	Fetch(ctx context.Context) ([]byte, error)
	// Location describes the source for diagnostics and format detection
	Location() string
}

// Load fetches, decodes and shape-checks a structure description. A missing
// document surfaces as ErrNotFound, a document that does not decode into the
// expected nested-mapping shape as ErrMalformed.
func Load(ctx context.Context, src Source) (*Structure, error) {
	raw, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Location(), err)
	}
	s, err := Decode(raw, src.Location())
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src.Location(), err)
	}
	return s, nil
}

// Decode parses raw document bytes. The format is picked from the location
// extension: .yaml/.yml decode as YAML, everything else as JSON. Unknown
// top-level sections, trailing data, and multi-document streams are rejected.
func Decode(raw []byte, location string) (*Structure, error) {
	var s Structure
	var err error
	if isYAML(location) {
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		err = dec.Decode(&s)
		if err == io.EOF {
			// Empty document decodes as an empty structure
			err = nil
		} else if err == nil {
			// A second document means the source is not the single
			// mapping we expect
			var extra any
			if e := dec.Decode(&extra); e != io.EOF {
				return nil, fmt.Errorf("%w: multiple documents in stream", ErrMalformed)
			}
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
		if err == nil {
			if _, e := dec.Token(); e != io.EOF {
				return nil, fmt.Errorf("%w: trailing data after document", ErrMalformed)
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := validateStructure(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &s, nil
}

// validateStructure checks both sections for well-formed identifiers
func validateStructure(s *Structure) error {
	for section, entries := range map[string]map[string]Attributes{
		"params":    s.Params,
		"variables": s.Variables,
	} {
		for index := range entries {
			if err := validate.Var(index, fmt.Sprintf("required,max=%d", MaxIdentifierLength)); err != nil {
				return fmt.Errorf("%s: invalid identifier %q", section, index)
			}
			if !identifierPattern.MatchString(index) {
				return fmt.Errorf("%s: identifier %q contains invalid characters (only alphanumeric and underscore allowed)", section, index)
			}
		}
	}
	return nil
}

func isYAML(location string) bool {
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
