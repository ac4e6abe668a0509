package res

import (
	"errors"
	"fmt"

	"github.com/resmod/resnet/pkg/skeleton"
)

// Common sentinel errors
var (
	ErrTechnologyNotFound = errors.New("technology not found")
	ErrFuelNotFound       = errors.New("fuel not found")
	ErrIndexNotFound      = errors.New("index not found in structure")
	ErrEndpointNotFound   = errors.New("fuel endpoint is not a technology in the graph")
	ErrNoSkeleton         = errors.New("no skeleton source configured")
	ErrSnapshotCorrupt    = errors.New("snapshot corrupt")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op     string // Operation that failed (e.g. "add_fuel")
	Entity string // Entity kind (e.g. "technology", "fuel", "index")
	Ref    string // Identifier or label involved
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.Ref, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func technologyNotFoundError(op, ref string) error {
	return &GraphError{Op: op, Entity: "technology", Ref: ref, Cause: ErrTechnologyNotFound}
}

func fuelNotFoundError(op, ref string) error {
	return &GraphError{Op: op, Entity: "fuel", Ref: ref, Cause: ErrFuelNotFound}
}

func endpointNotFoundError(op, ref string) error {
	return &GraphError{Op: op, Entity: "technology", Ref: ref, Cause: ErrEndpointNotFound}
}

func indexNotFoundError(op, index string) error {
	return &GraphError{Op: op, Entity: "index", Ref: index, Cause: ErrIndexNotFound}
}

// IsNotFound returns true if the error is any of the not-found kinds, from
// this package or the skeleton loader.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTechnologyNotFound) ||
		errors.Is(err, ErrFuelNotFound) ||
		errors.Is(err, ErrIndexNotFound) ||
		errors.Is(err, skeleton.ErrNotFound)
}

// IsReferenceError returns true if the error reports a fuel endpoint that is
// not a technology in the graph.
func IsReferenceError(err error) bool {
	return errors.Is(err, ErrEndpointNotFound)
}
