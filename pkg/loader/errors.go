package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the file or remote resource does not exist
	ErrNotFound = errors.New("model not found")
	// ErrUnsupportedFormat is returned when no decoder recognizes the data
	ErrUnsupportedFormat = errors.New("unsupported model format")
	// ErrDegenerateBounds is returned for models whose bounding box has no extent
	ErrDegenerateBounds = errors.New("model has degenerate bounds")
)

// LoadError describes a failed step of loading one source
type LoadError struct {
	Source string
	Op     string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
