package assets

import (
	"errors"
	"fmt"
)

// Asset loading errors.
var (
	ErrLoad              = errors.New("asset load failed")
	ErrNotFound          = errors.New("asset not found")
	ErrEmptyBuffer       = errors.New("empty asset buffer")
	ErrUnsupportedFormat = errors.New("unsupported asset format")
	ErrInvalidMesh       = errors.New("invalid mesh data")
)

// LoadError reports which asset failed to load and why.
// It matches both ErrLoad and the underlying cause with errors.Is.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}

func loadError(path string, err error) error {
	return &LoadError{Path: path, Err: err}
}
