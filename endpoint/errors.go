package endpoint

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedScheme is the category for addresses whose URI scheme is
	// not one of the recognized tokens.
	ErrUnsupportedScheme = errors.New("endpoint: unsupported scheme")

	// ErrInvalidName is the category for destination names that violate
	// broker naming rules.
	ErrInvalidName = errors.New("endpoint: invalid entity name")
)

// UnsupportedSchemeError is returned when a URI uses a scheme this package
// cannot parse. It matches ErrUnsupportedScheme via errors.Is.
type UnsupportedSchemeError struct {
	Scheme string
	URI    string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("endpoint: unsupported scheme %q in address %q", e.Scheme, e.URI)
}

func (e *UnsupportedSchemeError) Unwrap() error {
	return ErrUnsupportedScheme
}

// InvalidNameError is returned when a destination name fails validation.
// It matches ErrInvalidName via errors.Is.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("endpoint: invalid entity name %q: %s", e.Name, e.Reason)
}

func (e *InvalidNameError) Unwrap() error {
	return ErrInvalidName
}
