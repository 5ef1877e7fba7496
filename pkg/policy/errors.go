package policy

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSection is matched by every *UnknownSectionError.
	ErrUnknownSection = errors.New("unknown policy section")

	// ErrUnknownEnvironment is matched by every *UnknownEnvironmentError.
	ErrUnknownEnvironment = errors.New("unknown environment")
)

// UnknownSectionError is returned when a section lookup names something
// outside the enumerated section identifiers.
type UnknownSectionError struct {
	Name string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown policy section %q", e.Name)
}

// Is reports whether target is ErrUnknownSection.
func (e *UnknownSectionError) Is(target error) bool {
	return target == ErrUnknownSection
}

// UnknownEnvironmentError is returned for environment identifiers other than
// development, staging and production.
type UnknownEnvironmentError struct {
	Environment string
}

func (e *UnknownEnvironmentError) Error() string {
	return fmt.Sprintf("unknown environment %q, expected one of [development, staging, production]", e.Environment)
}

// Is reports whether target is ErrUnknownEnvironment.
func (e *UnknownEnvironmentError) Is(target error) bool {
	return target == ErrUnknownEnvironment
}
