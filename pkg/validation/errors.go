package validation

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrInvalidDurationFormat = errors.New("invalid duration format")
	ErrInvalidSizeFormat     = errors.New("invalid size format")
	ErrInvalidEntryFormat    = errors.New("invalid entry format")
	ErrInvalidPattern        = errors.New("invalid pattern")
	ErrInvalidValue          = errors.New("invalid value")
)

// Location names the offending field. Key is a dotted path inside Section.
type Location struct {
	Section string
	Key     string
	Value   string
}

func (l Location) String() string {
	return fmt.Sprintf("%s.%s=%q", l.Section, l.Key, l.Value)
}

// InvalidDurationFormatError reports a duration string outside the
// {integer}{unit} grammar.
type InvalidDurationFormatError struct {
	Location
}

func (e *InvalidDurationFormatError) Error() string {
	return fmt.Sprintf("invalid duration format at %s", e.Location)
}

func (e *InvalidDurationFormatError) Is(target error) bool {
	return target == ErrInvalidDurationFormat
}

// InvalidSizeFormatError reports a size string outside {integer}{KB|MB|GB}.
type InvalidSizeFormatError struct {
	Location
}

func (e *InvalidSizeFormatError) Error() string {
	return fmt.Sprintf("invalid size format at %s", e.Location)
}

func (e *InvalidSizeFormatError) Is(target error) bool {
	return target == ErrInvalidSizeFormat
}

// InvalidEntryFormatError reports a list entry that does not have the
// lexical form its list requires (origin, MIME type, HTTP method).
type InvalidEntryFormatError struct {
	Location
	Expected string
}

func (e *InvalidEntryFormatError) Error() string {
	return fmt.Sprintf("invalid entry at %s: expected %s", e.Location, e.Expected)
}

func (e *InvalidEntryFormatError) Is(target error) bool {
	return target == ErrInvalidEntryFormat
}

// InvalidPatternError reports a validation regex that does not compile.
type InvalidPatternError struct {
	Location
	Err error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("pattern at %s does not compile: %v", e.Location, e.Err)
}

func (e *InvalidPatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// InvalidValueError reports any other constraint violation.
type InvalidValueError struct {
	Location
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value at %s: %s", e.Location, e.Reason)
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}
