package command

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrValidation indicates a recognized command carrying a malformed value.
var ErrValidation = errors.New("invalid value")

var (
	phonePattern = regexp.MustCompile(`^\+\d+$`)
	emailPattern = regexp.MustCompile(`^\w+@\w+\.\w+$`)
)

// ValidationError reports which value of a parsed command failed its format check.
// It wraps ErrValidation.
type ValidationError struct {
	Field string // "phone" or "email"
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s %q: does not match the expected format", ErrValidation, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validate checks the values carried by cmd. Phones must be a plus sign
// followed by digits; emails must look like word@word.word. Other commands
// are always valid.
func Validate(cmd Command) error {
	switch c := cmd.(type) {
	case AddPhone:
		if !phonePattern.MatchString(c.Phone) {
			return &ValidationError{Field: "phone", Value: c.Phone}
		}
	case AddEmail:
		if !emailPattern.MatchString(c.Email) {
			return &ValidationError{Field: "email", Value: c.Email}
		}
	}
	return nil
}

// IsValid reports whether cmd passes Validate.
func IsValid(cmd Command) bool {
	return Validate(cmd) == nil
}
