package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by the typed decode errors below.
var (
	ErrUnknownCode   = errors.New("unrecognized code")
	ErrMissingField  = errors.New("missing required field")
	ErrUnexpectedKey = errors.New("unexpected key")
)

// UnknownCodeError is returned when a single-letter code field carries a value
// outside of its closed set.
type UnknownCodeError struct {
	Field    string   // wire name of the field
	Value    string   // value as received
	Expected []string // accepted codes, empty when the value was not a string
}

func (e *UnknownCodeError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%s: %s %s is not a string code", ErrUnknownCode, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s %q, expected one of %s",
		ErrUnknownCode, e.Field, e.Value, strings.Join(e.Expected, ", "))
}

func (e *UnknownCodeError) Is(target error) bool {
	return target == ErrUnknownCode
}

// MissingFieldError is returned when a required key is absent or null.
type MissingFieldError struct {
	Object string // Go type being decoded
	Field  string // wire name of the missing key
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s %q in %s", ErrMissingField, e.Field, e.Object)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// UnexpectedKeyError is returned when an object carries a key that differs
// from a declared wire name only by case.
type UnexpectedKeyError struct {
	Object string // Go type being decoded
	Key    string // key as received
	Field  string // declared wire name it collides with
}

func (e *UnexpectedKeyError) Error() string {
	return fmt.Sprintf("%s %q in %s, the field is spelled %q", ErrUnexpectedKey, e.Key, e.Object, e.Field)
}

func (e *UnexpectedKeyError) Is(target error) bool {
	return target == ErrUnexpectedKey
}
