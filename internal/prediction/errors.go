package prediction

import (
	"errors"
	"fmt"
	"strings"

	"projectai/internal/project"
)

var (
	// ErrModelUnavailable is returned when no artifact was loaded at startup.
	ErrModelUnavailable = errors.New("prediction model not loaded")
	// ErrUnknownCategory matches every *UnknownCategoryError.
	ErrUnknownCategory = errors.New("unknown category value")
	// ErrInvalidAttributes matches every *ValidationError.
	ErrInvalidAttributes = errors.New("invalid project attributes")
)

// UnknownCategoryError reports a categorical value outside the trained vocabulary.
type UnknownCategoryError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("%s: unknown value %q (allowed: %s)", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *UnknownCategoryError) Is(target error) bool {
	return target == ErrUnknownCategory
}

// ValidationError lists every missing or malformed attribute.
type ValidationError struct {
	Fields []project.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "invalid project attributes: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidAttributes
}
