package services

import (
	"errors"
	"sort"
	"strings"

	"catalogo/internal/repositories"
	"catalogo/internal/validation"
)

var (
	ErrNotFound      = repositories.ErrNotFound
	ErrDuplicate     = repositories.ErrDuplicate
	ErrValidation    = errors.New("validation failed")
	ErrInvalidSearch = errors.New("invalid search term")
)

// ValidationError reports the constraint violations of a payload or record, per field.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(err error) error {
	fields := validation.Describe(err)
	if fields == nil {
		// Not a constraint violation, e.g. an invalid struct passed to the validator.
		return err
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
