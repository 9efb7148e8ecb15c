package repo

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"departamento/internal/validation"
)

var ErrNotFound = errors.New("not found")

// ValidationError reports one or more rejected fields.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(errs validation.FieldErrors) error {
	if errs.Empty() {
		return nil
	}
	return ValidationError{Fields: errs}
}

// ReferentialIntegrityError indicates a caso pointing at an agente that does not exist.
type ReferentialIntegrityError struct {
	AgenteID string
}

func (e ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("agente %s not found", e.AgenteID)
}
