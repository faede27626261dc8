package videos

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidInput indicates caller-supplied data violates a field or payload constraint.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates the referenced video does not exist.
	ErrNotFound = errors.New("video not found")
	// ErrUnsupportedAction indicates the mutation action is not one of the known actions.
	ErrUnsupportedAction = errors.New("unsupported action")
	// ErrInternalValidation indicates an assembled record failed the full record contract.
	ErrInternalValidation = errors.New("record failed internal validation")
)

// ValidationError reports which fields were rejected. It unwraps to one of the
// sentinel errors above so callers can classify it with errors.Is.
type ValidationError struct {
	Kind   error
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Kind.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s (%s)", e.Kind.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func invalidInput(field, message string) *ValidationError {
	return &ValidationError{Kind: ErrInvalidInput, Fields: map[string]string{field: message}}
}
