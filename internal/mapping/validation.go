// Package mapping converts user-entered drafts into persistable payloads and
// back. Drafts are fully enumerated structs — one per operation — with their
// validation rules applied here, before anything reaches a repository.
package mapping

import (
	"fmt"
	"strings"
)

// ValidationError reports which draft fields failed and why. Handlers recover
// it locally (HTTP 422) — it is never treated as a fatal error.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, msg))
	}
	return "invalid draft: " + strings.Join(parts, "; ")
}

// newValidationError returns nil when no fields failed.
func newValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
