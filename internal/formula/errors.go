package formula

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Error kinds, used as metric attributes and in API responses.
const (
	KindValidation   = "validation"
	KindCollaborator = "collaborator"
	KindInternal     = "internal"
)

// ValidationError means the inputs were unusable: missing, non-numeric,
// failing a precondition, or selecting an unknown variant.
type ValidationError struct {
	Endpoint string
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Endpoint, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Reason)
}

// CollaboratorError means an external dependency failed or returned unusable data.
type CollaboratorError struct {
	Endpoint     string
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies err as KindValidation, KindCollaborator or KindInternal.
func ErrorKind(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}
	var cerr *CollaboratorError
	if errors.As(err, &cerr) {
		return KindCollaborator
	}
	return KindInternal
}

// logLevel is how loudly a failure of the given kind is logged. Bad input
// is routine; upstream outages and bugs are not.
func logLevel(kind string) zapcore.Level {
	switch kind {
	case KindValidation:
		return zapcore.InfoLevel
	case KindCollaborator:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func invalid(endpoint, field, format string, args ...any) *ValidationError {
	return &ValidationError{Endpoint: endpoint, Field: field, Reason: fmt.Sprintf(format, args...)}
}
