package observability

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// NewRequestID returns a random (v4) UUID.
func NewRequestID() string {
	return uuid.New().String()
}

// ParseRequestID accepts s only when it is a UUID, returning it in canonical form.
func ParseRequestID(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id set by RequestIDMiddleware, or "" when
// ctx has none (background work, CLI evaluation).
func RequestIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(requestIDKey{}).(string)
	if !ok {
		return ""
	}
	return id
}
