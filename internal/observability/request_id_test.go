package observability

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequestIDReturnsUUID(t *testing.T) {
	id := NewRequestID()
	if id == "" {
		t.Fatal("expected non-empty request id")
	}

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected valid UUID, got %q: %v", id, err)
	}
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	want := "abc-123"

	ctx = ContextWithRequestID(ctx, want)
	got := RequestIDFromContext(ctx)

	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRequestIDFromContextWhenMissingOrWrongType(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		got := RequestIDFromContext(context.Background())
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), requestIDKey{}, 42)
		got := RequestIDFromContext(ctx)
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})
}

func TestParseRequestID(t *testing.T) {
	tests := []struct {
		in     string
		wantOK bool
	}{
		{in: "", wantOK: false},
		{in: "not-a-uuid", wantOK: false},
		{in: "3F2504E0-4F89-11D3-9A0C-0305E82C3301", wantOK: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseRequestID(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("ParseRequestID(%q) ok = %t, want %t", tc.in, ok, tc.wantOK)
			}
			if ok && got != "3f2504e0-4f89-11d3-9a0c-0305e82c3301" {
				t.Fatalf("expected canonical lower-case id, got %q", got)
			}
		})
	}
}
