package httpapi

import (
	"context"
	"testing"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	for name, want := range map[string]bool{
		"httpapi.Handler.SubmitSquad":       true,
		"httpapi.Handler.RecordMatchResult": true,
		"httpapi.RequireAuth":               false,
		"httpapi.writeError":                false,
	} {
		if got := shouldCreateHTTPAPISpan(name); got != want {
			t.Fatalf("shouldCreateHTTPAPISpan(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestStartSpan_WithoutParentIsNoop(t *testing.T) {
	ctx := context.Background()
	gotCtx, span := startSpan(ctx, "httpapi.Handler.ListPlayers")
	defer span.End()

	if gotCtx != ctx {
		t.Fatalf("expected context to pass through untouched")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no span without a traced parent")
	}
}
