package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"WARN":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("parse %q: got=%s want=%s", raw, got, want)
		}
	}
}

func TestLoggerKeyValueFields(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core))

	logger.With("component", "ledger").Warn("credit failed", "user_id", "u1", "error", errors.New("boom"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "ledger" || fields["user_id"] != "u1" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if fields["error"] != "boom" {
		t.Fatalf("expected error field, got %v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelWarn, false)

	logger.Info("hidden")
	logger.Error("shown", "code", 7)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"code":7`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestLoggerMirror(t *testing.T) {
	var mirrored []string
	SetMirror(func(_ context.Context, _ Level, msg string, _ ...any) {
		mirrored = append(mirrored, msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	core, _ := observer.New(LevelInfo)
	logger := FromZap(zap.New(core))

	logger.InfoContext(context.Background(), "with context")
	logger.Info("without context")
	logger.DebugContext(context.Background(), "below level")

	if len(mirrored) != 1 || mirrored[0] != "with context" {
		t.Fatalf("unexpected mirrored entries: %v", mirrored)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	core, logs := observer.New(LevelInfo)
	prev := Default()
	SetDefault(FromZap(zap.New(core)))
	t.Cleanup(func() { SetDefault(prev) })

	var logger *Logger
	logger.Info("from nil")

	if logs.Len() != 1 {
		t.Fatalf("expected default logger to receive entry, got %d", logs.Len())
	}
}
