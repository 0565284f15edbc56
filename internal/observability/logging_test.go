package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestWithRunID(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")

	if lc := GetContext(ctx); lc.RunID != "run-123" {
		t.Errorf("expected run-123, got %s", lc.RunID)
	}
}

func TestMultipleContextValues(t *testing.T) {
	ctx := context.Background()
	ctx = WithRunID(ctx, "run-1")
	ctx = WithProcessID(ctx, "42")
	ctx = WithIdentifier(ctx, "zdb123")
	ctx = WithStage(ctx, "merge")

	lc := GetContext(ctx)
	if lc.RunID != "run-1" || lc.ProcessID != "42" || lc.Identifier != "zdb123" || lc.Stage != "merge" {
		t.Errorf("unexpected log context: %+v", lc)
	}
}

func TestInfoContext_IncludesContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	ctx := WithIdentifier(WithProcessID(context.Background(), "42"), "zdb123")
	InfoContext(ctx, "Exported issue", slog.String("issue", "zdb123_1901-01-01_1"))

	out := buf.String()
	for _, want := range []string{"process_id=42", "identifier=zdb123", "issue=zdb123_1901-01-01_1", "Exported issue"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output %q", want, out)
		}
	}
}

func TestEmptyContextHasNoAttrs(t *testing.T) {
	if attrs := getLogAttrs(context.Background()); len(attrs) != 0 {
		t.Errorf("expected no attrs, got %v", attrs)
	}
}
