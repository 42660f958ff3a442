package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleHandlerIncludesComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	NewComponentLogger(logger, "resourcecache").Info("cache miss", String(FieldKey, "venue:42"))

	line := buf.String()
	if !strings.Contains(line, "resourcecache: cache miss") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "key=venue:42") {
		t.Fatalf("expected key attribute, got %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("resolved", String("name", "Bowery Ballroom"))

	if !strings.Contains(buf.String(), `name="Bowery Ballroom"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered, got %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn line missing, got %q", out)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	// Must not panic and must stay disabled at every level.
	logger := NewNop()
	logger.Error("ignored", Error(nil))
	if logger.Enabled(nil, 0) {
		t.Fatal("nop logger should be disabled")
	}
}
