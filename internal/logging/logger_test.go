package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesJSONLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := New(dir, "info")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("session started", zap.String("session", "abc"))
	if err := logger.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry written at info level: %s", out)
	}
	if !strings.Contains(out, `"msg":"session started"`) || !strings.Contains(out, `"session":"abc"`) {
		t.Fatalf("missing info entry: %s", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(t.TempDir(), "chatty"); err == nil {
		t.Fatalf("expected level error")
	}
}

func TestNopCloses(t *testing.T) {
	if err := Nop().Close(); err != nil {
		t.Fatalf("nop close: %v", err)
	}
	var nilLogger *Logger
	if err := nilLogger.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"jo@example.edu": "j***@example.edu",
		"  a@b.c ":       "a***@b.c",
		"not-an-address": "***",
		"@example.edu":   "***",
	}
	for in, want := range cases {
		if got := MaskEmail(in); got != want {
			t.Fatalf("MaskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTailReturnsRecentLines(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir, "debug")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	for i := 0; i < 5; i++ {
		logger.Info("entry", zap.Int("n", i))
	}
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}
	lines, err := Tail(filepath.Join(dir, FileName), 3)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{`"n":2`, `"n":3`, `"n":4`} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
	if _, err := Tail(filepath.Join(dir, "missing.log"), 3); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
