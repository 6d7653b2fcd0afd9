package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"refmatch/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	logger, err := New(Options{Level: "info", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("chapter processed", String(FieldChapter, "CIR"), Int("sections", 12))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "chapter processed" {
		t.Errorf("unexpected msg: %v", entry["msg"])
	}
	if entry["chapter"] != "CIR" {
		t.Errorf("unexpected chapter: %v", entry["chapter"])
	}
	if entry["level"] != "info" {
		t.Errorf("unexpected level: %v", entry["level"])
	}
}

func TestConsoleHandlerRendersFields(t *testing.T) {
	var sb strings.Builder
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&sb, lvl))

	logger.Info("matched", String(FieldComponent, "match"), String(FieldRecord, "heartworm-disease"))
	out := sb.String()
	if !strings.Contains(out, "[match]") {
		t.Errorf("missing component tag: %q", out)
	}
	if !strings.Contains(out, "- record: heartworm-disease") {
		t.Errorf("missing field line: %q", out)
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	var sb strings.Builder
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&sb, lvl))

	logger.Info("quiet")
	logger.Warn("loud")
	out := sb.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info leaked through warn filter: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warn missing: %q", out)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var sb strings.Builder
	lvl := new(slog.LevelVar)
	base := slog.New(newConsoleHandler(&sb, lvl))

	ctx := services.WithChapter(context.Background(), "TOX")
	ctx = services.WithStage(ctx, "extract")
	WithContext(ctx, base).Info("working")

	out := sb.String()
	if !strings.Contains(out, "- chapter: TOX") || !strings.Contains(out, "- stage: extract") {
		t.Errorf("context fields missing: %q", out)
	}
}

func TestWithContextNilLogger(t *testing.T) {
	logger := WithContext(context.Background(), nil)
	if logger == nil {
		t.Fatal("expected non-nil fallback logger")
	}
	logger.Info("must not panic")
}

