package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"refmatch/internal/config"
	"refmatch/internal/services"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantManual := filepath.Join(tempHome, ".local", "share", "refmatch", "manual")
	if cfg.Paths.ManualDir != wantManual {
		t.Fatalf("unexpected manual dir: got %q want %q", cfg.Paths.ManualDir, wantManual)
	}
	if cfg.Matching.MinScore != 0.6 {
		t.Fatalf("unexpected min score: %v", cfg.Matching.MinScore)
	}
	if cfg.Matching.TopK != 5 {
		t.Fatalf("unexpected top_k: %v", cfg.Matching.TopK)
	}
	if cfg.Segmentation.MinSectionChars != 100 {
		t.Fatalf("unexpected min section chars: %v", cfg.Segmentation.MinSectionChars)
	}
	if len(cfg.Chapters) == 0 {
		t.Fatal("expected default chapter table")
	}
	if _, ok := cfg.ChapterByCode("cir"); !ok {
		t.Fatal("expected chapter lookup to be case-insensitive")
	}
}

func TestLoadParsesFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[matching]
min_score = 0.7
top_k = 3

[logging]
format = "json"

[[chapters]]
code = "cir"
name = "Circulatory System"
start_page = 41
end_page = 146
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q %v", resolved, exists)
	}
	if cfg.Matching.MinScore != 0.7 || cfg.Matching.TopK != 3 {
		t.Fatalf("overrides not applied: %+v", cfg.Matching)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
	if len(cfg.Chapters) != 1 || cfg.Chapters[0].Code != "CIR" {
		t.Fatalf("chapter table not normalized: %+v", cfg.Chapters)
	}
}

func TestLoadTagsValidationFailures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[matching]
min_score = 1.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("error not tagged as validation: %v", err)
	}
}

func TestValidateRejectsOverlappingChapters(t *testing.T) {
	cfg := config.Default()
	cfg.Chapters = []config.Chapter{
		{Code: "A", Name: "First", StartPage: 10, EndPage: 50},
		{Code: "B", Name: "Second", StartPage: 40, EndPage: 90},
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "overlaps") {
		t.Fatalf("expected overlap error, got %v", err)
	}
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	cfg := config.Default()
	cfg.Matching.MinScore = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for min_score > 1")
	}

	cfg = config.Default()
	cfg.Matching.HighScore = 0.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for high_score below min_score")
	}
}

func TestValidateRejectsEmptyChapterCode(t *testing.T) {
	cfg := config.Default()
	cfg.Chapters = []config.Chapter{{Name: "Nameless", StartPage: 1, EndPage: 2}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing chapter code")
	}
}

func TestCreateSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if err := config.CreateSample(path); err == nil {
		t.Fatal("expected error when sample already exists")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[matching]") {
		t.Fatal("sample config missing matching section")
	}
}
