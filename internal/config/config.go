package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"refmatch/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ManualDir   string `toml:"manual_dir"`
	SectionsDir string `toml:"sections_dir"`
	CatalogDir  string `toml:"catalog_dir"`
	OutputDir   string `toml:"output_dir"`
	LogDir      string `toml:"log_dir"`
}

// Chapter describes a named, page-bounded partition of the source manual.
// Page ranges are end-exclusive and may not overlap.
type Chapter struct {
	Code      string `toml:"code"`
	Name      string `toml:"name"`
	StartPage int    `toml:"start_page"`
	EndPage   int    `toml:"end_page"`
}

// Segmentation contains header-detection and section filtering settings.
type Segmentation struct {
	// MinSectionChars is the body length below which a section is kept in
	// the index but excluded from the matchable pool.
	MinSectionChars int `toml:"min_section_chars"`
	// PreviewChars bounds the text preview stored for every section.
	PreviewChars int `toml:"preview_chars"`
}

// Matching contains the tuned scoring thresholds. The fuzzy threshold and
// weight have no documented derivation; they are carried as configuration.
type Matching struct {
	MinScore       float64 `toml:"min_score"`
	FuzzyThreshold float64 `toml:"fuzzy_threshold"`
	FuzzyWeight    float64 `toml:"fuzzy_weight"`
	TopK           int     `toml:"top_k"`
	BodyWindow     int     `toml:"body_window"`
	MinTermLength  int     `toml:"min_term_length"`
	AliasLanguage  string  `toml:"alias_language"`
	HighScore      float64 `toml:"high_score"`
}

// Workflow contains fan-out settings for chapter and record processing.
type Workflow struct {
	Workers int `toml:"workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for refmatch.
//
// Configuration sections by subsystem:
//   - Paths: manual text, section artifacts, catalog, output, logs
//   - Chapters: the manual's page-range table
//   - Segmentation: header detection and section filtering
//   - Matching: scoring thresholds and term derivation
//   - Workflow: worker fan-out
//   - Logging: log format and level
type Config struct {
	Paths        Paths        `toml:"paths"`
	Chapters     []Chapter    `toml:"chapters"`
	Segmentation Segmentation `toml:"segmentation"`
	Matching     Matching     `toml:"matching"`
	Workflow     Workflow     `toml:"workflow"`
	Logging      Logging      `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/refmatch/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, services.Wrap(services.ErrValidation, "config", "validate", resolvedPath, err)
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("refmatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates every configured directory that does not exist.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.ManualDir,
		c.Paths.SectionsDir,
		c.Paths.CatalogDir,
		c.Paths.OutputDir,
		c.Paths.LogDir,
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ChapterByCode returns the configured chapter with the given code.
func (c *Config) ChapterByCode(code string) (Chapter, bool) {
	for _, ch := range c.Chapters {
		if strings.EqualFold(ch.Code, code) {
			return ch, true
		}
	}
	return Chapter{}, false
}

func expandPath(pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			return home, nil
		}
		return filepath.Join(home, pathValue[2:]), nil
	}
	abs, err := filepath.Abs(pathValue)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", pathValue, err)
	}
	return abs, nil
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
