package testsupport

import (
	"path/filepath"
	"testing"

	"refmatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ManualDir = filepath.Join(base, "manual")
	cfgVal.Paths.SectionsDir = filepath.Join(base, "sections")
	cfgVal.Paths.CatalogDir = filepath.Join(base, "catalog")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithChapters replaces the configured chapter table.
func WithChapters(chapters ...config.Chapter) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Chapters = chapters
	}
}

// WithWorkers overrides the workflow fan-out width.
func WithWorkers(workers int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workflow.Workers = workers
	}
}

// WithMinScore overrides the minimum retained match score.
func WithMinScore(score float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.MinScore = score
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.ManualDir)
}
