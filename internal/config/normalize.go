package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeChapters()
	c.normalizeSegmentation()
	c.normalizeMatching()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.ManualDir, err = expandPath(c.Paths.ManualDir); err != nil {
		return fmt.Errorf("paths.manual_dir: %w", err)
	}
	if c.Paths.SectionsDir, err = expandPath(c.Paths.SectionsDir); err != nil {
		return fmt.Errorf("paths.sections_dir: %w", err)
	}
	if c.Paths.CatalogDir, err = expandPath(c.Paths.CatalogDir); err != nil {
		return fmt.Errorf("paths.catalog_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeChapters() {
	if len(c.Chapters) == 0 {
		c.Chapters = defaultChapters()
		return
	}
	for i := range c.Chapters {
		c.Chapters[i].Code = strings.ToUpper(strings.TrimSpace(c.Chapters[i].Code))
		c.Chapters[i].Name = strings.TrimSpace(c.Chapters[i].Name)
	}
}

func (c *Config) normalizeSegmentation() {
	if c.Segmentation.MinSectionChars <= 0 {
		c.Segmentation.MinSectionChars = defaultMinSectionChars
	}
	if c.Segmentation.PreviewChars <= 0 {
		c.Segmentation.PreviewChars = defaultPreviewChars
	}
}

func (c *Config) normalizeMatching() {
	if c.Matching.MinScore <= 0 {
		c.Matching.MinScore = defaultMinScore
	}
	if c.Matching.FuzzyThreshold <= 0 {
		c.Matching.FuzzyThreshold = defaultFuzzyThreshold
	}
	if c.Matching.FuzzyWeight <= 0 {
		c.Matching.FuzzyWeight = defaultFuzzyWeight
	}
	if c.Matching.TopK <= 0 {
		c.Matching.TopK = defaultTopK
	}
	if c.Matching.BodyWindow <= 0 {
		c.Matching.BodyWindow = defaultBodyWindow
	}
	if c.Matching.MinTermLength <= 0 {
		c.Matching.MinTermLength = defaultMinTermLength
	}
	if strings.TrimSpace(c.Matching.AliasLanguage) == "" {
		c.Matching.AliasLanguage = defaultAliasLanguage
	}
	if c.Matching.HighScore <= 0 {
		c.Matching.HighScore = defaultHighScore
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.Workers <= 0 {
		c.Workflow.Workers = defaultWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
