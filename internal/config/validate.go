package config

import (
	"errors"
	"fmt"
	"sort"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateChapters(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateChapters() error {
	if len(c.Chapters) == 0 {
		return errors.New("chapters must define at least one page range")
	}
	seen := make(map[string]struct{}, len(c.Chapters))
	ordered := make([]Chapter, len(c.Chapters))
	copy(ordered, c.Chapters)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].StartPage < ordered[j].StartPage })
	for i, ch := range ordered {
		if ch.Code == "" {
			return errors.New("chapters: every entry requires a code")
		}
		if _, dup := seen[ch.Code]; dup {
			return fmt.Errorf("chapters: duplicate code %q", ch.Code)
		}
		seen[ch.Code] = struct{}{}
		if ch.StartPage < 1 {
			return fmt.Errorf("chapters: %s start_page must be >= 1", ch.Code)
		}
		if ch.EndPage <= ch.StartPage {
			return fmt.Errorf("chapters: %s end_page must be greater than start_page", ch.Code)
		}
		if i > 0 && ch.StartPage < ordered[i-1].EndPage {
			return fmt.Errorf("chapters: %s overlaps %s", ch.Code, ordered[i-1].Code)
		}
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.MinScore < 0 || c.Matching.MinScore > 1 {
		return errors.New("matching.min_score must be between 0 and 1")
	}
	if c.Matching.FuzzyThreshold < 0 || c.Matching.FuzzyThreshold > 1 {
		return errors.New("matching.fuzzy_threshold must be between 0 and 1")
	}
	if c.Matching.FuzzyWeight < 0 || c.Matching.FuzzyWeight > 1 {
		return errors.New("matching.fuzzy_weight must be between 0 and 1")
	}
	if c.Matching.HighScore < c.Matching.MinScore || c.Matching.HighScore > 1 {
		return errors.New("matching.high_score must be between min_score and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
