package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"refmatch/internal/segment"
	"refmatch/internal/services"
)

// SectionArtifact is one full-text section in a chapter artifact file.
type SectionArtifact struct {
	Title     string `json:"title"`
	StartPage int    `json:"startPage"`
	Text      string `json:"text"`
}

// IndexSection is the per-section summary stored in the index artifact.
type IndexSection struct {
	Title       string `json:"title"`
	StartPage   int    `json:"startPage"`
	TextLength  int    `json:"textLength"`
	TextPreview string `json:"textPreview"`
}

// IndexChapter summarizes one chapter's segmentation outcome.
type IndexChapter struct {
	Name         string         `json:"name"`
	SectionCount int            `json:"sectionCount"`
	Sections     []IndexSection `json:"sections"`
}

// Index maps chapter codes to their segmentation summaries.
type Index map[string]IndexChapter

const indexFileName = "index.json"

func sectionsFileName(code string) string {
	return strings.ToUpper(code) + "-sections.json"
}

// WriteChapterSections writes the full-text artifact for one chapter.
func WriteChapterSections(dir, code string, sections []SectionArtifact) (string, error) {
	path := filepath.Join(dir, sectionsFileName(code))
	if err := writeJSONFile(path, sections); err != nil {
		return "", err
	}
	return path, nil
}

// WriteIndex writes the cross-chapter index artifact.
func WriteIndex(dir string, index Index) (string, error) {
	path := filepath.Join(dir, indexFileName)
	if err := writeJSONFile(path, index); err != nil {
		return "", err
	}
	return path, nil
}

// ReadIndex loads a previously written index artifact.
func ReadIndex(dir string) (Index, error) {
	data, err := os.ReadFile(filepath.Join(dir, indexFileName))
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "pipeline", "read index", "no section index; run extraction first", err)
	}
	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	return index, nil
}

// LoadSections reads every chapter artifact in dir and rebuilds the
// section list the matcher consumes. The chapter code comes from the
// artifact file name.
func LoadSections(dir string) ([]segment.Section, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*-sections.json"))
	if err != nil {
		return nil, fmt.Errorf("glob section artifacts: %w", err)
	}
	if len(paths) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "pipeline", "load sections", "no section artifacts; run extraction first", nil)
	}
	sort.Strings(paths)

	var sections []segment.Section
	for _, path := range paths {
		code := strings.TrimSuffix(filepath.Base(path), "-sections.json")

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read sections %s: %w", code, err)
		}
		var artifacts []SectionArtifact
		if err := json.Unmarshal(data, &artifacts); err != nil {
			return nil, fmt.Errorf("parse sections %s: %w", code, err)
		}
		for _, artifact := range artifacts {
			sections = append(sections, segment.Section{
				Title:     artifact.Title,
				Chapter:   code,
				StartPage: artifact.StartPage,
				Body:      artifact.Text,
			})
		}
	}
	return sections, nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
