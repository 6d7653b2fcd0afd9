package enrich

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"refmatch/internal/catalog"
	"refmatch/internal/config"
	"refmatch/internal/logging"
	"refmatch/internal/match"
)

// ManualEdition is the manual edition recorded in stamped references.
const ManualEdition = 11

// StampRef appends a manualRef block to catalog file content. Content
// that already carries a reference is returned unchanged.
func StampRef(content string, ref catalog.ManualRef) (string, bool) {
	if strings.Contains(content, "manualRef:") {
		return content, false
	}
	block := fmt.Sprintf(
		"manualRef:\n  edition: %d\n  chapter: %q\n  sectionTitle: %q\n  page: %d\n",
		ref.Edition,
		ref.Chapter,
		ref.SectionTitle,
		ref.Page,
	)
	return strings.TrimRight(content, "\n") + "\n" + block, true
}

// InsertDifferentials adds a differentialDiagnoses list to catalog file
// content, placed before the manualRef block when one exists. Content
// that already lists differentials is returned unchanged.
func InsertDifferentials(content string, diffs []string) (string, bool) {
	if len(diffs) == 0 || strings.Contains(content, "differentialDiagnoses:") {
		return content, false
	}

	var sb strings.Builder
	sb.WriteString("differentialDiagnoses:\n")
	for _, diff := range diffs {
		fmt.Fprintf(&sb, "  - %s\n", diff)
	}
	block := sb.String()

	if idx := strings.Index(content, "\nmanualRef:"); idx >= 0 {
		return content[:idx+1] + block + content[idx+1:], true
	}
	return strings.TrimRight(content, "\n") + "\n" + block, true
}

// FileChange describes one catalog file the enricher rewrote.
type FileChange struct {
	RecordID string
	Path     string
	Notes    []string
}

// Enricher applies manual-derived updates to catalog files on disk.
type Enricher struct {
	highScore float64
	language  string
	logger    *slog.Logger
}

// NewEnricher builds an enricher from matching configuration.
func NewEnricher(cfg config.Matching, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Enricher{
		highScore: cfg.HighScore,
		language:  cfg.AliasLanguage,
		logger:    logger,
	}
}

// StampRefs writes a manualRef block into every matched record's file,
// pointing at the best match. Files that already have one are counted
// as skipped.
func (e *Enricher) StampRefs(records []catalog.Record, report match.Report) (changes []FileChange, skipped int, err error) {
	for _, record := range records {
		set, ok := report[record.ID()]
		if !ok || len(set.Matches) == 0 {
			continue
		}
		best := set.Matches[0]
		ref := catalog.ManualRef{
			Edition:      ManualEdition,
			Chapter:      best.Chapter,
			SectionTitle: best.Title,
			Page:         best.StartPage,
		}

		content, readErr := os.ReadFile(record.Path)
		if readErr != nil {
			return changes, skipped, fmt.Errorf("read record %s: %w", record.ID(), readErr)
		}

		updated, changed := StampRef(string(content), ref)
		if !changed {
			skipped++
			continue
		}
		if writeErr := os.WriteFile(record.Path, []byte(updated), 0o644); writeErr != nil {
			return changes, skipped, fmt.Errorf("write record %s: %w", record.ID(), writeErr)
		}

		e.logger.Info("stamped manual reference",
			logging.String("record", record.ID()),
			logging.String("chapter", ref.Chapter),
			logging.Int("page", ref.Page))
		changes = append(changes, FileChange{
			RecordID: record.ID(),
			Path:     record.Path,
			Notes:    []string{fmt.Sprintf("added manualRef to %s page %d", ref.Chapter, ref.Page)},
		})
	}
	return changes, skipped, nil
}

// EnrichRecords extracts differential diagnoses from high-quality
// matched text and adds them to records that lack any. A record needs
// at least two extracted differentials before its file changes.
func (e *Enricher) EnrichRecords(records []catalog.Record, report match.Report) ([]FileChange, error) {
	var changes []FileChange
	for _, record := range records {
		set, ok := report[record.ID()]
		if !ok || set.BestScore < e.highScore {
			continue
		}

		texts := make([]string, 0, len(set.Matches))
		for _, m := range set.Matches {
			texts = append(texts, m.Text)
		}
		diffs := Differentials(strings.Join(texts, "\n"), set.Name)
		if len(diffs) < 2 {
			continue
		}
		titled := TitleDifferentials(diffs, e.language)

		content, readErr := os.ReadFile(record.Path)
		if readErr != nil {
			return changes, fmt.Errorf("read record %s: %w", record.ID(), readErr)
		}
		updated, changed := InsertDifferentials(string(content), titled)
		if !changed {
			continue
		}
		if writeErr := os.WriteFile(record.Path, []byte(updated), 0o644); writeErr != nil {
			return changes, fmt.Errorf("write record %s: %w", record.ID(), writeErr)
		}

		e.logger.Info("added differential diagnoses",
			logging.String("record", record.ID()),
			logging.Int("count", len(titled)))
		changes = append(changes, FileChange{
			RecordID: record.ID(),
			Path:     record.Path,
			Notes:    []string{fmt.Sprintf("added %d differential diagnoses", len(titled))},
		})
	}
	return changes, nil
}
