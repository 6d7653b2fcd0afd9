package enrich

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"refmatch/internal/catalog"
	"refmatch/internal/config"
	"refmatch/internal/match"
)

func writeRecordFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write record: %v", err)
	}
	return path
}

func matchingDefaults() config.Matching {
	return config.Default().Matching
}

func TestStampRefsWritesBestMatch(t *testing.T) {
	dir := t.TempDir()
	path := writeRecordFile(t, dir, "heartworm-disease.yaml", sampleRecordYAML)

	records := []catalog.Record{{Slug: "heartworm-disease", Name: "Heartworm Disease", Path: path}}
	report := match.Report{
		"heartworm-disease": {
			Name: "Heartworm Disease", BestScore: 1.0, MatchCount: 2,
			Matches: []match.Match{
				{Title: "HEARTWORM DISEASE", Chapter: "CIR", StartPage: 57, Score: 1.0},
				{Title: "PULMONARY DISORDERS", Chapter: "RES", StartPage: 1210, Score: 0.9},
			},
		},
	}

	enricher := NewEnricher(matchingDefaults(), nil)
	changes, skipped, err := enricher.StampRefs(records, report)
	if err != nil {
		t.Fatalf("StampRefs: %v", err)
	}
	if len(changes) != 1 || skipped != 0 {
		t.Fatalf("changes=%d skipped=%d", len(changes), skipped)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, `sectionTitle: "HEARTWORM DISEASE"`) || !strings.Contains(content, "page: 57") {
		t.Errorf("best match not stamped:\n%s", content)
	}
	if strings.Contains(content, "PULMONARY") {
		t.Error("expected only the best match to be stamped")
	}

	// A second pass must leave the file alone.
	_, skipped, err = enricher.StampRefs(records, report)
	if err != nil {
		t.Fatalf("StampRefs second pass: %v", err)
	}
	if skipped != 1 {
		t.Errorf("expected second pass to skip, got skipped=%d", skipped)
	}
}

func TestEnrichRecordsAddsDifferentials(t *testing.T) {
	dir := t.TempDir()
	path := writeRecordFile(t, dir, "heartworm-disease.yaml", sampleRecordYAML)

	records := []catalog.Record{{Slug: "heartworm-disease", Name: "Heartworm Disease", Path: path}}
	report := match.Report{
		"heartworm-disease": {
			Name: "Heartworm Disease", BestScore: 0.9, MatchCount: 1,
			Matches: []match.Match{{
				Text: "Must be differentiated from feline asthma, chronic bronchitis, and lungworm infection.",
			}},
		},
	}

	enricher := NewEnricher(matchingDefaults(), nil)
	changes, err := enricher.EnrichRecords(records, report)
	if err != nil {
		t.Fatalf("EnrichRecords: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{"differentialDiagnoses:", "- Feline Asthma", "- Chronic Bronchitis", "- Lungworm Infection"} {
		if !strings.Contains(content, want) {
			t.Errorf("missing %q in:\n%s", want, content)
		}
	}
}

func TestEnrichRecordsSkipsLowScores(t *testing.T) {
	dir := t.TempDir()
	path := writeRecordFile(t, dir, "low.yaml", sampleRecordYAML)

	records := []catalog.Record{{Slug: "low", Name: "Low", Path: path}}
	report := match.Report{
		"low": {
			Name: "Low", BestScore: 0.6, MatchCount: 1,
			Matches: []match.Match{{Text: "Must be differentiated from feline asthma, and chronic bronchitis."}},
		},
	}

	changes, err := NewEnricher(matchingDefaults(), nil).EnrichRecords(records, report)
	if err != nil {
		t.Fatalf("EnrichRecords: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("low-score record must not change, got %v", changes)
	}
}

func TestEnrichRecordsNeedsTwoDifferentials(t *testing.T) {
	dir := t.TempDir()
	path := writeRecordFile(t, dir, "single.yaml", sampleRecordYAML)

	records := []catalog.Record{{Slug: "single", Name: "Single", Path: path}}
	report := match.Report{
		"single": {
			Name: "Single", BestScore: 1.0, MatchCount: 1,
			Matches: []match.Match{{Text: "Must be differentiated from pneumonia."}},
		},
	}

	changes, err := NewEnricher(matchingDefaults(), nil).EnrichRecords(records, report)
	if err != nil {
		t.Fatalf("EnrichRecords: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("single differential must not trigger a rewrite, got %v", changes)
	}
}
