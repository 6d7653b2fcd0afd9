package enrich

import (
	"fmt"
	"strings"
	"testing"
)

func TestSearchFindsTermWithContext(t *testing.T) {
	chapters := map[string]string{
		"CIR": "--- PAGE 57 ---\nBackground text. Heartworm disease affects dogs worldwide. More text follows.",
	}
	hits := Searcher{MinTermLength: 4}.Search([]string{"heartworm disease"}, chapters)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	hit := hits[0]
	if hit.Chapter != "CIR" || hit.Page != 57 || hit.Term != "heartworm disease" {
		t.Errorf("unexpected hit: %+v", hit)
	}
	if !strings.Contains(hit.Context, "Heartworm disease affects dogs") {
		t.Errorf("context missing match: %q", hit.Context)
	}
}

func TestSearchDropsShortTerms(t *testing.T) {
	chapters := map[string]string{"CIR": "--- PAGE 1 ---\ndcm is mentioned here."}
	if hits := (Searcher{MinTermLength: 4}).Search([]string{"dcm"}, chapters); len(hits) != 0 {
		t.Errorf("expected short term to be skipped, got %v", hits)
	}
}

func TestSearchDeduplicatesByPage(t *testing.T) {
	text := "--- PAGE 3 ---\npyometra here and pyometra again on the same page."
	chapters := map[string]string{"REP": text}
	hits := Searcher{MinTermLength: 4}.Search([]string{"pyometra"}, chapters)
	if len(hits) != 1 {
		t.Errorf("expected page-level dedupe, got %d hits", len(hits))
	}
}

func TestSearchCapsHitsPerChapter(t *testing.T) {
	var sb strings.Builder
	for page := 1; page <= 5; page++ {
		fmt.Fprintf(&sb, "--- PAGE %d ---\npyometra appears on this page.\n", page)
	}
	chapters := map[string]string{"REP": sb.String()}
	hits := Searcher{MinTermLength: 4}.Search([]string{"pyometra"}, chapters)
	if len(hits) != 3 {
		t.Errorf("expected at most 3 hits per term per chapter, got %d", len(hits))
	}
}

func TestSearchOrdersChapters(t *testing.T) {
	chapters := map[string]string{
		"TOX": "--- PAGE 900 ---\nanticoagulant toxicity described here.",
		"DIG": "--- PAGE 150 ---\nanticoagulant effects on digestion.",
	}
	hits := Searcher{MinTermLength: 4}.Search([]string{"anticoagulant"}, chapters)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Chapter != "DIG" || hits[1].Chapter != "TOX" {
		t.Errorf("chapters not in sorted order: %s, %s", hits[0].Chapter, hits[1].Chapter)
	}
}
