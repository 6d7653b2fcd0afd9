package match

import (
	"strings"
	"testing"
	"unicode/utf8"

	"refmatch/internal/catalog"
	"refmatch/internal/config"
	"refmatch/internal/segment"
)

func testMatchingConfig() config.Matching {
	cfg := config.Default()
	return cfg.Matching
}

func section(title, chapter string, page int, body string) segment.Section {
	return segment.Section{Title: title, Chapter: chapter, StartPage: page, Body: body}
}

func TestMatchRecordExactTitle(t *testing.T) {
	pool := NewPool([]segment.Section{
		section("HEARTWORM DISEASE", "CIR", 57, "Caused by Dirofilaria immitis.\n"),
		section("CLINICAL SIGNS", "CIR", 57, "Cough and exercise intolerance.\n"),
	}, 500)
	m := NewMatcher(testMatchingConfig(), pool, nil)

	set, ok := m.MatchRecord(catalog.Record{Slug: "heartworm-disease", Name: "Heartworm Disease"})
	if !ok {
		t.Fatal("expected a match set")
	}
	if set.BestScore != 1.0 {
		t.Errorf("best score = %v, want 1.0", set.BestScore)
	}
	if set.Matches[0].Title != "HEARTWORM DISEASE" {
		t.Errorf("unexpected top match: %+v", set.Matches[0])
	}
	if set.Matches[0].MatchedTerm != "heartworm disease" {
		t.Errorf("unexpected matched term: %q", set.Matches[0].MatchedTerm)
	}
	if set.Matches[0].StartPage != 57 || set.Matches[0].Chapter != "CIR" {
		t.Errorf("match lost section location: %+v", set.Matches[0])
	}
}

func TestMatchRecordRankingOrder(t *testing.T) {
	// Scores 1.0, 0.9, 0.9, 0.6 with text lengths 10, 200, 100, 50:
	// expected order 1.0/10, 0.9/200, 0.9/100, 0.6/50.
	pool := NewPool([]segment.Section{
		section("PYOMETRA", "REP", 1400, strings.Repeat("a", 10)),
		section("PYOMETRA IN THE BITCH", "REP", 1401, strings.Repeat("b", 200)),
		section("CANINE PYOMETRA NOTES", "REP", 1402, strings.Repeat("c", 100)),
		section("UTERINE DISORDERS", "REP", 1403, "pyometra is described below "+strings.Repeat("d", 22)),
	}, 500)
	m := NewMatcher(testMatchingConfig(), pool, nil)

	set, ok := m.MatchRecord(catalog.Record{Slug: "pyometra", Name: "Pyometra"})
	if !ok {
		t.Fatal("expected a match set")
	}
	if len(set.Matches) != 4 {
		t.Fatalf("expected 4 matches, got %d: %+v", len(set.Matches), set.Matches)
	}
	wantScores := []float64{1.0, 0.9, 0.9, 0.6}
	wantLengths := []int{10, 200, 100, 50}
	for i, match := range set.Matches {
		if match.Score != wantScores[i] || match.TextLength != wantLengths[i] {
			t.Errorf("match[%d] = score %v length %d, want %v/%d",
				i, match.Score, match.TextLength, wantScores[i], wantLengths[i])
		}
	}
}

func TestMatchRecordTopKBound(t *testing.T) {
	sections := make([]segment.Section, 0, 8)
	for i := 0; i < 8; i++ {
		sections = append(sections, section("FELINE LEUKEMIA", "GEN", 700+i, strings.Repeat("x", 100+i)))
	}
	pool := NewPool(sections, 500)
	m := NewMatcher(testMatchingConfig(), pool, nil)

	set, ok := m.MatchRecord(catalog.Record{Slug: "feline-leukemia", Name: "Feline Leukemia"})
	if !ok {
		t.Fatal("expected a match set")
	}
	if len(set.Matches) != 5 {
		t.Errorf("expected top-5 bound, got %d matches", len(set.Matches))
	}
	if set.MatchCount != 5 {
		t.Errorf("matchCount = %d, want 5", set.MatchCount)
	}
}

func TestMatchRecordNoQualifyingMatches(t *testing.T) {
	pool := NewPool([]segment.Section{
		section("HEARTWORM DISEASE", "CIR", 57, "Caused by Dirofilaria immitis.\n"),
	}, 500)
	m := NewMatcher(testMatchingConfig(), pool, nil)

	if _, ok := m.MatchRecord(catalog.Record{Slug: "osteosarcoma", Name: "Osteosarcoma"}); ok {
		t.Error("expected no match set for unrelated record")
	}
}

func TestMatchRecordNoUsableTerms(t *testing.T) {
	pool := NewPool(nil, 500)
	m := NewMatcher(testMatchingConfig(), pool, nil)

	if _, ok := m.MatchRecord(catalog.Record{Slug: "ab", Name: "AB"}); ok {
		t.Error("expected no match set for record without terms")
	}
}

func TestMatchRecordBodyWindowLimit(t *testing.T) {
	// The term appears in the body only beyond the 500-character window.
	body := strings.Repeat("z", 600) + " heartworm disease"
	pool := NewPool([]segment.Section{section("UNRELATED TITLE HERE", "CIR", 60, body)}, 500)
	m := NewMatcher(testMatchingConfig(), pool, nil)

	if _, ok := m.MatchRecord(catalog.Record{Slug: "heartworm-disease", Name: "Heartworm Disease"}); ok {
		t.Error("term beyond the body window must not match")
	}
}

func TestPoolWindowKeepsRuneBoundary(t *testing.T) {
	// A two-byte rune straddles the window edge; trimming must back off
	// rather than keep half the sequence.
	body := strings.Repeat("z", 499) + "é" + strings.Repeat("z", 100)
	pool := NewPool([]segment.Section{section("UNRELATED TITLE HERE", "CIR", 60, body)}, 500)

	window := pool.candidates[0].bodyWindow
	if !utf8.ValidString(window) {
		t.Fatalf("window is not valid UTF-8: %q", window[len(window)-4:])
	}
	if len(window) != 499 {
		t.Errorf("window length = %d, want 499", len(window))
	}
}

func TestMatchRecordFirstTermWinsTies(t *testing.T) {
	pool := NewPool([]segment.Section{
		section("UNRELATED HEADING HERE", "CIR", 61, "both heartworm disease and dirofilariasis appear early"),
	}, 500)
	m := NewMatcher(testMatchingConfig(), pool, nil)

	set, ok := m.MatchRecord(catalog.Record{
		Slug:    "heartworm-disease",
		Name:    "Heartworm Disease",
		Aliases: []catalog.Alias{{Alias: "Dirofilariasis"}},
	})
	if !ok {
		t.Fatal("expected a match set")
	}
	if set.Matches[0].MatchedTerm != "heartworm disease" {
		t.Errorf("tie should keep first-derived term, got %q", set.Matches[0].MatchedTerm)
	}
}

func TestPoolDeterministicOrder(t *testing.T) {
	a := NewPool([]segment.Section{
		section("B TITLE SECTION", "DIG", 200, "body"),
		section("A TITLE SECTION", "CIR", 50, "body"),
	}, 500)
	b := NewPool([]segment.Section{
		section("A TITLE SECTION", "CIR", 50, "body"),
		section("B TITLE SECTION", "DIG", 200, "body"),
	}, 500)
	if a.Size() != 2 || b.Size() != 2 {
		t.Fatal("unexpected pool sizes")
	}
	for i := range a.candidates {
		if a.candidates[i].section.Title != b.candidates[i].section.Title {
			t.Errorf("pool order depends on input order at %d", i)
		}
	}
}
