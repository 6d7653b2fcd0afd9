package enrich

import (
	"sort"
	"strings"

	"refmatch/internal/document"
)

const (
	contextBefore      = 300
	contextAfter       = 500
	maxHitsPerTermScan = 3
)

// ContextHit is one verbatim term occurrence inside chapter text, with
// surrounding context for review. Hits back up records the section
// matcher could not place.
type ContextHit struct {
	Chapter string `json:"chapter"`
	Term    string `json:"term"`
	Page    int    `json:"page"`
	Context string `json:"context"`
}

// Searcher locates raw term occurrences across full chapter texts.
type Searcher struct {
	// MinTermLength drops short terms that would flood the scan.
	MinTermLength int
}

// Search scans every chapter for every term. At most three hits per
// term per chapter are taken, and hits landing on an already-seen
// (chapter, page) pair are dropped.
func (s Searcher) Search(terms []string, chapters map[string]string) []ContextHit {
	codes := make([]string, 0, len(chapters))
	for code := range chapters {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	type pageKey struct {
		chapter string
		page    int
	}

	var hits []ContextHit
	seen := make(map[pageKey]struct{})
	for _, code := range codes {
		text := chapters[code]
		lower := strings.ToLower(text)

		for _, term := range terms {
			if len(term) < s.MinTermLength {
				continue
			}
			needle := strings.ToLower(term)

			offset := 0
			for found := 0; found < maxHitsPerTermScan; found++ {
				idx := strings.Index(lower[offset:], needle)
				if idx < 0 {
					break
				}
				idx += offset
				offset = idx + len(needle)

				start := idx - contextBefore
				if start < 0 {
					start = 0
				}
				end := idx + len(needle) + contextAfter
				if end > len(text) {
					end = len(text)
				}

				page := document.PageAt(text, idx)
				key := pageKey{chapter: code, page: page}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}

				hits = append(hits, ContextHit{
					Chapter: code,
					Term:    term,
					Page:    page,
					Context: strings.TrimSpace(text[start:end]),
				})
			}
		}
	}
	return hits
}
