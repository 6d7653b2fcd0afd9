package match

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Report maps record id to its MatchSet. This shape is the hand-off
// contract consumed verbatim by the enrichment steps: field names, the
// top-K bound, and 3-decimal score rounding are all load-bearing.
type Report map[string]MatchSet

// WriteFile serializes the report as indented JSON.
func (r Report) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReadReport loads a previously written report.
func ReadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return report, nil
}

// Stats summarizes a report for operator output.
type Stats struct {
	Matched     int
	HighQuality int
	Buckets     map[string]int
}

// bucketNames is the score-distribution display order.
var bucketNames = []string{"1.0", "0.9+", "0.8+", "0.7+", "0.6+"}

// BucketNames returns the score-distribution bucket labels in display order.
func BucketNames() []string {
	return append([]string(nil), bucketNames...)
}

// Stats computes match counts and the best-score distribution. highScore
// is the quality bar (matches at or above it count as high quality).
func (r Report) Stats(highScore float64) Stats {
	stats := Stats{Buckets: make(map[string]int, len(bucketNames))}
	for _, set := range r {
		stats.Matched++
		if set.BestScore >= highScore {
			stats.HighQuality++
		}
		switch s := set.BestScore; {
		case s >= 1.0:
			stats.Buckets["1.0"]++
		case s >= 0.9:
			stats.Buckets["0.9+"]++
		case s >= 0.8:
			stats.Buckets["0.8+"]++
		case s >= 0.7:
			stats.Buckets["0.7+"]++
		default:
			stats.Buckets["0.6+"]++
		}
	}
	return stats
}

// RankedEntry pairs a record id with its match set for display.
type RankedEntry struct {
	ID  string
	Set MatchSet
}

// Ranked returns entries sorted by (best score desc, best match text
// length desc, id asc), truncated to n (n <= 0 means all).
func (r Report) Ranked(n int) []RankedEntry {
	entries := make([]RankedEntry, 0, len(r))
	for id, set := range r {
		entries = append(entries, RankedEntry{ID: id, Set: set})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Set.BestScore != b.Set.BestScore {
			return a.Set.BestScore > b.Set.BestScore
		}
		al, bl := 0, 0
		if len(a.Set.Matches) > 0 {
			al = a.Set.Matches[0].TextLength
		}
		if len(b.Set.Matches) > 0 {
			bl = b.Set.Matches[0].TextLength
		}
		if al != bl {
			return al > bl
		}
		return a.ID < b.ID
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
