package store

import (
	"context"
	"fmt"
)

// AddSections records the section index produced for one or more
// chapters. Rows are inserted in a single transaction so a failed run
// never leaves a partial chapter behind.
func (s *Store) AddSections(ctx context.Context, runID string, rows []SectionRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sections tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO sections (run_id, chapter, title, start_page, length, preview, matchable)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare section insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(
			ctx,
			runID,
			row.Chapter,
			row.Title,
			row.StartPage,
			row.Length,
			row.Preview,
			boolToInt(row.Matchable),
		); err != nil {
			return fmt.Errorf("insert section %q: %w", row.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sections: %w", err)
	}
	return nil
}

// SectionsForRun returns the section index for a run, optionally
// restricted to one chapter code. Rows come back in insertion order.
func (s *Store) SectionsForRun(ctx context.Context, runID, chapter string) ([]SectionRow, error) {
	query := `SELECT id, run_id, chapter, title, start_page, length, preview, matchable
        FROM sections WHERE run_id = ?`
	args := []any{runID}
	if chapter != "" {
		query += ` AND chapter = ?`
		args = append(args, chapter)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sections: %w", err)
	}
	defer rows.Close()

	var sections []SectionRow
	for rows.Next() {
		var (
			row       SectionRow
			matchable int
		)
		if err := rows.Scan(&row.ID, &row.RunID, &row.Chapter, &row.Title, &row.StartPage, &row.Length, &row.Preview, &matchable); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		row.Matchable = matchable != 0
		sections = append(sections, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}
	return sections, nil
}

// AddMatchSummaries records the per-record matching outcome for a run.
func (s *Store) AddMatchSummaries(ctx context.Context, runID string, summaries []MatchSummary) error {
	if len(summaries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin summaries tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT OR REPLACE INTO match_summaries
            (run_id, record_id, record_name, category, match_count, best_score, best_title, best_chapter)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare summary insert: %w", err)
	}
	defer stmt.Close()

	for _, summary := range summaries {
		if _, err := stmt.ExecContext(
			ctx,
			runID,
			summary.RecordID,
			summary.RecordName,
			nullableString(summary.Category),
			summary.MatchCount,
			summary.BestScore,
			nullableString(summary.BestTitle),
			nullableString(summary.BestChapter),
		); err != nil {
			return fmt.Errorf("insert summary %s: %w", summary.RecordID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit summaries: %w", err)
	}
	return nil
}

// MatchSummariesForRun returns the recorded outcomes for a run ordered
// by best score descending, then record id.
func (s *Store) MatchSummariesForRun(ctx context.Context, runID string) ([]MatchSummary, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, record_id, record_name, category, match_count, best_score, best_title, best_chapter
         FROM match_summaries WHERE run_id = ?
         ORDER BY best_score DESC, record_id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var summaries []MatchSummary
	for rows.Next() {
		summary, err := scanMatchSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}
	return summaries, nil
}
