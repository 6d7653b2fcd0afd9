package store

import (
	"database/sql"
	"errors"
	"time"
)

const runColumns = "id, status, started_at, finished_at, chapters_processed, sections_found, sections_skipped, records_total, records_matched, error_message"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id          string
		statusStr   string
		startedRaw  sql.NullString
		finishedRaw sql.NullString
		chapters    int
		found       int
		skipped     int
		total       int
		matched     int
		errMessage  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&statusStr,
		&startedRaw,
		&finishedRaw,
		&chapters,
		&found,
		&skipped,
		&total,
		&matched,
		&errMessage,
	); err != nil {
		return nil, err
	}

	run := &Run{
		ID:                id,
		Status:            RunStatus(statusStr),
		ChaptersProcessed: chapters,
		SectionsFound:     found,
		SectionsSkipped:   skipped,
		RecordsTotal:      total,
		RecordsMatched:    matched,
		ErrorMessage:      errMessage.String,
	}

	if started, err := parseTimeString(startedRaw.String); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return run, nil
}

func scanMatchSummary(scanner interface{ Scan(dest ...any) error }) (MatchSummary, error) {
	var (
		summary  MatchSummary
		category sql.NullString
		title    sql.NullString
		chapter  sql.NullString
	)
	if err := scanner.Scan(
		&summary.RunID,
		&summary.RecordID,
		&summary.RecordName,
		&category,
		&summary.MatchCount,
		&summary.BestScore,
		&title,
		&chapter,
	); err != nil {
		return MatchSummary{}, err
	}
	summary.Category = category.String
	summary.BestTitle = title.String
	summary.BestChapter = chapter.String
	return summary, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
