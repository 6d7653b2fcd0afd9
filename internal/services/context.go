package services

import "context"

type contextKey string

const (
	chapterKey contextKey = "chapter"
	recordKey  contextKey = "record"
	stageKey   contextKey = "stage"
	runIDKey   contextKey = "run_id"
)

// WithChapter annotates context with a chapter code.
func WithChapter(ctx context.Context, code string) context.Context {
	if code == "" {
		return ctx
	}
	return context.WithValue(ctx, chapterKey, code)
}

// ChapterFromContext returns the chapter code if present.
func ChapterFromContext(ctx context.Context) (string, bool) {
	return stringFromContext(ctx, chapterKey)
}

// WithRecord annotates context with a catalog record id.
func WithRecord(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, recordKey, id)
}

// RecordFromContext returns the record id if present.
func RecordFromContext(ctx context.Context) (string, bool) {
	return stringFromContext(ctx, recordKey)
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	return stringFromContext(ctx, stageKey)
}

// WithRunID annotates context with the pipeline run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext returns the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	return stringFromContext(ctx, runIDKey)
}

func stringFromContext(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if str, ok := ctx.Value(key).(string); ok && str != "" {
		return str, true
	}
	return "", false
}
