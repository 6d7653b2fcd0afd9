package services

import (
	"context"
	"errors"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	ctx = WithChapter(ctx, "CIR")
	ctx = WithRecord(ctx, "heartworm-disease")
	ctx = WithStage(ctx, "match")
	ctx = WithRunID(ctx, "run-1")

	if got, ok := ChapterFromContext(ctx); !ok || got != "CIR" {
		t.Errorf("ChapterFromContext = %q, %v", got, ok)
	}
	if got, ok := RecordFromContext(ctx); !ok || got != "heartworm-disease" {
		t.Errorf("RecordFromContext = %q, %v", got, ok)
	}
	if got, ok := StageFromContext(ctx); !ok || got != "match" {
		t.Errorf("StageFromContext = %q, %v", got, ok)
	}
	if got, ok := RunIDFromContext(ctx); !ok || got != "run-1" {
		t.Errorf("RunIDFromContext = %q, %v", got, ok)
	}
}

func TestContextEmptyValuesIgnored(t *testing.T) {
	ctx := WithChapter(context.Background(), "")
	if _, ok := ChapterFromContext(ctx); ok {
		t.Error("expected empty chapter to be absent")
	}
	if _, ok := ChapterFromContext(nil); ok {
		t.Error("expected nil context to yield nothing")
	}
}

func TestWrapClassification(t *testing.T) {
	err := Wrap(ErrSource, "extract", "read chapter", "CIR", errors.New("boom"))
	if !errors.Is(err, ErrSource) {
		t.Errorf("expected ErrSource marker, got %v", err)
	}
	if IsFatal(err) {
		t.Error("source errors must not be fatal")
	}
	cfgErr := Wrap(ErrConfiguration, "", "", "bad chapters", nil)
	if !IsFatal(cfgErr) {
		t.Error("configuration errors must be fatal")
	}
	if !IsFatal(context.Canceled) {
		t.Error("cancellation must abort the run")
	}
	if IsFatal(Wrap(ErrNotFound, "extract", "read chapter", "TOX", nil)) {
		t.Error("missing units must be skippable")
	}
}
