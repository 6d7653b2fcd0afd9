package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"refmatch/internal/config"
	"refmatch/internal/logging"
	"refmatch/internal/services"
	"refmatch/internal/store"
)

const lockFileName = "refmatch.lock"

// Pipeline runs the extraction and matching stages against one config.
// The store is optional; without it runs are not recorded.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
}

// New builds a pipeline. A nil logger disables logging.
func New(cfg *config.Config, logger *slog.Logger, st *store.Store) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{cfg: cfg, logger: logger, store: st}
}

// RunSummary combines both stage summaries for a full run.
type RunSummary struct {
	RunID   string
	Extract *ExtractSummary
	Match   *MatchOutcome
}

// Extract segments every configured chapter and writes the section
// artifacts. Chapters whose text file is missing are skipped.
func (p *Pipeline) Extract(ctx context.Context) (*ExtractSummary, error) {
	var summary *ExtractSummary
	err := p.withLock(func() error {
		runID, err := p.beginRun(ctx)
		if err != nil {
			return err
		}
		summary, err = p.extract(services.WithRunID(ctx, runID), runID)
		if err != nil {
			p.failRun(ctx, runID, err)
			return err
		}
		return p.finishRun(ctx, runID, store.Totals{
			ChaptersProcessed: summary.ChaptersProcessed,
			SectionsFound:     summary.SectionsFound,
			SectionsSkipped:   summary.SectionsFound - summary.SectionsKept,
		})
	})
	return summary, err
}

// Match loads the section artifacts and the catalog, scores every
// record against the section pool, and writes the match report.
func (p *Pipeline) Match(ctx context.Context) (*MatchOutcome, error) {
	var outcome *MatchOutcome
	err := p.withLock(func() error {
		runID, err := p.beginRun(ctx)
		if err != nil {
			return err
		}
		outcome, err = p.match(services.WithRunID(ctx, runID), runID)
		if err != nil {
			p.failRun(ctx, runID, err)
			return err
		}
		return p.finishRun(ctx, runID, store.Totals{
			RecordsTotal:   outcome.RecordsTotal,
			RecordsMatched: outcome.Matched,
		})
	})
	return outcome, err
}

// Run executes extraction and matching back to back under one lock and
// one recorded run.
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	var summary *RunSummary
	err := p.withLock(func() error {
		runID, err := p.beginRun(ctx)
		if err != nil {
			return err
		}
		ctx := services.WithRunID(ctx, runID)

		extract, err := p.extract(ctx, runID)
		if err != nil {
			p.failRun(ctx, runID, err)
			return err
		}
		outcome, err := p.match(ctx, runID)
		if err != nil {
			p.failRun(ctx, runID, err)
			return err
		}

		summary = &RunSummary{RunID: runID, Extract: extract, Match: outcome}
		return p.finishRun(ctx, runID, store.Totals{
			ChaptersProcessed: extract.ChaptersProcessed,
			SectionsFound:     extract.SectionsFound,
			SectionsSkipped:   extract.SectionsFound - extract.SectionsKept,
			RecordsTotal:      outcome.RecordsTotal,
			RecordsMatched:    outcome.Matched,
		})
	})
	return summary, err
}

// withLock serializes runs that share an output directory.
func (p *Pipeline) withLock(fn func() error) error {
	if err := p.cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "pipeline", "ensure directories", "", err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.OutputDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return errors.New("another run is already in progress for this output directory")
	}
	defer func() {
		_ = lock.Unlock()
	}()

	return fn()
}

func (p *Pipeline) workers() int {
	if p.cfg.Workflow.Workers <= 0 {
		return 1
	}
	return p.cfg.Workflow.Workers
}

func (p *Pipeline) beginRun(ctx context.Context) (string, error) {
	if p.store == nil {
		return uuid.NewString(), nil
	}
	run, err := p.store.StartRun(ctx)
	if err != nil {
		return "", fmt.Errorf("record run start: %w", err)
	}
	return run.ID, nil
}

func (p *Pipeline) finishRun(ctx context.Context, runID string, totals store.Totals) error {
	if p.store == nil {
		return nil
	}
	if err := p.store.FinishRun(ctx, runID, totals); err != nil {
		return fmt.Errorf("record run finish: %w", err)
	}
	return nil
}

func (p *Pipeline) failRun(ctx context.Context, runID string, cause error) {
	if p.store == nil {
		return
	}
	if err := p.store.FailRun(ctx, runID, cause.Error()); err != nil {
		p.logger.Error("failed to record run failure",
			logging.String("run_id", runID),
			logging.Error(err))
	}
}
