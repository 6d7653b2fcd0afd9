package pipeline

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"refmatch/internal/catalog"
	"refmatch/internal/logging"
	"refmatch/internal/match"
	"refmatch/internal/services"
	"refmatch/internal/store"
)

// ReportFileName is the match report artifact written to the output
// directory.
const ReportFileName = "matches.json"

// MatchOutcome reports what the matching stage produced.
type MatchOutcome struct {
	RunID          string
	RecordsTotal   int
	RecordsSkipped int
	Matched        int
	HighQuality    int
	ReportPath     string
	Report         match.Report
}

func (p *Pipeline) match(ctx context.Context, runID string) (*MatchOutcome, error) {
	ctx = services.WithStage(ctx, "match")
	logger := logging.WithContext(ctx, p.logger)

	loaded, err := catalog.LoadDir(p.cfg.Paths.CatalogDir)
	if err != nil {
		return nil, err
	}
	sections, err := LoadSections(p.cfg.Paths.SectionsDir)
	if err != nil {
		return nil, err
	}

	pool := match.NewPool(sections, p.cfg.Matching.BodyWindow)
	matcher := match.NewMatcher(p.cfg.Matching, pool, p.logger)
	logger.Info("matching records",
		logging.Int("records", len(loaded.Records)),
		logging.Int("sections", pool.Size()))

	type recordResult struct {
		id  string
		set match.MatchSet
		ok  bool
	}
	results := make([]recordResult, len(loaded.Records))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for i, record := range loaded.Records {
		i, record := i, record
		g.Go(func() error {
			set, ok := matcher.MatchRecord(record)
			results[i] = recordResult{id: record.ID(), set: set, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := make(match.Report, len(results))
	for _, result := range results {
		if result.ok {
			report[result.id] = result.set
		}
	}

	reportPath := filepath.Join(p.cfg.Paths.OutputDir, ReportFileName)
	if err := report.WriteFile(reportPath); err != nil {
		return nil, err
	}

	stats := report.Stats(p.cfg.Matching.HighScore)
	outcome := &MatchOutcome{
		RunID:          runID,
		RecordsTotal:   len(loaded.Records),
		RecordsSkipped: loaded.Skipped,
		Matched:        stats.Matched,
		HighQuality:    stats.HighQuality,
		ReportPath:     reportPath,
		Report:         report,
	}

	if p.store != nil {
		summaries := make([]store.MatchSummary, 0, len(report))
		for _, result := range results {
			if !result.ok {
				continue
			}
			summary := store.MatchSummary{
				RecordID:   result.id,
				RecordName: result.set.Name,
				Category:   result.set.Category,
				MatchCount: result.set.MatchCount,
				BestScore:  result.set.BestScore,
			}
			if len(result.set.Matches) > 0 {
				summary.BestTitle = result.set.Matches[0].Title
				summary.BestChapter = result.set.Matches[0].Chapter
			}
			summaries = append(summaries, summary)
		}
		if err := p.store.AddMatchSummaries(ctx, runID, summaries); err != nil {
			return nil, err
		}
	}

	logger.Info("matching complete",
		logging.Int("matched", outcome.Matched),
		logging.Int("high_quality", outcome.HighQuality),
		logging.Int("records_skipped", outcome.RecordsSkipped))
	return outcome, nil
}
