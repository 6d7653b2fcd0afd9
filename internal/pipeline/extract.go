package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"refmatch/internal/config"
	"refmatch/internal/document"
	"refmatch/internal/logging"
	"refmatch/internal/segment"
	"refmatch/internal/services"
	"refmatch/internal/store"
)

// ExtractSummary reports what the extraction stage produced.
type ExtractSummary struct {
	RunID             string
	ChaptersProcessed int
	ChaptersSkipped   int
	SectionsFound     int
	SectionsKept      int
	IndexPath         string
}

type chapterResult struct {
	chapter  config.Chapter
	sections []segment.Section
	skipped  bool
}

func (p *Pipeline) extract(ctx context.Context, runID string) (*ExtractSummary, error) {
	ctx = services.WithStage(ctx, "extract")
	logger := logging.WithContext(ctx, p.logger)

	reader := document.NewTextDir(p.cfg.Paths.ManualDir)
	segmenter := segment.New(segment.DefaultRules()...)
	minChars := p.cfg.Segmentation.MinSectionChars

	results := make([]chapterResult, len(p.cfg.Chapters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for i, chapter := range p.cfg.Chapters {
		i, chapter := i, chapter
		g.Go(func() error {
			chapterCtx := services.WithChapter(gctx, chapter.Code)
			chapterLogger := logging.WithContext(chapterCtx, p.logger)

			pages, err := reader.Pages(chapterCtx, chapter)
			if err != nil {
				if services.IsFatal(err) {
					return err
				}
				// Missing or unparseable chapter text skips the unit;
				// the remaining chapters still produce artifacts.
				chapterLogger.Warn("chapter text unusable, skipping",
					logging.String("path", reader.Path(chapter.Code)),
					logging.Error(err))
				results[i] = chapterResult{chapter: chapter, skipped: true}
				return nil
			}

			sections := segmenter.Segment(chapter.Code, pages)
			results[i] = chapterResult{chapter: chapter, sections: sections}

			kept := make([]SectionArtifact, 0, len(sections))
			for _, section := range sections {
				if section.Length() <= minChars {
					continue
				}
				kept = append(kept, SectionArtifact{
					Title:     section.Title,
					StartPage: section.StartPage,
					Text:      section.Body,
				})
			}
			if _, err := WriteChapterSections(p.cfg.Paths.SectionsDir, chapter.Code, kept); err != nil {
				return err
			}

			chapterLogger.Info("chapter segmented",
				logging.Int("sections", len(sections)),
				logging.Int("kept", len(kept)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &ExtractSummary{RunID: runID}
	index := make(Index, len(results))
	var rows []store.SectionRow

	for _, result := range results {
		if result.skipped {
			summary.ChaptersSkipped++
			continue
		}
		summary.ChaptersProcessed++

		entry := IndexChapter{
			Name:         result.chapter.Name,
			SectionCount: len(result.sections),
			Sections:     make([]IndexSection, 0, len(result.sections)),
		}
		for _, section := range result.sections {
			summary.SectionsFound++
			matchable := section.Length() > minChars
			if matchable {
				summary.SectionsKept++
			}
			entry.Sections = append(entry.Sections, IndexSection{
				Title:       section.Title,
				StartPage:   section.StartPage,
				TextLength:  section.Length(),
				TextPreview: section.Preview(p.cfg.Segmentation.PreviewChars),
			})
			rows = append(rows, store.SectionRow{
				Chapter:   result.chapter.Code,
				Title:     section.Title,
				StartPage: section.StartPage,
				Length:    section.Length(),
				Preview:   section.Preview(p.cfg.Segmentation.PreviewChars),
				Matchable: matchable,
			})
		}
		index[result.chapter.Code] = entry
	}

	indexPath, err := WriteIndex(p.cfg.Paths.SectionsDir, index)
	if err != nil {
		return nil, err
	}
	summary.IndexPath = indexPath

	if p.store != nil {
		if err := p.store.AddSections(ctx, runID, rows); err != nil {
			return nil, err
		}
	}

	logger.Info("extraction complete",
		logging.Int("chapters", summary.ChaptersProcessed),
		logging.Int("chapters_skipped", summary.ChaptersSkipped),
		logging.Int("sections", summary.SectionsFound),
		logging.Int("kept", summary.SectionsKept))
	return summary, nil
}
