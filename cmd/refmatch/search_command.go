package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"refmatch/internal/catalog"
	"refmatch/internal/document"
	"refmatch/internal/enrich"
	"refmatch/internal/match"
	"refmatch/internal/pipeline"
	"refmatch/internal/services"
)

const contextHitsFileName = "context-hits.json"

// newSearchCommand scans raw chapter text for records the section
// matcher could not place, so reviewers get page-level leads.
func newSearchCommand(ctx *commandContext) *cobra.Command {
	var includeMatched bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find raw-text occurrences of unmatched records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			loaded, err := catalog.LoadDir(cfg.Paths.CatalogDir)
			if err != nil {
				return err
			}
			report, err := match.ReadReport(filepath.Join(cfg.Paths.OutputDir, pipeline.ReportFileName))
			if err != nil {
				return err
			}

			reader := document.NewTextDir(cfg.Paths.ManualDir)
			chapters := make(map[string]string, len(cfg.Chapters))
			for _, chapter := range cfg.Chapters {
				text, err := reader.FullText(cmd.Context(), chapter.Code)
				if errors.Is(err, services.ErrNotFound) {
					continue
				}
				if err != nil {
					return err
				}
				chapters[chapter.Code] = text
			}

			searcher := enrich.Searcher{MinTermLength: cfg.Matching.MinTermLength}
			results := make(map[string][]enrich.ContextHit)
			scanned := 0
			for _, record := range loaded.Records {
				if _, matched := report[record.ID()]; matched && !includeMatched {
					continue
				}
				scanned++
				terms := catalog.DeriveTerms(record, cfg.Matching.AliasLanguage, cfg.Matching.MinTermLength)
				if hits := searcher.Search(terms, chapters); len(hits) > 0 {
					results[record.ID()] = hits
				}
			}

			hitsPath := filepath.Join(cfg.Paths.OutputDir, contextHitsFileName)
			if err := writeJSONFile(hitsPath, results); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Records scanned: %d\n", scanned)
			fmt.Fprintf(out, "Records with raw-text hits: %d\n", len(results))
			fmt.Fprintf(out, "Output: %s\n", hitsPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeMatched, "all", false, "Scan matched records too")
	return cmd
}
