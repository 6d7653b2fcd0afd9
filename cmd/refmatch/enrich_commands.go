package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"refmatch/internal/catalog"
	"refmatch/internal/enrich"
	"refmatch/internal/match"
	"refmatch/internal/pipeline"
)

func newRefsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refs",
		Short: "Stamp manual references into matched catalog files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
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

			enricher := enrich.NewEnricher(cfg.Matching, logger)
			changes, skipped, err := enricher.StampRefs(loaded.Records, report)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Updated: %d\n", len(changes))
			fmt.Fprintf(out, "Skipped (already has ref): %d\n", skipped)
			fmt.Fprintf(out, "Total matched: %d\n", len(report))
			return nil
		},
	}
}

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Add extracted differentials to high-quality matched records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
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

			enricher := enrich.NewEnricher(cfg.Matching, logger)
			changes, err := enricher.EnrichRecords(loaded.Records, report)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Enriched: %d files\n", len(changes))
			for _, change := range changes {
				for _, note := range change.Notes {
					fmt.Fprintf(out, "  %s: %s\n", change.RecordID, note)
				}
			}
			return nil
		},
	}
}
