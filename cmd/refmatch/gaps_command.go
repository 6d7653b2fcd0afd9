package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"refmatch/internal/catalog"
	"refmatch/internal/enrich"
	"refmatch/internal/match"
	"refmatch/internal/pipeline"
)

// GapsFileName is the gap analysis artifact written to the output
// directory.
const gapsFileName = "gaps.json"

func newGapsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Report manual content the catalog records lack",
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

			analyzer := enrich.Analyzer{HighScore: cfg.Matching.HighScore}
			result := analyzer.Analyze(loaded.Records, report)

			gapsPath := filepath.Join(cfg.Paths.OutputDir, gapsFileName)
			if err := result.WriteFile(gapsPath); err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total gaps found: %d\n", len(result.Gaps))
			fmt.Fprintf(out, "High-value enrichment candidates: %d\n", len(result.Candidates))
			fmt.Fprintf(out, "Output: %s\n", gapsPath)

			counts := result.GapCounts()
			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Slice(names, func(i, j int) bool {
				if counts[names[i]] != counts[names[j]] {
					return counts[names[i]] > counts[names[j]]
				}
				return names[i] < names[j]
			})
			fmt.Fprintln(out, "\nGap distribution:")
			for _, name := range names {
				fmt.Fprintf(out, "  %s: %d records\n", name, counts[name])
			}

			if len(result.Candidates) > 0 {
				fmt.Fprintf(out, "\nTop enrichment candidates (%d):\n", len(result.Candidates))
				for _, id := range result.Candidates {
					gap := result.Gaps[id]
					fmt.Fprintf(out, "  %s: gaps=%v, text=%dchars\n", id, gap.Gaps, gap.TextLength)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the gap report as JSON")
	return cmd
}
