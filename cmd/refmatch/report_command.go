package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"refmatch/internal/match"
	"refmatch/internal/pipeline"
)

const topMatchesShown = 10

func newReportCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the match report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			report, err := match.ReadReport(filepath.Join(cfg.Paths.OutputDir, pipeline.ReportFileName))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, report.Stats(cfg.Matching.HighScore))
			}
			printReportStats(cmd, report, cfg.Matching.HighScore)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit summary statistics as JSON")
	return cmd
}

func printMatchOutcome(cmd *cobra.Command, outcome *pipeline.MatchOutcome) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total matched: %d/%d\n", outcome.Matched, outcome.RecordsTotal)
	if outcome.RecordsSkipped > 0 {
		fmt.Fprintf(out, "Records skipped (malformed): %d\n", outcome.RecordsSkipped)
	}
	fmt.Fprintf(out, "High-quality matches: %d\n", outcome.HighQuality)
	fmt.Fprintf(out, "Output: %s\n", outcome.ReportPath)
	printScoreDistribution(cmd, outcome.Report)
	printTopMatches(cmd, outcome.Report)
}

func printReportStats(cmd *cobra.Command, report match.Report, highScore float64) {
	stats := report.Stats(highScore)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total matched: %d\n", stats.Matched)
	fmt.Fprintf(out, "High-quality matches: %d\n", stats.HighQuality)
	printScoreDistribution(cmd, report)
	printTopMatches(cmd, report)
}

func printScoreDistribution(cmd *cobra.Command, report match.Report) {
	stats := report.Stats(0)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nScore distribution:")
	for _, bucket := range match.BucketNames() {
		fmt.Fprintf(out, "  %s: %d\n", bucket, stats.Buckets[bucket])
	}
}

func printTopMatches(cmd *cobra.Command, report match.Report) {
	entries := report.Ranked(topMatchesShown)
	if len(entries) == 0 {
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		best := entry.Set.Matches[0]
		rows = append(rows, []string{
			entry.ID,
			formatScore(best.Score),
			best.Chapter,
			formatCount(best.TextLength),
			truncateString(best.Title, 48),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nTop %d best matches:\n", len(entries))
	fmt.Fprintln(out, renderTable(
		[]string{"Record", "Score", "Chapter", "Text", "Title"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignLeft},
	))
}
