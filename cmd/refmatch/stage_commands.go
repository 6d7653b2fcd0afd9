package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Segment the manual chapters into section artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cleanup, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := p.Extract(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s\n", summary.RunID)
			fmt.Fprintf(out, "Chapters processed: %d", summary.ChaptersProcessed)
			if summary.ChaptersSkipped > 0 {
				fmt.Fprintf(out, " (%d skipped, no text file)", summary.ChaptersSkipped)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Sections found: %d (%d with content)\n", summary.SectionsFound, summary.SectionsKept)
			fmt.Fprintf(out, "Index saved to: %s\n", summary.IndexPath)
			return nil
		},
	}
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "match",
		Short: "Match catalog records against extracted sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cleanup, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			outcome, err := p.Match(cmd.Context())
			if err != nil {
				return err
			}

			printMatchOutcome(cmd, outcome)
			return nil
		},
	}
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run extraction and matching back to back",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cleanup, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s\n", summary.RunID)
			fmt.Fprintf(out, "Chapters processed: %d\n", summary.Extract.ChaptersProcessed)
			fmt.Fprintf(out, "Sections found: %d (%d with content)\n",
				summary.Extract.SectionsFound, summary.Extract.SectionsKept)
			printMatchOutcome(cmd, summary.Match)
			return nil
		},
	}
}
