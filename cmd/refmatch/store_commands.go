package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSectionsCommand(ctx *commandContext) *cobra.Command {
	var runID string
	var chapter string

	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List the section index recorded for a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			id := strings.TrimSpace(runID)
			if id == "" {
				latest, err := st.LatestRunWithSections(cmd.Context())
				if err != nil {
					return err
				}
				if latest == nil {
					return fmt.Errorf("no recorded runs with sections; run 'refmatch extract' first")
				}
				id = latest.ID
			}

			rows, err := st.SectionsForRun(cmd.Context(), id, strings.ToUpper(strings.TrimSpace(chapter)))
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No sections recorded for run %s\n", id)
				return nil
			}

			tableRows := make([][]string, 0, len(rows))
			for _, row := range rows {
				tableRows = append(tableRows, []string{
					row.Chapter,
					truncateString(row.Title, 48),
					formatCount(row.StartPage),
					formatCount(row.Length),
					yesNo(row.Matchable),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s: %d sections\n", id, len(rows))
			fmt.Fprintln(out, renderTable(
				[]string{"Chapter", "Title", "Page", "Length", "Matchable"},
				tableRows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Run id (defaults to the latest run that recorded sections)")
	cmd.Flags().StringVar(&chapter, "chapter", "", "Restrict to one chapter code")
	return cmd
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded pipeline runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					string(run.Status),
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					formatCount(run.ChaptersProcessed),
					formatCount(run.SectionsFound),
					fmt.Sprintf("%d/%d", run.RecordsMatched, run.RecordsTotal),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Status", "Started", "Chapters", "Sections", "Matched"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0 for all)")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
