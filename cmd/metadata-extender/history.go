// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metadata-extender/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded generate runs, or the documents of one run",
	Long: `History reads the run ledger written by "generate --ledger". Without
--run it lists the most recent runs; with --run it lists every image the run
attempted. The run id may be abbreviated to any unique prefix.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	runID, _ := cmd.Flags().GetString("run")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := ledger.NewStore(appConfig().Ledger)
	if err != nil {
		return err
	}
	defer store.Close()

	if runID != "" {
		docs, err := store.Documents(ctx, runID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(out, docs)
		}
		printDocuments(out, docs)
		return nil
	}

	runs, err := store.Runs(ctx, limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(out, runs)
	}
	printRuns(out, runs)
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRuns(out io.Writer, runs []ledger.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return
	}
	fmt.Fprintf(out, "%-8s  %-19s  %-9s  %7s  %6s  %s\n",
		"Run", "Started", "Status", "Written", "Failed", "Directory")
	fmt.Fprintln(out, strings.Repeat("-", 80))
	for _, r := range runs {
		fmt.Fprintf(out, "%-8s  %-19s  %-9s  %7d  %6d  %s\n",
			r.ID[:8], r.StartedAt.Local().Format(time.DateTime), r.Status, r.Written, r.Failed, r.ImageDir)
	}
}

func printDocuments(out io.Writer, docs []ledger.DocumentEntry) {
	if len(docs) == 0 {
		fmt.Fprintln(out, "No documents recorded for this run.")
		return
	}
	for _, d := range docs {
		if d.Error != "" {
			fmt.Fprintf(out, "failed:  %s (%s)\n", d.Image, d.Error)
			continue
		}
		sections := make([]string, len(d.Sections))
		for i, s := range d.Sections {
			sections[i] = string(s)
		}
		fmt.Fprintf(out, "wrote: %s  %d tags  [%s]\n", d.OutputPath, d.ExifTags, strings.Join(sections, ", "))
	}
}

func init() {
	historyCmd.Flags().String("run", "", "show the documents of this run")
	historyCmd.Flags().Int("limit", ledger.DefaultLimit, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}
