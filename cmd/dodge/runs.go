package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-dodge/internal/journal"
	"github.com/vovakirdan/lane-dodge/internal/platform/tui"
)

var (
	flagRunsPlain bool
	flagRunsLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded runs",
	Long: `Browse the runs recorded in the journal. Select a run with enter to
watch it played back; delete runs with x.

When stdout is not a terminal, or with --plain, the runs are printed as text.

Examples:
  dodge runs
  dodge runs --plain --limit 5`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print runs as text instead of the browser")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to print with --plain")
}

func runRuns(cmd *cobra.Command, args []string) error {
	store, err := journal.Open(flagJournal)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagRunsPlain || !isTerminal(cmd.OutOrStdout()) {
		return printRuns(cmd, store)
	}

	width, height := terminalSize()
	id, picked, err := tui.RunRunsBrowser(store, width, height)
	if err != nil || !picked {
		return err
	}

	run, err := store.Run(id)
	if err != nil {
		return err
	}
	return replayRun(cmd.OutOrStdout(), store, run, true)
}

func printRuns(cmd *cobra.Command, store *journal.Store) error {
	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-8s  %-20s  %-7s  %-6s  %s\n", "Run", "Seed", "Frames", "Score", "Started")
	fmt.Fprintf(out, "  %-8s  %-20s  %-7s  %-6s  %s\n", "---", "----", "------", "-----", "-------")
	for _, r := range runs {
		score := "-"
		if r.Finished {
			score = fmt.Sprintf("%d", r.FinalScore)
		}
		fmt.Fprintf(out, "  %-8s  %-20d  %-7d  %-6s  %s\n",
			r.ID.String()[:8], r.Seed, r.FrameCount, score, r.StartedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
