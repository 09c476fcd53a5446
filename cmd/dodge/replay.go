package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/games/dodge"
	"github.com/vovakirdan/lane-dodge/internal/journal"
	"github.com/vovakirdan/lane-dodge/internal/platform/tui"
)

var flagReplayWatch bool

// errReplayMismatch is returned when a replay does not reproduce the
// journaled score.
var errReplayMismatch = errors.New("replay did not reproduce the recorded score")

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Re-run a recorded run",
	Long: `Re-run a recorded run from its journaled seed, config and inputs and
check that it reaches the recorded score. A unique prefix of the run ID is
enough.

With --watch the run is played back on screen at its recorded timing.

Examples:
  dodge replay 3f2a9c1e
  dodge replay 3f2a9c1e --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayWatch, "watch", false, "Play the run back on screen")
}

func runReplay(cmd *cobra.Command, args []string) error {
	store, err := journal.Open(flagJournal)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.FindRun(args[0])
	if err != nil {
		return err
	}
	return replayRun(cmd.OutOrStdout(), store, run, flagReplayWatch)
}

// replayRun re-runs one journaled run, on screen when watch is set, and
// compares the outcome to the recorded score.
func replayRun(out io.Writer, store *journal.Store, run *journal.RunInfo, watch bool) error {
	if run.GameID != dodge.GameID {
		return fmt.Errorf("run %s was recorded by game %q, which cannot be replayed", run.ID, run.GameID)
	}

	frames, err := store.Frames(run.ID)
	if err != nil {
		return err
	}

	dodge.SetLogger(logger.WithPrefix("dodge/replay"))
	game := dodge.NewWithConfig(run.Config)
	runtime := core.RuntimeConfig{TickRate: flagFPS, Seed: run.Seed}

	var state core.GameState
	complete := true
	if watch {
		runtime.ScreenW, runtime.ScreenH = terminalSize()
		state, complete, err = tui.RunPlayback(game, runtime, tui.Options{Playback: frames, Logger: logger})
		complete = complete || len(frames) == 0
	} else {
		state, err = journal.Replay(game, runtime, frames)
	}
	if err != nil {
		return err
	}

	logger.Debug("replayed run", "run", run.ID, "frames", len(frames), "score", state.Score, "complete", complete)
	fmt.Fprintf(out, "Run %s  seed %d  frames %d\n", run.ID, run.Seed, len(frames))
	return compareReplay(out, run, state, complete)
}

// compareReplay reports the replayed score against the recorded one. A
// playback the user quit before its last frame is not compared.
func compareReplay(out io.Writer, run *journal.RunInfo, state core.GameState, complete bool) error {
	fmt.Fprintf(out, "Replayed score: %d\n", state.Score)

	if !run.Finished {
		fmt.Fprintln(out, "Recorded score: - (run was not finished)")
		return nil
	}
	fmt.Fprintf(out, "Recorded score: %d\n", run.FinalScore)

	if !complete {
		fmt.Fprintln(out, "Playback interrupted; scores not compared.")
		return nil
	}
	if state.Score != run.FinalScore {
		return fmt.Errorf("%w: got %d, recorded %d", errReplayMismatch, state.Score, run.FinalScore)
	}
	fmt.Fprintln(out, "Reproduced.")
	return nil
}
