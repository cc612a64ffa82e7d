package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/saxbophone/sxbp/internal/figure"
	"github.com/saxbophone/sxbp/internal/platform/tui"
	"github.com/saxbophone/sxbp/internal/serialise"
	"github.com/saxbophone/sxbp/internal/solve"
	"github.com/saxbophone/sxbp/internal/storage"
)

var (
	flagThreshold  int
	flagNoPerfect  bool
	flagMaxSegment int
	flagWatch      bool
	flagTimeout    time.Duration

	flagGenerateInput  string
	flagGenerateOutput string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Solve the line lengths of a spiral file",
	Long: `Determine a collision-free length for every segment of a spiral file,
writing the solved spiral back out. Solving resumes from wherever the input
file left off, so an interrupted or prefix-limited solve can be continued by
running generate again.

Solving can take a very long time on large or adversarial inputs. Press
Ctrl+C (or q in watch mode) to stop: progress made so far is kept in the
output file.

Examples:
  sxbp generate -i message.sxp -o message.sxp
  sxbp generate -i big.sxp -o big.sxp --watch
  sxbp generate -i big.sxp -o big.sxp --max-segment 5000
  sxbp generate -i big.sxp -o big.sxp --disable-perfection
  sxbp generate -i big.sxp -o big.sxp --timeout 2h`,
	Run: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&flagGenerateInput, "input", "i", "", "Input spiral file path")
	generateCmd.Flags().StringVarP(&flagGenerateOutput, "output", "o", "", "Output spiral file path")
	generateCmd.MarkFlagRequired("input")
	generateCmd.MarkFlagRequired("output")
	generateCmd.Flags().IntVarP(&flagThreshold, "perfection-threshold", "d", 1,
		"Largest rigid-segment length at which exact resize computation is attempted")
	generateCmd.Flags().BoolVarP(&flagNoPerfect, "disable-perfection", "D", false,
		"Always use exact resize computation for a speed boost, at the cost of oversized lines")
	generateCmd.Flags().IntVar(&flagMaxSegment, "max-segment", -1,
		"Solve only up to this segment index (-1 for all)")
	generateCmd.Flags().BoolVar(&flagWatch, "watch", false,
		"Show a live progress view while solving")
	generateCmd.Flags().DurationVar(&flagTimeout, "timeout", 0,
		"Stop solving after this long (0 for no limit)")
}

func runGenerate(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(flagGenerateInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
	fig, err := serialise.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading spiral: %v\n", err)
		os.Exit(1)
	}

	opts := solve.DefaultOptions()
	opts.PerfectionThreshold = cfg.Solver.PerfectionThreshold
	if cmd.Flags().Changed("perfection-threshold") {
		opts.PerfectionThreshold = flagThreshold
	}
	if flagNoPerfect {
		opts.PerfectionThreshold = -1
	}
	opts.MaxSegment = flagMaxSegment

	// Ctrl+C cancels the solve; progress so far is still written out
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	logger.Debug("solving",
		"segments", fig.Size(),
		"solved", fig.Solved,
		"threshold", opts.PerfectionThreshold,
		"max_segment", opts.MaxSegment,
	)

	started := time.Now()
	var solveErr error
	if flagWatch && term.IsTerminal(int(os.Stdout.Fd())) {
		solveErr = solveWatched(ctx, fig, opts)
	} else {
		solveErr = solvePlain(ctx, fig, opts, cfg.Solver.ProgressEvery)
	}
	elapsed := time.Since(started)
	fig.SecondsSpent += uint32(elapsed / time.Second)

	recordRun(cfg.Journal.Path, data, fig, opts.PerfectionThreshold, elapsed, solveErr)

	// A cancelled solve still has a consistent prefix worth keeping
	if solveErr != nil && !errors.Is(solveErr, solve.ErrCancelled) {
		fmt.Fprintf(os.Stderr, "Error solving spiral: %v\n", solveErr)
		os.Exit(1)
	}

	out, err := serialise.Dump(fig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error serialising spiral: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(flagGenerateOutput, out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	if errors.Is(solveErr, solve.ErrCancelled) {
		fmt.Printf("Cancelled after %s: %d of %d segments solved -> %s\n",
			elapsed.Round(time.Second), fig.Solved, fig.Size(), flagGenerateOutput)
		return
	}
	fmt.Printf("Solved %d segments in %s -> %s\n",
		fig.Solved, elapsed.Round(time.Second), flagGenerateOutput)
}

// solvePlain runs the solver with periodic log output.
func solvePlain(ctx context.Context, fig *figure.Figure, opts solve.Options, every int) error {
	if every > 0 {
		opts.Progress = func(f *figure.Figure, latest, target int) {
			if (latest+1)%every == 0 || latest == target {
				logger.Info("progress", "solved", latest+1, "of", target+1)
			}
		}
	}
	return solve.Solve(ctx, fig, opts)
}

// solveWatched runs the solver behind the live progress view. The view owns
// cancellation: quitting it cancels the solve's context.
func solveWatched(ctx context.Context, fig *figure.Figure, opts solve.Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	target := opts.MaxSegment
	if target < 0 {
		target = fig.Size() - 1
	}

	events := make(chan tea.Msg, 16)
	opts.Progress = func(f *figure.Figure, latest, tgt int) {
		events <- tui.ProgressMsg{Latest: latest, Target: tgt}
	}

	done := make(chan error, 1)
	go func() {
		err := solve.Solve(ctx, fig, opts)
		done <- err
		events <- tui.DoneMsg{Err: err}
	}()

	if err := tui.RunProgress(target, events, cancel); err != nil {
		return err
	}
	return <-done
}

// recordRun journals the outcome of a solve run. Journal failures are
// logged, never fatal: the solve result matters more than its bookkeeping.
func recordRun(
	dbPath string,
	input []byte,
	fig *figure.Figure,
	threshold int,
	elapsed time.Duration,
	solveErr error,
) {
	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Warn("could not open solve journal", "error", err)
		return
	}
	defer store.Close()

	outcome := storage.OutcomeSolved
	switch {
	case errors.Is(solveErr, solve.ErrCancelled):
		outcome = storage.OutcomeCancelled
	case solveErr != nil:
		outcome = storage.OutcomeFailed
	}

	hash := sha256.Sum256(input)
	_, err = store.SaveRun(storage.Run{
		InputHash: hex.EncodeToString(hash[:]),
		Segments:  fig.Size(),
		Solved:    fig.Solved,
		Threshold: threshold,
		Duration:  elapsed,
		Outcome:   outcome,
	})
	if err != nil {
		logger.Warn("could not journal solve run", "error", err)
	}
}
