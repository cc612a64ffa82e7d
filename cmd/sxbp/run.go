package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/saxbophone/sxbp/internal/figure"
	"github.com/saxbophone/sxbp/internal/serialise"
	"github.com/saxbophone/sxbp/internal/solve"
)

var (
	flagRunInput     string
	flagRunOutput    string
	flagRunSpiral    string
	flagRunThreshold int
	flagRunFormat    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Turn a data file straight into an image",
	Long: `Run the whole pipeline in one go: build a spiral from the input data,
solve its line lengths and render the result to an image. Equivalent to
prepare, generate and render in sequence.

Examples:
  sxbp run -i message.txt -o message.png
  sxbp run -i message.txt -o message.svg --keep message.sxp`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&flagRunInput, "input", "i", "", "Input data file path")
	runCmd.Flags().StringVarP(&flagRunOutput, "output", "o", "", "Output image file path")
	runCmd.MarkFlagRequired("input")
	runCmd.MarkFlagRequired("output")
	runCmd.Flags().StringVar(&flagRunSpiral, "keep", "",
		"Also write the solved spiral to this path")
	runCmd.Flags().IntVarP(&flagRunThreshold, "perfection-threshold", "d", 1,
		"Largest rigid-segment length at which exact resize computation is attempted")
	runCmd.Flags().StringVarP(&flagRunFormat, "format", "f", "",
		"Output format: pbm, png or svg (default from output extension)")
}

func runRun(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(flagRunInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
	fig, err := figure.Begin(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building spiral: %v\n", err)
		os.Exit(1)
	}

	opts := solve.DefaultOptions()
	opts.PerfectionThreshold = cfg.Solver.PerfectionThreshold
	if cmd.Flags().Changed("perfection-threshold") {
		opts.PerfectionThreshold = flagRunThreshold
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("solving", "segments", fig.Size(), "threshold", opts.PerfectionThreshold)
	started := time.Now()
	if err := solve.Solve(ctx, fig, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error solving spiral: %v\n", err)
		os.Exit(1)
	}
	fig.SecondsSpent = uint32(time.Since(started) / time.Second)

	if flagRunSpiral != "" {
		out, err := serialise.Dump(fig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error serialising spiral: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(flagRunSpiral, out, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing spiral: %v\n", err)
			os.Exit(1)
		}
	}

	format := pickFormat(flagRunFormat, flagRunOutput, cfg.Render.Format)
	out, err := os.Create(flagRunOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	if err := renderTo(fig, format, w); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering spiral: %v\n", err)
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %d bytes as %s in %s -> %s\n",
		len(data), format, time.Since(started).Round(time.Second), flagRunOutput)
}
