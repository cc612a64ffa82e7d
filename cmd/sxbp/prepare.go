package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saxbophone/sxbp/internal/figure"
	"github.com/saxbophone/sxbp/internal/serialise"
)

var (
	flagPrepareInput  string
	flagPrepareOutput string
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Build an unsolved spiral file from raw data",
	Long: `Read a file and convert its bits into the turn sequence of a spiral,
writing an unsolved spiral file. Every bit of the input becomes one line
segment: 0 turns clockwise, 1 turns anticlockwise. Segment lengths are left
unsolved; run 'sxbp generate' to solve them.

Examples:
  sxbp prepare -i message.txt -o message.sxp`,
	Run: runPrepare,
}

func init() {
	prepareCmd.Flags().StringVarP(&flagPrepareInput, "input", "i", "", "Input file path")
	prepareCmd.Flags().StringVarP(&flagPrepareOutput, "output", "o", "", "Output spiral file path")
	prepareCmd.MarkFlagRequired("input")
	prepareCmd.MarkFlagRequired("output")
}

func runPrepare(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(flagPrepareInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	fig, err := figure.Begin(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing spiral: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("prepared figure", "bytes", len(data), "segments", fig.Size())

	out, err := serialise.Dump(fig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error serialising spiral: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(flagPrepareOutput, out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Prepared %d segments from %d bytes -> %s\n", fig.Size(), len(data), flagPrepareOutput)
}
