// sxbp generates experimental 2D spiral-like shapes from input binary data.
//
// Usage:
//
//	sxbp prepare -i <file> -o <spiral>    - Build an unsolved spiral from raw data
//	sxbp generate -i <spiral> -o <spiral> - Solve the spiral's line lengths
//	sxbp render -i <spiral> -o <image>    - Render a solved spiral to pbm/png/svg
//	sxbp run -i <file> -o <image>         - Prepare, solve and render in one pass
//	sxbp history                          - Show recent solve runs
//	sxbp serve                            - Serve the solve journal over SSH
//
// Global flags:
//
//	--config <path>  - Path to config YAML (default: ~/.sxbp/config.yaml)
//	--db <path>      - Path to solve journal database (default: from config)
//	--verbose        - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/saxbophone/sxbp/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagVerbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "sxbp",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sxbp",
	Short: "sxbp - Generate self-avoiding spirals from binary data",
	Long: `sxbp turns any file into a 2D spiral-like shape: each bit of the input
selects a clockwise or anticlockwise turn, and a backtracking solver finds
line lengths that keep the whole path from crossing itself.

Available commands:
  prepare  - Build an unsolved spiral file from raw data
  generate - Solve the line lengths of a spiral file
  render   - Render a solved spiral file to an image
  run      - Prepare, solve and render in one pass
  history  - Show recent solve runs from the journal
  serve    - Serve the solve journal browser over SSH

Examples:
  sxbp prepare -i message.txt -o message.sxp
  sxbp generate -i message.sxp -o message.sxp --watch
  sxbp render -i message.sxp -o message.png
  sxbp run -i message.txt -o message.svg`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to solve journal database (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the tool configuration, applying the --db override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Journal.Path = flagDBPath
	}
	return cfg, nil
}
