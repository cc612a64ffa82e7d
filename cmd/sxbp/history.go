package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/saxbophone/sxbp/internal/platform/tui"
	"github.com/saxbophone/sxbp/internal/storage"
)

var (
	flagHistoryLimit       int
	flagHistoryInput       string
	flagHistoryInteractive bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past solve runs from the journal",
	Long: `Show past solve runs recorded in the journal, newest first.

Examples:
  sxbp history
  sxbp history --limit 50
  sxbp history --input 9f86d081884c
  sxbp history --interactive`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Maximum runs to show")
	historyCmd.Flags().StringVar(&flagHistoryInput, "input", "",
		"Only show runs for this input hash")
	historyCmd.Flags().BoolVar(&flagHistoryInteractive, "interactive", false,
		"Browse the journal in an interactive view")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.Open(cfg.Journal.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryInteractive && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			width, height = 80, 24
		}
		model := tui.NewHistoryModel(store, width, height)
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running journal view: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var runs []storage.Run
	if flagHistoryInput != "" {
		runs, err = store.RunsForInput(flagHistoryInput)
	} else {
		runs, err = store.RecentRuns(flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading journal: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No solve runs recorded yet.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tINPUT\tSEGMENTS\tSOLVED\tDURATION\tOUTCOME")
	for _, r := range runs {
		hash := r.InputHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), hash,
			r.Segments, r.Solved, r.Duration.Round(time.Millisecond), r.Outcome)
	}
	w.Flush()

	if stats, err := store.Stats(); err == nil {
		fmt.Printf("\n%d runs, %d solved, %s spent solving\n",
			stats.RunCount, stats.SolvedCount, stats.TotalSolving.Round(time.Second))
	}
}
