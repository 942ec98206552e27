package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/platform/tui"
	"github.com/vovakirdan/brain-arcade/internal/registry"
	"github.com/vovakirdan/brain-arcade/internal/storage"
)

const topLimit = 10

var (
	flagRecent int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 sessions and the totals for a mode. Without a mode
the interactive scoreboard opens, or a summary of every mode is printed when
the output is not a terminal.

Examples:
  arcade scores
  arcade scores match
  arcade scores --recent 5
  arcade scores words --clear
  arcade scores | cat`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Show the N most recent sessions across all modes")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded session of the given mode")
}

func runScores(cmd *cobra.Command, args []string) {
	if flagClear && len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: --clear needs a mode")
		os.Exit(1)
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := scores(store, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func scores(store *storage.Store, args []string) error {
	out := os.Stdout

	if flagRecent > 0 {
		return printRecent(out, store, flagRecent)
	}

	if len(args) == 0 {
		if !term.IsTerminal(int(out.Fd())) {
			return printSummary(out, store)
		}
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(out.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			return fmt.Errorf("running scoreboard: %w", err)
		}
		return nil
	}

	mode, err := parseMode(args[0])
	if err != nil {
		return err
	}
	if flagClear {
		if err := store.ClearSessions(mode); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared all %s sessions.\n", mode)
		return nil
	}
	return printScores(out, store, mode)
}

func modeTitle(mode config.Mode) string {
	for _, info := range registry.List() {
		if info.Mode == mode {
			return info.Title
		}
	}
	return string(mode)
}

func printScores(w io.Writer, store *storage.Store, mode config.Mode) error {
	sessions, err := store.TopSessions(mode, topLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "High Scores - %s\n", modeTitle(mode))
	fmt.Fprintln(w)

	if len(sessions) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'arcade play %s' to set the first high score!\n", mode)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-7s  %-7s  %-5s  %-8s  %-6s  %s\n",
		"Rank", "Score", "Group", "Level", "Accuracy", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-7s  %-7s  %-5s  %-8s  %-6s  %s\n",
		"----", "-----", "-----", "-----", "--------", "----", "----")
	for i, rec := range sessions {
		fmt.Fprintf(w, "  %-4d  %-7d  %-7s  %-5d  %7.0f%%  %-6s  %s\n",
			i+1, rec.Score, rec.Group, rec.Level, rec.Accuracy*100,
			formatDuration(rec.Elapsed), rec.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetModeStats(mode)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d  Games: %d  Average: %.0f  Accuracy: %.0f%%\n",
		stats.HighScore, stats.GamesCount, stats.AvgScore, stats.AvgAccuracy*100)
	return nil
}

func printRecent(w io.Writer, store *storage.Store, limit int) error {
	sessions, err := store.RecentSessions(limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Recent Sessions")
	fmt.Fprintln(w)
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-16s  %-16s  %-7s  %-7s  %-5s  %s\n",
		"Date", "Game", "Group", "Score", "Level", "Rating")
	fmt.Fprintf(w, "  %-16s  %-16s  %-7s  %-7s  %-5s  %s\n",
		"----", "----", "-----", "-----", "-----", "------")
	for _, rec := range sessions {
		fmt.Fprintf(w, "  %-16s  %-16s  %-7s  %-7d  %-5d  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"), modeTitle(rec.Mode), rec.Group,
			rec.Score, rec.Level, rec.Tier)
	}
	return nil
}

// printSummary lists every registered mode with its totals.
func printSummary(w io.Writer, store *storage.Store) error {
	all, err := store.GetAllModeStats()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Brain Arcade - All Games")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-16s  %-5s  %-5s  %-7s  %-8s  %s\n",
		"Game", "Games", "Best", "Average", "Accuracy", "Last played")
	fmt.Fprintf(w, "  %-16s  %-5s  %-5s  %-7s  %-8s  %s\n",
		"----", "-----", "----", "-------", "--------", "-----------")
	for _, info := range registry.List() {
		st, ok := all[info.Mode]
		if !ok {
			fmt.Fprintf(w, "  %-16s  %-5d  %-5s  %-7s  %-8s  %s\n", info.Title, 0, "-", "-", "-", "never")
			continue
		}
		fmt.Fprintf(w, "  %-16s  %-5d  %-5d  %-7.0f  %7.0f%%  %s\n",
			info.Title, st.GamesCount, st.HighScore, st.AvgScore, st.AvgAccuracy*100,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// formatDuration renders an elapsed time as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
