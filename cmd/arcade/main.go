// arcade is a terminal brain-games arcade: memory pairs, colour sequences,
// quick maths and word recall, tuned to the player's age.
//
// Usage:
//
//	arcade list                   - List game modes
//	arcade play [mode] --age N    - Play (asks for missing choices)
//	arcade profile --age N        - Show the difficulty for an age
//	arcade scores [mode]          - Show the leaderboard
//	arcade serve                  - Start SSH server for remote play
//
// Global flags (also BRAIN_ARCADE_* environment variables):
//
//	--fps <rate>        - Screen refresh rate (default: 10)
//	--seed <value>      - RNG seed for reproducible rounds
//	--db <path>         - Sessions database (default: ~/.brain-arcade/sessions.db)
//	--tiers <path>      - Difficulty table YAML
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import engines to register them
	_ "github.com/vovakirdan/brain-arcade/internal/games/arithmetic"
	_ "github.com/vovakirdan/brain-arcade/internal/games/matchpairs"
	_ "github.com/vovakirdan/brain-arcade/internal/games/sequence"
	_ "github.com/vovakirdan/brain-arcade/internal/games/wordrecall"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Brain Arcade - memory and maths games in your terminal",
	Long: `Brain Arcade is a collection of short brain-training games whose
difficulty adapts to the player's age group.

Available commands:
  list     - Show all game modes
  play     - Play a game
  profile  - Show the difficulty settings for an age
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  arcade list
  arcade play match --age 8
  arcade play
  arcade profile --age 67
  arcade scores words
  arcade serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int(keyFPS, 10, "Screen refresh rate (ticks per second)")
	flags.Int64(keySeed, 0, "RNG seed (0 = random based on time)")
	flags.String(keyDB, "~/.brain-arcade/sessions.db", "Path to sessions database")
	flags.String(keyTiers, "", "Path to a difficulty table YAML (default: search ~/.brain-arcade, ./configs, built-in)")
	flags.String(keyLogLevel, "info", "Log level: debug, info, warn, error")
	flags.String(keyLogFile, "", "Log file (play logs nowhere by default, serve logs to stderr)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
