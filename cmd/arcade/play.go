package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/core"
	"github.com/vovakirdan/brain-arcade/internal/platform/tui"
)

var flagAge int

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game",
	Long: `Start the arcade. With a mode and --age the game starts right away,
otherwise the setup screen asks for whatever is missing.

Controls:
  Arrows     - Move the cursor
  Space      - Flip a tile / pick a colour or answer
  1-9        - Pick an answer or colour by number
  Enter      - Submit a replay or typed answer
  R          - Restart with the same settings
  Esc/C      - Change age or game
  Q/Ctrl+C   - Quit

Examples:
  arcade play
  arcade play match --age 8
  arcade play words --age 70
  arcade play arithmetic --age 15 --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagAge, "age", 0, "Player age (asked on the setup screen if omitted)")
}

func runPlay(cmd *cobra.Command, args []string) {
	preset := config.Selector{Age: flagAge}
	if len(args) == 1 {
		mode, err := parseMode(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		preset.Mode = mode
	}
	if flagAge != 0 {
		if _, err := tiers.GroupForAge(flagAge); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: settings.GetInt(keyFPS),
		Seed:     settings.GetInt64(keySeed),
	}

	// Continue without storage - the game still works
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger.Warn("playing without persistence", "error", err)
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Store:  store,
		Tiers:  tiers,
		Logger: logger,
		Config: cfg,
		Preset: preset,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
