package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/registry"
)

var (
	flagProfileAge   int
	flagProfileGroup string
)

var profileCmd = &cobra.Command{
	Use:   "profile [mode]",
	Short: "Show the difficulty settings for an age",
	Long: `Print the resolved difficulty of every mode (or just one) for an age or
age group, level by level.

Examples:
  arcade profile --age 8
  arcade profile match --group senior
  arcade profile --age 30 --tiers ./configs/tiers.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runProfile,
}

func init() {
	profileCmd.Flags().IntVar(&flagProfileAge, "age", 0, "Player age")
	profileCmd.Flags().StringVar(&flagProfileGroup, "group", "", "Age group: child, teen, adult, senior")
}

func runProfile(cmd *cobra.Command, args []string) {
	sel := config.Selector{Age: flagProfileAge}
	if flagProfileGroup != "" {
		g, err := config.ParseAgeGroup(flagProfileGroup)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		sel.Group = g
	} else if flagProfileAge == 0 {
		fmt.Fprintln(os.Stderr, "Error: one of --age or --group is required")
		os.Exit(1)
	}

	var modes []config.Mode
	if len(args) == 1 {
		mode, err := parseMode(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		modes = []config.Mode{mode}
	} else {
		for _, info := range registry.List() {
			modes = append(modes, info.Mode)
		}
	}

	for i, mode := range modes {
		sel.Mode = mode
		norm, err := tiers.Normalize(sel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if i > 0 {
			fmt.Println()
		}
		printProfile(tiers.Resolve(norm), tiers.Levels())
	}
}

func printProfile(p config.Profile, levels int) {
	fmt.Printf("%s - %s (%s)\n", p.Mode, p.Label, p.Group)
	if p.Instructions != "" {
		fmt.Printf("  %s\n", p.Instructions)
	}
	fmt.Println()

	fmt.Printf("  %-5s  %-7s  %-6s  %-6s  %-5s  %-7s  %s\n",
		"Level", "Size", "Target", "Points", "Bonus", "Delay", "Extra")
	fmt.Printf("  %-5s  %-7s  %-6s  %-6s  %-5s  %-7s  %s\n",
		"-----", "----", "------", "------", "-----", "-----", "-----")
	for range levels {
		fmt.Printf("  %-5d  %-7s  %-6d  %-6d  %-5d  %-7s  %s\n",
			p.Level, profileSize(p), p.Target, p.ScoreMultiplier, p.TimeBonus, p.Delay, profileExtra(p))
		p = p.Escalate()
	}
}

func profileSize(p config.Profile) string {
	if p.Mode == config.ModeMatch {
		return fmt.Sprintf("%dx%d", p.Rows, p.Cols)
	}
	return fmt.Sprint(p.Size)
}

func profileExtra(p config.Profile) string {
	if p.Mode == config.ModeArithmetic {
		return strings.Join(p.Operators, " ")
	}
	return fmt.Sprintf("%d items", len(p.Content))
}
