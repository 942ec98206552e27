package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brain-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows every game mode registered in the arcade.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxLen := len("Mode")
	for _, info := range modes {
		maxLen = max(maxLen, len(info.Mode))
	}

	fmt.Printf("  %-*s  %s\n", maxLen, "Mode", "Title")
	fmt.Printf("  %-*s  %s\n", maxLen, "----", "-----")
	for _, info := range modes {
		fmt.Printf("  %-*s  %s\n", maxLen, info.Mode, info.Title)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <mode> --age N' to play.")
}
