package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brain-arcade/internal/registry"
	"github.com/vovakirdan/brain-arcade/internal/session"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	goodStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(4).
			Align(lipgloss.Center)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

// paletteColors maps sequence colour names to terminal colours.
var paletteColors = map[string]lipgloss.Color{
	"red":    lipgloss.Color("9"),
	"green":  lipgloss.Color("10"),
	"blue":   lipgloss.Color("12"),
	"yellow": lipgloss.Color("11"),
	"purple": lipgloss.Color("13"),
	"orange": lipgloss.Color("208"),
}

func colourOf(name string) lipgloss.Color {
	if c, ok := paletteColors[name]; ok {
		return c
	}
	return lipgloss.Color("7")
}

// formatElapsed renders a duration as m:ss.
func formatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func center(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// renderHeader shows mode, difficulty and the running tally.
func renderHeader(s session.Snapshot) string {
	title := titleStyle.Render(fmt.Sprintf("%s · %s", s.Title, s.Label))
	stats := statStyle.Render(fmt.Sprintf("Level %d/%d   Score %d   Time %s   Moves %d",
		s.Level, s.MaxLevels, s.Score, formatElapsed(s.Elapsed), s.Attempts))
	return lipgloss.JoinVertical(lipgloss.Center, title, stats)
}

func renderProgress(v registry.RoundView) string {
	if v.Goal == 0 {
		return ""
	}
	const width = 20
	filled := min(width, v.Progress*width/v.Goal)
	bar := goodStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %d/%d", bar, v.Progress, v.Goal)
}

func renderFeedback(v registry.RoundView) string {
	if v.Feedback == "" {
		return ""
	}
	if strings.HasPrefix(v.Feedback, "Correct") || strings.HasSuffix(v.Feedback, "complete!") {
		return goodStyle.Render(v.Feedback)
	}
	return errorStyle.Render(v.Feedback)
}

// renderMatch draws the tile grid with the cursor on one tile.
func renderMatch(v registry.RoundView, cursor int) string {
	rows := make([]string, 0, v.Rows)
	for r := 0; r < v.Rows; r++ {
		cells := make([]string, 0, v.Cols)
		for c := 0; c < v.Cols; c++ {
			i := r*v.Cols + c
			if i >= len(v.Tiles) {
				break
			}
			t := v.Tiles[i]
			style := tileStyle
			face := "?"
			switch t.State {
			case registry.TileRevealed:
				face = t.Symbol
				style = style.BorderForeground(lipgloss.Color("12"))
			case registry.TileMatched:
				face = t.Symbol
				style = style.BorderForeground(lipgloss.Color("10")).Faint(true)
			}
			if i == cursor {
				style = style.BorderForeground(lipgloss.Color("229")).BorderStyle(lipgloss.ThickBorder())
			}
			cells = append(cells, style.Render(face))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)

	status := "Find the pairs"
	if v.Locked {
		status = "No match..."
	}
	return lipgloss.JoinVertical(lipgloss.Center, grid, "", dimStyle.Render(status))
}

// renderSequence draws the colour pads. During playback the lit pad is bold
// and input is disabled.
func renderSequence(v registry.RoundView, cursor int) string {
	pads := make([]string, len(v.Palette))
	for i, name := range v.Palette {
		style := lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
		label := fmt.Sprintf("%d %s", i+1, name)
		if v.Highlight == i {
			style = style.Background(colourOf(name)).Foreground(lipgloss.Color("0")).Bold(true)
		} else {
			style = style.Foreground(colourOf(name))
		}
		if !v.Locked && i == cursor {
			style = style.BorderForeground(lipgloss.Color("229")).BorderStyle(lipgloss.ThickBorder())
		}
		pads[i] = style.Render(label)
	}

	entered := make([]string, len(v.Entered))
	for i, idx := range v.Entered {
		entered[i] = lipgloss.NewStyle().Foreground(colourOf(v.Palette[idx])).Render("●")
	}
	slots := strings.Join(entered, " ") + dimStyle.Render(strings.Repeat(" ○", max(0, v.Length-len(v.Entered))))

	status := "Your turn: repeat the sequence, then press enter"
	if v.Locked {
		status = "Watch carefully..."
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, pads...),
		"",
		slots,
		"",
		dimStyle.Render(status),
		renderFeedback(v),
	)
}

// renderArithmetic draws the question and its numbered options.
func renderArithmetic(v registry.RoundView, cursor int) string {
	opts := make([]string, len(v.Options))
	for i, o := range v.Options {
		label := fmt.Sprintf(" %d) %d ", i+1, o)
		if i == cursor {
			label = selectedStyle.Render(label)
		}
		opts[i] = label
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		boxStyle.Render(titleStyle.Render(v.Question)),
		"",
		strings.Join(opts, "  "),
		"",
		renderFeedback(v),
	)
}

// renderWords shows the word while visible, otherwise the answer field.
func renderWords(v registry.RoundView, field string) string {
	var body string
	if v.Locked {
		body = boxStyle.Render(titleStyle.Render(strings.ToUpper(v.Word)))
	} else {
		body = lipgloss.JoinVertical(lipgloss.Center,
			dimStyle.Render("Type the word you saw and press enter"),
			"",
			field,
		)
	}
	return lipgloss.JoinVertical(lipgloss.Center, body, "", renderFeedback(v))
}

func renderLevelComplete(s session.Snapshot) string {
	lines := []string{
		goodStyle.Bold(true).Render(fmt.Sprintf("Level %d cleared!", s.Level)),
		"",
		statStyle.Render(fmt.Sprintf("Time bonus +%d   Score %d", s.LastBonus, s.Score)),
		"",
		dimStyle.Render(fmt.Sprintf("Next level in %.1fs  |  Enter: Continue", s.NextLevelIn.Seconds())),
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func renderSummary(sum session.Summary) string {
	lines := []string{
		titleStyle.Render("Session complete"),
		"",
		fmt.Sprintf("Final score   %d", sum.FinalScore),
		fmt.Sprintf("Time          %s", formatElapsed(sum.FinalTime)),
		fmt.Sprintf("Level reached %d", sum.FinalLevel),
		fmt.Sprintf("Accuracy      %.0f%% (%d/%d)", sum.Accuracy*100, sum.Matches, sum.Attempts),
		"",
		goodStyle.Render(sum.Message),
		"",
		dimStyle.Render("enter: play again   r: same difficulty   q: quit"),
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
