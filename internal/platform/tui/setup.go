package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/registry"
)

type setupStep int

const (
	stepAge setupStep = iota
	stepMode
)

// SetupModel asks for the player's age and a game mode.
type SetupModel struct {
	tiers     config.Tiers
	age       textinput.Model
	modes     []registry.Info
	cursor    int
	step      setupStep
	group     config.AgeGroup
	err       string
	width     int
	height    int
	keyMapper *KeyMapper

	selected       *config.Selector
	quitting       bool
	openScoreboard bool
}

// NewSetupModel creates the setup screen. A positive preset age skips the
// age question; a valid preset mode moves the cursor to it.
func NewSetupModel(tiers config.Tiers, preset config.Selector, width, height int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. 35"
	ti.CharLimit = 3
	ti.Width = 5
	ti.Prompt = "Age: "
	ti.Focus()

	m := SetupModel{
		tiers:     tiers,
		age:       ti,
		modes:     registry.List(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	for i, info := range m.modes {
		if info.Mode == preset.Mode {
			m.cursor = i
		}
	}
	if preset.Age > 0 {
		m.age.SetValue(strconv.Itoa(preset.Age))
		m.submitAge()
	}
	return m
}

// Init starts the cursor blinking.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the setup screen.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.step == stepAge {
			return m.updateAge(msg)
		}
		return m.updateMode(msg)
	}

	if m.step == stepAge {
		var cmd tea.Cmd
		m.age, cmd = m.age.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SetupModel) updateAge(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.openScoreboard = true
		return m, nil
	case "enter":
		m.submitAge()
		return m, nil
	}

	var cmd tea.Cmd
	m.age, cmd = m.age.Update(msg)
	return m, cmd
}

// submitAge validates the typed age. Non-numbers and ages below 1 keep the
// player on the age question.
func (m *SetupModel) submitAge() {
	age, err := strconv.Atoi(strings.TrimSpace(m.age.Value()))
	if err != nil || age < 1 {
		m.err = "Please enter a valid age (a whole number, 1 or more)."
		return
	}
	group, err := m.tiers.GroupForAge(age)
	if err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
	m.group = group
	m.step = stepMode
	m.age.Blur()
}

func (m SetupModel) updateMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.modes)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.modes) > 0 {
			age, _ := strconv.Atoi(strings.TrimSpace(m.age.Value()))
			m.selected = &config.Selector{Age: age, Mode: m.modes[m.cursor].Mode}
		}

	case MenuActionBack:
		m.step = stepAge
		return m, m.age.Focus()

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the setup screen.
func (m SetupModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(titleStyle.Render("  B R A I N   A R C A D E  "), m.width))
	b.WriteString("\n\n")

	switch m.step {
	case stepAge:
		b.WriteString(center("How old are you? Games adapt to your age group.", m.width))
		b.WriteString("\n\n")
		b.WriteString(center(m.age.View(), m.width))
		b.WriteString("\n")
		if m.err != "" {
			b.WriteString("\n")
			b.WriteString(center(errorStyle.Render(m.err), m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(center(dimStyle.Render("Enter: Continue  |  Tab: Scores  |  Esc: Quit"), m.width))

	case stepMode:
		label := m.tiers.Groups[m.group].Label
		b.WriteString(center(fmt.Sprintf("Difficulty: %s", statStyle.Render(label)), m.width))
		b.WriteString("\n\n")

		lines := make([]string, len(m.modes))
		for i, info := range m.modes {
			cursor := "  "
			line := info.Title
			if i == m.cursor {
				cursor = "> "
				line = selectedStyle.Render(" " + line + " ")
			}
			lines[i] = cursor + line
		}
		b.WriteString(center(lipgloss.JoinVertical(lipgloss.Left, lines...), m.width))
		b.WriteString("\n\n")
		b.WriteString(center(dimStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Esc: Change age  |  Tab: Scores  |  Q: Quit"), m.width))
	}
	b.WriteString("\n")

	return b.String()
}

// Selected returns the completed selection, or nil while still choosing.
func (m SetupModel) Selected() *config.Selector {
	return m.selected
}

// SetError shows a message and returns to the age question.
func (m *SetupModel) SetError(err error) tea.Cmd {
	m.err = err.Error()
	m.selected = nil
	m.step = stepAge
	return m.age.Focus()
}

// IsQuitting returns true if user requested to quit.
func (m SetupModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m SetupModel) WantsScoreboard() bool {
	return m.openScoreboard
}
