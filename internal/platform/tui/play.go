package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/core"
	"github.com/vovakirdan/brain-arcade/internal/session"
)

// PlayModel is the Bubble Tea model for a running session. It translates
// keys into attempts for the controller and renders its snapshots.
type PlayModel struct {
	ctrl        *session.Controller
	config      core.RuntimeConfig
	keys        PlayKeyMap
	help        help.Model
	input       textinput.Model
	cursor      int
	gen         int
	backToSetup bool
	quitting    bool
}

// NewPlayModel creates the play screen for a controller that already left
// the Selecting phase. gen tags its tick loop and must differ from the
// previous play screen's.
func NewPlayModel(ctrl *session.Controller, cfg core.RuntimeConfig, gen int) PlayModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 24
	ti.Width = 24

	m := PlayModel{
		ctrl:   ctrl,
		config: cfg,
		keys:   DefaultPlayKeyMap(),
		help:   help.New(),
		input:  ti,
		gen:    gen,
	}
	m.help.Width = cfg.ScreenW
	return m
}

// Init starts the tick loop.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.ctrl.Tick()
		focus := m.syncInput()
		return m, tea.Batch(tickCmd(m.config.TickRate, m.gen), focus)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// typing reports whether the answer field owns printable keys.
func (m PlayModel) typing() bool {
	s := m.ctrl.Snapshot()
	return s.Phase == session.PhaseInProgress && s.Mode == config.ModeWords && !s.Round.Locked
}

// syncInput focuses the answer field exactly when the player may type.
func (m *PlayModel) syncInput() tea.Cmd {
	if m.typing() {
		if !m.input.Focused() {
			return m.input.Focus()
		}
		return nil
	}
	m.input.Blur()
	return nil
}

func (m PlayModel) activeKeys() PlayKeyMap {
	if m.ctrl.Snapshot().Mode == config.ModeWords {
		return m.keys.typing()
	}
	return m.keys
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.activeKeys()
	snap := m.ctrl.Snapshot()

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		m.ctrl.Close()
		return m, tea.Quit

	case key.Matches(msg, keys.Change):
		m.ctrl.RequestChangeDifficulty()
		m.backToSetup = true
		return m, nil

	case key.Matches(msg, keys.Restart):
		//nolint:errcheck // The selection already resolved once, so restarting cannot fail
		m.ctrl.RequestRestart()
		m.cursor = 0
		m.input.Reset()
		focus := m.syncInput()
		return m, focus
	}

	switch snap.Phase {
	case session.PhaseFinished:
		if key.Matches(msg, m.keys.Submit) {
			m.ctrl.RequestChangeDifficulty()
			m.backToSetup = true
		}
		return m, nil
	case session.PhaseLevelComplete:
		if key.Matches(msg, m.keys.Submit) && m.ctrl.Continue() {
			m.cursor = 0
			focus := m.syncInput()
			return m, focus
		}
		return m, nil
	case session.PhaseInProgress:
		return m.handlePlayKey(msg, snap)
	}
	return m, nil
}

// handlePlayKey maps keys to attempts for the active mode.
func (m PlayModel) handlePlayKey(msg tea.KeyMsg, snap session.Snapshot) (tea.Model, tea.Cmd) {
	v := snap.Round
	if n := selectable(snap); n > 0 && m.cursor >= n {
		m.cursor = 0
	}
	switch snap.Mode {
	case config.ModeMatch:
		n := len(v.Tiles)
		if n == 0 {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Left):
			m.cursor = (m.cursor - 1 + n) % n
		case key.Matches(msg, m.keys.Right):
			m.cursor = (m.cursor + 1) % n
		case key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor - v.Cols + n) % n
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + v.Cols) % n
		case key.Matches(msg, m.keys.Pick), key.Matches(msg, m.keys.Submit):
			m.ctrl.HandleAttempt(core.Select(m.cursor))
		}

	case config.ModeSequence:
		n := len(v.Palette)
		if n == 0 {
			return m, nil
		}
		if i, ok := DigitIndex(msg); ok {
			if i < n {
				m.ctrl.HandleAttempt(core.Select(i))
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor - 1 + n) % n
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % n
		case key.Matches(msg, m.keys.Pick):
			m.ctrl.HandleAttempt(core.Select(m.cursor))
		case key.Matches(msg, m.keys.Submit):
			m.ctrl.HandleAttempt(core.Submit())
		}

	case config.ModeArithmetic:
		n := len(v.Options)
		if n == 0 {
			return m, nil
		}
		if i, ok := DigitIndex(msg); ok {
			if i < n {
				m.ctrl.HandleAttempt(core.Select(i))
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor - 1 + n) % n
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % n
		case key.Matches(msg, m.keys.Pick), key.Matches(msg, m.keys.Submit):
			m.ctrl.HandleAttempt(core.Select(m.cursor))
		}

	case config.ModeWords:
		if key.Matches(msg, m.keys.Submit) {
			if m.typing() {
				m.ctrl.HandleAttempt(core.Text(m.input.Value()))
				m.input.Reset()
			}
			focus := m.syncInput()
			return m, focus
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// selectable returns how many items the cursor can land on.
func selectable(s session.Snapshot) int {
	switch s.Mode {
	case config.ModeMatch:
		return len(s.Round.Tiles)
	case config.ModeSequence:
		return len(s.Round.Palette)
	case config.ModeArithmetic:
		return len(s.Round.Options)
	}
	return 0
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	s := m.ctrl.Snapshot()
	var body string
	switch s.Phase {
	case session.PhaseLevelComplete:
		body = renderLevelComplete(s)
	case session.PhaseFinished:
		if s.Summary != nil {
			body = renderSummary(*s.Summary)
		}
	default:
		body = m.renderRound(s)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(renderHeader(s), m.config.ScreenW))
	b.WriteString("\n")
	b.WriteString(center(renderProgress(s.Round), m.config.ScreenW))
	b.WriteString("\n\n")
	b.WriteString(center(body, m.config.ScreenW))
	b.WriteString("\n\n")
	if s.Phase == session.PhaseInProgress && s.Instructions != "" {
		b.WriteString(center(dimStyle.Render(s.Instructions), m.config.ScreenW))
		b.WriteString("\n")
	}
	b.WriteString(center(dimStyle.Render(m.help.View(m.activeKeys())), m.config.ScreenW))
	return b.String()
}

func (m PlayModel) renderRound(s session.Snapshot) string {
	v := s.Round
	switch s.Mode {
	case config.ModeMatch:
		return renderMatch(v, m.cursor)
	case config.ModeSequence:
		return renderSequence(v, m.cursor)
	case config.ModeArithmetic:
		return renderArithmetic(v, m.cursor)
	case config.ModeWords:
		return renderWords(v, m.input.View())
	}
	return ""
}

// BackToSetup returns true if the player asked for a new selection.
func (m PlayModel) BackToSetup() bool {
	return m.backToSetup
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}
