package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/core"
	"github.com/vovakirdan/brain-arcade/internal/session"
	"github.com/vovakirdan/brain-arcade/internal/storage"
)

// Options configures the arcade front end.
type Options struct {
	Store  *storage.Store
	Tiers  config.Tiers
	Logger *log.Logger
	Config core.RuntimeConfig

	// Preset pre-fills the setup screen. With both Age and Mode set the
	// session starts immediately.
	Preset config.Selector
}

type appScreen int

const (
	screenSetup appScreen = iota
	screenPlay
	screenScores
)

// AppModel manages the full arcade flow: setup -> play -> setup, with the
// scoreboard reachable from setup. It is the top-level model for local and
// SSH sessions alike.
type AppModel struct {
	opts     Options
	config   core.RuntimeConfig
	ctrl     *session.Controller
	screen   appScreen
	setup    SetupModel
	play     PlayModel
	scores   ScoreboardModel
	plays    int
	autoplay bool
	quitting bool
}

// NewAppModel creates the arcade model and its session controller.
func NewAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Tiers.Groups == nil {
		opts.Tiers = config.DefaultTiers()
	}
	if opts.Config.TickRate <= 0 {
		opts.Config.TickRate = core.DefaultConfig().TickRate
	}

	ctrlOpts := session.Options{
		Tiers:  &opts.Tiers,
		Seed:   opts.Config.Seed,
		Logger: opts.Logger,
	}
	if opts.Store != nil {
		ctrlOpts.Recorder = opts.Store
	}

	return AppModel{
		opts:     opts,
		config:   opts.Config,
		ctrl:     session.New(ctrlOpts),
		setup:    NewSetupModel(opts.Tiers, opts.Preset, opts.Config.ScreenW, opts.Config.ScreenH),
		autoplay: opts.Preset.Age > 0 && opts.Preset.Mode.Valid(),
	}
}

// Init starts the session right away when the preset is complete,
// otherwise shows the setup screen.
func (m AppModel) Init() tea.Cmd {
	if m.autoplay {
		return func() tea.Msg { return startMsg{sel: m.opts.Preset} }
	}
	return m.setup.Init()
}

// startMsg asks the app to begin a session.
type startMsg struct {
	sel config.Selector
}

// Update handles messages for the app.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}
	if sm, ok := msg.(startMsg); ok {
		return m.start(sm.sel)
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateSetup(msg)
	}
}

func (m AppModel) start(sel config.Selector) (tea.Model, tea.Cmd) {
	if err := m.ctrl.SelectDifficulty(sel); err != nil {
		m.opts.Logger.Warn("invalid selection", "age", sel.Age, "mode", sel.Mode, "err", err)
		m.screen = screenSetup
		return m, m.setup.SetError(err)
	}
	m.plays++
	m.play = NewPlayModel(m.ctrl, m.config, m.plays)
	m.screen = screenPlay
	return m, m.play.Init()
}

func (m AppModel) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	newSetup, cmd := m.setup.Update(msg)
	if setup, ok := newSetup.(SetupModel); ok {
		m.setup = setup
	}

	switch {
	case m.setup.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.setup.WantsScoreboard():
		m.setup.openScoreboard = false
		m.scores = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.setup.Selected() != nil:
		sel := *m.setup.Selected()
		m.setup.selected = nil
		return m.start(sel)
	}

	return m, cmd
}

func (m AppModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPlay, cmd := m.play.Update(msg)
	if play, ok := newPlay.(PlayModel); ok {
		m.play = play
	}

	switch {
	case m.play.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.play.BackToSetup():
		m.ctrl.Close()
		prev, _ := m.ctrl.Selection()
		m.setup = NewSetupModel(m.opts.Tiers, config.Selector{Age: prev.Age, Mode: prev.Mode}, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenSetup
		return m, m.setup.Init()
	}

	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scores, ok := newScores.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.scores.IsGoingBack():
		m.screen = screenSetup
		return m, m.setup.Init()
	}

	return m, cmd
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.setup.View()
	}
}

// Close releases the session's pending timers.
func (m AppModel) Close() {
	m.ctrl.Close()
}

// Run starts the Bubble Tea program with the arcade model.
func Run(opts Options) error {
	model := NewAppModel(opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
