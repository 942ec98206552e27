package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/core"
	"github.com/vovakirdan/brain-arcade/internal/session"

	_ "github.com/vovakirdan/brain-arcade/internal/games/arithmetic"
	_ "github.com/vovakirdan/brain-arcade/internal/games/matchpairs"
	_ "github.com/vovakirdan/brain-arcade/internal/games/sequence"
	_ "github.com/vovakirdan/brain-arcade/internal/games/wordrecall"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestDigitIndex(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want int
		ok   bool
	}{
		{runes("1"), 0, true},
		{runes("4"), 3, true},
		{runes("9"), 8, true},
		{runes("0"), 0, false},
		{runes("a"), 0, false},
		{enter, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			got, ok := DigitIndex(tt.msg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupRejectsInvalidAge(t *testing.T) {
	for _, input := range []string{"", "abc", "0", "-4"} {
		t.Run(input, func(t *testing.T) {
			m := NewSetupModel(config.DefaultTiers(), config.Selector{}, 80, 24)
			m.age.SetValue(input)

			next, _ := m.Update(enter)
			m = next.(SetupModel)

			assert.Equal(t, stepAge, m.step)
			assert.NotEmpty(t, m.err)
			assert.Nil(t, m.Selected())
		})
	}
}

func TestSetupAgeThenMode(t *testing.T) {
	m := NewSetupModel(config.DefaultTiers(), config.Selector{}, 80, 24)
	m.age.SetValue("70")

	next, _ := m.Update(enter)
	m = next.(SetupModel)
	require.Equal(t, stepMode, m.step)
	assert.Equal(t, config.GroupSenior, m.group)
	assert.Contains(t, m.View(), "Senior Friendly")

	next, _ = m.Update(enter)
	m = next.(SetupModel)
	require.NotNil(t, m.Selected())
	assert.Equal(t, config.Selector{Age: 70, Mode: m.modes[0].Mode}, *m.Selected())
}

func TestSetupPresetSkipsAge(t *testing.T) {
	m := NewSetupModel(config.DefaultTiers(), config.Selector{Age: 8, Mode: config.ModeArithmetic}, 80, 24)

	require.Equal(t, stepMode, m.step)
	assert.Equal(t, config.ModeArithmetic, m.modes[m.cursor].Mode)
}

func TestSetupTabOpensScoreboard(t *testing.T) {
	m := NewSetupModel(config.DefaultTiers(), config.Selector{}, 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(SetupModel)

	assert.True(t, m.WantsScoreboard())
}

func startedApp(t *testing.T, mode config.Mode) AppModel {
	t.Helper()
	m := NewAppModel(Options{
		Config: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 7},
		Preset: config.Selector{Age: 30, Mode: mode},
	})
	cmd := m.Init()
	require.NotNil(t, cmd)

	next, _ := m.Update(cmd())
	app, ok := next.(AppModel)
	require.True(t, ok)
	require.Equal(t, screenPlay, app.screen)
	return app
}

func TestAppAutoplayStartsSession(t *testing.T) {
	app := startedApp(t, config.ModeArithmetic)
	defer app.Close()

	assert.Equal(t, session.PhaseInProgress, app.ctrl.Phase())
	assert.Contains(t, app.View(), "Quick Maths")
}

func TestAppDigitAnswersArithmetic(t *testing.T) {
	app := startedApp(t, config.ModeArithmetic)
	defer app.Close()

	next, _ := app.Update(runes("1"))
	app = next.(AppModel)

	assert.Equal(t, 1, app.ctrl.State().Attempts)
}

func TestAppChangeReturnsToSetup(t *testing.T) {
	app := startedApp(t, config.ModeMatch)
	defer app.Close()

	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = next.(AppModel)

	assert.Equal(t, screenSetup, app.screen)
	assert.Equal(t, session.PhaseSelecting, app.ctrl.Phase())
	assert.Equal(t, stepMode, app.setup.step)
	assert.Equal(t, config.ModeMatch, app.setup.modes[app.setup.cursor].Mode)
}

func TestAppQuit(t *testing.T) {
	app := startedApp(t, config.ModeSequence)

	next, cmd := app.Update(runes("q"))
	app = next.(AppModel)

	assert.True(t, app.quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
