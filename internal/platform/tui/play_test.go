package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/core"
	"github.com/vovakirdan/brain-arcade/internal/registry"
	"github.com/vovakirdan/brain-arcade/internal/session"
)

type playFixture struct {
	m     PlayModel
	ctrl  *session.Controller
	clock *core.ManualClock
}

// newPlay starts an adult session of mode on a manual clock.
func newPlay(t *testing.T, mode config.Mode) *playFixture {
	t.Helper()
	clock := core.NewManualClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	ctrl := session.New(session.Options{Seed: 11, Clock: clock})
	require.NoError(t, ctrl.SelectDifficulty(config.Selector{Age: 30, Mode: mode}))
	t.Cleanup(ctrl.Close)

	return &playFixture{
		m:     NewPlayModel(ctrl, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10}, 1),
		ctrl:  ctrl,
		clock: clock,
	}
}

func (f *playFixture) send(msg tea.Msg) tea.Cmd {
	next, cmd := f.m.Update(msg)
	f.m = next.(PlayModel)
	return cmd
}

// tick advances the clock by d and delivers a tick from the live loop.
func (f *playFixture) tick(d time.Duration) {
	f.clock.Advance(d)
	f.send(TickMsg{Time: f.clock.Now(), Gen: f.m.gen})
}

func (f *playFixture) round() registry.RoundView {
	return f.ctrl.Snapshot().Round
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestMatchCursorWrapsAroundGrid(t *testing.T) {
	f := newPlay(t, config.ModeMatch)
	require.Equal(t, 6, f.round().Cols)
	n := len(f.round().Tiles)

	steps := []struct {
		key  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, 1},
		{tea.KeyMsg{Type: tea.KeyDown}, 7},
		{tea.KeyMsg{Type: tea.KeyLeft}, 6},
		{tea.KeyMsg{Type: tea.KeyUp}, 0},
		{tea.KeyMsg{Type: tea.KeyLeft}, n - 1},
		{tea.KeyMsg{Type: tea.KeyDown}, 5},
		{runes("l"), 6},
	}
	for _, s := range steps {
		f.send(s.key)
		assert.Equal(t, s.want, f.m.cursor, "after %s", s.key)
	}
}

func TestMatchSpaceFlipsTileUnderCursor(t *testing.T) {
	f := newPlay(t, config.ModeMatch)

	f.send(space)
	tile := f.round().Tiles[0]
	assert.Equal(t, registry.TileRevealed, tile.State)
	assert.NotEmpty(t, tile.Symbol)
	assert.Zero(t, f.ctrl.State().Attempts, "first flip is not judged")

	f.send(space)
	assert.Zero(t, f.ctrl.State().Attempts, "flipping the same tile again is a no-op")

	f.send(tea.KeyMsg{Type: tea.KeyRight})
	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, f.ctrl.State().Attempts)
	assert.NotEqual(t, registry.TileHidden, f.round().Tiles[1].State)
}

func TestSequenceReplayWithSpaceAndEnter(t *testing.T) {
	f := newPlay(t, config.ModeSequence)
	require.True(t, f.round().Locked)

	f.send(runes("1"))
	f.send(space)
	assert.Empty(t, f.round().Entered, "input during playback is ignored")

	f.tick(0)
	lit := f.round().Highlight
	require.GreaterOrEqual(t, lit, 0)

	f.tick(f.ctrl.Profile().Delay)
	require.False(t, f.round().Locked)

	for range lit {
		f.send(tea.KeyMsg{Type: tea.KeyRight})
	}
	require.Equal(t, lit, f.m.cursor)
	f.send(space)
	assert.Equal(t, []int{lit}, f.round().Entered)

	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, f.ctrl.State().Matches)
	assert.Equal(t, 2, f.round().Length)
	assert.True(t, f.round().Locked, "the longer prefix plays back")
}

func TestWordTypingBlockedWhileShown(t *testing.T) {
	f := newPlay(t, config.ModeWords)
	word := f.round().Word
	require.NotEmpty(t, word)
	require.True(t, f.round().Locked)

	f.send(runes("x"))
	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, f.m.input.Value())
	assert.Zero(t, f.ctrl.State().Attempts)

	f.tick(f.ctrl.Profile().Delay)
	require.False(t, f.round().Locked)
	assert.True(t, f.m.input.Focused())

	f.send(runes(word))
	assert.Equal(t, word, f.m.input.Value())
	f.send(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 1, f.ctrl.State().Matches)
	assert.Empty(t, f.m.input.Value())
	assert.True(t, f.round().Locked, "the next word is shown")
}

func TestStaleTickIsDropped(t *testing.T) {
	f := newPlay(t, config.ModeSequence)

	f.clock.Advance(time.Minute)
	cmd := f.send(TickMsg{Time: f.clock.Now(), Gen: f.m.gen - 1})

	assert.Nil(t, cmd, "a stale loop must not be renewed")
	assert.True(t, f.round().Locked, "a stale tick must not advance the session")
}

func TestRestartedPlayDropsOldTickLoop(t *testing.T) {
	app := startedApp(t, config.ModeArithmetic)
	defer app.Close()
	oldGen := app.play.gen

	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = next.(AppModel)
	next, _ = app.Update(enter)
	app = next.(AppModel)
	require.Equal(t, screenPlay, app.screen)
	require.NotEqual(t, oldGen, app.play.gen)

	_, cmd := app.Update(TickMsg{Time: time.Now(), Gen: oldGen})
	assert.Nil(t, cmd)
}
