package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupForAgeBreakpoints(t *testing.T) {
	t.Parallel()

	tiers := DefaultTiers()
	tests := []struct {
		age  int
		want AgeGroup
	}{
		{1, GroupChild},
		{12, GroupChild},
		{13, GroupTeen},
		{18, GroupTeen},
		{19, GroupAdult},
		{59, GroupAdult},
		{60, GroupSenior},
		{101, GroupSenior},
	}

	for _, tc := range tests {
		got, err := tiers.GroupForAge(tc.age)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "age %d", tc.age)
	}
}

func TestGroupForAgeRejectsNonPositive(t *testing.T) {
	t.Parallel()

	tiers := DefaultTiers()
	for _, age := range []int{0, -5} {
		_, err := tiers.GroupForAge(age)
		assert.ErrorIs(t, err, ErrInvalidAge)
	}
}

func TestResolveIsTotalAndDeterministic(t *testing.T) {
	t.Parallel()

	tiers := DefaultTiers()
	for _, g := range Groups {
		for _, m := range Modes {
			sel := Selector{Group: g, Mode: m}
			a := tiers.Resolve(sel)
			b := tiers.Resolve(sel)
			assert.Equal(t, a, b, "%s", sel)
			assert.Equal(t, 1, a.Level)
			assert.Equal(t, m, a.Mode)
			assert.Equal(t, g, a.Group)
			assert.Positive(t, a.ScoreMultiplier)
			assert.NotEmpty(t, a.Label)
			assert.NotEmpty(t, a.Instructions)
		}
	}
}

func TestResolveMatchesOriginalPresets(t *testing.T) {
	t.Parallel()

	tiers := DefaultTiers()
	tests := []struct {
		group      AgeGroup
		label      string
		rows, cols int
		delay      time.Duration
	}{
		{GroupChild, "Easy", 2, 3, 900 * time.Millisecond},
		{GroupTeen, "Medium", 4, 4, 700 * time.Millisecond},
		{GroupAdult, "Hard", 4, 6, 500 * time.Millisecond},
		{GroupSenior, "Senior Friendly", 3, 4, time.Second},
	}

	for _, tc := range tests {
		p := tiers.Resolve(Selector{Group: tc.group, Mode: ModeMatch})
		assert.Equal(t, tc.label, p.Label)
		assert.Equal(t, tc.rows, p.Rows)
		assert.Equal(t, tc.cols, p.Cols)
		assert.Equal(t, tc.delay, p.Delay)
	}
}

func TestResolveUnknownPanics(t *testing.T) {
	t.Parallel()

	tiers := DefaultTiers()
	assert.Panics(t, func() { tiers.Resolve(Selector{Group: "toddler", Mode: ModeMatch}) })
	assert.Panics(t, func() { tiers.Resolve(Selector{Group: GroupAdult, Mode: "chess"}) })
}

func TestResolveCopiesContent(t *testing.T) {
	t.Parallel()

	tiers := DefaultTiers()
	sel := Selector{Group: GroupChild, Mode: ModeWords}
	p := tiers.Resolve(sel)
	p.Content[0] = "mutated"

	assert.NotEqual(t, "mutated", tiers.Resolve(sel).Content[0])
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tiers := DefaultTiers()

	sel, err := tiers.Normalize(Selector{Age: 65, Mode: ModeWords})
	require.NoError(t, err)
	assert.Equal(t, GroupSenior, sel.Group)

	_, err = tiers.Normalize(Selector{Age: 0, Mode: ModeWords})
	assert.ErrorIs(t, err, ErrInvalidAge)

	_, err = tiers.Normalize(Selector{Age: 30, Mode: "poker"})
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = tiers.Normalize(Selector{Group: "toddler", Mode: ModeMatch})
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestParseHelpers(t *testing.T) {
	t.Parallel()

	m, err := ParseMode(" Arithmetic ")
	require.NoError(t, err)
	assert.Equal(t, ModeArithmetic, m)

	g, err := ParseAgeGroup("SENIOR")
	require.NoError(t, err)
	assert.Equal(t, GroupSenior, g)

	_, err = ParseMode("tetris")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestLoadCustomPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tiers.yaml")
	require.NoError(t, os.WriteFile(path, DefaultYAML(), 0o600))

	tiers, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tiers.Levels())
	assert.Equal(t, 1500*time.Millisecond, tiers.LevelPause)
}

func TestLoadCustomPathErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("breakpoints:\n  child: 12\n"), 0o600))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "missing")
}

func TestValidateRejectsOddGrid(t *testing.T) {
	t.Parallel()

	tiers := DefaultTiers()
	gs := tiers.Groups[GroupChild]
	ms := gs.Modes[ModeMatch]
	ms.Rows, ms.Cols = 3, 3
	gs.Modes[ModeMatch] = ms

	assert.ErrorContains(t, tiers.Validate(), "even number of cells")
}
