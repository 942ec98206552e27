package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []storage.SessionRecord{
		{Mode: config.ModeMatch, Group: config.GroupChild, Score: 120, Level: 3, Accuracy: 0.9, Tier: "outstanding", Elapsed: 75 * time.Second, CreatedAt: day},
		{Mode: config.ModeMatch, Group: config.GroupAdult, Score: 80, Level: 2, Accuracy: 0.5, Tier: "good", Elapsed: 2 * time.Minute, CreatedAt: day.Add(time.Hour)},
		{Mode: config.ModeWords, Group: config.GroupSenior, Score: 60, Level: 3, Accuracy: 0.7, Tier: "great", Elapsed: 3 * time.Minute, CreatedAt: day.Add(2 * time.Hour)},
	}
	for _, rec := range records {
		_, err := store.SaveSession(rec)
		require.NoError(t, err)
	}
	return store
}

func TestPrintScores(t *testing.T) {
	store := newTestStore(t)

	var buf bytes.Buffer
	require.NoError(t, printScores(&buf, store, config.ModeMatch))
	out := buf.String()

	assert.Contains(t, out, "High Scores - Match Pairs")
	assert.Contains(t, out, "1:15")
	assert.Contains(t, out, "Best: 120  Games: 2  Average: 100")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("120")), bytes.Index(buf.Bytes(), []byte("80 ")))
}

func TestPrintScoresEmptyMode(t *testing.T) {
	store := newTestStore(t)

	var buf bytes.Buffer
	require.NoError(t, printScores(&buf, store, config.ModeSequence))

	assert.Contains(t, buf.String(), "No scores recorded yet.")
	assert.Contains(t, buf.String(), "arcade play sequence")
}

func TestPrintRecentNewestFirst(t *testing.T) {
	store := newTestStore(t)

	var buf bytes.Buffer
	require.NoError(t, printRecent(&buf, store, 2))
	out := buf.String()

	assert.Contains(t, out, "2024-03-01 12:00")
	assert.Contains(t, out, "2024-03-01 11:00")
	assert.NotContains(t, out, "2024-03-01 10:00", "limit drops the oldest session")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Word Recall")), bytes.Index(buf.Bytes(), []byte("Match Pairs")))
}

func TestPrintSummaryListsEveryMode(t *testing.T) {
	store := newTestStore(t)

	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, store))
	out := buf.String()

	for _, title := range []string{"Match Pairs", "Sequence Repeat", "Quick Maths", "Word Recall"} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "never")
}

func TestScoresClearMode(t *testing.T) {
	store := newTestStore(t)
	flagClear = true
	t.Cleanup(func() { flagClear = false })

	require.NoError(t, scores(store, []string{"match"}))

	top, err := store.TopSessions(config.ModeMatch, topLimit)
	require.NoError(t, err)
	assert.Empty(t, top)
	top, err = store.TopSessions(config.ModeWords, topLimit)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestParseMode(t *testing.T) {
	m, err := parseMode(" Words ")
	require.NoError(t, err)
	assert.Equal(t, config.ModeWords, m)

	_, err = parseMode("chess")
	assert.ErrorIs(t, err, config.ErrUnknownMode)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", formatDuration(0))
	assert.Equal(t, "1:05", formatDuration(65*time.Second))
	assert.Equal(t, "12:00", formatDuration(12*time.Minute))
}
