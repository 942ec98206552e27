package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, rec SessionRecord) int64 {
	t.Helper()
	id, err := store.SaveSession(rec)
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreInMemory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	mustSave(t, store, SessionRecord{Mode: config.ModeMatch, Group: config.GroupChild, Score: 5, Level: 1})
	high, err := store.HighScore(config.ModeMatch)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 5 {
		t.Errorf("Expected high score 5, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, SessionRecord{Mode: config.ModeMatch, Group: config.GroupTeen, Score: 100, Level: 3, Elapsed: 40 * time.Second})
	mustSave(t, store, SessionRecord{Mode: config.ModeMatch, Group: config.GroupTeen, Score: 50, Level: 2, Elapsed: 30 * time.Second})
	mustSave(t, store, SessionRecord{Mode: config.ModeMatch, Group: config.GroupAdult, Score: 200, Level: 3, Elapsed: 90 * time.Second})
	mustSave(t, store, SessionRecord{Mode: config.ModeWords, Group: config.GroupSenior, Score: 500, Level: 3})

	sessions, err := store.TopSessions(config.ModeMatch, 10)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}

	want := []int{200, 100, 50}
	for i, s := range sessions {
		if s.Score != want[i] {
			t.Errorf("sessions[%d].Score = %d, want %d", i, s.Score, want[i])
		}
		if s.Mode != config.ModeMatch {
			t.Errorf("sessions[%d].Mode = %q, want match", i, s.Mode)
		}
	}
	if sessions[0].Group != config.GroupAdult {
		t.Errorf("Expected adult group, got %q", sessions[0].Group)
	}
	if sessions[0].Elapsed != 90*time.Second {
		t.Errorf("Expected 90s elapsed, got %v", sessions[0].Elapsed)
	}

	words, err := store.TopSessions(config.ModeWords, 10)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(words) != 1 {
		t.Errorf("Expected 1 words session, got %d", len(words))
	}
}

func TestStoreTopSessionsTieBreak(t *testing.T) {
	store := openTestStore(t)

	slow := mustSave(t, store, SessionRecord{Mode: config.ModeArithmetic, Group: config.GroupAdult, Score: 300, Level: 3, Elapsed: 2 * time.Minute})
	fast := mustSave(t, store, SessionRecord{Mode: config.ModeArithmetic, Group: config.GroupAdult, Score: 300, Level: 3, Elapsed: time.Minute})

	sessions, err := store.TopSessions(config.ModeArithmetic, 10)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if sessions[0].ID != fast || sessions[1].ID != slow {
		t.Errorf("Expected faster session first, got IDs %d, %d", sessions[0].ID, sessions[1].ID)
	}
}

func TestStoreTopSessionsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		mustSave(t, store, SessionRecord{Mode: config.ModeSequence, Group: config.GroupTeen, Score: i * 10, Level: 1})
	}

	sessions, err := store.TopSessions(config.ModeSequence, 5)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(sessions) != 5 {
		t.Errorf("Expected 5 sessions, got %d", len(sessions))
	}
	if sessions[0].Score != 140 {
		t.Errorf("Expected top score 140, got %d", sessions[0].Score)
	}

	// Zero limit falls back to 10
	sessions, err = store.TopSessions(config.ModeSequence, 0)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(sessions) != 10 {
		t.Errorf("Expected 10 sessions with default limit, got %d", len(sessions))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore(config.ModeMatch)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty store, got %d", high)
	}

	mustSave(t, store, SessionRecord{Mode: config.ModeMatch, Group: config.GroupChild, Score: 40, Level: 1})
	mustSave(t, store, SessionRecord{Mode: config.ModeMatch, Group: config.GroupChild, Score: 90, Level: 2})

	high, err = store.HighScore(config.ModeMatch)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 90 {
		t.Errorf("Expected high score 90, got %d", high)
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, SessionRecord{Mode: config.ModeMatch, Group: config.GroupChild, Score: 10, Level: 1})
	mustSave(t, store, SessionRecord{Mode: config.ModeWords, Group: config.GroupChild, Score: 20, Level: 1})

	if err := store.ClearSessions(config.ModeMatch); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	match, _ := store.TopSessions(config.ModeMatch, 10)
	if len(match) != 0 {
		t.Errorf("Expected no match sessions after clear, got %d", len(match))
	}
	words, _ := store.TopSessions(config.ModeWords, 10)
	if len(words) != 1 {
		t.Errorf("Expected words sessions untouched, got %d", len(words))
	}
}

func TestStoreRecordSession(t *testing.T) {
	store := openTestStore(t)
	finished := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

	err := store.RecordSession(session.Summary{
		Mode:       config.ModeWords,
		Group:      config.GroupSenior,
		FinalScore: 170,
		FinalTime:  95 * time.Second,
		FinalLevel: 3,
		Matches:    15,
		Attempts:   18,
		Accuracy:   15.0 / 18.0,
		Tier:       session.TierOutstanding,
		FinishedAt: finished,
	})
	if err != nil {
		t.Fatalf("RecordSession() failed: %v", err)
	}

	recent, err := store.RecentSessions(5)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(recent))
	}

	r := recent[0]
	if r.Score != 170 || r.Level != 3 || r.Matches != 15 || r.Attempts != 18 {
		t.Errorf("Unexpected record: %+v", r)
	}
	if r.Tier != "outstanding" {
		t.Errorf("Expected tier outstanding, got %q", r.Tier)
	}
	if r.Elapsed != 95*time.Second {
		t.Errorf("Expected 95s, got %v", r.Elapsed)
	}
	if !r.CreatedAt.Equal(finished) {
		t.Errorf("Expected created_at %v, got %v", finished, r.CreatedAt)
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetModeStats(config.ModeArithmetic)
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected zero stats, got %+v", empty)
	}

	mustSave(t, store, SessionRecord{Mode: config.ModeArithmetic, Group: config.GroupTeen, Score: 100, Level: 2, Accuracy: 0.5})
	mustSave(t, store, SessionRecord{Mode: config.ModeArithmetic, Group: config.GroupTeen, Score: 300, Level: 3, Accuracy: 1.0})
	mustSave(t, store, SessionRecord{Mode: config.ModeMatch, Group: config.GroupTeen, Score: 70, Level: 1})

	stats, err := store.GetModeStats(config.ModeArithmetic)
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("Expected 2 games, got %d", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("Expected high 300, got %d", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected avg 200, got %v", stats.AvgScore)
	}
	if stats.AvgAccuracy != 0.75 {
		t.Errorf("Expected avg accuracy 0.75, got %v", stats.AvgAccuracy)
	}
	if stats.BestLevel != 3 {
		t.Errorf("Expected best level 3, got %d", stats.BestLevel)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected LastPlayed to be set")
	}

	all, err := store.GetAllModeStats()
	if err != nil {
		t.Fatalf("GetAllModeStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected stats for 2 modes, got %d", len(all))
	}
	if all[config.ModeMatch] == nil || all[config.ModeMatch].HighScore != 70 {
		t.Errorf("Unexpected match stats: %+v", all[config.ModeMatch])
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
