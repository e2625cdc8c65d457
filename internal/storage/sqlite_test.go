package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return store, dbPath
}

func TestStoreOpenClose(t *testing.T) {
	store, dbPath := openTestStore(t)
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenCreatesDirectories(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		t.Errorf("parent directory not created: %v", err)
	}
}

func TestPrefsDefaults(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Close()

	if v := store.GetInt("record.points", 42); v != 42 {
		t.Errorf("GetInt on missing key = %d, want default 42", v)
	}
	if v := store.GetFloat("audio.master", 0.5); v != 0.5 {
		t.Errorf("GetFloat on missing key = %v, want default 0.5", v)
	}
}

func TestPrefsWriteBackAndReopen(t *testing.T) {
	store, dbPath := openTestStore(t)

	store.SetInt("record.points", 1250)
	store.SetFloat("audio.music", 0.25)

	// Buffered values are visible before Flush
	if v := store.GetInt("record.points", 0); v != 1250 {
		t.Errorf("GetInt before flush = %d, want 1250", v)
	}

	if err := store.Flush(); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	store.SetInt("record.points", 1300)
	if err := store.Flush(); err != nil {
		t.Fatalf("second Flush() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if v := reopened.GetInt("record.points", 0); v != 1300 {
		t.Errorf("persisted record = %d, want 1300", v)
	}
	if v := reopened.GetFloat("audio.music", 1); v != 0.25 {
		t.Errorf("persisted music volume = %v, want 0.25", v)
	}
}

func TestCloseFlushesPending(t *testing.T) {
	store, dbPath := openTestStore(t)
	store.SetInt("audio.music_on", 0)
	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if v := reopened.GetInt("audio.music_on", 1); v != 0 {
		t.Errorf("audio.music_on = %d, want 0 flushed by Close", v)
	}
}

func TestPrefKeysAndDelete(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Close()

	store.SetInt("b", 1)
	store.SetInt("a", 2)
	store.Flush()

	keys := store.PrefKeys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("PrefKeys() = %v, want [a b]", keys)
	}

	if err := store.DeletePref("a"); err != nil {
		t.Fatalf("DeletePref() failed: %v", err)
	}
	if v := store.GetInt("a", -1); v != -1 {
		t.Errorf("deleted pref still readable: %d", v)
	}
}

func TestSessionsSaveAndTop(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Close()

	entries := []SessionEntry{
		{SessionID: "s1", Points: 100, Reason: "time_up", Rank: "E"},
		{SessionID: "s2", Points: 5000, Reason: "no_lives", Rank: "D"},
		{SessionID: "s3", Points: 800, Reason: "time_up", Rank: "E", CardsUsed: 3, Duration: 42.5},
	}
	for _, e := range entries {
		if _, err := store.SaveSession(e); err != nil {
			t.Fatalf("SaveSession(%s) failed: %v", e.SessionID, err)
		}
	}

	top, err := store.TopSessions(2)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("Expected 2 sessions with limit, got %d", len(top))
	}
	if top[0].Points != 5000 || top[1].Points != 800 {
		t.Errorf("Sessions not in expected order: %v", top)
	}

	recent, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 3 || recent[0].SessionID != "s3" {
		t.Errorf("RecentSessions should start with the latest, got %v", recent)
	}

	got, err := store.SessionByID("s3")
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if got == nil || got.CardsUsed != 3 || got.Duration != 42.5 {
		t.Errorf("SessionByID(s3) = %+v", got)
	}

	missing, err := store.SessionByID("nope")
	if err != nil || missing != nil {
		t.Errorf("SessionByID(nope) = %v, %v; want nil, nil", missing, err)
	}
}

func TestSessionDuplicateID(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Close()

	if _, err := store.SaveSession(SessionEntry{SessionID: "dup", Reason: "time_up"}); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if _, err := store.SaveSession(SessionEntry{SessionID: "dup", Reason: "time_up"}); err == nil {
		t.Error("duplicate session ID should be rejected")
	}
}

func TestStats(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if stats.Sessions != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveSession(SessionEntry{SessionID: "a", Points: 100, Reason: "time_up"})
	store.SaveSession(SessionEntry{SessionID: "b", Points: 300, Reason: "no_lives"})
	store.SaveSession(SessionEntry{SessionID: "c", Points: 200, Reason: "time_up"})

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Sessions != 3 || stats.BestPoints != 300 || stats.TotalPoints != 600 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgPoints != 200 {
		t.Errorf("AvgPoints = %v, want 200", stats.AvgPoints)
	}
	if stats.TimeUps != 2 || stats.NoLives != 1 {
		t.Errorf("reasons = %d/%d, want 2/1", stats.TimeUps, stats.NoLives)
	}

	if err := store.ClearSessions(); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}
	top, _ := store.TopSessions(10)
	if len(top) != 0 {
		t.Errorf("Expected no sessions after clear, got %d", len(top))
	}
}

func TestMemoryPrefs(t *testing.T) {
	p := NewMemoryPrefs()
	if p.GetInt("x", 7) != 7 {
		t.Error("missing key should return default")
	}
	p.SetInt("x", 3)
	p.SetFloat("y", 1.5)
	if p.GetInt("x", 0) != 3 || p.GetFloat("y", 0) != 1.5 {
		t.Error("stored values not returned")
	}
	if err := p.Flush(); err != nil || p.Flushes() != 1 {
		t.Errorf("Flush() = %v, flushes = %d", err, p.Flushes())
	}
}

func TestRaiseIntOnlyIncreases(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Close()

	if v, ok := store.RaiseInt("best", 50); !ok || v != 50 {
		t.Fatalf("first RaiseInt = %d, %v", v, ok)
	}
	if v, ok := store.RaiseInt("best", 20); ok || v != 50 {
		t.Errorf("lower RaiseInt = %d, %v, want 50, false", v, ok)
	}
	if v, ok := store.RaiseInt("best", 80); !ok || v != 80 {
		t.Errorf("higher RaiseInt = %d, %v", v, ok)
	}
	if err := store.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if store.GetInt("best", 0) != 80 {
		t.Errorf("best = %d, want 80", store.GetInt("best", 0))
	}

	mem := NewMemoryPrefs()
	mem.RaiseInt("best", 10)
	if _, ok := mem.RaiseInt("best", 5); ok || mem.GetInt("best", 0) != 10 {
		t.Error("memory prefs lowered a raised value")
	}
}
