package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSaveRunAssignsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{GameID: "snake", Score: 7, Length: 10, Ticks: 321, Seed: 99})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("SaveRun() should assign a run ID")
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("RunByID() found nothing")
	}
	if run.ID != id || run.GameID != "snake" || run.Score != 7 || run.Length != 10 || run.Ticks != 321 || run.Seed != 99 {
		t.Errorf("RunByID() = %+v, fields do not match the saved run", run)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt should be filled in by the database")
	}
}

func TestSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)
	want := uuid.New()

	got, err := store.SaveRun(Run{ID: want, GameID: "snake", Score: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if got != want {
		t.Errorf("SaveRun() = %s, expected %s", got, want)
	}

	if _, err := store.SaveRun(Run{ID: want, GameID: "snake", Score: 2}); err == nil {
		t.Error("saving the same run ID twice should fail")
	}
}

func TestRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	run, err := store.RunByID(uuid.New())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run != nil {
		t.Errorf("RunByID() = %+v, expected nil", run)
	}
}

func TestTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveRun(Run{GameID: "snake", Score: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(Run{GameID: "snake_wrap", Score: 500}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	scores, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}

	wrap, err := store.TopScores("snake_wrap", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(wrap) != 1 {
		t.Errorf("Expected 1 wrap score, got %d", len(wrap))
	}
}

func TestTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		if _, err := store.SaveRun(Run{GameID: "snake", Score: (i + 1) * 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	scores, err := store.TopScores("snake", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 50 || scores[1].Score != 40 || scores[2].Score != 30 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty table, got %d", high)
	}

	store.SaveRun(Run{GameID: "snake", Score: 12})
	store.SaveRun(Run{GameID: "snake", Score: 31})
	store.SaveRun(Run{GameID: "snake", Score: 4})

	high, err = store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 31 {
		t.Errorf("Expected high score 31, got %d", high)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "snake", Score: 3})
	store.SaveRun(Run{GameID: "snake_wrap", Score: 8})

	if err := store.ClearScores("snake"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("snake", 10)
	if len(scores) != 0 {
		t.Errorf("Expected no snake scores after clear, got %d", len(scores))
	}
	wrap, _ := store.TopScores("snake_wrap", 10)
	if len(wrap) != 1 {
		t.Errorf("Clearing one game should not touch another, got %d wrap scores", len(wrap))
	}
}

func TestSessionRuns(t *testing.T) {
	store := openTestStore(t)
	session := uuid.NewString()

	store.SaveRun(Run{GameID: "snake", SessionID: session, Score: 1})
	store.SaveRun(Run{GameID: "snake", Score: 9})
	store.SaveRun(Run{GameID: "snake_wrap", SessionID: session, Score: 2})

	runs, err := store.SessionRuns(session, 10)
	if err != nil {
		t.Fatalf("SessionRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 session runs, got %d", len(runs))
	}
	if runs[0].GameID != "snake_wrap" || runs[1].GameID != "snake" {
		t.Errorf("Session runs should be newest first: %v", runs)
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("snake")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRun(Run{GameID: "snake", Score: 4, Length: 7, Ticks: 100})
	store.SaveRun(Run{GameID: "snake", Score: 8, Length: 11, Ticks: 300})
	store.SaveRun(Run{GameID: "snake_wrap", Score: 1, Length: 4, Ticks: 10})

	stats, err := store.GetGameStats("snake")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 8 || stats.TotalScore != 12 || stats.AvgScore != 6 {
		t.Errorf("Unexpected score stats: %+v", stats)
	}
	if stats.MaxLength != 11 || stats.TotalTicks != 400 {
		t.Errorf("Unexpected length/tick stats: %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["snake_wrap"].HighScore != 1 {
		t.Errorf("Unexpected per-game stats: %v", all)
	}
}
