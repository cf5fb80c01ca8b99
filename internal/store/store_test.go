package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/anshgoel/quizarena/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestAppendAndRecentHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	sums := []*session.Summary{
		{QuizID: "qz-1", Score: 3, TotalQuestions: 5, Points: 400, BestStreak: 2, AvgTimeSeconds: 8, Accuracy: 0.6},
		{QuizID: "qz-2", Multiplayer: true, Terminated: true, Score: 1, TotalQuestions: 5, Points: 110, BestStreak: 1, AvgTimeSeconds: 12, Accuracy: 0.2},
	}
	for _, sum := range sums {
		if err := st.AppendHistory(ctx, sum); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries, err := st.RecentHistory(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}

	// Newest first.
	if entries[0].QuizID != "qz-2" {
		t.Errorf("first entry = %q, want qz-2", entries[0].QuizID)
	}
	e := entries[0]
	if !e.Multiplayer || !e.Terminated || e.Score != 1 || e.Points != 110 {
		t.Errorf("entry = %+v", e)
	}
	if e.PlayedAt.IsZero() {
		t.Error("playedAt should be set by the database")
	}
}

func TestRecentHistoryLimit(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := st.AppendHistory(ctx, &session.Summary{QuizID: "qz", TotalQuestions: 1}); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := st.RecentHistory(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("entries = %d, want 3", len(entries))
	}
}

func TestRecentHistoryEmpty(t *testing.T) {
	st := openTestStore(t)
	entries, err := st.RecentHistory(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

func TestClearHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := st.AppendHistory(ctx, &session.Summary{QuizID: "qz", TotalQuestions: 1}); err != nil {
			t.Fatal(err)
		}
	}
	n, err := st.ClearHistory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("cleared = %d, want 3", n)
	}
	entries, _ := st.RecentHistory(ctx, 10)
	if len(entries) != 0 {
		t.Errorf("entries after clear = %d, want 0", len(entries))
	}
}

func TestPreferences(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	got, err := st.Preference(ctx, PrefPlayerName)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("unset preference = %q, want empty", got)
	}

	if err := st.SavePreference(ctx, PrefPlayerName, "Ash"); err != nil {
		t.Fatal(err)
	}
	if err := st.SavePreference(ctx, PrefPlayerName, "Kai"); err != nil {
		t.Fatal(err)
	}

	got, err = st.Preference(ctx, PrefPlayerName)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Kai" {
		t.Errorf("preference = %q, want upserted Kai", got)
	}
}

func TestClientIDStable(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	first, err := st.ClientID(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if first == "" {
		t.Fatal("expected a minted client id")
	}
	second, err := st.ClientID(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Errorf("client id changed between calls: %q vs %q", first, second)
	}
}
