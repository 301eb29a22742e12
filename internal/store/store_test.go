package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/firesync/firesync/internal/models"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matches.sqlite")
	repo, err := Open(DialectSQLite, "sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndRecentRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	m := models.MatchSummary{
		ID:          "match_test_1",
		Team:        "T",
		Wins:        3,
		Losses:      2,
		FinalBudget: 10200,
		Played:      time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Rounds: []models.RoundResult{
			{Round: 1, PlayerIndex: 8, PlayerName: "Desert-Eagle", PlayerScore: 262.9, OpponentIndex: 0, OpponentName: "Glock-18", OpponentScore: 168.3, Price: 700, Budget: 200, Won: true},
		},
	}
	if err := repo.Save(ctx, m); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1", len(got))
	}
	g := got[0]
	if g.ID != m.ID || g.Team != m.Team || g.Wins != m.Wins || g.Losses != m.Losses || g.FinalBudget != m.FinalBudget {
		t.Errorf("round-trip mismatch: got %+v", g)
	}
	if !g.Played.Equal(m.Played) {
		t.Errorf("played = %v, want %v", g.Played, m.Played)
	}
	if len(g.Rounds) != 1 || g.Rounds[0].PlayerName != "Desert-Eagle" {
		t.Errorf("rounds did not survive: %+v", g.Rounds)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		m := models.MatchSummary{
			ID:     "m" + string(rune('a'+i)),
			Team:   "T",
			Played: base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.Save(ctx, m); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	got, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2 (limit)", len(got))
	}
	if got[0].ID != "mc" || got[1].ID != "mb" {
		t.Errorf("order = %s, %s; want mc, mb", got[0].ID, got[1].ID)
	}
}

func TestOpenFromEnvUnsetMeansNoPersistence(t *testing.T) {
	t.Setenv("MATCH_DB_DIALECT", "")
	repo, err := OpenFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo != nil {
		t.Fatal("unset dialect must disable persistence")
	}
}

func TestOpenFromEnvRejectsUnknownDialect(t *testing.T) {
	t.Setenv("MATCH_DB_DIALECT", "oracle")
	if _, err := OpenFromEnv(); err == nil {
		t.Fatal("expected error for unsupported dialect")
	}
}

func TestOpenFromEnvPostgresNeedsDSN(t *testing.T) {
	t.Setenv("MATCH_DB_DIALECT", "postgres")
	t.Setenv("MATCH_DB_POSTGRES_DSN", "")
	t.Setenv("DATABASE_URL", "")
	if _, err := OpenFromEnv(); err == nil {
		t.Fatal("expected error when no DSN is configured")
	}
}
