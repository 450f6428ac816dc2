package database

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T, opts ...Option) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestGame(t *testing.T, db *DB, id string) {
	t.Helper()
	g := &Game{ID: id, Seed: 42, PlayerCount: 3, RulesJSON: "{}"}
	if err := db.CreateGame(context.Background(), g); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 2; i++ {
		db, err := New(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		db.Close()
	}
}

func TestCreateAndGetGame(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestGame(t, db, "g1")

	g, err := db.GetGame(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if g.Seed != 42 || g.PlayerCount != 3 || g.Status != GameStatusActive {
		t.Errorf("unexpected game %+v", g)
	}

	if err := db.CreateGame(ctx, &Game{ID: "g1", RulesJSON: "{}"}); !errors.Is(err, ErrGameExists) {
		t.Errorf("duplicate create: got %v, want ErrGameExists", err)
	}
	if _, err := db.GetGame(ctx, "missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("missing game: got %v, want ErrGameNotFound", err)
	}
}

func TestFinishAndListGames(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestGame(t, db, "a")
	createTestGame(t, db, "b")

	if err := db.FinishGame(ctx, "a", "red"); err != nil {
		t.Fatalf("FinishGame: %v", err)
	}
	finished, err := db.ListGames(ctx, GameStatusFinished)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(finished) != 1 || finished[0].ID != "a" || finished[0].Winner != "red" {
		t.Errorf("finished games = %+v", finished)
	}
	all, _ := db.ListGames(ctx, "")
	if len(all) != 2 {
		t.Errorf("got %d games, want 2", len(all))
	}
	if err := db.FinishGame(ctx, "missing", "red"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("finish missing: got %v", err)
	}
}

func TestAppendActionKeepsOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestGame(t, db, "g1")

	for seq := 1; seq <= 3; seq++ {
		a := &Action{GameID: "g1", Seq: seq, ActionType: "end_turn", MessageJSON: "{}"}
		if err := db.AppendAction(ctx, a); err != nil {
			t.Fatalf("AppendAction %d: %v", seq, err)
		}
	}

	if err := db.AppendAction(ctx, &Action{GameID: "g1", Seq: 3, ActionType: "x", MessageJSON: "{}"}); !errors.Is(err, ErrSequenceConflict) {
		t.Errorf("replayed seq: got %v, want ErrSequenceConflict", err)
	}

	actions, err := db.GetActions(ctx, "g1")
	if err != nil {
		t.Fatalf("GetActions: %v", err)
	}
	if len(actions) != 3 {
		t.Fatalf("got %d actions, want 3", len(actions))
	}
	for i, a := range actions {
		if a.Seq != i+1 {
			t.Errorf("action %d has seq %d", i, a.Seq)
		}
	}

	since, _ := db.GetActionsSince(ctx, "g1", 2)
	if len(since) != 1 || since[0].Seq != 3 {
		t.Errorf("GetActionsSince(2) = %+v", since)
	}
}

func TestDeleteGameCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestGame(t, db, "g1")
	db.AppendAction(ctx, &Action{GameID: "g1", Seq: 1, ActionType: "end_turn", MessageJSON: "{}"})
	db.SaveSnapshot(ctx, "g1", 1, []byte(`{}`))

	if err := db.DeleteGame(ctx, "g1"); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	actions, _ := db.GetActions(ctx, "g1")
	if len(actions) != 0 {
		t.Errorf("actions survived delete: %d", len(actions))
	}
	if _, _, err := db.LoadSnapshot(ctx, "g1"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("snapshot survived delete: %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, compress := range []bool{true, false} {
		db := newTestDB(t, WithCompression(compress))
		ctx := context.Background()
		createTestGame(t, db, "g1")

		data := bytes.Repeat([]byte(`{"tiles":[1,2,3]}`), 50)
		if err := db.SaveSnapshot(ctx, "g1", 4, data); err != nil {
			t.Fatalf("SaveSnapshot: %v", err)
		}
		if err := db.SaveSnapshot(ctx, "g1", 5, data); err != nil {
			t.Fatalf("SaveSnapshot overwrite: %v", err)
		}

		got, seq, err := db.LoadSnapshot(ctx, "g1")
		if err != nil {
			t.Fatalf("LoadSnapshot: %v", err)
		}
		if seq != 5 || !bytes.Equal(got, data) {
			t.Errorf("compress=%v: seq %d, data equal %v", compress, seq, bytes.Equal(got, data))
		}
	}
}
