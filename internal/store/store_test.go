package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"natak/internal/database"
	"natak/internal/game"
	"natak/internal/metrics"
	"natak/internal/protocol"
)

// applySetup understands the setup actions, which is all these tests play.
func applySetup(g *game.Game, msg *protocol.Message) error {
	switch msg.Type {
	case protocol.TypePlaceVillage:
		var p protocol.PointPayload
		if err := msg.ParsePayload(&p); err != nil {
			return err
		}
		return g.PlaceVillage(p.Point)
	case protocol.TypePlaceRoad:
		var r protocol.RoadPayload
		if err := msg.ParsePayload(&r); err != nil {
			return err
		}
		return g.PlaceRoad(r.From, r.To)
	case protocol.TypeEndTurn:
		return g.EndTurn()
	}
	return fmt.Errorf("%w: %s", protocol.ErrUnknownMessage, msg.Type)
}

func newTestStore(t *testing.T) (*Store, *database.DB, *metrics.Metrics) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "natak.db"), database.WithCompression(true))
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	m := metrics.New()
	return New(db, applySetup, m, zerolog.Nop()), db, m
}

func newStoredGame(t *testing.T, s *Store) *game.Game {
	t.Helper()
	g, err := game.NewGame(3, game.WithSeed(17))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if err := s.Create(context.Background(), g); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return g
}

// setupTurnMessages picks a legal village and road for the current player.
func setupTurnMessages(t *testing.T, g *game.Game) []*protocol.Message {
	t.Helper()
	colour := g.CurrentPlayer().Colour
	var village game.Point
	for _, p := range game.HousePoints() {
		if g.Board().CanPlaceVillage(colour, p, true) == nil {
			village = p
			break
		}
	}
	// No road touches a fresh setup village, so any neighbour will do.
	road := protocol.RoadPayload{From: village, To: g.Board().Buildings().AdjacentHousePoints(village)[0]}

	var msgs []*protocol.Message
	for _, m := range []struct {
		typ     protocol.MessageType
		payload any
	}{
		{protocol.TypePlaceVillage, protocol.PointPayload{Point: village}},
		{protocol.TypePlaceRoad, road},
		{protocol.TypeEndTurn, nil},
	} {
		msg, err := protocol.NewGameMessage(g.ID, m.typ, m.payload)
		if err != nil {
			t.Fatalf("NewGameMessage: %v", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

// playAndRecord applies msgs one at a time through the store.
func playAndRecord(t *testing.T, s *Store, id string, msgs []*protocol.Message) {
	t.Helper()
	for _, msg := range msgs {
		err := s.WithGame(context.Background(), id, func(sess *Session) error {
			if err := applySetup(sess.Game, msg); err != nil {
				return err
			}
			return sess.Record(msg)
		})
		if err != nil {
			t.Fatalf("%s: %v", msg.Type, err)
		}
	}
}

func viewJSON(t *testing.T, v game.View) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return string(data)
}

func TestCreateCachesGame(t *testing.T) {
	s, db, m := newTestStore(t)
	g := newStoredGame(t, s)

	if s.Cached() != 1 || testutil.ToFloat64(m.ActiveGames) != 1 {
		t.Errorf("cached %d, gauge %v", s.Cached(), testutil.ToFloat64(m.ActiveGames))
	}
	rec, err := db.GetGame(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if rec.Seed != 17 || rec.PlayerCount != 3 {
		t.Errorf("record = %+v", rec)
	}

	s.Evict(g.ID)
	if s.Cached() != 0 || testutil.ToFloat64(m.ActiveGames) != 0 {
		t.Errorf("after evict: cached %d", s.Cached())
	}
}

func TestLoadMissingGame(t *testing.T) {
	s, _, _ := newTestStore(t)
	if _, _, err := s.Load(context.Background(), "nope"); !errors.Is(err, game.ErrGameNotFound) {
		t.Errorf("got %v, want ErrGameNotFound", err)
	}
	err := s.WithGame(context.Background(), "nope", func(*Session) error { return nil })
	if !errors.Is(err, game.ErrGameNotFound) {
		t.Errorf("WithGame: got %v", err)
	}
}

func TestRecordAndReplay(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	g := newStoredGame(t, s)

	var recorded int
	for i := 0; i < 2; i++ {
		var msgs []*protocol.Message
		if err := s.WithGame(ctx, g.ID, func(sess *Session) error {
			msgs = setupTurnMessages(t, sess.Game)
			return nil
		}); err != nil {
			t.Fatalf("WithGame: %v", err)
		}
		playAndRecord(t, s, g.ID, msgs)
		recorded += len(msgs)
	}

	var seq int
	if err := s.WithGame(ctx, g.ID, func(sess *Session) error {
		seq = sess.Seq()
		return nil
	}); err != nil {
		t.Fatalf("WithGame: %v", err)
	}
	if seq != recorded {
		t.Errorf("seq = %d, want %d", seq, recorded)
	}

	live, err := s.View(ctx, g.ID)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	snap, snapSeq, err := s.Snapshot(ctx, g.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snapSeq != recorded || viewJSON(t, snap) != viewJSON(t, live) {
		t.Errorf("snapshot at seq %d does not match the live game", snapSeq)
	}

	s.Evict(g.ID)
	rebuilt, err := s.View(ctx, g.ID)
	if err != nil {
		t.Fatalf("View after evict: %v", err)
	}
	if viewJSON(t, rebuilt) != viewJSON(t, live) {
		t.Error("replayed game differs from the live game")
	}
	if s.Cached() != 1 {
		t.Errorf("cached = %d after reload", s.Cached())
	}
}

func TestReplayFailureIsReported(t *testing.T) {
	ctx := context.Background()
	s, db, _ := newTestStore(t)
	g := newStoredGame(t, s)

	msg, err := protocol.NewGameMessage(g.ID, protocol.TypeRollDice, nil)
	if err != nil {
		t.Fatalf("NewGameMessage: %v", err)
	}
	data, _ := json.Marshal(msg)
	if err := db.AppendAction(ctx, &database.Action{GameID: g.ID, Seq: 1, ActionType: string(msg.Type), MessageJSON: string(data)}); err != nil {
		t.Fatalf("AppendAction: %v", err)
	}

	if _, _, err := s.Load(ctx, g.ID); !errors.Is(err, protocol.ErrUnknownMessage) {
		t.Errorf("got %v, want a replay failure", err)
	}
}
