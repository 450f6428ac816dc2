// Package store keeps games in memory keyed by id, serializes access to
// each game and persists accepted actions. A game missing from the cache is
// rebuilt from its seed by replaying its stored actions.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"natak/internal/database"
	"natak/internal/game"
	"natak/internal/logger"
	"natak/internal/metrics"
	"natak/internal/protocol"
)

// ApplyFunc applies one stored action to a game during replay.
type ApplyFunc func(g *game.Game, msg *protocol.Message) error

type entry struct {
	mu   sync.Mutex
	game *game.Game
	seq  int
}

// Store is the game-instance store.
type Store struct {
	db      *database.DB
	apply   ApplyFunc
	metrics *metrics.Metrics
	log     zerolog.Logger

	mu    sync.Mutex
	games map[string]*entry
}

// New creates a store over db. apply is used to replay stored actions.
func New(db *database.DB, apply ApplyFunc, m *metrics.Metrics, log zerolog.Logger) *Store {
	return &Store{
		db:      db,
		apply:   apply,
		metrics: m,
		log:     logger.Component(log, "Store"),
		games:   make(map[string]*entry),
	}
}

// Create persists a new game and caches it.
func (s *Store) Create(ctx context.Context, g *game.Game) error {
	rules, err := json.Marshal(g.Rules())
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	rec := &database.Game{
		ID:          g.ID,
		Seed:        g.Seed,
		PlayerCount: g.PlayerCount,
		RulesJSON:   string(rules),
	}
	if err := s.db.CreateGame(ctx, rec); err != nil {
		return err
	}

	s.mu.Lock()
	s.games[g.ID] = &entry{game: g}
	s.mu.Unlock()
	s.setActive()

	if err := s.saveSnapshot(ctx, g, 0); err != nil {
		s.log.Warn().Err(err).Str("game", g.ID).Msg("snapshot failed")
	}
	return nil
}

// Session is exclusive access to one game for the duration of WithGame.
type Session struct {
	Game *game.Game

	store *Store
	entry *entry
	ctx   context.Context
}

// Seq returns the number of actions applied to the game.
func (sess *Session) Seq() int {
	return sess.entry.seq
}

// Record stores an action that has just been applied to the game. If the
// write fails the cached game no longer matches storage, so it is dropped
// and rebuilt on the next access.
func (sess *Session) Record(msg *protocol.Message) error {
	s := sess.store
	g := sess.Game
	data, err := json.Marshal(msg)
	if err != nil {
		s.Evict(g.ID)
		return err
	}

	action := &database.Action{
		GameID:      g.ID,
		Seq:         sess.entry.seq + 1,
		ActionType:  string(msg.Type),
		MessageJSON: string(data),
	}
	if err := s.db.AppendAction(sess.ctx, action); err != nil {
		s.Evict(g.ID)
		return fmt.Errorf("append action: %w", err)
	}
	sess.entry.seq = action.Seq

	if w := g.Winner(); w != game.ColourNone {
		if err := s.db.FinishGame(sess.ctx, g.ID, string(w)); err != nil {
			return err
		}
		if s.metrics != nil {
			s.metrics.GamesFinished.Inc()
		}
	}
	if err := s.saveSnapshot(sess.ctx, g, action.Seq); err != nil {
		s.log.Warn().Err(err).Str("game", g.ID).Msg("snapshot failed")
	}
	return nil
}

// WithGame runs fn with exclusive access to a game, loading it if needed.
func (s *Store) WithGame(ctx context.Context, id string, fn func(*Session) error) error {
	e, err := s.entry(ctx, id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(&Session{Game: e.game, store: s, entry: e, ctx: ctx})
}

// View returns the current view of a game.
func (s *Store) View(ctx context.Context, id string) (game.View, error) {
	var v game.View
	err := s.WithGame(ctx, id, func(sess *Session) error {
		v = sess.Game.View()
		return nil
	})
	return v, err
}

// Evict drops a game from the cache.
func (s *Store) Evict(id string) {
	s.mu.Lock()
	delete(s.games, id)
	s.mu.Unlock()
	s.setActive()
}

// Cached returns how many games are in memory.
func (s *Store) Cached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

func (s *Store) entry(ctx context.Context, id string) (*entry, error) {
	s.mu.Lock()
	if e, ok := s.games[id]; ok {
		s.mu.Unlock()
		return e, nil
	}
	s.mu.Unlock()

	g, seq, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another caller may have loaded it meanwhile.
	if e, ok := s.games[id]; ok {
		return e, nil
	}
	e := &entry{game: g, seq: seq}
	s.games[id] = e
	s.setActiveLocked()
	return e, nil
}

// Load rebuilds a game from storage without caching it.
func (s *Store) Load(ctx context.Context, id string) (*game.Game, int, error) {
	rec, err := s.db.GetGame(ctx, id)
	if errors.Is(err, database.ErrGameNotFound) {
		return nil, 0, fmt.Errorf("%w: %s", game.ErrGameNotFound, id)
	}
	if err != nil {
		return nil, 0, err
	}

	var rules game.Rules
	if err := json.Unmarshal([]byte(rec.RulesJSON), &rules); err != nil {
		return nil, 0, fmt.Errorf("decode rules: %w", err)
	}
	g, err := game.NewGame(rec.PlayerCount,
		game.WithID(rec.ID),
		game.WithSeed(rec.Seed),
		game.WithRules(rules),
		game.WithLogger(s.log),
	)
	if err != nil {
		return nil, 0, err
	}

	actions, err := s.db.GetActions(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	for _, a := range actions {
		var msg protocol.Message
		if err := json.Unmarshal([]byte(a.MessageJSON), &msg); err != nil {
			return nil, 0, fmt.Errorf("decode action %d: %w", a.Seq, err)
		}
		if err := s.apply(g, &msg); err != nil {
			return nil, 0, fmt.Errorf("replay action %d (%s): %w", a.Seq, a.ActionType, err)
		}
	}
	s.log.Debug().Str("game", id).Int("actions", len(actions)).Msg("game replayed")
	return g, len(actions), nil
}

func (s *Store) saveSnapshot(ctx context.Context, g *game.Game, seq int) error {
	data, err := json.Marshal(g.View())
	if err != nil {
		return err
	}
	return s.db.SaveSnapshot(ctx, g.ID, seq, data)
}

// Snapshot returns the stored view of a game without loading it.
func (s *Store) Snapshot(ctx context.Context, id string) (game.View, int, error) {
	var v game.View
	data, seq, err := s.db.LoadSnapshot(ctx, id)
	if err != nil {
		return v, 0, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, 0, fmt.Errorf("decode snapshot: %w", err)
	}
	return v, seq, nil
}

func (s *Store) setActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setActiveLocked()
}

func (s *Store) setActiveLocked() {
	if s.metrics != nil {
		s.metrics.ActiveGames.Set(float64(len(s.games)))
	}
}
