// Package service routes protocol messages to games held by the store,
// records accepted actions and keeps the metrics.
package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"natak/internal/database"
	"natak/internal/game"
	"natak/internal/logger"
	"natak/internal/metrics"
	"natak/internal/protocol"
	"natak/internal/store"
)

// Service processes incoming messages.
type Service struct {
	store   *store.Store
	rules   game.Rules
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// New creates a service backed by db. Games it creates use rules.
func New(db *database.DB, rules game.Rules, m *metrics.Metrics, log zerolog.Logger) *Service {
	if m == nil {
		m = metrics.New()
	}
	s := &Service{
		rules:   rules,
		metrics: m,
		log:     logger.Component(log, "Service"),
	}
	s.store = store.New(db, ReplayAction, m, log)
	return s
}

// Store returns the game store.
func (s *Service) Store() *store.Store {
	return s.store
}

// Metrics returns the service metrics.
func (s *Service) Metrics() *metrics.Metrics {
	return s.metrics
}

// Handle routes a message and returns the reply. Failures are reported as
// error messages, never as a Go error.
func (s *Service) Handle(ctx context.Context, msg *protocol.Message) *protocol.Message {
	var (
		reply *protocol.Message
		err   error
	)

	switch {
	case msg.Type == protocol.TypeCreateGame:
		reply, err = s.handleCreateGame(ctx, msg)
	case msg.Type == protocol.TypeGetGame:
		reply, err = s.handleGetGame(ctx, msg)
	case msg.Type.IsAction():
		reply, err = s.handleAction(ctx, msg)
	default:
		err = protocol.ErrUnknownMessage
	}

	if err != nil {
		return s.errorReply(msg, err)
	}
	reply.ID = msg.ID
	reply.GameID = msg.GameID
	if reply.GameID == "" && msg.Type == protocol.TypeCreateGame {
		var created protocol.GameCreatedPayload
		if reply.ParsePayload(&created) == nil {
			reply.GameID = created.GameID
		}
	}
	return reply
}

// CreateGame creates and stores a game. A nil seed picks one.
func (s *Service) CreateGame(ctx context.Context, playerCount int, seed *int64) (*game.Game, error) {
	opts := []game.Option{game.WithRules(s.rules), game.WithLogger(s.log)}
	if seed != nil {
		opts = append(opts, game.WithSeed(*seed))
	}
	g, err := game.NewGame(playerCount, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, g); err != nil {
		return nil, err
	}
	s.metrics.GamesCreated.Inc()
	s.log.Info().Str("game", g.ID).Int("players", playerCount).Msg("game created")
	return g, nil
}

func (s *Service) handleCreateGame(ctx context.Context, msg *protocol.Message) (*protocol.Message, error) {
	var payload protocol.CreateGamePayload
	if err := msg.ParsePayload(&payload); err != nil {
		return nil, err
	}
	g, err := s.CreateGame(ctx, payload.PlayerCount, payload.Seed)
	if err != nil {
		return nil, err
	}
	return protocol.NewMessage(protocol.TypeGameCreated, protocol.GameCreatedPayload{
		GameID:    g.ID,
		Seed:      g.Seed,
		TurnOrder: g.Players().Order(),
	})
}

func (s *Service) handleGetGame(ctx context.Context, msg *protocol.Message) (*protocol.Message, error) {
	v, err := s.store.View(ctx, msg.GameID)
	if err != nil {
		return nil, err
	}
	return protocol.NewMessage(protocol.TypeGameState, protocol.GameStatePayload{Game: v})
}

func (s *Service) handleAction(ctx context.Context, msg *protocol.Message) (*protocol.Message, error) {
	var result protocol.ActionResultPayload
	err := s.store.WithGame(ctx, msg.GameID, func(sess *store.Session) error {
		var err error
		result, err = Apply(sess.Game, msg)
		if err != nil {
			return err
		}
		return sess.Record(msg)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.Applied(string(msg.Type))
	return protocol.NewMessage(protocol.TypeActionResult, result)
}

func (s *Service) errorReply(msg *protocol.Message, err error) *protocol.Message {
	payload := protocol.NewErrorPayload(err)
	if msg.Type.IsAction() {
		s.metrics.Rejected(string(msg.Type), string(payload.Code))
	}
	if payload.Code == protocol.ErrCodeInternalError && !errors.Is(err, protocol.ErrUnknownMessage) {
		s.log.Error().Err(err).Str("type", string(msg.Type)).Str("game", msg.GameID).Msg("request failed")
	} else {
		s.log.Debug().Err(err).Str("type", string(msg.Type)).Str("game", msg.GameID).Msg("request rejected")
	}

	reply, mErr := protocol.NewMessage(protocol.TypeError, payload)
	if mErr != nil {
		reply = &protocol.Message{Type: protocol.TypeError}
	}
	reply.ID = msg.ID
	reply.GameID = msg.GameID
	return reply
}
