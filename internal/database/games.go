package database

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// GameStatus represents the current status of a game.
type GameStatus string

const (
	GameStatusActive   GameStatus = "active"   // Game in progress
	GameStatusFinished GameStatus = "finished" // Someone has won
)

// Game is the stored record of a game.
type Game struct {
	ID          string
	Seed        int64
	PlayerCount int
	RulesJSON   string
	Status      GameStatus
	Winner      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ErrGameNotFound is returned when a game is not found.
var ErrGameNotFound = errors.New("game not found")

// ErrGameExists is returned when creating a game whose id is taken.
var ErrGameExists = errors.New("game already exists")

// CreateGame stores a new game record.
func (db *DB) CreateGame(ctx context.Context, g *Game) error {
	now := time.Now()
	if g.Status == "" {
		g.Status = GameStatusActive
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO games (id, seed, player_count, rules_json, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.Seed, g.PlayerCount, g.RulesJSON, g.Status, now, now)
	if err != nil {
		if exists, _ := db.gameExists(ctx, g.ID); exists {
			return ErrGameExists
		}
		return err
	}
	g.CreatedAt, g.UpdatedAt = now, now
	return nil
}

func (db *DB) gameExists(ctx context.Context, id string) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM games WHERE id = ?", id).Scan(&count)
	return count > 0, err
}

// GetGame retrieves a game by ID.
func (db *DB) GetGame(ctx context.Context, id string) (*Game, error) {
	var g Game
	var winner sql.NullString
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, seed, player_count, rules_json, status, winner, created_at, updated_at
		FROM games WHERE id = ?
	`, id).Scan(&g.ID, &g.Seed, &g.PlayerCount, &g.RulesJSON, &g.Status, &winner, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	g.Winner = winner.String
	return &g, nil
}

// ListGames returns games with the given status, newest first. An empty
// status lists every game.
func (db *DB) ListGames(ctx context.Context, status GameStatus) ([]*Game, error) {
	query := `
		SELECT id, seed, player_count, rules_json, status, winner, created_at, updated_at
		FROM games`
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*Game
	for rows.Next() {
		g := &Game{}
		var winner sql.NullString
		if err := rows.Scan(&g.ID, &g.Seed, &g.PlayerCount, &g.RulesJSON, &g.Status, &winner, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		g.Winner = winner.String
		games = append(games, g)
	}
	return games, rows.Err()
}

// FinishGame marks a game as won.
func (db *DB) FinishGame(ctx context.Context, id, winner string) error {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE games SET status = ?, winner = ?, updated_at = ? WHERE id = ?
	`, GameStatusFinished, winner, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGameNotFound
	}
	return nil
}

// DeleteGame removes a game with its actions and snapshot.
func (db *DB) DeleteGame(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGameNotFound
	}
	return nil
}
