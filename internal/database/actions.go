package database

import (
	"context"
	"errors"
	"time"
)

// Action is one accepted action in a game's log.
type Action struct {
	ID          int64
	GameID      string
	Seq         int
	ActionType  string
	MessageJSON string
	CreatedAt   time.Time
}

// ErrSequenceConflict is returned when an action is appended out of order.
var ErrSequenceConflict = errors.New("action sequence conflict")

// AppendAction adds the next action to a game's log. Seq must be one more
// than the last stored action.
func (db *DB) AppendAction(ctx context.Context, a *Action) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var last int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) FROM game_actions WHERE game_id = ?", a.GameID,
	).Scan(&last); err != nil {
		return err
	}
	if a.Seq != last+1 {
		return ErrSequenceConflict
	}

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO game_actions (game_id, seq, action_type, message_json, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.GameID, a.Seq, a.ActionType, a.MessageJSON, now)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE games SET updated_at = ? WHERE id = ?", now, a.GameID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	a.ID, _ = res.LastInsertId()
	a.CreatedAt = now
	return nil
}

// GetActions retrieves a game's actions in order.
func (db *DB) GetActions(ctx context.Context, gameID string) ([]*Action, error) {
	return db.GetActionsSince(ctx, gameID, 0)
}

// GetActionsSince retrieves actions after the given sequence number.
func (db *DB) GetActionsSince(ctx context.Context, gameID string, afterSeq int) ([]*Action, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, game_id, seq, action_type, message_json, created_at
		FROM game_actions
		WHERE game_id = ? AND seq > ?
		ORDER BY seq ASC
	`, gameID, afterSeq)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*Action
	for rows.Next() {
		a := &Action{}
		if err := rows.Scan(&a.ID, &a.GameID, &a.Seq, &a.ActionType, &a.MessageJSON, &a.CreatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
