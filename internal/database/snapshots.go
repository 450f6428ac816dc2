package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Snapshot encodings.
const (
	EncodingJSON = "json"
	EncodingZstd = "zstd"
)

// ErrSnapshotNotFound is returned when a game has no snapshot yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SaveSnapshot stores the latest view of a game, taken after action seq.
func (db *DB) SaveSnapshot(ctx context.Context, gameID string, seq int, data []byte) error {
	encoding := EncodingJSON
	if db.compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
		encoding = EncodingZstd
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO game_snapshots (game_id, seq, encoding, data, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			seq = excluded.seq,
			encoding = excluded.encoding,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, gameID, seq, encoding, data, time.Now())
	return err
}

// LoadSnapshot returns the latest snapshot of a game and the action it was
// taken after.
func (db *DB) LoadSnapshot(ctx context.Context, gameID string) ([]byte, int, error) {
	var seq int
	var encoding string
	var data []byte
	err := db.conn.QueryRowContext(ctx, `
		SELECT seq, encoding, data FROM game_snapshots WHERE game_id = ?
	`, gameID).Scan(&seq, &encoding, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	switch encoding {
	case EncodingJSON:
		return data, seq, nil
	case EncodingZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, 0, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("zstd decode: %w", err)
		}
		return out, seq, nil
	default:
		return nil, 0, fmt.Errorf("unknown snapshot encoding %q", encoding)
	}
}
