// Package sqlite 是落盘的本地存档：一行一个存档键，内容为 zstd 压缩的 JSON。
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ParallelRealms/internal/game/app/port"
	"ParallelRealms/internal/game/entity"
	"ParallelRealms/modules/kit/errx"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

type SaveCache struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open path 为 ":memory:" 时不建目录。
func Open(path string) (*SaveCache, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		_ = db.Close()
		return nil, err
	}
	return &SaveCache{db: db, enc: enc, dec: dec}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS game_saves (
		save_key TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		payload BLOB NOT NULL,
		saved_at INTEGER NOT NULL
	);`)
	return err
}

func (c *SaveCache) Load(ctx context.Context, key string) (*entity.GameState, error) {
	var payload []byte
	err := c.db.QueryRowContext(ctx, `SELECT payload FROM game_saves WHERE save_key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	raw, err := c.dec.DecodeAll(payload, nil)
	if err != nil {
		return nil, corrupt(key, err)
	}
	var s entity.GameState
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, corrupt(key, err)
	}
	return &s, nil
}

func (c *SaveCache) Save(ctx context.Context, key string, s entity.GameState) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	payload := c.enc.EncodeAll(raw, nil)
	savedAt := s.LastSaved
	if savedAt.IsZero() {
		savedAt = time.Now()
	}
	_, err = c.db.ExecContext(ctx, `INSERT INTO game_saves (save_key, user_id, payload, saved_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(save_key) DO UPDATE SET user_id = excluded.user_id, payload = excluded.payload, saved_at = excluded.saved_at`,
		key, s.UserID, payload, savedAt.UnixMilli())
	return err
}

func (c *SaveCache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM game_saves WHERE save_key = ?`, key)
	return err
}

// PutRaw 写入未经编码的字节。
func (c *SaveCache) PutRaw(ctx context.Context, key, userID string, payload []byte) error {
	_, err := c.db.ExecContext(ctx, `INSERT OR REPLACE INTO game_saves (save_key, user_id, payload, saved_at) VALUES (?, ?, ?, ?)`,
		key, userID, payload, time.Now().UnixMilli())
	return err
}

func (c *SaveCache) Close() error {
	c.dec.Close()
	_ = c.enc.Close()
	return c.db.Close()
}

func corrupt(key string, cause error) error {
	return errx.ErrCorrupt.WithReason(port.ReasonSnapshotCorrupt).WithData("key", key).WithCause(cause)
}
