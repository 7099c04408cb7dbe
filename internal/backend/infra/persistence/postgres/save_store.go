package postgres

import (
	"context"
	"errors"

	"ParallelRealms/internal/backend/app/port"
	"ParallelRealms/internal/backend/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_saves (
	user_id     TEXT PRIMARY KEY,
	player_name TEXT NOT NULL DEFAULT '',
	level       INTEGER NOT NULL DEFAULT 0,
	last_saved  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL,
	data        JSONB NOT NULL
)`

// querier 是 pgxpool.Pool 和 pgx.Tx 共有的部分。
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type SaveStore struct {
	db querier
}

func NewSaveStore(pool *pgxpool.Pool) *SaveStore {
	return &SaveStore{db: pool}
}

const (
	OpMigrate = "repo.game.Migrate"
	OpUpsert  = "repo.game.Upsert"
	OpFind    = "repo.game.Find"
	OpDelete  = "repo.game.Delete"
)

// Migrate 建表，启动时调用一次。
func (s *SaveStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schema)
	return errs.Wrap(OpMigrate, errs.KindInfra, err, nil)
}

func (s *SaveStore) Upsert(ctx context.Context, rec port.SaveRecord) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO game_saves (user_id, player_name, level, last_saved, updated_at, data)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			level       = EXCLUDED.level,
			last_saved  = EXCLUDED.last_saved,
			updated_at  = EXCLUDED.updated_at,
			data        = EXCLUDED.data`,
		rec.UserID, rec.PlayerName, rec.Level, rec.LastSaved, rec.UpdatedAt, []byte(rec.Data))
	return errs.Wrap(OpUpsert, errs.KindInfra, err, map[string]any{"user_id": rec.UserID})
}

func (s *SaveStore) Find(ctx context.Context, userID string) (*port.SaveRecord, error) {
	rec := port.SaveRecord{}
	var data []byte
	err := s.db.QueryRow(ctx, `
		SELECT user_id, player_name, level, last_saved, updated_at, data
		FROM game_saves WHERE user_id = $1`, userID).
		Scan(&rec.UserID, &rec.PlayerName, &rec.Level, &rec.LastSaved, &rec.UpdatedAt, &data)
	switch {
	case err == nil:
		rec.Data = data
		return &rec, nil
	case errors.Is(err, pgx.ErrNoRows):
		return nil, port.ErrSaveNotFound
	default:
		return nil, errs.Wrap(OpFind, errs.KindInfra, err, map[string]any{"user_id": userID})
	}
}

func (s *SaveStore) Delete(ctx context.Context, userID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM game_saves WHERE user_id = $1`, userID)
	if err != nil {
		return errs.Wrap(OpDelete, errs.KindInfra, err, map[string]any{"user_id": userID})
	}
	if tag.RowsAffected() == 0 {
		return port.ErrSaveNotFound
	}
	return nil
}
