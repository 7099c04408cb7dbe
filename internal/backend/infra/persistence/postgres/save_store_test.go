package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"ParallelRealms/internal/backend/app/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

// 需要真实数据库：PR_TEST_POSTGRES_DSN 未设置时跳过。
func openTestStore(t *testing.T) *SaveStore {
	t.Helper()
	dsn := os.Getenv("PR_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PR_TEST_POSTGRES_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("期望连接成功: %v", err)
	}
	t.Cleanup(pool.Close)
	s := NewSaveStore(pool)
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("期望建表成功: %v", err)
	}
	return s
}

func TestSaveStore_Upsert与删除(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	uid := "pg-test-" + time.Now().Format("150405.000000")
	now := time.Now().UTC().Truncate(time.Millisecond)

	for lv := 1; lv <= 2; lv++ {
		rec := port.SaveRecord{UserID: uid, PlayerName: "Hero", Level: lv, LastSaved: now, UpdatedAt: now,
			Data: json.RawMessage(`{"userId":"` + uid + `","player":{"level":` + string(rune('0'+lv)) + `}}`)}
		if err := s.Upsert(ctx, rec); err != nil {
			t.Fatalf("期望 upsert 成功: %v", err)
		}
	}
	got, err := s.Find(ctx, uid)
	if err != nil || got.Level != 2 || !json.Valid(got.Data) {
		t.Fatalf("期望读到第二次写入, err=%v", err)
	}
	if err := s.Delete(ctx, uid); err != nil {
		t.Fatalf("期望删除成功: %v", err)
	}
	if _, err := s.Find(ctx, uid); !errors.Is(err, port.ErrSaveNotFound) {
		t.Fatalf("期望删除后不存在, err=%v", err)
	}
}
