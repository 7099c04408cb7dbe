package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ParallelRealms/internal/backend/app/port"
	"ParallelRealms/internal/backend/infra/persistence/memory"
	"ParallelRealms/modules/kit/errx"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newGames() (*GameService, *memory.SaveStore) {
	store := memory.NewSaveStore()
	return NewGameService(store, func() time.Time { return fixedNow }), store
}

func body(userID string, level int) json.RawMessage {
	raw, _ := json.Marshal(map[string]any{
		"userId":    userID,
		"player":    map[string]any{"name": "Hero", "level": level},
		"lastSaved": "2026-03-01T08:00:00Z",
	})
	return raw
}

func TestGameService_保存读取列表(t *testing.T) {
	s, _ := newGames()
	ctx := context.Background()
	me := Caller{UserID: "u-1"}

	res, err := s.Save(ctx, me, body("u-1", 4))
	if err != nil || res.UserID != "u-1" || !res.SavedAt.Equal(fixedNow) {
		t.Fatalf("期望保存成功, res=%+v err=%v", res, err)
	}
	raw, err := s.Load(ctx, me, "u-1")
	if err != nil {
		t.Fatalf("期望读取成功: %v", err)
	}
	var got map[string]any
	_ = json.Unmarshal(raw, &got)
	if got["userId"] != "u-1" {
		t.Fatalf("期望原样返回存档，实际 %s", raw)
	}
	metas, err := s.List(ctx, me, "u-1")
	if err != nil || len(metas) != 1 || metas[0].Level != 4 || metas[0].PlayerName != "Hero" || !metas[0].UpdatedAt.Equal(fixedNow) {
		t.Fatalf("期望列表带元数据, metas=%+v err=%v", metas, err)
	}
}

func TestGameService_缺少userId(t *testing.T) {
	s, _ := newGames()
	_, err := s.Save(context.Background(), Caller{UserID: "u-1"}, json.RawMessage(`{"player":{}}`))
	if errx.CodeOf(err) != errx.CodeReqParamError || ReasonOf(err) != ReasonUserIDMissing.Code {
		t.Fatalf("期望参数错误, err=%v", err)
	}
	if MessageOf(err) != "User ID required" {
		t.Fatalf("期望对外文案，实际 %s", MessageOf(err))
	}
}

func TestGameService_不能动别人的存档(t *testing.T) {
	s, store := newGames()
	ctx := context.Background()
	_ = store.Upsert(ctx, port.SaveRecord{UserID: "u-2", Data: body("u-2", 1)})

	if _, err := s.Save(ctx, Caller{UserID: "u-1"}, body("u-2", 9)); !errors.Is(err, ErrForbidden) {
		t.Fatalf("期望写别人存档被拒, err=%v", err)
	}
	if _, err := s.Load(ctx, Caller{UserID: "u-1"}, "u-2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("期望读别人存档被拒, err=%v", err)
	}
	if _, err := s.Load(ctx, Caller{UserID: "admin", IsAdmin: true}, "u-2"); err != nil {
		t.Fatalf("期望管理员可以读: %v", err)
	}
}

func TestGameService_不存在(t *testing.T) {
	s, _ := newGames()
	ctx := context.Background()
	me := Caller{UserID: "u-1"}
	if _, err := s.Load(ctx, me, "u-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("期望 NOT_FOUND, err=%v", err)
	}
	if err := s.Delete(ctx, me, "u-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("期望删除不存在的存档返回 NOT_FOUND, err=%v", err)
	}
	metas, err := s.List(ctx, me, "u-1")
	if err != nil || metas == nil || len(metas) != 0 {
		t.Fatalf("期望空列表, metas=%v err=%v", metas, err)
	}
}

type brokenStore struct{}

func (brokenStore) Upsert(ctx context.Context, rec port.SaveRecord) error { return errors.New("connection reset") }

func (brokenStore) Find(ctx context.Context, userID string) (*port.SaveRecord, error) {
	return nil, errors.New("connection reset")
}

func (brokenStore) Delete(ctx context.Context, userID string) error { return errors.New("connection reset") }

func TestGameService_存储故障是系统错误(t *testing.T) {
	s := NewGameService(brokenStore{}, nil)
	_, err := s.Load(context.Background(), Caller{UserID: "u-1"}, "u-1")
	if errx.CodeOf(err) != errx.CodeUnavailable || ReasonOf(err) != ReasonSaveStoreFail.Code {
		t.Fatalf("期望不可用错误, err=%v", err)
	}
}

func TestEconomyService_消耗取整累加(t *testing.T) {
	s := NewEconomyService(memory.NewLedger(100), "DonaldBurt")
	ctx := context.Background()
	total, err := s.Spend(ctx, 25.9)
	if err != nil || total != 125 {
		t.Fatalf("期望向下取整后为 125，实际 %d err=%v", total, err)
	}
	for _, bad := range []float64{0, -3} {
		if _, err := s.Spend(ctx, bad); errx.CodeOf(err) != errx.CodeReqParamError {
			t.Fatalf("期望 %v 被拒绝, err=%v", bad, err)
		}
	}
}

func TestEconomyService_金库只给所有者看(t *testing.T) {
	s := NewEconomyService(memory.NewLedger(42), "DonaldBurt")
	ctx := context.Background()

	if _, err := s.Bank(ctx, Caller{UserID: "u-1", Username: "DonaldBurt"}); ReasonOf(err) != ReasonAdminRequired.Code {
		t.Fatalf("期望非管理员被拒, err=%v", err)
	}
	if _, err := s.Bank(ctx, Caller{UserID: "u-2", Username: "someone", IsAdmin: true}); ReasonOf(err) != ReasonOwnerRequired.Code {
		t.Fatalf("期望非所有者被拒, err=%v", err)
	}
	total, err := s.Bank(ctx, Caller{UserID: "u-3", Username: "donaldburt", IsAdmin: true})
	if err != nil || total != 42 {
		t.Fatalf("期望用户名不区分大小写, total=%d err=%v", total, err)
	}
}
