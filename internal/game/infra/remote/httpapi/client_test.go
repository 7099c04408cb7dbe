package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/shared/backendapi"
	"ParallelRealms/modules/kit/errx"
)

type stubBackend struct {
	mu    sync.Mutex
	saves map[string]entity.GameState
	bank  int
	admin bool
}

func (b *stubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer tok" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":401,"msg":"invalid token"}`))
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	reply := func(status int, data any) {
		code := 0
		if status != http.StatusOK {
			code = status
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": code, "msg": "x", "data": data})
	}
	switch {
	case r.Method == http.MethodPost && r.URL.Path == backendapi.PathSave:
		var s entity.GameState
		_ = json.NewDecoder(r.Body).Decode(&s)
		b.saves[s.UserID] = s
		reply(200, backendapi.SaveResult{UserID: s.UserID, SavedAt: time.Now()})
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, backendapi.PathLoad):
		s, ok := b.saves[strings.TrimPrefix(r.URL.Path, backendapi.PathLoad)]
		if !ok {
			reply(404, nil)
			return
		}
		reply(200, s)
	case r.Method == http.MethodDelete:
		delete(b.saves, strings.TrimPrefix(r.URL.Path, backendapi.PathDelete))
		reply(200, nil)
	case r.URL.Path == backendapi.PathSpend:
		var in backendapi.SpendRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.bank += int(in.Amount)
		reply(200, backendapi.SpendResult{Success: true, OwnerBankGold: b.bank})
	case r.URL.Path == backendapi.PathBank:
		if !b.admin {
			reply(403, nil)
			return
		}
		reply(200, backendapi.BankResult{OwnerBankGold: b.bank})
	default:
		reply(404, nil)
	}
}

func newClient(t *testing.T, b *stubBackend, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", token, time.Second)
}

func TestClient_存读删(t *testing.T) {
	b := &stubBackend{saves: map[string]entity.GameState{}}
	c := newClient(t, b, "tok")
	ctx := context.Background()

	if s, err := c.LoadGame(ctx, "u-1"); err != nil || s != nil {
		t.Fatalf("期望没有存档返回 nil,nil, got=%v err=%v", s, err)
	}
	want := entity.GameState{UserID: "u-1", Player: entity.Player{Name: "Hero", Level: 4}}
	if err := c.SaveGame(ctx, want); err != nil {
		t.Fatalf("期望保存成功: %v", err)
	}
	got, err := c.LoadGame(ctx, "u-1")
	if err != nil || got == nil || got.Player.Level != 4 {
		t.Fatalf("期望读回 4 级存档, got=%v err=%v", got, err)
	}
	if err := c.DeleteGame(ctx, "u-1"); err != nil {
		t.Fatalf("期望删除成功: %v", err)
	}
	if s, _ := c.LoadGame(ctx, "u-1"); s != nil {
		t.Fatalf("期望删除后读不到")
	}
}

func TestClient_金币账本(t *testing.T) {
	b := &stubBackend{saves: map[string]entity.GameState{}, bank: 100}
	c := newClient(t, b, "tok")
	bank, err := c.RecordSpend(context.Background(), 25)
	if err != nil || bank != 125 {
		t.Fatalf("期望金库 125, got=%d err=%v", bank, err)
	}
	if _, err := c.Bank(context.Background()); errx.CodeOf(err) != errx.CodeForbidden {
		t.Fatalf("期望非管理员 403, got=%v", err)
	}
	b.admin = true
	if bank, err := c.Bank(context.Background()); err != nil || bank != 125 {
		t.Fatalf("期望管理员读到 125, got=%d err=%v", bank, err)
	}
}

func TestClient_令牌无效(t *testing.T) {
	c := newClient(t, &stubBackend{saves: map[string]entity.GameState{}}, "bad")
	if err := c.SaveGame(context.Background(), entity.GameState{UserID: "u-1"}); errx.CodeOf(err) != errx.CodeUnauthorized {
		t.Fatalf("期望 401 映射为未登录, got=%v", err)
	}
}
