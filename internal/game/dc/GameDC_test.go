package dc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/game/infra/persistence/memory"
)

type fakeRemote struct {
	mu      sync.Mutex
	saved   []entity.GameState
	stored  *entity.GameState
	saveErr error
	loadErr error
	deleted int
	ops     []string

	// gate 非空时第一次 SaveGame 阻塞到 gate 关闭。
	gate    chan struct{}
	entered chan struct{}
	once    sync.Once
}

func (f *fakeRemote) SaveGame(ctx context.Context, s entity.GameState) error {
	if f.gate != nil {
		first := false
		f.once.Do(func() { first = true })
		if first {
			close(f.entered)
			<-f.gate
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, s)
	f.ops = append(f.ops, "save")
	return nil
}

func (f *fakeRemote) LoadGame(ctx context.Context, userID string) (*entity.GameState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.stored == nil {
		return nil, nil
	}
	s := f.stored.Clone()
	return &s, nil
}

func (f *fakeRemote) DeleteGame(ctx context.Context, userID string) error {
	f.mu.Lock()
	f.deleted++
	f.ops = append(f.ops, "delete")
	f.mu.Unlock()
	return nil
}

func (f *fakeRemote) savedLevels() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, 0, len(f.saved))
	for _, s := range f.saved {
		out = append(out, s.Player.Level)
	}
	return out
}

type fakeEconomy struct {
	mu    sync.Mutex
	total int
	calls []int
	err   error
}

func (f *fakeEconomy) RecordSpend(ctx context.Context, amount int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.calls = append(f.calls, amount)
	f.total += amount
	return f.total, nil
}

func (f *fakeEconomy) Bank(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total, f.err
}

func level(user string, lv int) entity.GameState {
	return entity.GameState{
		UserID:    user,
		Player:    entity.Player{ID: "player-1", Name: "Hero", Level: lv},
		LastSaved: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func closeDC(t *testing.T, d *GameDC) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("期望 Close 成功: %v", err)
	}
}

func TestSaveKey_匿名命名空间(t *testing.T) {
	if SaveKey("") != "parallel-realms-game-save:anonymous" || SaveKey("u-1") != "parallel-realms-game-save:u-1" {
		t.Fatalf("期望存档键按用户区分，实际 %s %s", SaveKey(""), SaveKey("u-1"))
	}
}

func TestGameDC_本地同步远端异步(t *testing.T) {
	local := memory.NewSaveCache()
	remote := &fakeRemote{}
	d := NewGameDC(Options{UserID: "u-1", Local: local, Remote: remote})

	if err := d.Save(context.Background(), level("u-1", 3)); err != nil {
		t.Fatalf("期望保存成功: %v", err)
	}
	s, ok := d.LoadLocal(context.Background())
	if !ok || s.Player.Level != 3 {
		t.Fatalf("期望本地立即可读")
	}
	closeDC(t, d)
	if got := remote.savedLevels(); len(got) != 1 || got[0] != 3 {
		t.Fatalf("期望远端收到一次存档，实际 %v", got)
	}
}

func TestGameDC_远端只写最新版本(t *testing.T) {
	remote := &fakeRemote{gate: make(chan struct{}), entered: make(chan struct{})}
	d := NewGameDC(Options{UserID: "u-1", Local: memory.NewSaveCache(), Remote: remote})
	ctx := context.Background()

	_ = d.Save(ctx, level("u-1", 1))
	<-remote.entered
	_ = d.Save(ctx, level("u-1", 2))
	_ = d.Save(ctx, level("u-1", 3))
	close(remote.gate)
	closeDC(t, d)

	got := remote.savedLevels()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("期望中间版本被覆盖，实际 %v", got)
	}
}

func TestGameDC_匿名不写远端(t *testing.T) {
	local := memory.NewSaveCache()
	d := NewGameDC(Options{Local: local})
	if d.Authenticated() || d.UserID() != "anonymous" {
		t.Fatalf("期望匿名用户")
	}
	if err := d.Save(context.Background(), level("", 1)); err != nil {
		t.Fatalf("期望本地保存成功: %v", err)
	}
	if s, ok := d.LoadLocal(context.Background()); !ok || s.UserID != "anonymous" {
		t.Fatalf("期望匿名存档可读")
	}
	closeDC(t, d)
}

func TestGameDC_远端失败不回滚本地(t *testing.T) {
	remote := &fakeRemote{saveErr: errors.New("backend down")}
	d := NewGameDC(Options{UserID: "u-1", Local: memory.NewSaveCache(), Remote: remote})
	if err := d.Save(context.Background(), level("u-1", 5)); err != nil {
		t.Fatalf("期望远端失败不影响返回: %v", err)
	}
	closeDC(t, d)
	if s, ok := d.LoadLocal(context.Background()); !ok || s.Player.Level != 5 {
		t.Fatalf("期望本地存档保留")
	}
}

func TestGameDC_拒绝别人的本地存档(t *testing.T) {
	local := memory.NewSaveCache()
	_ = local.Save(context.Background(), SaveKey("u-1"), level("u-2", 9))
	d := NewGameDC(Options{UserID: "u-1", Local: local})
	defer closeDC(t, d)
	if _, ok := d.LoadLocal(context.Background()); ok {
		t.Fatalf("期望拒绝其他用户的存档")
	}
}

func TestGameDC_损坏存档回落远端并刷新本地(t *testing.T) {
	local := memory.NewSaveCache()
	local.PutRaw(SaveKey("u-1"), []byte("{broken"))
	stored := level("u-1", 7)
	remote := &fakeRemote{stored: &stored}
	d := NewGameDC(Options{UserID: "u-1", Local: local, Remote: remote})
	defer closeDC(t, d)

	s, ok := d.Load(context.Background())
	if !ok || s.Player.Level != 7 {
		t.Fatalf("期望从远端读到 7 级存档")
	}
	if s, ok := d.LoadLocal(context.Background()); !ok || s.Player.Level != 7 {
		t.Fatalf("期望远端结果写回本地")
	}
}

func TestGameDC_都没有存档(t *testing.T) {
	d := NewGameDC(Options{UserID: "u-1", Local: memory.NewSaveCache(), Remote: &fakeRemote{loadErr: errors.New("timeout")}})
	defer closeDC(t, d)
	if _, ok := d.Load(context.Background()); ok {
		t.Fatalf("期望没有存档")
	}
}

func TestGameDC_删除存档(t *testing.T) {
	local := memory.NewSaveCache()
	remote := &fakeRemote{}
	d := NewGameDC(Options{UserID: "u-1", Local: local, Remote: remote})
	_ = d.Save(context.Background(), level("u-1", 1))
	if err := d.Delete(context.Background()); err != nil {
		t.Fatalf("期望删除成功: %v", err)
	}
	closeDC(t, d)
	if local.Len() != 0 || remote.deleted != 1 {
		t.Fatalf("期望本地和远端都删除")
	}
}

func TestGameDC_删除排在进行中的远端写之后(t *testing.T) {
	remote := &fakeRemote{gate: make(chan struct{}), entered: make(chan struct{})}
	d := NewGameDC(Options{UserID: "u-1", Local: memory.NewSaveCache(), Remote: remote})
	ctx := context.Background()

	_ = d.Save(ctx, level("u-1", 1))
	<-remote.entered
	_ = d.Save(ctx, level("u-1", 2))
	deleted := make(chan error, 1)
	go func() { deleted <- d.Delete(ctx) }()
	time.Sleep(20 * time.Millisecond)
	close(remote.gate)
	if err := <-deleted; err != nil {
		t.Fatalf("期望删除成功: %v", err)
	}

	remote.mu.Lock()
	ops := append([]string(nil), remote.ops...)
	remote.mu.Unlock()
	if len(ops) != 2 || ops[0] != "save" || ops[1] != "delete" {
		t.Fatalf("期望先写完 1 级存档再删除，2 级作废，实际 %v", ops)
	}

	_ = d.Save(ctx, level("u-1", 4))
	closeDC(t, d)
	if got := remote.savedLevels(); len(got) != 2 || got[1] != 4 {
		t.Fatalf("期望删除后的新存档照常写远端，实际 %v", got)
	}
}

func TestGameDC_金币消耗上报并缓存金库(t *testing.T) {
	eco := &fakeEconomy{total: 1000}
	d := NewGameDC(Options{UserID: "u-1", Local: memory.NewSaveCache(), Remote: &fakeRemote{}, Economy: eco})
	if _, ok := d.BankGold(); ok {
		t.Fatalf("期望一开始没有金库缓存")
	}
	d.RecordGoldSpend(25)
	d.RecordGoldSpend(0)
	d.RecordGoldSpend(100)
	closeDC(t, d)

	bank, ok := d.BankGold()
	if !ok || bank != 1125 {
		t.Fatalf("期望金库 1125，实际 %d", bank)
	}
	sum := 0
	for _, c := range eco.calls {
		sum += c
	}
	if sum != 125 {
		t.Fatalf("期望累计上报 125，实际 %d", sum)
	}
}

func TestGameDC_刷新金库(t *testing.T) {
	eco := &fakeEconomy{total: 42}
	d := NewGameDC(Options{UserID: "u-1", Economy: eco})
	d.RefreshBank()
	closeDC(t, d)
	if bank, ok := d.BankGold(); !ok || bank != 42 {
		t.Fatalf("期望金库 42，实际 %d", bank)
	}
}
