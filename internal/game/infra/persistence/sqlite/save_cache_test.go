package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"ParallelRealms/internal/game/entity"
	"ParallelRealms/modules/kit/errx"
)

func openTemp(t *testing.T) *SaveCache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "saves", "local.db"))
	if err != nil {
		t.Fatalf("期望打开 sqlite 成功: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func state(user string) entity.GameState {
	return entity.GameState{
		UserID: user,
		Player: entity.Player{
			ID: "player-1", Name: "Hero", Level: 1, Health: 100, MaxHealth: 100,
			Inventory: []entity.InventoryItem{{ID: "sword-1", Name: "Iron Sword", Type: entity.ItemWeapon, Quantity: 1, SocketedGems: []entity.InventoryItem{}}},
			Equipment: map[entity.EquipSlot]entity.InventoryItem{},
			Skills:    []entity.PlayerSkill{},
			Territory: []string{},
			Cities:    []entity.City{},
		},
		Territories:   []entity.Territory{},
		Buildings:     []entity.Building{},
		Monsters:      []entity.Monster{},
		ResourceNodes: []entity.ResourceNode{},
		LastSaved:     time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestSaveCache_存取往返(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()

	got, err := c.Load(ctx, "k")
	if err != nil || got != nil {
		t.Fatalf("期望没有存档时返回 nil, got=%v err=%v", got, err)
	}

	want := state("u-1")
	if err := c.Save(ctx, "k", want); err != nil {
		t.Fatalf("期望保存成功: %v", err)
	}
	want.Player.Level = 2
	if err := c.Save(ctx, "k", want); err != nil {
		t.Fatalf("期望覆盖保存成功: %v", err)
	}
	got, err = c.Load(ctx, "k")
	if err != nil || got == nil {
		t.Fatalf("期望读到存档: %v", err)
	}
	if !reflect.DeepEqual(want, *got) {
		t.Fatalf("期望往返一致\nwant=%+v\ngot =%+v", want, *got)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("期望删除成功: %v", err)
	}
	if got, _ := c.Load(ctx, "k"); got != nil {
		t.Fatalf("期望删除后没有存档")
	}
}

func TestSaveCache_损坏数据返回corrupt(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()
	if err := c.PutRaw(ctx, "bad", "u-1", []byte("not zstd")); err != nil {
		t.Fatalf("期望写入原始字节成功: %v", err)
	}
	_, err := c.Load(ctx, "bad")
	if errx.CodeOf(err) != errx.CodeCorrupt {
		t.Fatalf("期望 DATA_CORRUPT，实际 %v", err)
	}
}
