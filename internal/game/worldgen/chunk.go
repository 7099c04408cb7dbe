// Package worldgen 按区块在玩家附近生成怪物和资源点，每个区块每局只生成一次。
package worldgen

import (
	"fmt"
	"math"

	"ParallelRealms/internal/game/dice"
	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/shared/gameconfig"
	"ParallelRealms/internal/shared/utils"
)

type ChunkKey struct {
	X, Y int
}

func (k ChunkKey) String() string {
	return fmt.Sprintf("%d:%d", k.X, k.Y)
}

// ChunkOf 向下取整，负坐标落在左下的区块。
func ChunkOf(lat, lng, sizeDeg float64) ChunkKey {
	return ChunkKey{X: int(math.Floor(lat / sizeDeg)), Y: int(math.Floor(lng / sizeDeg))}
}

// LootFunc 给新怪物生成掉落。
type LootFunc func(level int) []entity.InventoryItem

type Generator struct {
	rules   gameconfig.Rules
	catalog *gameconfig.Catalog
	roll    dice.Roller
	ids     utils.IDGen
	loot    LootFunc

	generated map[ChunkKey]struct{}
	last      *ChunkKey
}

func NewGenerator(rules gameconfig.Rules, c *gameconfig.Catalog, roll dice.Roller, ids utils.IDGen, loot LootFunc) *Generator {
	return &Generator{
		rules:     rules,
		catalog:   c,
		roll:      roll,
		ids:       ids,
		loot:      loot,
		generated: make(map[ChunkKey]struct{}),
	}
}

// Spawned 是一次 Ensure 新增的实体。
type Spawned struct {
	Monsters  []entity.Monster
	Resources []entity.ResourceNode
}

// Ensure 位置所在区块和上次处理的相同时不做任何事。
func (g *Generator) Ensure(anchor entity.Coordinate, p entity.Player) Spawned {
	size := g.rules.ChunkSizeDeg()
	key := ChunkOf(anchor.X, anchor.Y, size)
	if g.last != nil && *g.last == key {
		return Spawned{}
	}
	g.last = &key

	var out Spawned
	r := g.rules.ChunkRadius
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			k := ChunkKey{X: key.X + dx, Y: key.Y + dy}
			if _, done := g.generated[k]; done {
				continue
			}
			g.generated[k] = struct{}{}
			ms, ns := g.fill(k, anchor, p)
			out.Monsters = append(out.Monsters, ms...)
			out.Resources = append(out.Resources, ns...)
		}
	}
	return out
}

// Generated 该区块本局是否已生成。
func (g *Generator) Generated(k ChunkKey) bool {
	_, ok := g.generated[k]
	return ok
}

// Reset 清空记录，之后同一区块可以再次生成。
func (g *Generator) Reset() {
	g.generated = make(map[ChunkKey]struct{})
	g.last = nil
}

func (g *Generator) fill(k ChunkKey, anchor entity.Coordinate, p entity.Player) ([]entity.Monster, []entity.ResourceNode) {
	size := g.rules.ChunkSizeDeg()
	minLat, minLng := float64(k.X)*size, float64(k.Y)*size
	maxLat, maxLng := minLat+size, minLng+size

	tier := (p.Level - 1) / 10
	if p.Level < 1 {
		tier = 0
	}
	pool := g.catalog.MonstersForTier(tier)

	var monsters []entity.Monster
	for i := 0; i < g.rules.MonstersPerChunk && len(pool) > 0; i++ {
		t := dice.Pick(g.roll, pool)
		pos := entity.At(dice.Between(g.roll, minLat, maxLat), dice.Between(g.roll, minLng, maxLng))
		if pos.Within(anchor, g.rules.SpawnExclusionM) {
			continue
		}
		hp := MonsterMaxHealth(p, t.Level)
		var loot []entity.InventoryItem
		if g.loot != nil {
			loot = g.loot(t.Level)
		}
		if loot == nil {
			loot = []entity.InventoryItem{}
		}
		monsters = append(monsters, entity.Monster{
			ID:        g.ids.Next("monster-" + k.String()),
			Name:      t.Name,
			Level:     t.Level,
			Icon:      t.Icon,
			Health:    hp,
			MaxHealth: hp,
			Attack:    t.Attack,
			Defense:   t.Defense,
			Position:  pos,
			Loot:      loot,
		})
	}

	var nodes []entity.ResourceNode
	for i := 0; i < g.rules.ResourcesPerChunk && len(g.catalog.ResourceNodes) > 0; i++ {
		t := dice.Pick(g.roll, g.catalog.ResourceNodes)
		pos := entity.At(dice.Between(g.roll, minLat, maxLat), dice.Between(g.roll, minLng, maxLng))
		nodes = append(nodes, entity.ResourceNode{
			ID:               g.ids.Next("resource-" + k.String()),
			Type:             entity.ResourceType(t.Type),
			Position:         pos,
			Amount:           t.MaxAmount,
			MaxAmount:        t.MaxAmount,
			RegenerationRate: t.Regen,
			Icon:             t.Icon,
		})
	}
	return monsters, nodes
}

// MonsterMaxHealth = max(30, round(0.8*玩家最大生命 + (怪物等级-玩家等级)*5))。
func MonsterMaxHealth(p entity.Player, monsterLevel int) int {
	v := float64(p.MaxHealth)*0.8 + float64(monsterLevel-p.Level)*5
	return max(30, int(math.Floor(v+0.5)))
}
