// Package crafting 负责掉落、装备槽、镶嵌和铁砧打造，纯函数，不持有状态。
package crafting

import (
	"math"

	"ParallelRealms/internal/game/dice"
	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/shared/gameconfig"
	"ParallelRealms/internal/shared/utils"
)

type Looter struct {
	odds   gameconfig.LootOdds
	tables gameconfig.LootTables
	roll   dice.Roller
	ids    utils.IDGen
}

func NewLooter(c *gameconfig.Catalog, roll dice.Roller, ids utils.IDGen) *Looter {
	return &Looter{odds: c.Odds, tables: c.Loot, roll: roll, ids: ids}
}

// RarityFor 按 odds.rarities 顺序匹配 roll。
func (l *Looter) RarityFor(roll float64) entity.Rarity {
	for _, r := range l.odds.Rarities {
		if roll < r.Below {
			return entity.Rarity(r.Rarity)
		}
	}
	return entity.Rarity(l.odds.Fallback)
}

func (l *Looter) scale(r entity.Rarity) float64 {
	if s, ok := l.odds.Scale[string(r)]; ok {
		return s
	}
	return 1
}

// Generate 生成一只 level 级怪物的掉落。
// 掷骰顺序：稀有度、金币、装备类型、装备模板、宝石、宝石模板、资源、资源模板。
func (l *Looter) Generate(level int) []entity.InventoryItem {
	var loot []entity.InventoryItem
	rarity := l.RarityFor(l.roll.Float64())
	scale := l.scale(rarity)

	if l.roll.Float64() > l.odds.GoldAbove {
		g := l.tables.Gold
		loot = append(loot, entity.InventoryItem{
			ID:       l.ids.Next("gold"),
			Name:     g.Name,
			Type:     entity.ItemResource,
			Rarity:   entity.RarityCommon,
			Quantity: max(5, level*10),
			Icon:     g.Icon,
		})
	}

	kind := l.roll.Float64()
	switch {
	case kind < l.odds.WeaponBelow && len(l.tables.Weapons) > 0:
		t := dice.Pick(l.roll, l.tables.Weapons)
		atk := scaled(float64(t.Stats.Attack)+float64(level)/2, scale)
		loot = append(loot, l.equipment(t, entity.ItemWeapon, rarity, entity.ItemStats{Attack: atk}))
	case kind < l.odds.ArmorBelow && len(l.tables.Armor) > 0:
		t := dice.Pick(l.roll, l.tables.Armor)
		def := scaled(float64(t.Stats.Defense)+float64(level)/3, scale)
		loot = append(loot, l.equipment(t, entity.ItemArmor, rarity, entity.ItemStats{Defense: def}))
	case len(l.tables.Accessories) > 0:
		t := dice.Pick(l.roll, l.tables.Accessories)
		loot = append(loot, entity.InventoryItem{
			ID:           l.ids.Next("accessory"),
			Name:         t.Name,
			Type:         entity.ItemAccessory,
			Rarity:       rarity,
			Quantity:     1,
			Stats:        scaleStats(t.Stats, scale),
			Icon:         t.Icon,
			SocketedGems: []entity.InventoryItem{},
		})
	}

	if l.roll.Float64() < l.odds.GemBelow && len(l.tables.Gems) > 0 {
		t := dice.Pick(l.roll, l.tables.Gems)
		gemRarity := entity.Rarity(l.odds.GemRarity)
		loot = append(loot, entity.InventoryItem{
			ID:                 l.ids.Next("gem"),
			Name:               t.Name,
			Type:               entity.ItemGem,
			Rarity:             gemRarity,
			Quantity:           1,
			Stats:              scaleStats(t.Stats, l.scale(gemRarity)),
			Icon:               t.Icon,
			SocketedGems:       []entity.InventoryItem{},
			GemElement:         t.GemElement,
			AbilityName:        t.AbilityName,
			AbilityDescription: t.AbilityDescription,
		})
	}

	if l.roll.Float64() < l.odds.ResourceBelow && len(l.tables.Resources) > 0 {
		t := dice.Pick(l.roll, l.tables.Resources)
		base := max(5, round(float64(level)*8))
		loot = append(loot, entity.InventoryItem{
			ID:           l.ids.Next("resource-" + t.Resource),
			Name:         t.Name,
			Type:         entity.ItemResource,
			Rarity:       rarity,
			Quantity:     max(1, round(float64(base)*scale)),
			Icon:         t.Icon,
			SocketedGems: []entity.InventoryItem{},
		})
	}
	return loot
}

func (l *Looter) equipment(t gameconfig.LootTemplate, typ entity.ItemType, rarity entity.Rarity, stats entity.ItemStats) entity.InventoryItem {
	return entity.InventoryItem{
		ID:           l.ids.Next(string(typ)),
		Name:         t.Name,
		Type:         typ,
		Rarity:       rarity,
		Quantity:     1,
		Stats:        stats,
		Icon:         t.Icon,
		MaxSockets:   SocketCapacity(l.odds, rarity),
		SocketedGems: []entity.InventoryItem{},
	}
}

// MapDrop 生成一件地图掉落：模板属性是每级系数。
func (l *Looter) MapDrop(level int) (entity.InventoryItem, bool) {
	if len(l.tables.MapDrops) == 0 {
		return entity.InventoryItem{}, false
	}
	t := dice.Pick(l.roll, l.tables.MapDrops)
	rarity := entity.RarityCommon
	if l.roll.Float64() > l.odds.MapRareAbove {
		rarity = entity.RarityRare
	}
	per := func(f int) int {
		if f == 0 {
			return 0
		}
		return max(1, round(float64(level)*float64(f)))
	}
	return entity.InventoryItem{
		ID:       l.ids.Next("loot"),
		Name:     t.Name,
		Type:     entity.ItemType(t.Type),
		Rarity:   rarity,
		Quantity: 1,
		Stats: entity.ItemStats{
			Attack:  per(t.Stats.Attack),
			Defense: per(t.Stats.Defense),
		},
		Icon:         t.Icon,
		SocketedGems: []entity.InventoryItem{},
	}, true
}

func scaleStats(s gameconfig.Stats, scale float64) entity.ItemStats {
	one := func(v int) int {
		if v == 0 {
			return 0
		}
		return scaled(float64(v), scale)
	}
	return entity.ItemStats{
		Attack:      one(s.Attack),
		Defense:     one(s.Defense),
		HealthBoost: one(s.HealthBoost),
		EnergyBoost: one(s.EnergyBoost),
	}
}

func scaled(v, scale float64) int {
	return max(1, round(v*scale))
}

// round 半数向上取整。
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
