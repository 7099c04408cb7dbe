package crafting

import (
	"strings"

	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/shared/gameconfig"
)

// SlotFor 计算物品的装备槽：物品自带 Slot 优先，其次按规则表顺序匹配。
func SlotFor(rules []gameconfig.SlotRule, item entity.InventoryItem) (entity.EquipSlot, bool) {
	if item.Slot != "" {
		return item.Slot, true
	}
	name := strings.ToLower(item.Name)
	for _, r := range rules {
		if r.ItemType != string(item.Type) {
			continue
		}
		if len(r.Keywords) == 0 {
			return entity.EquipSlot(r.Slot), true
		}
		for _, kw := range r.Keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				return entity.EquipSlot(r.Slot), true
			}
		}
	}
	return "", false
}

// SocketCapacity 按稀有度给出孔数，表里没有的稀有度为 0。
func SocketCapacity(odds gameconfig.LootOdds, rarity entity.Rarity) int {
	return odds.SocketCapacity[string(rarity)]
}

// CapacityOf 物品自带 MaxSockets 时以它为准。
func CapacityOf(odds gameconfig.LootOdds, item entity.InventoryItem) int {
	if item.MaxSockets > 0 {
		return item.MaxSockets
	}
	return SocketCapacity(odds, item.Rarity)
}

type SocketFailure string

const (
	SocketNotSocketable SocketFailure = "Target item is not socketable."
	SocketNoCapacity    SocketFailure = "This item cannot be socketed."
	SocketFull          SocketFailure = "No empty sockets available."
)

// Socket 把宝石嵌入目标，返回新的目标物品；gem 的扣减由调用方负责。
func Socket(odds gameconfig.LootOdds, target, gem entity.InventoryItem) (entity.InventoryItem, SocketFailure) {
	if !target.Socketable() {
		return target, SocketNotSocketable
	}
	capacity := CapacityOf(odds, target)
	if capacity == 0 {
		return target, SocketNoCapacity
	}
	if len(target.SocketedGems) >= capacity {
		return target, SocketFull
	}
	out := target.Clone()
	out.Stats = out.Stats.Add(gem.Stats)
	out.MaxSockets = capacity
	g := gem.Clone()
	g.Quantity = 1
	out.SocketedGems = append(out.SocketedGems, g)
	return out, ""
}
