package crafting

import (
	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/shared/gameconfig"
	"ParallelRealms/internal/shared/utils"
)

// Shortfall 返回第一项不够的资源，全部足够返回空。
func Shortfall(city *entity.City, costs []gameconfig.Cost) entity.ResourceType {
	for _, c := range costs {
		t := entity.ResourceType(c.Resource)
		if city.Amount(t) < c.Amount {
			return t
		}
	}
	return ""
}

// Pay 必须在 Shortfall 为空之后调用；返回其中金币的数量。
func Pay(city *entity.City, costs []gameconfig.Cost) (goldSpent int) {
	for _, c := range costs {
		t := entity.ResourceType(c.Resource)
		city.Withdraw(t, c.Amount)
		if t == entity.ResourceGold {
			goldSpent += c.Amount
		}
	}
	return goldSpent
}

// Forge 按配方生成物品。
func Forge(odds gameconfig.LootOdds, r gameconfig.Recipe, ids utils.IDGen) entity.InventoryItem {
	item := entity.InventoryItem{
		ID:                 ids.Next("crafted-" + r.ID),
		Name:               r.Name,
		Type:               entity.ItemType(r.Type),
		Rarity:             entity.Rarity(r.Rarity),
		Quantity:           1,
		Stats:              ToItemStats(r.Stats),
		Icon:               r.Icon,
		Slot:               entity.EquipSlot(r.Slot),
		SocketedGems:       []entity.InventoryItem{},
		GemElement:         r.GemElement,
		AbilityName:        r.AbilityName,
		AbilityDescription: r.AbilityDescription,
	}
	if item.Socketable() {
		item.MaxSockets = SocketCapacity(odds, item.Rarity)
	}
	return item
}

func ToItemStats(s gameconfig.Stats) entity.ItemStats {
	return entity.ItemStats{
		Attack:      s.Attack,
		Defense:     s.Defense,
		HealthBoost: s.HealthBoost,
		EnergyBoost: s.EnergyBoost,
	}
}
