package engine

import (
	"fmt"
	"strings"

	"ParallelRealms/internal/game/crafting"
	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/shared/gameconfig"

	"go.uber.org/zap"
)

// CraftAtAnvil 按配方扣城市资源打造物品，失败时说明第一项不足的资源。
func (e *Engine) CraftAtAnvil(recipeID string) Result {
	recipe, ok := e.catalog.Recipe(recipeID)
	if !ok {
		return failure("Recipe not found.")
	}
	city, ok := e.player.FirstCity()
	if !ok {
		return failure("You need a city to craft items.")
	}
	if short := crafting.Shortfall(city, recipe.Costs); short != "" {
		e.reject("craft_at_anvil", insufficient(short), zap.String("recipe", recipeID))
		return failure(fmt.Sprintf("Not enough %s.", short))
	}
	gold := crafting.Pay(city, recipe.Costs)
	item := crafting.Forge(e.catalog.Odds, recipe, e.ids)
	e.addItem(item)
	e.reportGold(gold)

	r := success(fmt.Sprintf("Forged %s!", item.Name))
	r.ItemName = item.Name
	return r
}

// SocketGem 把背包里的宝石嵌入装备或背包中的武器/护甲，两处引用同时更新。
func (e *Engine) SocketGem(targetID, gemID string) Result {
	gi := e.player.ItemIndex(gemID)
	if gi < 0 || e.player.Inventory[gi].Type != entity.ItemGem || e.player.Inventory[gi].Quantity <= 0 {
		return failure("Gem not found.")
	}
	gem := e.player.Inventory[gi]

	var target entity.InventoryItem
	found := false
	if slot, ok := e.player.EquippedSlot(targetID); ok {
		target, found = e.player.Equipment[slot], true
	} else if ti := e.player.ItemIndex(targetID); ti >= 0 {
		target, found = e.player.Inventory[ti], true
	}
	if !found {
		return failure(string(crafting.SocketNotSocketable))
	}

	updated, why := crafting.Socket(e.catalog.Odds, target, gem)
	if why != "" {
		return failure(string(why))
	}
	if ti := e.player.ItemIndex(targetID); ti >= 0 {
		e.player.Inventory[ti] = updated
	}
	for slot, it := range e.player.Equipment {
		if it.ID == targetID {
			e.player.Equipment[slot] = updated.Clone()
		}
	}
	e.player.ConsumeItem(gemID, 1)
	return success(fmt.Sprintf("Socketed %s into %s.", gem.Name, target.Name))
}

func insufficient(r entity.ResourceType) string {
	return "INSUFFICIENT_" + strings.ToUpper(string(r))
}

// EquipItem 按槽位规则装备背包里的物品，同槽旧物品被替换。
func (e *Engine) EquipItem(itemID string) bool {
	i := e.player.ItemIndex(itemID)
	if i < 0 {
		return false
	}
	item := e.player.Inventory[i]
	slot, ok := crafting.SlotFor(e.catalog.SlotRules, item)
	if !ok {
		return false
	}
	if e.player.Equipment == nil {
		e.player.Equipment = map[entity.EquipSlot]entity.InventoryItem{}
	}
	e.player.Equipment[slot] = item.Clone()
	return true
}

func (e *Engine) UnequipItem(slot entity.EquipSlot) bool {
	if _, ok := e.player.Equipment[slot]; !ok {
		return false
	}
	delete(e.player.Equipment, slot)
	return true
}

// EquipmentBonus 已装备物品的攻防合计。
func (e *Engine) EquipmentBonus() entity.ItemStats {
	b := e.player.EquipmentBonus()
	return entity.ItemStats{Attack: b.Attack, Defense: b.Defense}
}

// UseItem 药水回复生命和体力并消耗一个；召唤道具让伙伴追踪最近的怪物。
func (e *Engine) UseItem(itemID string) Result {
	i := e.player.ItemIndex(itemID)
	if i < 0 || e.player.Inventory[i].Quantity <= 0 {
		return failure("Item not found.")
	}
	item := e.player.Inventory[i]

	if item.Type == entity.ItemPotion && (item.Stats.HealthBoost > 0 || item.Stats.EnergyBoost > 0) {
		e.player.Health = min(e.player.MaxHealth, e.player.Health+item.Stats.HealthBoost)
		e.player.Energy = min(e.player.MaxEnergy, e.player.Energy+item.Stats.EnergyBoost)
		e.player.ConsumeItem(itemID, 1)
		return success("Potion used.")
	}
	if c := e.catalog.Companion; c.SummonItem != "" && item.ID == c.SummonItem {
		return e.summonCompanion(c)
	}
	return failure("This item cannot be used.")
}

func (e *Engine) summonCompanion(t gameconfig.CompanionTemplate) Result {
	target, ok := e.nearestLiveMonster(e.player.Position, e.rules.CompanionSearchM)
	if !ok {
		return failure(fmt.Sprintf("Your %s couldn't find any creatures nearby.", t.Type))
	}
	comp := entity.Companion{ID: t.ID, Type: t.Type, Name: t.Name, Icon: t.Icon, Ability: t.Ability}
	if e.player.Companion != nil {
		comp = *e.player.Companion
	}
	now := e.now()
	comp.Active = true
	comp.LastPing = &now
	e.player.Companion = &comp

	pos := target.Position
	e.player.MovementFlag = &pos
	return success(fmt.Sprintf("Your %s tracked a %s! Check your movement target.", t.Type, target.Name))
}
