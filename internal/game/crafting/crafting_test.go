package crafting

import (
	"testing"

	"ParallelRealms/internal/game/dice"
	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/shared/gameconfig"
	"ParallelRealms/internal/shared/utils"
)

func newLooter(rolls ...float64) *Looter {
	return NewLooter(gameconfig.MustDefaultCatalog(), dice.NewSequence(rolls...), &utils.SeqIDGen{})
}

func TestRarityFor_阈值(t *testing.T) {
	l := newLooter(0)
	cases := map[float64]entity.Rarity{
		0.0:   entity.RarityEpic,
		0.019: entity.RarityEpic,
		0.02:  entity.RarityRare,
		0.099: entity.RarityRare,
		0.1:   entity.RarityUncommon,
		0.29:  entity.RarityUncommon,
		0.3:   entity.RarityCommon,
		0.99:  entity.RarityCommon,
	}
	for roll, want := range cases {
		if got := l.RarityFor(roll); got != want {
			t.Fatalf("期望 roll=%v 得到 %s, got=%s", roll, want, got)
		}
	}
}

func TestGenerate_普通武器金币资源(t *testing.T) {
	// 稀有度 0.5 普通；金币 0.5 掉；类型 0.1 武器；模板 0 斧头；宝石 0.5 不掉；资源 0.1 掉；模板 0 木材
	l := newLooter(0.5, 0.5, 0.1, 0.0, 0.5, 0.1, 0.0)
	loot := l.Generate(4)
	if len(loot) != 3 {
		t.Fatalf("期望 3 件掉落, got=%d %+v", len(loot), loot)
	}
	if loot[0].Name != "Gold Coins" || loot[0].Quantity != 40 {
		t.Fatalf("期望金币 40, got=%+v", loot[0])
	}
	w := loot[1]
	if w.Type != entity.ItemWeapon || w.Name != "Axe" || w.Stats.Attack != 7 || w.MaxSockets != 1 {
		t.Fatalf("期望斧头 atk=7 1 孔, got=%+v", w)
	}
	if r := loot[2]; r.Type != entity.ItemResource || r.Name != "Wood Bundle" || r.Quantity != 32 {
		t.Fatalf("期望木材 32, got=%+v", r)
	}
}

func TestGenerate_稀有护甲与宝石缩放(t *testing.T) {
	l := newLooter(0.05, 0.1, 0.6, 0.0, 0.01, 0.0, 0.9)
	loot := l.Generate(3)
	if len(loot) != 2 {
		t.Fatalf("期望 2 件掉落, got=%+v", loot)
	}
	a := loot[0]
	if a.Type != entity.ItemArmor || a.Rarity != entity.RarityRare || a.Stats.Defense != 5 || a.MaxSockets != 3 {
		t.Fatalf("期望稀有护甲 def=5 3 孔, got=%+v", a)
	}
	g := loot[1]
	if g.Type != entity.ItemGem || g.Rarity != entity.RarityEpic || g.Stats.Attack != 1 || g.GemElement != "fire" {
		t.Fatalf("期望史诗红宝石 atk 至少 1, got=%+v", g)
	}
}

func TestMapDrop_按等级系数(t *testing.T) {
	// 模板 0 铁剑（每级 2 攻）；0.8 > 0.7 稀有
	l := newLooter(0.0, 0.8)
	item, ok := l.MapDrop(3)
	if !ok || item.Name != "Iron Sword" || item.Stats.Attack != 6 || item.Rarity != entity.RarityRare {
		t.Fatalf("期望稀有铁剑 atk=6, got=%+v", item)
	}
}

func TestSlotFor_规则表(t *testing.T) {
	rules := gameconfig.MustDefaultCatalog().SlotRules
	cases := []struct {
		name string
		typ  entity.ItemType
		want entity.EquipSlot
	}{
		{"Leather Helmet", entity.ItemArmor, entity.SlotHead},
		{"Golden Crown", entity.ItemArmor, entity.SlotHead},
		{"Steel Chest Plate", entity.ItemArmor, entity.SlotChest},
		{"Bronze Gauntlets", entity.ItemArmor, entity.SlotHands},
		{"Iron Boots", entity.ItemArmor, entity.SlotFeet},
		{"Dragon Scalemail", entity.ItemArmor, entity.SlotChest},
		{"Axe", entity.ItemWeapon, entity.SlotWeapon},
		{"Jade Amulet", entity.ItemAccessory, entity.SlotAmulet},
		{"Crown", entity.ItemAccessory, entity.SlotRing},
	}
	for _, c := range cases {
		got, ok := SlotFor(rules, entity.InventoryItem{Name: c.name, Type: c.typ})
		if !ok || got != c.want {
			t.Fatalf("期望 %s -> %s, got=%s", c.name, c.want, got)
		}
	}
	if _, ok := SlotFor(rules, entity.InventoryItem{Name: "Health Potion", Type: entity.ItemPotion}); ok {
		t.Fatalf("期望药水不可装备")
	}
	got, _ := SlotFor(rules, entity.InventoryItem{Name: "Bronze Shield", Type: entity.ItemArmor, Slot: entity.SlotShield})
	if got != entity.SlotShield {
		t.Fatalf("期望物品自带 slot 优先, got=%s", got)
	}
}

func TestSocket_容量与属性累加(t *testing.T) {
	odds := gameconfig.MustDefaultCatalog().Odds
	sword := entity.InventoryItem{ID: "s", Type: entity.ItemWeapon, Rarity: entity.RarityCommon, Stats: entity.ItemStats{Attack: 5}}
	ruby := entity.InventoryItem{ID: "g", Type: entity.ItemGem, Quantity: 2, Stats: entity.ItemStats{Attack: 3}}

	got, fail := Socket(odds, sword, ruby)
	if fail != "" {
		t.Fatalf("期望镶嵌成功, fail=%s", fail)
	}
	if got.Stats.Attack != 8 || len(got.SocketedGems) != 1 || got.SocketedGems[0].Quantity != 1 || got.MaxSockets != 1 {
		t.Fatalf("期望 atk=8 且记录 1 颗宝石, got=%+v", got)
	}
	if _, fail := Socket(odds, got, ruby); fail != SocketFull {
		t.Fatalf("期望普通品质只有 1 孔, fail=%s", fail)
	}
	legendary := sword
	legendary.Rarity = entity.RarityLegendary
	if _, fail := Socket(odds, legendary, ruby); fail != SocketNoCapacity {
		t.Fatalf("期望传说品质 0 孔, fail=%s", fail)
	}
	ring := entity.InventoryItem{Type: entity.ItemAccessory}
	if _, fail := Socket(odds, ring, ruby); fail != SocketNotSocketable {
		t.Fatalf("期望饰品不可镶嵌, fail=%s", fail)
	}
	if sword.Stats.Attack != 5 || sword.SocketedGems != nil {
		t.Fatalf("期望不修改入参")
	}
}

func TestShortfall与Pay_全有或全无(t *testing.T) {
	city := &entity.City{Resources: []entity.Resource{
		{Type: entity.ResourceWood, Amount: 10, MaxAmount: 100},
		{Type: entity.ResourceIron, Amount: 5, MaxAmount: 100},
		{Type: entity.ResourceGold, Amount: 100, MaxAmount: 100},
	}}
	recipe, _ := gameconfig.MustDefaultCatalog().Recipe("iron-sword")
	if got := Shortfall(city, recipe.Costs); got != entity.ResourceIron {
		t.Fatalf("期望缺 iron, got=%s", got)
	}
	city.Resources[1].Amount = 15
	if got := Shortfall(city, recipe.Costs); got != "" {
		t.Fatalf("期望资源足够, got=%s", got)
	}
	if gold := Pay(city, recipe.Costs); gold != 25 {
		t.Fatalf("期望花费金币 25, got=%d", gold)
	}
	if city.Amount(entity.ResourceWood) != 0 || city.Amount(entity.ResourceIron) != 0 || city.Amount(entity.ResourceGold) != 75 {
		t.Fatalf("期望按配方扣减, got=%+v", city.Resources)
	}
}

func TestForge_可镶嵌物品带孔(t *testing.T) {
	c := gameconfig.MustDefaultCatalog()
	r, _ := c.Recipe("bronze-shield")
	item := Forge(c.Odds, r, &utils.SeqIDGen{})
	if item.Type != entity.ItemArmor || item.Slot != entity.SlotShield || item.MaxSockets != 1 || item.Stats.Defense != 5 {
		t.Fatalf("期望铜盾 def=5 shield 槽 1 孔, got=%+v", item)
	}
	g, _ := c.Recipe("ruby-gem")
	gem := Forge(c.Odds, g, &utils.SeqIDGen{})
	if gem.MaxSockets != 0 || gem.AbilityName != "Ignite" {
		t.Fatalf("期望宝石无孔并带能力, got=%+v", gem)
	}
}
