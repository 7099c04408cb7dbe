package entity

type ItemType string

const (
	ItemWeapon    ItemType = "weapon"
	ItemArmor     ItemType = "armor"
	ItemAccessory ItemType = "accessory"
	ItemGem       ItemType = "gem"
	ItemPotion    ItemType = "potion"
	ItemResource  ItemType = "resource"
	ItemQuest     ItemType = "quest"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

type EquipSlot string

const (
	SlotHead   EquipSlot = "head"
	SlotChest  EquipSlot = "chest"
	SlotHands  EquipSlot = "hands"
	SlotFeet   EquipSlot = "feet"
	SlotWeapon EquipSlot = "weapon"
	SlotShield EquipSlot = "shield"
	SlotRing   EquipSlot = "ring"
	SlotAmulet EquipSlot = "amulet"
)

type ItemStats struct {
	Attack      int `json:"attack,omitempty"`
	Defense     int `json:"defense,omitempty"`
	HealthBoost int `json:"healthBoost,omitempty"`
	EnergyBoost int `json:"energyBoost,omitempty"`
}

func (s ItemStats) Add(o ItemStats) ItemStats {
	return ItemStats{
		Attack:      s.Attack + o.Attack,
		Defense:     s.Defense + o.Defense,
		HealthBoost: s.HealthBoost + o.HealthBoost,
		EnergyBoost: s.EnergyBoost + o.EnergyBoost,
	}
}

type InventoryItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     ItemType  `json:"type"`
	Rarity   Rarity    `json:"rarity"`
	Quantity int       `json:"quantity"`
	Stats    ItemStats `json:"stats"`
	Icon     string    `json:"icon"`
	// Slot 非空时直接决定装备槽，不再按名称推断。
	Slot               EquipSlot       `json:"slot,omitempty"`
	MaxSockets         int             `json:"maxSockets,omitempty"`
	SocketedGems       []InventoryItem `json:"socketedGems"`
	GemElement         string          `json:"gemElement,omitempty"`
	AbilityName        string          `json:"abilityName,omitempty"`
	AbilityDescription string          `json:"abilityDescription,omitempty"`
}

// Socketable 只有武器和护甲能镶嵌。
func (i InventoryItem) Socketable() bool {
	return i.Type == ItemWeapon || i.Type == ItemArmor
}

func (i InventoryItem) Clone() InventoryItem {
	out := i
	if i.SocketedGems != nil {
		out.SocketedGems = make([]InventoryItem, len(i.SocketedGems))
		for k, g := range i.SocketedGems {
			out.SocketedGems[k] = g.Clone()
		}
	}
	return out
}

// cloneSlice 保留空切片和 nil 的区别，JSON 往返后仍然相等。
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneItems(in []InventoryItem) []InventoryItem {
	if in == nil {
		return nil
	}
	out := make([]InventoryItem, len(in))
	for i, it := range in {
		out[i] = it.Clone()
	}
	return out
}
