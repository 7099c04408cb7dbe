package messages

import (
	"time"

	"ParallelRealms/internal/game/entity"
)

// StateView 是客户端渲染需要的全部状态。
type StateView struct {
	UserID             string                `json:"userId"`
	Player             entity.Player         `json:"player"`
	EquipmentBonus     entity.ItemStats      `json:"equipmentBonus"`
	Territories        []entity.Territory    `json:"territories"`
	Buildings          []entity.Building     `json:"buildings"`
	Monsters           []entity.Monster      `json:"monsters"`
	ResourceNodes      []entity.ResourceNode `json:"resourceNodes"`
	LootDrops          []entity.LootDrop     `json:"lootDrops"`
	HasPlacedFirstFlag bool                  `json:"hasPlacedFirstFlag"`
	InCombat           bool                  `json:"inCombat"`
	CurrentEnemy       *entity.Monster       `json:"currentEnemy,omitempty"`
	LastSaved          time.Time             `json:"lastSaved"`
}

// Outcome 是布尔型和 Result 型操作的回复体。
type Outcome struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	ItemName string `json:"itemName,omitempty"`
}

type BankView struct {
	OwnerBankGold int  `json:"ownerBankGold"`
	Cached        bool `json:"cached"`
}
