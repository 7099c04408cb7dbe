package entity

import "time"

type Territory struct {
	ID          string     `json:"id"`
	Position    Coordinate `json:"position"`
	OwnerID     string     `json:"ownerId"`
	OwnerName   string     `json:"ownerName"`
	LastClaimed time.Time  `json:"lastClaimed"`
	Color       string     `json:"color"`
	// IsActive=false 即黑旗：任何人可进入。
	IsActive bool `json:"isActive"`
}

type BuildingType string

const (
	BuildingHouse      BuildingType = "house"
	BuildingTower      BuildingType = "tower"
	BuildingBarracks   BuildingType = "barracks"
	BuildingMarket     BuildingType = "market"
	BuildingFarm       BuildingType = "farm"
	BuildingMine       BuildingType = "mine"
	BuildingLumbermill BuildingType = "lumbermill"
	BuildingFortress   BuildingType = "fortress"
	BuildingWall       BuildingType = "wall"
	BuildingWarehouse  BuildingType = "warehouse"
)

type Building struct {
	ID                  string       `json:"id"`
	Type                BuildingType `json:"type"`
	Position            Coordinate   `json:"position"`
	Level               int          `json:"level"`
	Health              int          `json:"health"`
	MaxHealth           int          `json:"maxHealth"`
	Owner               string       `json:"owner"`
	IsUnderConstruction bool         `json:"isUnderConstruction"`
	// ConstructionTime 剩余建造秒数，完工后为 0。
	ConstructionTime int `json:"constructionTime"`
}

type Monster struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Level     int             `json:"level"`
	Icon      string          `json:"icon"`
	Health    int             `json:"health"`
	MaxHealth int             `json:"maxHealth"`
	Attack    int             `json:"attack"`
	Defense   int             `json:"defense"`
	Position  Coordinate      `json:"position"`
	Loot      []InventoryItem `json:"loot"`
}

func (m Monster) Alive() bool {
	return m.Health > 0
}

type ResourceNode struct {
	ID               string       `json:"id"`
	Type             ResourceType `json:"type"`
	Position         Coordinate   `json:"position"`
	Amount           int          `json:"amount"`
	MaxAmount        int          `json:"maxAmount"`
	RegenerationRate int          `json:"regenerationRate"`
	Icon             string       `json:"icon"`
}

// LootDrop 是散落在地图上的掉落物，不进存档。
type LootDrop struct {
	Item      InventoryItem `json:"item"`
	Position  Coordinate    `json:"position"`
	Level     int           `json:"level"`
	SpawnTime time.Time     `json:"spawnTime"`
}
