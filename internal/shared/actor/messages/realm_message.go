package messages

// RealmMessage 是发给某个会话 RealmActor 的请求。
type RealmMessage interface {
	SessionKey() string
}

type RealmBaseMessage struct {
	Session string
}

func (m RealmBaseMessage) SessionKey() string {
	return m.Session
}

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type InitPosition struct {
	RealmBaseMessage
	Position
}

type Move struct {
	RealmBaseMessage
	Position
}

type PlaceFirstFlag struct {
	RealmBaseMessage
	Position
}

type PlaceAdditionalFlag struct {
	RealmBaseMessage
	Position
}

type RemoveLastFlag struct {
	RealmBaseMessage
}

type ClearFirstFlag struct {
	RealmBaseMessage
}

type CanBuild struct {
	RealmBaseMessage
	Position
}

type Build struct {
	RealmBaseMessage
	Position
	Type string `json:"type"`
}

type CanMove struct {
	RealmBaseMessage
	Position
}

type SetTarget struct {
	RealmBaseMessage
	Position
}

type Teleport struct {
	RealmBaseMessage
	TerritoryID string `json:"territoryId"`
}

type Attack struct {
	RealmBaseMessage
}

type Rest struct {
	RealmBaseMessage
}

type Craft struct {
	RealmBaseMessage
	RecipeID string `json:"recipeId"`
}

type Socket struct {
	RealmBaseMessage
	TargetID string `json:"targetId"`
	GemID    string `json:"gemId"`
}

type Equip struct {
	RealmBaseMessage
	ItemID string `json:"itemId"`
}

type Unequip struct {
	RealmBaseMessage
	Slot string `json:"slot"`
}

type UseItem struct {
	RealmBaseMessage
	ItemID string `json:"itemId"`
}

// SpawnLoot Level 为 0 时取玩家等级。
type SpawnLoot struct {
	RealmBaseMessage
	Position
	Level int `json:"level"`
}

// Collect CityID 为空时收取第一座城。
type Collect struct {
	RealmBaseMessage
	CityID string `json:"cityId"`
}

type LearnSkill struct {
	RealmBaseMessage
	SkillID string `json:"skillId"`
}

type UpgradeSkill struct {
	RealmBaseMessage
	SkillID string `json:"skillId"`
}

type GetState struct {
	RealmBaseMessage
}

type Save struct {
	RealmBaseMessage
}

type DeleteSave struct {
	RealmBaseMessage
}

type Bank struct {
	RealmBaseMessage
}
