package dto

type LoginReq struct {
	// Token 为空时按匿名会话处理。
	Token string `json:"token"`
}

type LoginResp struct {
	Session string `json:"session"`
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	State   any    `json:"state"`
}

type PositionReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type BuildReq struct {
	Type string  `json:"type"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type TeleportReq struct {
	TerritoryID string `json:"territoryId"`
}

type RecipeReq struct {
	RecipeID string `json:"recipeId"`
}

type SocketReq struct {
	TargetID string `json:"targetId"`
	GemID    string `json:"gemId"`
}

type ItemReq struct {
	ItemID string `json:"itemId"`
}

type SlotReq struct {
	Slot string `json:"slot"`
}

type LootReq struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Level int     `json:"level"`
}

type CityReq struct {
	CityID string `json:"cityId"`
}

type SkillReq struct {
	SkillID string `json:"skillId"`
}
