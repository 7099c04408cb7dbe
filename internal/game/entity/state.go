package entity

import "time"

// GameState 是存档单位，必须可以无损往返。
type GameState struct {
	UserID             string         `json:"userId"`
	Player             Player         `json:"player"`
	Territories        []Territory    `json:"territories"`
	Buildings          []Building     `json:"buildings"`
	Monsters           []Monster      `json:"monsters"`
	ResourceNodes      []ResourceNode `json:"resourceNodes"`
	HasPlacedFirstFlag bool           `json:"hasPlacedFirstFlag"`
	LastSaved          time.Time      `json:"lastSaved"`
}

// Clone 深拷贝，快照交给持久化协程后与引擎状态互不影响。
func (s GameState) Clone() GameState {
	out := s
	out.Player = s.Player.Clone()
	if s.Territories != nil {
		out.Territories = cloneSlice(s.Territories)
	}
	if s.Buildings != nil {
		out.Buildings = cloneSlice(s.Buildings)
	}
	if s.Monsters != nil {
		out.Monsters = make([]Monster, len(s.Monsters))
		for i, m := range s.Monsters {
			m.Loot = cloneItems(m.Loot)
			out.Monsters[i] = m
		}
	}
	if s.ResourceNodes != nil {
		out.ResourceNodes = cloneSlice(s.ResourceNodes)
	}
	return out
}

// SaveSnapshot 是待写远端的一份版本化快照，版本高的覆盖版本低的。
type SaveSnapshot struct {
	Version uint64
	State   GameState
}
