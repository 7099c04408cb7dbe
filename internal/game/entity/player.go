package entity

import "time"

type PlayerSkill struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Level       int       `json:"level"`
	MaxLevel    int       `json:"maxLevel"`
	Type        string    `json:"type"`
	Stats       ItemStats `json:"stats"`
}

type Companion struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Name     string     `json:"name"`
	Icon     string     `json:"icon"`
	Active   bool       `json:"active"`
	Ability  string     `json:"ability"`
	LastPing *time.Time `json:"lastPing,omitempty"`
}

type Player struct {
	ID           string                      `json:"id"`
	Name         string                      `json:"name"`
	Level        int                         `json:"level"`
	Experience   int                         `json:"experience"`
	NextLevelExp int                         `json:"nextLevelExp"`
	Health       int                         `json:"health"`
	MaxHealth    int                         `json:"maxHealth"`
	Energy       int                         `json:"energy"`
	MaxEnergy    int                         `json:"maxEnergy"`
	Attack       int                         `json:"attack"`
	Defense      int                         `json:"defense"`
	Gold         int                         `json:"gold"`
	Position     Coordinate                  `json:"position"`
	Inventory    []InventoryItem             `json:"inventory"`
	Equipment    map[EquipSlot]InventoryItem `json:"equipment"`
	Skills       []PlayerSkill               `json:"skills"`
	Territory    []string                    `json:"territory"`
	Cities       []City                      `json:"cities"`
	Companion    *Companion                  `json:"companion,omitempty"`
	MovementFlag *Coordinate                 `json:"movementFlag,omitempty"`
}

// ItemIndex 返回背包中该 id 的下标，不存在为 -1。
func (p *Player) ItemIndex(id string) int {
	for i := range p.Inventory {
		if p.Inventory[i].ID == id {
			return i
		}
	}
	return -1
}

// AddItem 追加物品；同 id 已存在时返回 false。
func (p *Player) AddItem(item InventoryItem) bool {
	if item.ID == "" || p.ItemIndex(item.ID) >= 0 {
		return false
	}
	p.Inventory = append(p.Inventory, item)
	return true
}

// ConsumeItem 扣减数量，归零即移出背包。
func (p *Player) ConsumeItem(id string, n int) bool {
	idx := p.ItemIndex(id)
	if idx < 0 || p.Inventory[idx].Quantity < n {
		return false
	}
	p.Inventory[idx].Quantity -= n
	if p.Inventory[idx].Quantity <= 0 {
		p.Inventory = append(p.Inventory[:idx], p.Inventory[idx+1:]...)
	}
	return true
}

// EquippedSlot 找到装备着该物品的槽位。
func (p *Player) EquippedSlot(id string) (EquipSlot, bool) {
	for slot, it := range p.Equipment {
		if it.ID == id {
			return slot, true
		}
	}
	return "", false
}

// EquipmentBonus 汇总已装备物品的属性（含已镶嵌宝石折算进的部分）。
func (p *Player) EquipmentBonus() ItemStats {
	var total ItemStats
	for _, it := range p.Equipment {
		total = total.Add(it.Stats)
	}
	return total
}

// ClampVitals 维持 0 <= health <= maxHealth, 0 <= energy <= maxEnergy。
func (p *Player) ClampVitals() {
	p.Health = clamp(p.Health, 0, p.MaxHealth)
	p.Energy = clamp(p.Energy, 0, p.MaxEnergy)
}

func (p *Player) SkillIndex(id string) int {
	for i := range p.Skills {
		if p.Skills[i].ID == id {
			return i
		}
	}
	return -1
}

// FirstCity 出生城市，重生点。
func (p *Player) FirstCity() (*City, bool) {
	if len(p.Cities) == 0 {
		return nil, false
	}
	return &p.Cities[0], true
}

func (p Player) Clone() Player {
	out := p
	out.Inventory = cloneItems(p.Inventory)
	if p.Equipment != nil {
		out.Equipment = make(map[EquipSlot]InventoryItem, len(p.Equipment))
		for k, v := range p.Equipment {
			out.Equipment[k] = v.Clone()
		}
	}
	if p.Skills != nil {
		out.Skills = cloneSlice(p.Skills)
	}
	if p.Territory != nil {
		out.Territory = cloneSlice(p.Territory)
	}
	if p.Cities != nil {
		out.Cities = make([]City, len(p.Cities))
		for i, c := range p.Cities {
			out.Cities[i] = c.Clone()
		}
	}
	if p.Companion != nil {
		c := *p.Companion
		if c.LastPing != nil {
			t := *c.LastPing
			c.LastPing = &t
		}
		out.Companion = &c
	}
	if p.MovementFlag != nil {
		f := *p.MovementFlag
		out.MovementFlag = &f
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
