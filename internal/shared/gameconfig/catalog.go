package gameconfig

// Cost 是一项资源消耗，按声明顺序检查。
type Cost struct {
	Resource string `json:"resource" mapstructure:"resource"`
	Amount   int    `json:"amount" mapstructure:"amount"`
}

type Stats struct {
	Attack      int `json:"attack,omitempty" mapstructure:"attack"`
	Defense     int `json:"defense,omitempty" mapstructure:"defense"`
	HealthBoost int `json:"healthBoost,omitempty" mapstructure:"health_boost"`
	EnergyBoost int `json:"energyBoost,omitempty" mapstructure:"energy_boost"`
}

type MonsterTemplate struct {
	Name    string `mapstructure:"name"`
	Icon    string `mapstructure:"icon"`
	Level   int    `mapstructure:"level"`
	Attack  int    `mapstructure:"attack"`
	Defense int    `mapstructure:"defense"`
	MinTier int    `mapstructure:"min_tier"`
}

type ResourceNodeTemplate struct {
	Type      string `mapstructure:"type"`
	Icon      string `mapstructure:"icon"`
	MaxAmount int    `mapstructure:"max_amount"`
	Regen     int    `mapstructure:"regen"`
}

type BuildingTemplate struct {
	Type      string `mapstructure:"type"`
	Name      string `mapstructure:"name"`
	Icon      string `mapstructure:"icon"`
	Costs     []Cost `mapstructure:"costs"`
	BuildTime int    `mapstructure:"build_time_s"`
	MaxHealth int    `mapstructure:"max_health"`
	CityLevel int    `mapstructure:"city_level"`
}

type Recipe struct {
	ID                 string `mapstructure:"id"`
	Name               string `mapstructure:"name"`
	Type               string `mapstructure:"type"`
	Rarity             string `mapstructure:"rarity"`
	Icon               string `mapstructure:"icon"`
	Slot               string `mapstructure:"slot"`
	Stats              Stats  `mapstructure:"stats"`
	AbilityName        string `mapstructure:"ability_name"`
	AbilityDescription string `mapstructure:"ability_description"`
	GemElement         string `mapstructure:"gem_element"`
	Costs              []Cost `mapstructure:"costs"`
}

// LootTemplate 用于怪物掉落与地图掉落。
type LootTemplate struct {
	Name               string `mapstructure:"name"`
	Icon               string `mapstructure:"icon"`
	Type               string `mapstructure:"type"`
	Resource           string `mapstructure:"resource"`
	Stats              Stats  `mapstructure:"stats"`
	AbilityName        string `mapstructure:"ability_name"`
	AbilityDescription string `mapstructure:"ability_description"`
	GemElement         string `mapstructure:"gem_element"`
}

type LootTables struct {
	Weapons     []LootTemplate `mapstructure:"weapons"`
	Armor       []LootTemplate `mapstructure:"armor"`
	Accessories []LootTemplate `mapstructure:"accessories"`
	Gems        []LootTemplate `mapstructure:"gems"`
	Resources   []LootTemplate `mapstructure:"resources"`
	Gold        LootTemplate   `mapstructure:"gold"`
	// MapDrops 是 spawnLoot 在地图上投放的掉落表。
	MapDrops []LootTemplate `mapstructure:"map_drops"`
}

// RarityRoll: roll < Below 时命中该稀有度，按顺序匹配，都不中取 Fallback。
type RarityRoll struct {
	Rarity string  `mapstructure:"rarity"`
	Below  float64 `mapstructure:"below"`
}

type LootOdds struct {
	Rarities       []RarityRoll       `mapstructure:"rarities"`
	Fallback       string             `mapstructure:"fallback"`
	Scale          map[string]float64 `mapstructure:"scale"`
	GoldAbove      float64            `mapstructure:"gold_above"`
	WeaponBelow    float64            `mapstructure:"weapon_below"`
	ArmorBelow     float64            `mapstructure:"armor_below"`
	GemBelow       float64            `mapstructure:"gem_below"`
	GemRarity      string             `mapstructure:"gem_rarity"`
	ResourceBelow  float64            `mapstructure:"resource_below"`
	MapRareAbove   float64            `mapstructure:"map_rare_above"`
	SocketCapacity map[string]int     `mapstructure:"socket_capacity"`
}

// SlotRule: 物品类型匹配且名称包含任一关键字时进入 Slot。
// Keywords 为空表示该类型的默认槽位。
type SlotRule struct {
	ItemType string   `mapstructure:"item_type"`
	Keywords []string `mapstructure:"keywords"`
	Slot     string   `mapstructure:"slot"`
}

type ResourceLedgerEntry struct {
	Type      string `mapstructure:"type"`
	Amount    int    `mapstructure:"amount"`
	MaxAmount int    `mapstructure:"max_amount"`
}

type CityTemplate struct {
	Name            string                `mapstructure:"name"`
	Level           int                   `mapstructure:"level"`
	Population      int                   `mapstructure:"population"`
	MaxPopulation   int                   `mapstructure:"max_population"`
	Resources       []ResourceLedgerEntry `mapstructure:"resources"`
	ProductionRates map[string]int        `mapstructure:"production_rates"`
	StarterBuilding string                `mapstructure:"starter_building"`
}

type ItemTemplate struct {
	ID       string `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Type     string `mapstructure:"type"`
	Rarity   string `mapstructure:"rarity"`
	Quantity int    `mapstructure:"quantity"`
	Icon     string `mapstructure:"icon"`
	Stats    Stats  `mapstructure:"stats"`
}

type PlayerTemplate struct {
	ID           string         `mapstructure:"id"`
	Name         string         `mapstructure:"name"`
	Level        int            `mapstructure:"level"`
	NextLevelExp int            `mapstructure:"next_level_exp"`
	MaxHealth    int            `mapstructure:"max_health"`
	MaxEnergy    int            `mapstructure:"max_energy"`
	Attack       int            `mapstructure:"attack"`
	Defense      int            `mapstructure:"defense"`
	Gold         int            `mapstructure:"gold"`
	Inventory    []ItemTemplate `mapstructure:"inventory"`
}

type SkillTemplate struct {
	ID          string `mapstructure:"id"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Icon        string `mapstructure:"icon"`
	Type        string `mapstructure:"type"`
	MaxLevel    int    `mapstructure:"max_level"`
	Stats       Stats  `mapstructure:"stats"`
}

type CompanionTemplate struct {
	ID      string `mapstructure:"id"`
	Type    string `mapstructure:"type"`
	Name    string `mapstructure:"name"`
	Icon    string `mapstructure:"icon"`
	Ability string `mapstructure:"ability"`
	// SummonItem 是召唤该伙伴的任务道具 id。
	SummonItem string `mapstructure:"summon_item"`
}

type Catalog struct {
	Monsters      []MonsterTemplate      `mapstructure:"monsters"`
	ResourceNodes []ResourceNodeTemplate `mapstructure:"resource_nodes"`
	Buildings     []BuildingTemplate     `mapstructure:"buildings"`
	Recipes       []Recipe               `mapstructure:"recipes"`
	Loot          LootTables             `mapstructure:"loot"`
	Odds          LootOdds               `mapstructure:"odds"`
	SlotRules     []SlotRule             `mapstructure:"slot_rules"`
	StarterCity   CityTemplate           `mapstructure:"starter_city"`
	StarterPlayer PlayerTemplate         `mapstructure:"starter_player"`
	Skills        []SkillTemplate        `mapstructure:"skills"`
	Companion     CompanionTemplate      `mapstructure:"companion"`
}

func (c *Catalog) Recipe(id string) (Recipe, bool) {
	for _, r := range c.Recipes {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}

func (c *Catalog) Building(typ string) (BuildingTemplate, bool) {
	for _, b := range c.Buildings {
		if b.Type == typ {
			return b, true
		}
	}
	return BuildingTemplate{}, false
}

func (c *Catalog) Skill(id string) (SkillTemplate, bool) {
	for _, s := range c.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return SkillTemplate{}, false
}

// MonstersForTier 返回 minTier <= tier 的怪物，一个都没有时回退到 0 阶。
func (c *Catalog) MonstersForTier(tier int) []MonsterTemplate {
	var out []MonsterTemplate
	for _, m := range c.Monsters {
		if m.MinTier <= tier {
			out = append(out, m)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, m := range c.Monsters {
		if m.MinTier == 0 {
			out = append(out, m)
		}
	}
	return out
}
