package gameconfig

import "time"

// Rules 是玩法数值，来自 conf.yml 的 game 段，缺省值见 DefaultRules。
type Rules struct {
	TerritoryRadiusM      float64 `yaml:"territory_radius_m" mapstructure:"territory_radius_m"`
	EdgeBufferM           float64 `yaml:"edge_buffer_m" mapstructure:"edge_buffer_m"`
	ClaimRadiusM          float64 `yaml:"claim_radius_m" mapstructure:"claim_radius_m"`
	DuplicateClaimRadiusM float64 `yaml:"duplicate_claim_radius_m" mapstructure:"duplicate_claim_radius_m"`
	PlacementMinDistanceM float64 `yaml:"placement_min_distance_m" mapstructure:"placement_min_distance_m"`
	EncounterRadiusM      float64 `yaml:"encounter_radius_m" mapstructure:"encounter_radius_m"`
	HarvestRadiusM        float64 `yaml:"harvest_radius_m" mapstructure:"harvest_radius_m"`
	HarvestAmount         int     `yaml:"harvest_amount" mapstructure:"harvest_amount"`
	LootPickupRadiusM     float64 `yaml:"loot_pickup_radius_m" mapstructure:"loot_pickup_radius_m"`
	CompanionSearchM      float64 `yaml:"companion_search_radius_m" mapstructure:"companion_search_radius_m"`
	SpawnExclusionM       float64 `yaml:"spawn_exclusion_m" mapstructure:"spawn_exclusion_m"`

	ChunkSizeKm       float64 `yaml:"chunk_size_km" mapstructure:"chunk_size_km"`
	ChunkRadius       int     `yaml:"chunk_radius" mapstructure:"chunk_radius"`
	MonstersPerChunk  int     `yaml:"monsters_per_chunk" mapstructure:"monsters_per_chunk"`
	ResourcesPerChunk int     `yaml:"resources_per_chunk" mapstructure:"resources_per_chunk"`

	RegenDelayMs         int `yaml:"regen_delay_ms" mapstructure:"regen_delay_ms"`
	CounterAttackDelayMs int `yaml:"counter_attack_delay_ms" mapstructure:"counter_attack_delay_ms"`
	AutosaveIntervalS    int `yaml:"autosave_interval_s" mapstructure:"autosave_interval_s"`

	EnergyMetersPerPoint  float64 `yaml:"energy_meters_per_point" mapstructure:"energy_meters_per_point"`
	CityCollectMultiplier int     `yaml:"city_collect_multiplier" mapstructure:"city_collect_multiplier"`
	DefaultMaxAmount      int     `yaml:"default_max_amount" mapstructure:"default_max_amount"`
	TerritoryColor        string  `yaml:"territory_color" mapstructure:"territory_color"`

	// CatalogFile 为空时使用内置 catalog.json。
	CatalogFile string `yaml:"catalog_file" mapstructure:"catalog_file"`
}

func DefaultRules() Rules {
	return Rules{
		TerritoryRadiusM:      200,
		EdgeBufferM:           20,
		ClaimRadiusM:          25,
		DuplicateClaimRadiusM: 5,
		PlacementMinDistanceM: 10,
		EncounterRadiusM:      25,
		HarvestRadiusM:        25,
		HarvestAmount:         20,
		LootPickupRadiusM:     20,
		CompanionSearchM:      1000,
		SpawnExclusionM:       50,
		ChunkSizeKm:           2,
		ChunkRadius:           0,
		MonstersPerChunk:      3,
		ResourcesPerChunk:     3,
		RegenDelayMs:          5000,
		CounterAttackDelayMs:  500,
		AutosaveIntervalS:     30,
		EnergyMetersPerPoint:  100,
		CityCollectMultiplier: 10,
		DefaultMaxAmount:      1000,
		TerritoryColor:        "#4169e1",
	}
}

// ChunkSizeDeg 把公里换算成度（1° ≈ 111 km）。
func (r Rules) ChunkSizeDeg() float64 {
	return r.ChunkSizeKm / 111
}

func (r Rules) RegenDelay() time.Duration {
	return time.Duration(r.RegenDelayMs) * time.Millisecond
}

func (r Rules) CounterAttackDelay() time.Duration {
	return time.Duration(r.CounterAttackDelayMs) * time.Millisecond
}

func (r Rules) AutosaveInterval() time.Duration {
	return time.Duration(r.AutosaveIntervalS) * time.Second
}
