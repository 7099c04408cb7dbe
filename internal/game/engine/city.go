package engine

import (
	"ParallelRealms/internal/game/crafting"
	"ParallelRealms/internal/game/entity"
)

const (
	fallbackSkillMaxLevel = 5
	fallbackSkillAttack   = 5
)

// CollectCityResources 每项资源按产量 × 倍数入账，封顶。
func (e *Engine) CollectCityResources(cityID string) bool {
	i := e.cityIndex(cityID)
	if i < 0 {
		return false
	}
	c := &e.player.Cities[i]
	for k := range c.Resources {
		r := c.Resources[k]
		gain := c.ProductionRates[r.Type] * e.rules.CityCollectMultiplier
		c.Deposit(r.Type, gain, e.rules.DefaultMaxAmount)
	}
	return true
}

// LearnSkill 已学过返回 false；目录里没有的技能按通用被动技能处理。
func (e *Engine) LearnSkill(skillID string) bool {
	if skillID == "" || e.player.SkillIndex(skillID) >= 0 {
		return false
	}
	skill := entity.PlayerSkill{
		ID:          skillID,
		Name:        "Skill " + skillID,
		Description: "A learned skill",
		Icon:        "⭐",
		Level:       1,
		MaxLevel:    fallbackSkillMaxLevel,
		Type:        "passive",
		Stats:       entity.ItemStats{Attack: fallbackSkillAttack},
	}
	if t, ok := e.catalog.Skill(skillID); ok {
		skill.Name = t.Name
		skill.Description = t.Description
		skill.Icon = t.Icon
		skill.Type = t.Type
		skill.Stats = crafting.ToItemStats(t.Stats)
		if t.MaxLevel > 0 {
			skill.MaxLevel = t.MaxLevel
		}
	}
	e.player.Skills = append(e.player.Skills, skill)
	return true
}

func (e *Engine) UpgradeSkill(skillID string) bool {
	i := e.player.SkillIndex(skillID)
	if i < 0 || e.player.Skills[i].Level >= e.player.Skills[i].MaxLevel {
		return false
	}
	e.player.Skills[i].Level++
	return true
}
