// Package combat 是战斗结算：伤害、击杀奖励和一次只打一只的遭遇状态。
package combat

import "ParallelRealms/internal/game/dice"

// DamageSpread 伤害随机浮动 [0, DamageSpread)。
const DamageSpread = 5

// Damage = max(1, atk - def + floor(roll*5))。
func Damage(attack, defense int, r dice.Roller) int {
	return max(1, attack-defense+dice.Intn(r, DamageSpread))
}

// Rewards 击杀 monsterLevel 级怪物得到的经验和金币。
func Rewards(monsterLevel, playerLevel int) (exp, gold int) {
	exp = max(25, monsterLevel*25+100+(monsterLevel-playerLevel)*10)
	gold = monsterLevel * 10
	return exp, gold
}

// Encounter: Idle -> InCombat -> Idle，同一时间只有一个敌人。
type Encounter struct {
	enemyID string
}

// Engage 已在战斗中时忽略新的接触。
func (e *Encounter) Engage(monsterID string) bool {
	if e.enemyID != "" {
		return false
	}
	e.enemyID = monsterID
	return true
}

func (e *Encounter) Enemy() (string, bool) {
	return e.enemyID, e.enemyID != ""
}

func (e *Encounter) InCombat() bool {
	return e.enemyID != ""
}

func (e *Encounter) Clear() {
	e.enemyID = ""
}

// ApplyDamage 扣血，不低于 0。
func ApplyDamage(health, dmg int) int {
	return max(0, health-dmg)
}
