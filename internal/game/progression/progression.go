package progression

import (
	"math"

	"ParallelRealms/internal/game/entity"
)

const (
	healthPerLevel  = 20
	energyPerLevel  = 10
	attackPerLevel  = 2
	defensePerLevel = 1
)

// NextLevelExp = floor(100 * 1.1^level)。
func NextLevelExp(level int) int {
	return int(math.Floor(100 * math.Pow(1.1, float64(level))))
}

// GainExperience 加经验并连续升级，每升一级重新计算门槛。返回升了几级。
func GainExperience(p *entity.Player, amount int) int {
	p.Experience += amount
	levels := 0
	for p.NextLevelExp > 0 && p.Experience >= p.NextLevelExp {
		p.Experience -= p.NextLevelExp
		levelUp(p)
		levels++
	}
	return levels
}

func levelUp(p *entity.Player) {
	p.Level++
	p.MaxHealth += healthPerLevel
	p.Health = p.MaxHealth
	p.MaxEnergy += energyPerLevel
	p.Energy = p.MaxEnergy
	p.Attack += attackPerLevel
	p.Defense += defensePerLevel
	p.NextLevelExp = NextLevelExp(p.Level)
}
