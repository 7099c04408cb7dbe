package progression

import (
	"testing"

	"ParallelRealms/internal/game/entity"
)

func hero() *entity.Player {
	return &entity.Player{Level: 1, NextLevelExp: 100, Health: 40, MaxHealth: 100, Energy: 10, MaxEnergy: 50, Attack: 10, Defense: 5}
}

func TestGainExperience_不够一级(t *testing.T) {
	p := hero()
	if n := GainExperience(p, 99); n != 0 || p.Experience != 99 || p.Level != 1 {
		t.Fatalf("期望不升级, got=%+v", p)
	}
}

func TestGainExperience_连升两级(t *testing.T) {
	p := hero()
	// 100 升到 2 级，门槛变 floor(100*1.1^2)=121，再 121 升到 3 级，余 9
	n := GainExperience(p, 230)
	if n != 2 || p.Level != 3 {
		t.Fatalf("期望升到 3 级, got n=%d level=%d", n, p.Level)
	}
	if p.Experience != 9 || p.NextLevelExp != 133 {
		t.Fatalf("期望余 9 经验且门槛 133, got exp=%d next=%d", p.Experience, p.NextLevelExp)
	}
	if p.MaxHealth != 140 || p.Health != 140 || p.MaxEnergy != 70 || p.Energy != 70 {
		t.Fatalf("期望每级 +20 生命 +10 体力并回满, got=%+v", p)
	}
	if p.Attack != 14 || p.Defense != 7 {
		t.Fatalf("期望每级 +2 攻 +1 防, got atk=%d def=%d", p.Attack, p.Defense)
	}
}

func TestNextLevelExp(t *testing.T) {
	for lv, want := range map[int]int{1: 110, 2: 121, 3: 133, 10: 259} {
		if got := NextLevelExp(lv); got != want {
			t.Fatalf("期望 level=%d 门槛 %d, got=%d", lv, want, got)
		}
	}
}
