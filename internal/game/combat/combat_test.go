package combat

import (
	"testing"

	"ParallelRealms/internal/game/dice"
)

func TestDamage_随机为零(t *testing.T) {
	if got := Damage(10, 4, dice.Fixed(0)); got != 6 {
		t.Fatalf("期望 10-4+0=6, got=%d", got)
	}
	if got := Damage(10, 4, dice.Fixed(0.99)); got != 10 {
		t.Fatalf("期望最大浮动 +4, got=%d", got)
	}
	if got := Damage(1, 50, dice.Fixed(0)); got != 1 {
		t.Fatalf("期望最低 1 点伤害, got=%d", got)
	}
}

func TestRewards_公式(t *testing.T) {
	exp, gold := Rewards(3, 1)
	if exp != 3*25+100+2*10 || gold != 30 {
		t.Fatalf("期望 exp=195 gold=30, got=%d,%d", exp, gold)
	}
	exp, _ = Rewards(1, 40)
	if exp != 25 {
		t.Fatalf("期望经验下限 25, got=%d", exp)
	}
}

func TestEncounter_一次一个敌人(t *testing.T) {
	var e Encounter
	if e.InCombat() {
		t.Fatalf("期望初始空闲")
	}
	if !e.Engage("m1") || e.Engage("m2") {
		t.Fatalf("期望战斗中忽略第二只怪")
	}
	if id, ok := e.Enemy(); !ok || id != "m1" {
		t.Fatalf("期望当前敌人 m1, got=%s", id)
	}
	e.Clear()
	if e.InCombat() || !e.Engage("m2") {
		t.Fatalf("期望脱战后可以再次接敌")
	}
}

func TestApplyDamage_不低于零(t *testing.T) {
	if got := ApplyDamage(5, 9); got != 0 {
		t.Fatalf("期望 0, got=%d", got)
	}
	if got := ApplyDamage(9, 5); got != 4 {
		t.Fatalf("期望 4, got=%d", got)
	}
}
