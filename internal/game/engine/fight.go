package engine

import (
	"fmt"

	"ParallelRealms/internal/game/combat"
	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/game/progression"
	"ParallelRealms/internal/game/scheduler"
)

// Attack 玩家出手一次；未击杀时排一次反击。
func (e *Engine) Attack() Result {
	id, ok := e.encounter.Enemy()
	if !ok {
		return failure("No enemy to attack.")
	}
	i := e.monsterIndex(id)
	if i < 0 {
		e.encounter.Clear()
		return failure("The enemy is gone.")
	}
	m := &e.monsters[i]
	dmg := combat.Damage(e.player.Attack, m.Defense, e.roll)
	m.Health = combat.ApplyDamage(m.Health, dmg)
	if m.Health == 0 {
		name := m.Name
		e.defeatMonster(i)
		return success(fmt.Sprintf("You dealt %d damage and defeated the %s!", dmg, name))
	}
	e.queue.Schedule(scheduler.KindCounterAttack, e.now().Add(e.rules.CounterAttackDelay()), m.ID)
	return success(fmt.Sprintf("You dealt %d damage to the %s.", dmg, m.Name))
}

func (e *Engine) defeatMonster(i int) {
	m := e.monsters[i]
	exp, gold := combat.Rewards(m.Level, e.player.Level)
	e.GainExperience(exp)
	e.player.Gold += gold
	for _, it := range m.Loot {
		e.addItem(it)
	}
	e.encounter.Clear()
	e.monsters = append(e.monsters[:i], e.monsters[i+1:]...)
	e.emit(Event{Kind: EventMonsterDefeated, TargetID: m.ID, Amount: exp, Message: m.Name})
}

// counterAttack 只在仍与同一只存活怪物交战时生效。
func (e *Engine) counterAttack(monsterID string) {
	id, ok := e.encounter.Enemy()
	if !ok || id != monsterID {
		return
	}
	i := e.monsterIndex(monsterID)
	if i < 0 || !e.monsters[i].Alive() {
		return
	}
	m := e.monsters[i]
	dmg := combat.Damage(m.Attack, e.player.Defense, e.roll)
	e.player.Health = combat.ApplyDamage(e.player.Health, dmg)
	e.emit(Event{Kind: EventPlayerHit, TargetID: m.ID, Amount: dmg})
	if e.player.Health == 0 {
		e.playerDefeated()
	}
}

// playerDefeated 回满血，回到出生城市（没有城市则原地），脱战。
func (e *Engine) playerDefeated() {
	e.player.Health = e.player.MaxHealth
	if c, ok := e.player.FirstCity(); ok {
		e.player.Position = c.Position
	}
	e.encounter.Clear()
	e.emit(Event{Kind: EventPlayerDefeated, Message: "You were defeated and returned home."})
}

// GainExperience 加经验，每升一级发一次事件。
func (e *Engine) GainExperience(amount int) {
	before := e.player.Level
	progression.GainExperience(&e.player, amount)
	for lv := before + 1; lv <= e.player.Level; lv++ {
		e.emit(Event{Kind: EventLevelUp, Amount: lv})
	}
}

// Rest 回满生命和体力。
func (e *Engine) Rest() {
	e.player.Health = e.player.MaxHealth
	e.player.Energy = e.player.MaxEnergy
}

// addItem 保持背包 id 唯一，冲突时换新 id。
func (e *Engine) addItem(it entity.InventoryItem) {
	if it.ID == "" || e.player.ItemIndex(it.ID) >= 0 {
		it.ID = e.ids.Next("item")
	}
	e.player.AddItem(it)
}
