package engine

import (
	"math"
	"sort"

	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/game/scheduler"
	"ParallelRealms/internal/game/territory"

	"go.uber.org/zap"
)

// InitializePlayerPosition 设置初始定位，不消耗体力也不触发任何检查。
func (e *Engine) InitializePlayerPosition(lat, lng float64) {
	e.player.Position = entity.At(lat, lng)
}

// UpdatePlayerGPSPosition 处理一次定位更新：扣体力、生成区块、接敌、采集、拾取、到达目标。
func (e *Engine) UpdatePlayerGPSPosition(lat, lng float64) {
	pos := entity.At(lat, lng)
	moved := e.player.Position.DistanceTo(pos)
	e.player.Position = pos
	if e.rules.EnergyMetersPerPoint > 0 {
		cost := int(math.Floor(moved / e.rules.EnergyMetersPerPoint))
		e.player.Energy = max(0, e.player.Energy-cost)
	}

	e.ensureWorld(pos)
	e.checkForMonster(pos)
	e.harvestNearby(pos)
	e.pickupLoot(pos)
	e.checkArrival(pos)
}

// CheckForNearbyEntitiesAt 只做接敌和采集检查，不移动玩家。
func (e *Engine) CheckForNearbyEntitiesAt(lat, lng float64) {
	pos := entity.At(lat, lng)
	e.checkForMonster(pos)
	e.harvestNearby(pos)
}

func (e *Engine) ensureWorld(anchor entity.Coordinate) {
	spawned := e.gen.Ensure(anchor, e.player)
	if len(spawned.Monsters) == 0 && len(spawned.Resources) == 0 {
		return
	}
	e.monsters = append(e.monsters, spawned.Monsters...)
	e.resources = append(e.resources, spawned.Resources...)
	e.emit(Event{Kind: EventWorldGenerated, Amount: len(spawned.Monsters) + len(spawned.Resources)})
}

func (e *Engine) checkForMonster(pos entity.Coordinate) {
	if e.encounter.InCombat() {
		return
	}
	for _, m := range e.monsters {
		if m.Alive() && pos.Within(m.Position, e.rules.EncounterRadiusM) {
			e.encounter.Engage(m.ID)
			e.emit(Event{Kind: EventCombatStarted, TargetID: m.ID, Message: "A wild " + m.Name + " appears!"})
			return
		}
	}
}

// harvestNearby 每次只采集范围内第一个还有存量的资源点。
func (e *Engine) harvestNearby(pos entity.Coordinate) {
	city, ok := e.player.FirstCity()
	if !ok {
		return
	}
	for i := range e.resources {
		n := &e.resources[i]
		if n.Amount <= 0 || !pos.Within(n.Position, e.rules.HarvestRadiusM) {
			continue
		}
		take := min(n.Amount, e.rules.HarvestAmount)
		n.Amount -= take
		city.Deposit(n.Type, take, e.rules.DefaultMaxAmount)
		e.queue.Schedule(scheduler.KindRegen, e.now().Add(e.rules.RegenDelay()), n.ID)
		e.emit(Event{Kind: EventHarvested, TargetID: n.ID, Amount: take, Message: string(n.Type)})
		return
	}
}

func (e *Engine) regenerate(nodeID string) {
	i := e.resourceIndex(nodeID)
	if i < 0 {
		return
	}
	n := &e.resources[i]
	n.Amount = min(n.MaxAmount, n.Amount+n.RegenerationRate)
	e.emit(Event{Kind: EventResourceRegenerated, TargetID: n.ID, Amount: n.Amount})
}

func (e *Engine) pickupLoot(pos entity.Coordinate) {
	kept := e.drops[:0]
	for _, d := range e.drops {
		if !pos.Within(d.Position, e.rules.LootPickupRadiusM) {
			kept = append(kept, d)
			continue
		}
		e.addItem(d.Item)
		e.emit(Event{Kind: EventLootPicked, TargetID: d.Item.ID, Message: d.Item.Name})
	}
	e.drops = kept
}

func (e *Engine) checkArrival(pos entity.Coordinate) {
	if e.player.MovementFlag == nil {
		return
	}
	if pos.Within(*e.player.MovementFlag, e.rules.EncounterRadiusM) {
		e.player.MovementFlag = nil
		e.emit(Event{Kind: EventArrived})
	}
}

// CanMoveToLocation 自有领地或黑旗领地内可以前往。
func (e *Engine) CanMoveToLocation(lat, lng float64) bool {
	return e.checker.CanMove(e.world(), entity.At(lat, lng))
}

// SetMovementTarget 设置前往目标，不可通行时拒绝。
func (e *Engine) SetMovementTarget(lat, lng float64) bool {
	if !e.CanMoveToLocation(lat, lng) {
		e.reject("set_movement_target", string(territory.RejectNotTraversable), zap.Float64("lat", lat), zap.Float64("lng", lng))
		return false
	}
	pos := entity.At(lat, lng)
	e.player.MovementFlag = &pos
	return true
}

// TeleportToFlag 传送到自有领地中心，走正常定位更新流程。
func (e *Engine) TeleportToFlag(territoryID string) bool {
	for _, t := range e.territories {
		if t.ID == territoryID && t.OwnerID == e.player.ID {
			e.UpdatePlayerGPSPosition(t.Position.X, t.Position.Y)
			return true
		}
	}
	return false
}

// SpawnLoot 在地图上投放一件掉落。
func (e *Engine) SpawnLoot(pos entity.Coordinate, level int) (entity.LootDrop, bool) {
	item, ok := e.looter.MapDrop(level)
	if !ok {
		return entity.LootDrop{}, false
	}
	d := entity.LootDrop{Item: item, Position: pos, Level: level, SpawnTime: e.now()}
	e.drops = append(e.drops, d)
	return d, true
}

// nearestLiveMonster 在 radius 内找最近的存活怪物。
func (e *Engine) nearestLiveMonster(from entity.Coordinate, radius float64) (entity.Monster, bool) {
	type cand struct {
		m entity.Monster
		d float64
	}
	var list []cand
	for _, m := range e.monsters {
		if m.Alive() {
			list = append(list, cand{m: m, d: from.DistanceTo(m.Position)})
		}
	}
	if len(list) == 0 {
		return entity.Monster{}, false
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].d < list[j].d })
	if list[0].d > radius {
		return entity.Monster{}, false
	}
	return list[0].m, true
}
