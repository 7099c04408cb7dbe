package engine

import (
	"fmt"
	"time"

	"ParallelRealms/internal/game/crafting"
	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/game/scheduler"
	"ParallelRealms/internal/game/territory"

	"go.uber.org/zap"
)

// PlaceFirstFlag 建立出生城市、初始房屋和第一块领地，整局只能成功一次。
func (e *Engine) PlaceFirstFlag(lat, lng float64) bool {
	pos := entity.At(lat, lng)
	if r := e.checker.CheckFirstFlag(e.world(), pos); r != territory.RejectNone {
		e.reject("place_first_flag", string(r), zap.Float64("lat", lat), zap.Float64("lng", lng))
		return false
	}

	city := e.starterCity(pos)
	e.player.Cities = []entity.City{city}
	e.claim(pos)

	if tpl, ok := e.catalog.Building(e.catalog.StarterCity.StarterBuilding); ok {
		house := entity.Building{
			ID:        e.ids.Next("building"),
			Type:      entity.BuildingType(tpl.Type),
			Position:  pos,
			Level:     1,
			Health:    tpl.MaxHealth,
			MaxHealth: tpl.MaxHealth,
			Owner:     e.player.ID,
		}
		e.buildings = []entity.Building{house}
		e.player.Cities[0].Buildings = append(e.player.Cities[0].Buildings, house.ID)
	}

	e.hasFirstFlag = true
	e.ensureWorld(pos)
	return true
}

func (e *Engine) starterCity(pos entity.Coordinate) entity.City {
	t := e.catalog.StarterCity
	res := make([]entity.Resource, 0, len(t.Resources))
	for _, r := range t.Resources {
		res = append(res, entity.Resource{Type: entity.ResourceType(r.Type), Amount: r.Amount, MaxAmount: r.MaxAmount})
	}
	rates := make(map[entity.ResourceType]int, len(t.ProductionRates))
	for k, v := range t.ProductionRates {
		rates[entity.ResourceType(k)] = v
	}
	return entity.City{
		ID:              e.ids.Next("city"),
		Name:            t.Name,
		Position:        pos,
		Level:           t.Level,
		Population:      t.Population,
		MaxPopulation:   t.MaxPopulation,
		Resources:       res,
		Buildings:       []string{},
		ProductionRates: rates,
	}
}

// PlaceAdditionalFlag 在自有领地边缘扩张。
func (e *Engine) PlaceAdditionalFlag(lat, lng float64) bool {
	pos := entity.At(lat, lng)
	if r := e.checker.CheckAdditionalFlag(e.world(), pos); r != territory.RejectNone {
		e.reject("place_additional_flag", string(r), zap.Float64("lat", lat), zap.Float64("lng", lng))
		return false
	}
	e.claim(pos)
	return true
}

// claim 同一主人 5m 内已有领地时不重复创建。
func (e *Engine) claim(pos entity.Coordinate) bool {
	if e.checker.DuplicateClaim(e.world(), pos) {
		return false
	}
	t := entity.Territory{
		ID:          e.ids.Next("territory"),
		Position:    pos,
		OwnerID:     e.player.ID,
		OwnerName:   e.player.Name,
		LastClaimed: e.claimTime(),
		IsActive:    true,
		Color:       e.rules.TerritoryColor,
	}
	e.territories = append(e.territories, t)
	e.player.Territory = append(e.player.Territory, t.ID)
	e.emit(Event{Kind: EventTerritoryClaimed, TargetID: t.ID})
	return true
}

// claimTime 保证同一时刻的多次占领仍有先后。
func (e *Engine) claimTime() time.Time {
	now := e.now()
	for _, t := range e.territories {
		if t.OwnerID == e.player.ID && !now.After(t.LastClaimed) {
			now = t.LastClaimed.Add(time.Millisecond)
		}
	}
	return now
}

// RemoveLastFlag 移除最近占领的领地，至少保留一块。
func (e *Engine) RemoveLastFlag() bool {
	idx, owned := territory.LatestOwned(e.territories, e.player.ID)
	if owned <= 1 {
		return false
	}
	id := e.territories[idx].ID
	e.territories = append(e.territories[:idx], e.territories[idx+1:]...)
	ids := e.player.Territory[:0]
	for _, tid := range e.player.Territory {
		if tid != id {
			ids = append(ids, tid)
		}
	}
	e.player.Territory = ids
	return true
}

// ClearFirstFlag 重置世界：领地、建筑、怪物、资源点、城市全部清空。
// 已生成区块的记录保留，本局内不会再次生成。
func (e *Engine) ClearFirstFlag() {
	e.hasFirstFlag = false
	e.territories = []entity.Territory{}
	e.buildings = []entity.Building{}
	e.monsters = []entity.Monster{}
	e.resources = []entity.ResourceNode{}
	e.player.Cities = []entity.City{}
	e.player.Territory = []string{}
	e.encounter.Clear()
}

func (e *Engine) CanBuildAt(lat, lng float64) bool {
	return e.checker.CheckBuild(e.world(), entity.At(lat, lng)) == territory.RejectNone
}

// BuildStructure 检查位置、城市等级和资源，全部满足才扣资源开工，并占领建筑所在地。
func (e *Engine) BuildStructure(typ entity.BuildingType, lat, lng float64) Result {
	pos := entity.At(lat, lng)
	if r := e.checker.CheckBuild(e.world(), pos); r != territory.RejectNone {
		e.reject("build_structure", string(r), zap.String("type", string(typ)))
		return failure("You cannot build here.")
	}
	tpl, ok := e.catalog.Building(string(typ))
	if !ok {
		return failure("Unknown building type.")
	}
	city, ok := e.player.FirstCity()
	if !ok {
		return failure("You need a city to build.")
	}
	if city.Level < tpl.CityLevel {
		return failure(fmt.Sprintf("City level %d required.", tpl.CityLevel))
	}
	if short := crafting.Shortfall(city, tpl.Costs); short != "" {
		e.reject("build_structure", insufficient(short), zap.String("type", string(typ)))
		return failure(fmt.Sprintf("Not enough %s.", short))
	}
	gold := crafting.Pay(city, tpl.Costs)

	b := entity.Building{
		ID:                  e.ids.Next("building"),
		Type:                typ,
		Position:            pos,
		Level:               1,
		Health:              tpl.MaxHealth,
		MaxHealth:           tpl.MaxHealth,
		Owner:               e.player.ID,
		IsUnderConstruction: true,
		ConstructionTime:    tpl.BuildTime,
	}
	e.buildings = append(e.buildings, b)
	city.Buildings = append(city.Buildings, b.ID)
	e.queue.Schedule(scheduler.KindConstruction, e.now().Add(time.Duration(tpl.BuildTime)*time.Second), b.ID)
	e.reportGold(gold)
	e.claim(pos)
	return success(fmt.Sprintf("Construction started: %s", tpl.Name))
}

func (e *Engine) completeConstruction(id string) {
	i := e.buildingIndex(id)
	if i < 0 || !e.buildings[i].IsUnderConstruction {
		return
	}
	e.buildings[i].IsUnderConstruction = false
	e.buildings[i].ConstructionTime = 0
	e.emit(Event{Kind: EventConstructionComplete, TargetID: id, Message: string(e.buildings[i].Type)})
}
