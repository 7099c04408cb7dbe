// Package territory 是领地规则：占领、扩张、建造和移动的判定，全部是只读查询。
package territory

import (
	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/shared/gameconfig"
)

// Reject 是规则拒绝的原因，也用作业务日志的 reason。
type Reject string

const (
	RejectNone            Reject = ""
	RejectFirstFlagPlaced Reject = "FIRST_FLAG_ALREADY_PLACED"
	RejectNoFirstFlag     Reject = "FIRST_FLAG_NOT_PLACED"
	RejectClaimed         Reject = "LOCATION_CLAIMED"
	RejectInsideOwn       Reject = "INSIDE_OWN_TERRITORY"
	RejectNotAdjacent     Reject = "NOT_ADJACENT_TO_TERRITORY"
	RejectOutsideRange    Reject = "OUTSIDE_BUILD_RANGE"
	RejectBuildingNearby  Reject = "BUILDING_TOO_CLOSE"
	RejectMonsterNearby   Reject = "MONSTER_TOO_CLOSE"
	RejectNotTraversable  Reject = "NOT_TRAVERSABLE"
)

func (r Reject) ReasonCode() string { return string(r) }

type Checker struct {
	rules gameconfig.Rules
}

func NewChecker(rules gameconfig.Rules) Checker {
	return Checker{rules: rules}
}

// World 是判定需要的只读视图。
type World struct {
	OwnerID            string
	HasPlacedFirstFlag bool
	Territories        []entity.Territory
	Buildings          []entity.Building
	Monsters           []entity.Monster
}

// IsClaimed: 任何人的领地中心在 claim 半径内。
func (c Checker) IsClaimed(w World, pos entity.Coordinate) bool {
	for _, t := range w.Territories {
		if pos.Within(t.Position, c.rules.ClaimRadiusM) {
			return true
		}
	}
	return false
}

func (c Checker) InOwnTerritory(w World, pos entity.Coordinate) bool {
	for _, t := range w.Territories {
		if t.OwnerID == w.OwnerID && pos.Within(t.Position, c.rules.TerritoryRadiusM) {
			return true
		}
	}
	return false
}

// InBlackFlag: 位于任意未激活领地内。
func (c Checker) InBlackFlag(w World, pos entity.Coordinate) bool {
	for _, t := range w.Territories {
		if !t.IsActive && pos.Within(t.Position, c.rules.TerritoryRadiusM) {
			return true
		}
	}
	return false
}

func (c Checker) CanMove(w World, pos entity.Coordinate) bool {
	return c.InOwnTerritory(w, pos) || c.InBlackFlag(w, pos)
}

func (c Checker) CheckFirstFlag(w World, pos entity.Coordinate) Reject {
	if w.HasPlacedFirstFlag {
		return RejectFirstFlagPlaced
	}
	if c.IsClaimed(w, pos) {
		return RejectClaimed
	}
	return RejectNone
}

// CheckAdditionalFlag: 目标未被占领，不在自有领地的内圈（半径减缓冲），
// 且落在某块自有领地的边缘带 [半径-缓冲, 半径+缓冲]。
func (c Checker) CheckAdditionalFlag(w World, pos entity.Coordinate) Reject {
	if !w.HasPlacedFirstFlag {
		return RejectNoFirstFlag
	}
	if c.IsClaimed(w, pos) {
		return RejectClaimed
	}
	inner := c.rules.TerritoryRadiusM - c.rules.EdgeBufferM
	outer := c.rules.TerritoryRadiusM + c.rules.EdgeBufferM
	adjacent := false
	for _, t := range w.Territories {
		if t.OwnerID != w.OwnerID {
			continue
		}
		d := pos.DistanceTo(t.Position)
		if d < inner {
			return RejectInsideOwn
		}
		if d <= outer {
			adjacent = true
		}
	}
	if !adjacent {
		return RejectNotAdjacent
	}
	return RejectNone
}

// CheckBuild: 在自有领地半径加缓冲内，与建筑、存活怪物至少相距最小间距。
func (c Checker) CheckBuild(w World, pos entity.Coordinate) Reject {
	if !w.HasPlacedFirstFlag {
		return RejectNoFirstFlag
	}
	reach := c.rules.TerritoryRadiusM + c.rules.EdgeBufferM
	inRange := false
	for _, t := range w.Territories {
		if t.OwnerID == w.OwnerID && pos.Within(t.Position, reach) {
			inRange = true
			break
		}
	}
	if !inRange {
		return RejectOutsideRange
	}
	gap := c.rules.PlacementMinDistanceM
	for _, b := range w.Buildings {
		if pos.DistanceTo(b.Position) < gap {
			return RejectBuildingNearby
		}
	}
	for _, m := range w.Monsters {
		if m.Alive() && pos.DistanceTo(m.Position) < gap {
			return RejectMonsterNearby
		}
	}
	return RejectNone
}

// DuplicateClaim: 同一主人在重复半径内已有领地。
func (c Checker) DuplicateClaim(w World, pos entity.Coordinate) bool {
	for _, t := range w.Territories {
		if t.OwnerID == w.OwnerID && pos.Within(t.Position, c.rules.DuplicateClaimRadiusM) {
			return true
		}
	}
	return false
}

// LatestOwned 返回最近一次占领的自有领地下标和自有领地数。
func LatestOwned(ts []entity.Territory, owner string) (idx, owned int) {
	idx = -1
	for i, t := range ts {
		if t.OwnerID != owner {
			continue
		}
		owned++
		if idx < 0 || t.LastClaimed.After(ts[idx].LastClaimed) {
			idx = i
		}
	}
	return idx, owned
}
