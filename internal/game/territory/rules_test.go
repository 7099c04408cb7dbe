package territory

import (
	"testing"
	"time"

	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/shared/gameconfig"
)

// 赤道上 0.001° 经度约 111.2m
const deg100m = 0.0009

func own(id string, lat, lng float64, at time.Time) entity.Territory {
	return entity.Territory{ID: id, Position: entity.At(lat, lng), OwnerID: "p1", IsActive: true, LastClaimed: at}
}

func world(ts ...entity.Territory) World {
	return World{OwnerID: "p1", HasPlacedFirstFlag: true, Territories: ts}
}

func TestCheckFirstFlag_只能一次且不能占他人(t *testing.T) {
	c := NewChecker(gameconfig.DefaultRules())
	if got := c.CheckFirstFlag(World{OwnerID: "p1"}, entity.At(0, 0)); got != RejectNone {
		t.Fatalf("期望首旗可插, got=%s", got)
	}
	w := World{OwnerID: "p1", HasPlacedFirstFlag: true}
	if got := c.CheckFirstFlag(w, entity.At(0, 0)); got != RejectFirstFlagPlaced {
		t.Fatalf("期望第二次被拒, got=%s", got)
	}
	other := entity.Territory{Position: entity.At(0, 0), OwnerID: "p2", IsActive: true}
	w = World{OwnerID: "p1", Territories: []entity.Territory{other}}
	if got := c.CheckFirstFlag(w, entity.At(0, 0.0002)); got != RejectClaimed {
		t.Fatalf("期望 25m 内已被占, got=%s", got)
	}
}

func TestCheckAdditionalFlag_边缘带场景(t *testing.T) {
	c := NewChecker(gameconfig.DefaultRules())
	w := world(own("t1", 0, 0, time.Now()))

	if got := c.CheckAdditionalFlag(w, entity.At(0, 0.0017)); got != RejectNone {
		t.Fatalf("期望约 189m 处可扩张, got=%s", got)
	}
	if got := c.CheckAdditionalFlag(w, entity.At(0, 0.01)); got != RejectNotAdjacent {
		t.Fatalf("期望约 1.1km 处不相邻, got=%s", got)
	}
	if got := c.CheckAdditionalFlag(w, entity.At(0, deg100m)); got != RejectInsideOwn {
		t.Fatalf("期望内圈被拒, got=%s", got)
	}
	if got := c.CheckAdditionalFlag(w, entity.At(0, 0.0019)); got != RejectNone {
		t.Fatalf("期望约 211m 处仍在边缘带, got=%s", got)
	}
	if got := c.CheckAdditionalFlag(w, entity.At(0, 0.0021)); got != RejectNotAdjacent {
		t.Fatalf("期望约 233m 处超出边缘带, got=%s", got)
	}
	w.HasPlacedFirstFlag = false
	if got := c.CheckAdditionalFlag(w, entity.At(0, 0.0017)); got != RejectNoFirstFlag {
		t.Fatalf("期望首旗前不能扩张, got=%s", got)
	}
}

func TestCheckAdditionalFlag_不超过半径加缓冲(t *testing.T) {
	rules := gameconfig.DefaultRules()
	c := NewChecker(rules)
	center := entity.At(10, 10)
	w := world(own("t1", 10, 10, time.Now()))
	for _, lng := range []float64{10.0018, 10.0019, 10.0020, 10.0021, 10.0025, 10.003, 10.01} {
		pos := entity.At(10, lng)
		if c.CheckAdditionalFlag(w, pos) == RejectNone && pos.DistanceTo(center) > rules.TerritoryRadiusM+rules.EdgeBufferM {
			t.Fatalf("期望不允许超出 %vm, d=%v", rules.TerritoryRadiusM+rules.EdgeBufferM, pos.DistanceTo(center))
		}
	}
}

func TestCheckBuild_范围与间距(t *testing.T) {
	c := NewChecker(gameconfig.DefaultRules())
	w := world(own("t1", 0, 0, time.Now()))
	w.Buildings = []entity.Building{{ID: "b1", Position: entity.At(0, 0)}}

	if got := c.CheckBuild(w, entity.At(0, 0.00005)); got != RejectBuildingNearby {
		t.Fatalf("期望 5m 内有建筑被拒, got=%s", got)
	}
	if got := c.CheckBuild(w, entity.At(0, deg100m)); got != RejectNone {
		t.Fatalf("期望领地内空地可建, got=%s", got)
	}
	if got := c.CheckBuild(w, entity.At(0, 0.003)); got != RejectOutsideRange {
		t.Fatalf("期望 330m 外被拒, got=%s", got)
	}
	w.Monsters = []entity.Monster{{ID: "m1", Health: 10, Position: entity.At(0, deg100m)}}
	if got := c.CheckBuild(w, entity.At(0, deg100m)); got != RejectMonsterNearby {
		t.Fatalf("期望存活怪物附近被拒, got=%s", got)
	}
	w.Monsters[0].Health = 0
	if got := c.CheckBuild(w, entity.At(0, deg100m)); got != RejectNone {
		t.Fatalf("期望死亡怪物不阻挡, got=%s", got)
	}
}

func TestCanMove_自有或黑旗(t *testing.T) {
	c := NewChecker(gameconfig.DefaultRules())
	black := entity.Territory{ID: "t2", Position: entity.At(1, 1), OwnerID: "p2", IsActive: false}
	foreign := entity.Territory{ID: "t3", Position: entity.At(2, 2), OwnerID: "p2", IsActive: true}
	w := world(own("t1", 0, 0, time.Now()), black, foreign)

	if !c.CanMove(w, entity.At(0, deg100m)) {
		t.Fatalf("期望自有领地可进入")
	}
	if !c.CanMove(w, entity.At(1, 1+deg100m)) {
		t.Fatalf("期望黑旗领地可进入")
	}
	if c.CanMove(w, entity.At(2, 2)) {
		t.Fatalf("期望他人激活领地不可进入")
	}
	if c.CanMove(w, entity.At(5, 5)) {
		t.Fatalf("期望荒地不可进入")
	}
}

func TestDuplicateClaim与LatestOwned(t *testing.T) {
	c := NewChecker(gameconfig.DefaultRules())
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	w := world(own("t1", 0, 0, base), own("t2", 0, 0.0017, base.Add(time.Minute)))
	w.Territories = append(w.Territories, entity.Territory{ID: "x", OwnerID: "p2", LastClaimed: base.Add(time.Hour)})

	if !c.DuplicateClaim(w, entity.At(0, 0.00003)) {
		t.Fatalf("期望 5m 内同主人重复")
	}
	if c.DuplicateClaim(w, entity.At(0, 0.0001)) {
		t.Fatalf("期望 11m 不重复")
	}
	idx, n := LatestOwned(w.Territories, "p1")
	if n != 2 || w.Territories[idx].ID != "t2" {
		t.Fatalf("期望最近的自有领地是 t2, got idx=%d n=%d", idx, n)
	}
}
