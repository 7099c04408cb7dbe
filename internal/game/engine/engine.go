// Package engine 是一局游戏的聚合根：玩家、领地、建筑、怪物、资源点和定时队列。
// Engine 不是并发安全的，由持有它的 actor 串行调用。
package engine

import (
	"context"
	"time"

	"ParallelRealms/internal/game/combat"
	"ParallelRealms/internal/game/crafting"
	"ParallelRealms/internal/game/dice"
	"ParallelRealms/internal/game/entity"
	"ParallelRealms/internal/game/scheduler"
	"ParallelRealms/internal/game/territory"
	"ParallelRealms/internal/game/worldgen"
	"ParallelRealms/internal/shared/gameconfig"
	"ParallelRealms/internal/shared/utils"
	"ParallelRealms/modules/kit/logx"

	"go.uber.org/zap"
)

// AnonymousUser 未登录时的存档命名空间。
const AnonymousUser = "anonymous"

// Result 是规则操作的返回：失败不是错误。
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	ItemName string `json:"itemName,omitempty"`
}

func success(msg string) Result { return Result{Success: true, Message: msg} }
func failure(msg string) Result { return Result{Success: false, Message: msg} }

type Options struct {
	UserID  string
	Rules   gameconfig.Rules
	Catalog *gameconfig.Catalog
	Clock   Clock
	Roller  dice.Roller
	IDs     utils.IDGen
	Logger  logx.Logger
}

type Engine struct {
	userID  string
	rules   gameconfig.Rules
	catalog *gameconfig.Catalog
	clock   Clock
	roll    dice.Roller
	ids     utils.IDGen
	log     logx.Logger

	checker territory.Checker
	looter  *crafting.Looter
	gen     *worldgen.Generator
	queue   *scheduler.Queue

	player       entity.Player
	territories  []entity.Territory
	buildings    []entity.Building
	monsters     []entity.Monster
	resources    []entity.ResourceNode
	hasFirstFlag bool
	lastSaved    time.Time

	drops     []entity.LootDrop
	encounter combat.Encounter
	subs      []Subscriber
}

func New(opts Options) *Engine {
	if opts.UserID == "" {
		opts.UserID = AnonymousUser
	}
	if opts.Rules == (gameconfig.Rules{}) {
		opts.Rules = gameconfig.DefaultRules()
	}
	if opts.Catalog == nil {
		opts.Catalog = gameconfig.MustDefaultCatalog()
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Roller == nil {
		opts.Roller = dice.NewRand(uint64(time.Now().UnixNano()))
	}
	if opts.IDs == nil {
		opts.IDs = &utils.SeqIDGen{}
	}
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}

	e := &Engine{
		userID:  opts.UserID,
		rules:   opts.Rules,
		catalog: opts.Catalog,
		clock:   opts.Clock,
		roll:    opts.Roller,
		ids:     opts.IDs,
		log:     opts.Logger.With(zap.String("user_id", opts.UserID)),
		checker: territory.NewChecker(opts.Rules),
		queue:   scheduler.New(),
	}
	e.looter = crafting.NewLooter(e.catalog, e.roll, e.ids)
	e.gen = worldgen.NewGenerator(e.rules, e.catalog, e.roll, e.ids, e.looter.Generate)
	e.player = e.defaultPlayer()
	e.territories = []entity.Territory{}
	e.buildings = []entity.Building{}
	e.monsters = []entity.Monster{}
	e.resources = []entity.ResourceNode{}
	e.scheduleAutosave()
	return e
}

func (e *Engine) now() time.Time {
	return e.clock.Now().UTC()
}

func (e *Engine) UserID() string { return e.userID }

// 访问器都返回副本。

func (e *Engine) Player() entity.Player { return e.player.Clone() }

func (e *Engine) Territories() []entity.Territory {
	return append([]entity.Territory(nil), e.territories...)
}

func (e *Engine) Buildings() []entity.Building {
	return append([]entity.Building(nil), e.buildings...)
}

func (e *Engine) Monsters() []entity.Monster {
	s := entity.GameState{Monsters: e.monsters}.Clone()
	return s.Monsters
}

func (e *Engine) ResourceNodes() []entity.ResourceNode {
	return append([]entity.ResourceNode(nil), e.resources...)
}

func (e *Engine) LootDrops() []entity.LootDrop {
	return append([]entity.LootDrop(nil), e.drops...)
}

func (e *Engine) HasPlacedFirstFlag() bool { return e.hasFirstFlag }

func (e *Engine) LastSaved() time.Time { return e.lastSaved }

func (e *Engine) InCombat() bool { return e.encounter.InCombat() }

// CurrentEnemy 当前交战的怪物。
func (e *Engine) CurrentEnemy() (entity.Monster, bool) {
	id, ok := e.encounter.Enemy()
	if !ok {
		return entity.Monster{}, false
	}
	i := e.monsterIndex(id)
	if i < 0 {
		return entity.Monster{}, false
	}
	m := e.monsters[i]
	m.Loot = append([]entity.InventoryItem(nil), m.Loot...)
	return m, true
}

// PendingTimers 按类型统计还没触发的定时事件。
func (e *Engine) PendingTimers(kind scheduler.Kind) int {
	return e.queue.Pending(kind)
}

// Snapshot 生成当前存档，LastSaved 取当前时间。
func (e *Engine) Snapshot() entity.GameState {
	s := entity.GameState{
		UserID:             e.userID,
		Player:             e.player,
		Territories:        e.territories,
		Buildings:          e.buildings,
		Monsters:           e.monsters,
		ResourceNodes:      e.resources,
		HasPlacedFirstFlag: e.hasFirstFlag,
		LastSaved:          e.now(),
	}
	return s.Clone()
}

// Restore 用存档替换当前状态。定时队列重建：未完工的建筑从现在起重新计时。
func (e *Engine) Restore(s entity.GameState) {
	s = s.Clone()
	e.player = s.Player
	if e.player.Equipment == nil {
		e.player.Equipment = map[entity.EquipSlot]entity.InventoryItem{}
	}
	e.territories = orEmpty(s.Territories)
	e.buildings = orEmpty(s.Buildings)
	e.monsters = orEmpty(s.Monsters)
	e.resources = orEmpty(s.ResourceNodes)
	e.hasFirstFlag = s.HasPlacedFirstFlag
	e.lastSaved = s.LastSaved
	e.drops = nil
	e.encounter.Clear()
	e.gen.Reset()

	e.queue.Clear()
	e.scheduleAutosave()
	now := e.now()
	for _, b := range e.buildings {
		if b.IsUnderConstruction {
			e.queue.Schedule(scheduler.KindConstruction, now.Add(time.Duration(b.ConstructionTime)*time.Second), b.ID)
		}
	}
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// Advance 触发所有 FireAt <= now 的定时事件，处理中新排入且已到期的也会触发。
func (e *Engine) Advance(now time.Time) int {
	fired := 0
	for {
		ev, ok := e.queue.PopDue(now)
		if !ok {
			return fired
		}
		fired++
		switch ev.Kind {
		case scheduler.KindConstruction:
			e.completeConstruction(ev.Target)
		case scheduler.KindRegen:
			e.regenerate(ev.Target)
		case scheduler.KindCounterAttack:
			e.counterAttack(ev.Target)
		case scheduler.KindAutosave:
			e.autosave()
			e.scheduleAutosaveFrom(ev.FireAt)
		}
	}
}

func (e *Engine) scheduleAutosave() {
	e.scheduleAutosaveFrom(e.now())
}

func (e *Engine) scheduleAutosaveFrom(t time.Time) {
	if d := e.rules.AutosaveInterval(); d > 0 {
		e.queue.Schedule(scheduler.KindAutosave, t.Add(d), "")
	}
}

func (e *Engine) autosave() {
	s := e.Snapshot()
	e.lastSaved = s.LastSaved
	e.emit(Event{Kind: EventAutosave, At: s.LastSaved, State: &s})
}

// Save 立即存档（手动保存）。
func (e *Engine) Save() Result {
	e.autosave()
	return success("Game saved successfully!")
}

func (e *Engine) world() territory.World {
	return territory.World{
		OwnerID:            e.player.ID,
		HasPlacedFirstFlag: e.hasFirstFlag,
		Territories:        e.territories,
		Buildings:          e.buildings,
		Monsters:           e.monsters,
	}
}

func (e *Engine) reject(action, reason string, fields ...zap.Field) {
	logx.ReportBiz(context.Background(), e.log, logx.NewBizLog(action, reason, ""), fields...)
}

func (e *Engine) defaultPlayer() entity.Player {
	t := e.catalog.StarterPlayer
	inv := make([]entity.InventoryItem, 0, len(t.Inventory))
	for _, it := range t.Inventory {
		inv = append(inv, entity.InventoryItem{
			ID:           it.ID,
			Name:         it.Name,
			Type:         entity.ItemType(it.Type),
			Rarity:       entity.Rarity(it.Rarity),
			Quantity:     it.Quantity,
			Stats:        crafting.ToItemStats(it.Stats),
			Icon:         it.Icon,
			SocketedGems: []entity.InventoryItem{},
		})
	}
	return entity.Player{
		ID:           t.ID,
		Name:         t.Name,
		Level:        t.Level,
		Experience:   0,
		NextLevelExp: t.NextLevelExp,
		Health:       t.MaxHealth,
		MaxHealth:    t.MaxHealth,
		Energy:       t.MaxEnergy,
		MaxEnergy:    t.MaxEnergy,
		Attack:       t.Attack,
		Defense:      t.Defense,
		Gold:         t.Gold,
		Position:     entity.At(0, 0),
		Inventory:    inv,
		Equipment:    map[entity.EquipSlot]entity.InventoryItem{},
		Skills:       []entity.PlayerSkill{},
		Territory:    []string{},
		Cities:       []entity.City{},
	}
}

func (e *Engine) monsterIndex(id string) int {
	for i := range e.monsters {
		if e.monsters[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) buildingIndex(id string) int {
	for i := range e.buildings {
		if e.buildings[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) resourceIndex(id string) int {
	for i := range e.resources {
		if e.resources[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) cityIndex(id string) int {
	for i := range e.player.Cities {
		if e.player.Cities[i].ID == id {
			return i
		}
	}
	return -1
}

// reportGold 把金币消耗交给订阅者上报经济账本。
func (e *Engine) reportGold(amount int) {
	if amount > 0 {
		e.emit(Event{Kind: EventGoldSpent, Amount: amount})
	}
}
