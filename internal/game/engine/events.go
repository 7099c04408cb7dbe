package engine

import (
	"time"

	"ParallelRealms/internal/game/entity"
)

type EventKind string

const (
	EventCombatStarted        EventKind = "combat_started"
	EventMonsterDefeated      EventKind = "monster_defeated"
	EventPlayerHit            EventKind = "player_hit"
	EventPlayerDefeated       EventKind = "player_defeated"
	EventLevelUp              EventKind = "level_up"
	EventHarvested            EventKind = "harvested"
	EventResourceRegenerated  EventKind = "resource_regenerated"
	EventConstructionComplete EventKind = "construction_complete"
	EventTerritoryClaimed     EventKind = "territory_claimed"
	EventLootPicked           EventKind = "loot_picked"
	EventWorldGenerated       EventKind = "world_generated"
	EventArrived              EventKind = "arrived"
	EventGoldSpent            EventKind = "gold_spent"
	EventAutosave             EventKind = "autosave"
)

// Event 同步投递给订阅者，订阅者不得回调引擎。
type Event struct {
	Kind     EventKind `json:"kind"`
	At       time.Time `json:"at"`
	Message  string    `json:"message,omitempty"`
	TargetID string    `json:"targetId,omitempty"`
	Amount   int       `json:"amount,omitempty"`

	// State 只在 autosave 事件上携带，是深拷贝。
	State *entity.GameState `json:"-"`
}

type Subscriber func(Event)

// Subscribe 按注册顺序投递。
func (e *Engine) Subscribe(fn Subscriber) {
	if fn != nil {
		e.subs = append(e.subs, fn)
	}
}

func (e *Engine) emit(ev Event) {
	if ev.At.IsZero() {
		ev.At = e.now()
	}
	for _, fn := range e.subs {
		fn(ev)
	}
}
