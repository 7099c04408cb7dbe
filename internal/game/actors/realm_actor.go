package actors

import (
	"context"
	"time"

	"ParallelRealms/internal/game/dc"
	"ParallelRealms/internal/game/engine"
	"ParallelRealms/internal/shared/actor/messages"
	"ParallelRealms/internal/shared/transport"
	"ParallelRealms/modules/kit/logx"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const (
	EventPush = "realm.event"

	finalSaveTimeout = 3 * time.Second
	defaultTick      = 100 * time.Millisecond
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// RealmActor 独占一个引擎，所有修改都在它的协程里串行执行。
type RealmActor struct {
	state      State
	session    string
	userID     string
	token      string
	isAdmin    bool
	push       messages.PushFunc
	deps       Deps
	engine     *engine.Engine
	dc         *dc.GameDC
	dispatcher *Dispatcher
	log        logx.Logger
	tickStop   chan struct{}
}

type tickMsg struct{}

func (tickMsg) NotInfluenceReceiveTimeout() {}

func NewRealmActor(deps Deps, open *messages.OpenSession) *RealmActor {
	l := deps.Logger
	if l == nil {
		l = logx.Nop()
	}
	return &RealmActor{
		state:      None,
		session:    open.Session,
		userID:     open.UserID,
		token:      open.Token,
		isAdmin:    open.IsAdmin,
		push:       open.Push,
		deps:       deps,
		dispatcher: NewDispatcher(),
		log:        l.With(zap.String("session", open.Session)),
	}
}

func (p *RealmActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
	case *actor.Stopping:
		p.stopTickLoop()
		p.finalSave()
		p.state = Stopping
	case *actor.Stopped:
		p.stopTickLoop()
		p.state = Offline
	case *actor.Restarting:
		p.stopTickLoop()
		p.state = Init
	case tickMsg:
		if p.state == Online {
			p.engine.Advance(p.deps.now())
		}
	case *messages.OpenSession:
		if msg.Push != nil {
			p.push = msg.Push
		}
		ctx.Respond(success(p.view()))
	case messages.RealmMessage:
		if p.state != Online {
			ctx.Respond(fail(transport.SystemError, "realm not online"))
			return
		}
		// 先补上到期的定时事件，保证请求看到的是当前时刻的世界。
		p.engine.Advance(p.deps.now())
		p.dispatcher.Dispatch(ctx, p, msg)
	}
}

func (p *RealmActor) init(ctx actor.Context) {
	p.engine = p.deps.newEngine(p.userID)
	p.dc = p.deps.newDC(p.userID, p.token)

	if s, ok := p.dc.Load(context.Background()); ok {
		p.engine.Restore(*s)
		p.log.Info("realm session restored", zap.String("user_id", p.dc.UserID()), zap.Int("level", s.Player.Level))
	} else {
		p.log.Info("realm session started fresh", zap.String("user_id", p.dc.UserID()))
	}
	p.engine.Subscribe(p.onEvent)
	if p.isAdmin {
		p.dc.RefreshBank()
	}

	p.state = Online
	p.startTickLoop(ctx)
}

// onEvent 在引擎调用栈里执行，不能回调引擎。
func (p *RealmActor) onEvent(ev engine.Event) {
	switch ev.Kind {
	case engine.EventAutosave:
		if ev.State != nil {
			_ = p.dc.Save(context.Background(), *ev.State)
		}
	case engine.EventGoldSpent:
		p.dc.RecordGoldSpend(ev.Amount)
	}
	if p.push != nil {
		p.push(EventPush, ev)
	}
}

func (p *RealmActor) finalSave() {
	if p.engine == nil || p.dc == nil {
		return
	}
	p.engine.Save()
	ctx, cancel := context.WithTimeout(context.Background(), finalSaveTimeout)
	defer cancel()
	if err := p.dc.Close(ctx); err != nil {
		p.log.Error("realm dc close failed", zap.Error(err))
	}
}

func (p *RealmActor) view() messages.StateView {
	v := messages.StateView{
		UserID:             p.dc.UserID(),
		Player:             p.engine.Player(),
		EquipmentBonus:     p.engine.EquipmentBonus(),
		Territories:        p.engine.Territories(),
		Buildings:          p.engine.Buildings(),
		Monsters:           p.engine.Monsters(),
		ResourceNodes:      p.engine.ResourceNodes(),
		LootDrops:          p.engine.LootDrops(),
		HasPlacedFirstFlag: p.engine.HasPlacedFirstFlag(),
		InCombat:           p.engine.InCombat(),
		LastSaved:          p.engine.LastSaved(),
	}
	if m, ok := p.engine.CurrentEnemy(); ok {
		v.CurrentEnemy = &m
	}
	return v
}

func (p *RealmActor) Engine() *engine.Engine {
	return p.engine
}

func (p *RealmActor) DC() *dc.GameDC {
	return p.dc
}

func (p *RealmActor) startTickLoop(ctx actor.Context) {
	if p.tickStop != nil {
		return
	}
	every := p.deps.Tick
	if every <= 0 {
		every = defaultTick
	}
	p.tickStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, tickMsg{})
			case <-stop:
				return
			}
		}
	}(p.tickStop)
}

func (p *RealmActor) stopTickLoop() {
	if p.tickStop == nil {
		return
	}
	close(p.tickStop)
	p.tickStop = nil
}
