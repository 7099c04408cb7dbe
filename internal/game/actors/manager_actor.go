package actors

import (
	"ParallelRealms/internal/shared/actor/messages"
	"ParallelRealms/internal/shared/transport"

	"github.com/asynkron/protoactor-go/actor"
)

type session struct {
	pid    *actor.PID
	connID string
}

// ManagerActor 按会话键持有 RealmActor，一个会话一个引擎。
type ManagerActor struct {
	deps     Deps
	sessions map[string]session
}

func NewManagerActor(deps Deps) *ManagerActor {
	return &ManagerActor{
		deps:     deps,
		sessions: make(map[string]session),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *messages.OpenSession:
		m.open(ctx, msg)
	case *messages.CloseSession:
		m.close(ctx, msg)
	case *actor.Terminated:
		for key, s := range m.sessions {
			if s.pid.Equal(msg.Who) {
				delete(m.sessions, key)
			}
		}
	case messages.RealmMessage:
		s, ok := m.sessions[msg.SessionKey()]
		if !ok {
			ctx.Respond(fail(transport.NotLoggedIn, "session not found, login first"))
			return
		}
		ctx.Forward(s.pid)
	}
}

func (m *ManagerActor) open(ctx actor.Context, msg *messages.OpenSession) {
	if msg == nil || msg.Session == "" {
		ctx.Respond(fail(transport.InvalidParam, "invalid session"))
		return
	}
	if s, ok := m.sessions[msg.Session]; ok {
		// 同一用户换了连接，actor 保留，只换推送目标。
		m.sessions[msg.Session] = session{pid: s.pid, connID: msg.ConnID}
		ctx.Forward(s.pid)
		return
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewRealmActor(m.deps, msg)
	})
	pid := ctx.Spawn(props)
	ctx.Watch(pid)
	m.sessions[msg.Session] = session{pid: pid, connID: msg.ConnID}
	ctx.Forward(pid)
}

func (m *ManagerActor) close(ctx actor.Context, msg *messages.CloseSession) {
	if msg == nil {
		return
	}
	s, ok := m.sessions[msg.Session]
	if !ok || s.connID != msg.ConnID {
		if ctx.Sender() != nil {
			ctx.Respond(success(nil))
		}
		return
	}
	delete(m.sessions, msg.Session)
	// Stop 走 RealmActor 的 Stopping，期间完成最后一次存档。
	ctx.Stop(s.pid)
	if ctx.Sender() != nil {
		ctx.Respond(success(nil))
	}
}
