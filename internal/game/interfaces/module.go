package interfaces

import (
	wshandler "ParallelRealms/internal/game/interfaces/handler/ws"
	"ParallelRealms/internal/shared/transport/ws"
	"ParallelRealms/modules/kit/logx"
)

type Module struct {
	wsHandler *wshandler.WsHandler
}

func New(realm wshandler.Realm, allowAnonymous bool, l logx.Logger) *Module {
	return &Module{wsHandler: wshandler.NewWsHandler(realm, allowAnonymous, l)}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

var _ ws.Registrar = (*Module)(nil)
