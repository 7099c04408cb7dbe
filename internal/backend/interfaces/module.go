package interfaces

import (
	"ParallelRealms/internal/backend/app"
	backendhttp "ParallelRealms/internal/backend/interfaces/handler/http"
	transporthttp "ParallelRealms/internal/shared/transport/http"
	"ParallelRealms/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type Module struct {
	handler *backendhttp.HttpHandler
}

func New(users *app.UserService, games *app.GameService, economy *app.EconomyService, l logx.Logger) *Module {
	return &Module{handler: backendhttp.NewHttpHandler(users, games, economy, l)}
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.handler.RegisterRoutes(g)
}

var _ transporthttp.Registrar = (*Module)(nil)
