package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"

	"ParallelRealms/internal/backend/app"
	"ParallelRealms/internal/shared/backendapi"
	"ParallelRealms/internal/shared/transport"
	transporthttp "ParallelRealms/internal/shared/transport/http"
	"ParallelRealms/internal/shared/transport/http/middleware"
	"ParallelRealms/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxSaveBody = 8 << 20

type HttpHandler struct {
	users   *app.UserService
	games   *app.GameService
	economy *app.EconomyService
	log     logx.Logger
}

func NewHttpHandler(users *app.UserService, games *app.GameService, economy *app.EconomyService, log logx.Logger) *HttpHandler {
	if log == nil {
		log = logx.Nop()
	}
	return &HttpHandler{users: users, games: games, economy: economy, log: log}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST(backendapi.PathRegister, h.Register)
	group.POST(backendapi.PathLogin, h.Login)

	api := group.Group("", middleware.Auth())
	byUser := ":" + backendapi.ParamUserID

	api.POST(backendapi.PathSave, h.Save)
	api.GET(backendapi.PathLoad+byUser, h.Load)
	api.DELETE(backendapi.PathDelete+byUser, h.Delete)
	api.GET(backendapi.PathList+byUser, h.List)
	api.POST(backendapi.PathSpend, h.Spend)
	api.GET(backendapi.PathBank, h.Bank)
}

func (h *HttpHandler) Register(c *gin.Context) {
	var req backendapi.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, nethttp.StatusBadRequest, transport.InvalidParam, "Invalid request body", "BODY_INVALID")
		return
	}
	res, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		h.error(c, "auth.register", err)
		return
	}
	transporthttp.OK(c, res)
}

func (h *HttpHandler) Login(c *gin.Context) {
	var req backendapi.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, nethttp.StatusBadRequest, transport.InvalidParam, "Invalid request body", "BODY_INVALID")
		return
	}
	res, err := h.users.Login(c.Request.Context(), req)
	if err != nil {
		h.error(c, "auth.login", err)
		return
	}
	transporthttp.OK(c, res)
}

func (h *HttpHandler) Save(c *gin.Context) {
	raw, err := io.ReadAll(nethttp.MaxBytesReader(c.Writer, c.Request.Body, maxSaveBody))
	if err != nil || !json.Valid(raw) {
		transporthttp.Fail(c, nethttp.StatusBadRequest, transport.InvalidParam, app.ReasonBadSaveBody.Message, app.ReasonBadSaveBody.Code)
		return
	}
	res, err := h.games.Save(c.Request.Context(), caller(c), raw)
	if err != nil {
		h.error(c, "game.save", err)
		return
	}
	transporthttp.OK(c, res)
}

func (h *HttpHandler) Load(c *gin.Context) {
	raw, err := h.games.Load(c.Request.Context(), caller(c), c.Param(backendapi.ParamUserID))
	if err != nil {
		h.error(c, "game.load", err)
		return
	}
	transporthttp.OK(c, raw)
}

func (h *HttpHandler) Delete(c *gin.Context) {
	if err := h.games.Delete(c.Request.Context(), caller(c), c.Param(backendapi.ParamUserID)); err != nil {
		h.error(c, "game.delete", err)
		return
	}
	transporthttp.OK(c, nil)
}

func (h *HttpHandler) List(c *gin.Context) {
	metas, err := h.games.List(c.Request.Context(), caller(c), c.Param(backendapi.ParamUserID))
	if err != nil {
		h.error(c, "game.list", err)
		return
	}
	transporthttp.OK(c, metas)
}

func (h *HttpHandler) Spend(c *gin.Context) {
	var req backendapi.SpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		transporthttp.Fail(c, nethttp.StatusBadRequest, transport.InvalidParam, app.ReasonInvalidAmount.Message, app.ReasonInvalidAmount.Code)
		return
	}
	total, err := h.economy.Spend(c.Request.Context(), req.Amount)
	if err != nil {
		h.error(c, "economy.spend", err)
		return
	}
	transporthttp.OK(c, backendapi.SpendResult{Success: true, OwnerBankGold: total})
}

func (h *HttpHandler) Bank(c *gin.Context) {
	total, err := h.economy.Bank(c.Request.Context(), caller(c))
	if err != nil {
		h.error(c, "economy.bank", err)
		return
	}
	transporthttp.OK(c, backendapi.BankResult{OwnerBankGold: total})
}

// error 每个请求只打一次错误日志：系统错误带 cause 链，业务拒绝记 INFO。
func (h *HttpHandler) error(c *gin.Context, action string, err error) {
	ctx := c.Request.Context()
	status, code := toHTTP(err)
	reason, msg := app.ReasonOf(err), app.MessageOf(err)
	if status >= nethttp.StatusInternalServerError {
		logx.ReportSysError(ctx, h.log, logx.NewSysLog(action, err), zap.Int("status", status))
	} else {
		logx.ReportBiz(ctx, h.log, logx.NewBizLog(action, reason, msg), zap.Int("status", status))
	}
	transporthttp.Fail(c, status, code, msg, reason)
}

func caller(c *gin.Context) app.Caller {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return app.Caller{}
	}
	return app.Caller{UserID: claims.UID, Username: claims.Username, IsAdmin: claims.IsAdmin}
}
