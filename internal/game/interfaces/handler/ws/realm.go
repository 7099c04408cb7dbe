package ws

import (
	"context"

	"ParallelRealms/internal/game/interfaces/handler/ws/dto"
	"ParallelRealms/internal/shared/actor/messages"
	"ParallelRealms/internal/shared/security"
	"ParallelRealms/internal/shared/session"
	"ParallelRealms/internal/shared/transport"
	"ParallelRealms/internal/shared/transport/ws"
	"ParallelRealms/internal/shared/utils"
	"ParallelRealms/modules/kit/logx"

	"go.uber.org/zap"
)

const (
	connKeyID      = "connId"
	connKeySession = "session"
)

// Realm 是 actor 运行时对外的调用面。
type Realm interface {
	Open(ctx context.Context, msg *messages.OpenSession) (*messages.Reply, error)
	Close(session, connID string)
	Request(ctx context.Context, msg messages.RealmMessage) (*messages.Reply, error)
}

type builder func(req *ws.WsMsgReq, base messages.RealmBaseMessage) (messages.RealmMessage, error)

type WsHandler struct {
	realm          Realm
	sessions       *session.SessMgr
	allowAnonymous bool
	log            logx.Logger
}

func NewWsHandler(realm Realm, allowAnonymous bool, l logx.Logger) *WsHandler {
	if l == nil {
		l = logx.Nop()
	}
	h := &WsHandler{realm: realm, allowAnonymous: allowAnonymous, log: l}
	h.sessions = session.NewSessMgr(h.onConnClosed)
	return h
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	g := r.Group("realm")
	g.Handle("login", h.Login)
	for name, build := range routes {
		g.Handle(name, h.forward(build))
	}
}

var routes = map[string]builder{
	"init": withPosition(func(b messages.RealmBaseMessage, p messages.Position) messages.RealmMessage {
		return &messages.InitPosition{RealmBaseMessage: b, Position: p}
	}),
	"move": withPosition(func(b messages.RealmBaseMessage, p messages.Position) messages.RealmMessage {
		return &messages.Move{RealmBaseMessage: b, Position: p}
	}),
	"placeFirstFlag": withPosition(func(b messages.RealmBaseMessage, p messages.Position) messages.RealmMessage {
		return &messages.PlaceFirstFlag{RealmBaseMessage: b, Position: p}
	}),
	"placeAdditionalFlag": withPosition(func(b messages.RealmBaseMessage, p messages.Position) messages.RealmMessage {
		return &messages.PlaceAdditionalFlag{RealmBaseMessage: b, Position: p}
	}),
	"canBuild": withPosition(func(b messages.RealmBaseMessage, p messages.Position) messages.RealmMessage {
		return &messages.CanBuild{RealmBaseMessage: b, Position: p}
	}),
	"canMove": withPosition(func(b messages.RealmBaseMessage, p messages.Position) messages.RealmMessage {
		return &messages.CanMove{RealmBaseMessage: b, Position: p}
	}),
	"setTarget": withPosition(func(b messages.RealmBaseMessage, p messages.Position) messages.RealmMessage {
		return &messages.SetTarget{RealmBaseMessage: b, Position: p}
	}),
	"removeLastFlag": plain(func(b messages.RealmBaseMessage) messages.RealmMessage { return &messages.RemoveLastFlag{RealmBaseMessage: b} }),
	"clearFirstFlag": plain(func(b messages.RealmBaseMessage) messages.RealmMessage { return &messages.ClearFirstFlag{RealmBaseMessage: b} }),
	"attack":         plain(func(b messages.RealmBaseMessage) messages.RealmMessage { return &messages.Attack{RealmBaseMessage: b} }),
	"rest":           plain(func(b messages.RealmBaseMessage) messages.RealmMessage { return &messages.Rest{RealmBaseMessage: b} }),
	"state":          plain(func(b messages.RealmBaseMessage) messages.RealmMessage { return &messages.GetState{RealmBaseMessage: b} }),
	"save":           plain(func(b messages.RealmBaseMessage) messages.RealmMessage { return &messages.Save{RealmBaseMessage: b} }),
	"deleteSave":     plain(func(b messages.RealmBaseMessage) messages.RealmMessage { return &messages.DeleteSave{RealmBaseMessage: b} }),
	"bank":           plain(func(b messages.RealmBaseMessage) messages.RealmMessage { return &messages.Bank{RealmBaseMessage: b} }),
	"build": func(req *ws.WsMsgReq, b messages.RealmBaseMessage) (messages.RealmMessage, error) {
		var in dto.BuildReq
		if err := ws.Bind(req, &in); err != nil {
			return nil, err
		}
		return &messages.Build{RealmBaseMessage: b, Position: messages.Position{Lat: in.Lat, Lng: in.Lng}, Type: in.Type}, nil
	},
	"teleport": func(req *ws.WsMsgReq, b messages.RealmBaseMessage) (messages.RealmMessage, error) {
		var in dto.TeleportReq
		err := ws.Bind(req, &in)
		return &messages.Teleport{RealmBaseMessage: b, TerritoryID: in.TerritoryID}, err
	},
	"craft": func(req *ws.WsMsgReq, b messages.RealmBaseMessage) (messages.RealmMessage, error) {
		var in dto.RecipeReq
		err := ws.Bind(req, &in)
		return &messages.Craft{RealmBaseMessage: b, RecipeID: in.RecipeID}, err
	},
	"socket": func(req *ws.WsMsgReq, b messages.RealmBaseMessage) (messages.RealmMessage, error) {
		var in dto.SocketReq
		err := ws.Bind(req, &in)
		return &messages.Socket{RealmBaseMessage: b, TargetID: in.TargetID, GemID: in.GemID}, err
	},
	"equip": func(req *ws.WsMsgReq, b messages.RealmBaseMessage) (messages.RealmMessage, error) {
		var in dto.ItemReq
		err := ws.Bind(req, &in)
		return &messages.Equip{RealmBaseMessage: b, ItemID: in.ItemID}, err
	},
	"useItem": func(req *ws.WsMsgReq, b messages.RealmBaseMessage) (messages.RealmMessage, error) {
		var in dto.ItemReq
		err := ws.Bind(req, &in)
		return &messages.UseItem{RealmBaseMessage: b, ItemID: in.ItemID}, err
	},
	"unequip": func(req *ws.WsMsgReq, b messages.RealmBaseMessage) (messages.RealmMessage, error) {
		var in dto.SlotReq
		err := ws.Bind(req, &in)
		return &messages.Unequip{RealmBaseMessage: b, Slot: in.Slot}, err
	},
	"spawnLoot": func(req *ws.WsMsgReq, b messages.RealmBaseMessage) (messages.RealmMessage, error) {
		var in dto.LootReq
		err := ws.Bind(req, &in)
		return &messages.SpawnLoot{RealmBaseMessage: b, Position: messages.Position{Lat: in.Lat, Lng: in.Lng}, Level: in.Level}, err
	},
	"collect": func(req *ws.WsMsgReq, b messages.RealmBaseMessage) (messages.RealmMessage, error) {
		var in dto.CityReq
		err := ws.Bind(req, &in)
		return &messages.Collect{RealmBaseMessage: b, CityID: in.CityID}, err
	},
	"learnSkill": func(req *ws.WsMsgReq, b messages.RealmBaseMessage) (messages.RealmMessage, error) {
		var in dto.SkillReq
		err := ws.Bind(req, &in)
		return &messages.LearnSkill{RealmBaseMessage: b, SkillID: in.SkillID}, err
	},
	"upgradeSkill": func(req *ws.WsMsgReq, b messages.RealmBaseMessage) (messages.RealmMessage, error) {
		var in dto.SkillReq
		err := ws.Bind(req, &in)
		return &messages.UpgradeSkill{RealmBaseMessage: b, SkillID: in.SkillID}, err
	},
}

func withPosition(fn func(messages.RealmBaseMessage, messages.Position) messages.RealmMessage) builder {
	return func(req *ws.WsMsgReq, b messages.RealmBaseMessage) (messages.RealmMessage, error) {
		var in dto.PositionReq
		if err := ws.Bind(req, &in); err != nil {
			return nil, err
		}
		return fn(b, messages.Position{Lat: in.Lat, Lng: in.Lng}), nil
	}
}

func plain(fn func(messages.RealmBaseMessage) messages.RealmMessage) builder {
	return func(req *ws.WsMsgReq, b messages.RealmBaseMessage) (messages.RealmMessage, error) {
		return fn(b), nil
	}
}

// Login 校验令牌并打开会话；没有令牌时按配置决定是否允许匿名。
func (h *WsHandler) Login(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if wsReq.Conn == nil {
		h.fail(ctx, wsResp, transport.InvalidParam, "invalid request", "NO_CONN")
		return
	}
	var req dto.LoginReq
	if err := ws.Bind(wsReq, &req); err != nil {
		h.fail(ctx, wsResp, transport.InvalidParam, "invalid request", "BIND_FAIL")
		return
	}

	connID := connIDOf(wsReq.Conn)
	open := &messages.OpenSession{ConnID: connID, Push: wsReq.Conn.Push}
	if req.Token != "" {
		_, claims, err := security.ParseToken(req.Token)
		if err != nil {
			h.fail(ctx, wsResp, transport.NotLoggedIn, "invalid token", "INVALID_TOKEN")
			return
		}
		open.Session = "user:" + claims.UID
		open.UserID = claims.UID
		open.Token = req.Token
		open.IsAdmin = claims.IsAdmin
	} else {
		if !h.allowAnonymous {
			h.fail(ctx, wsResp, transport.NotLoggedIn, "login required", "ANONYMOUS_DISABLED")
			return
		}
		open.Session = "anon:" + connID
	}

	if prev, ok := h.sessions.GetSession(wsReq.Conn); ok && prev != open.Session {
		h.realm.Close(prev, connID)
	}
	reply, err := h.realm.Open(ctx, open)
	if err != nil {
		h.log.Error("realm open session failed", zap.String("session", open.Session), zap.Error(err))
		h.fail(ctx, wsResp, transport.SystemError, "realm unavailable", "ACTOR_FAIL")
		return
	}
	if reply.Code != transport.OK {
		h.fail(ctx, wsResp, reply.Code, reply.Message, "OPEN_REJECTED")
		return
	}

	wsReq.Conn.SetProperty(connKeySession, open.Session)
	if open.UserID != "" {
		wsReq.Conn.SetProperty(ws.ConnKeyUID, open.UserID)
	}
	h.sessions.Bind(open.Session, wsReq.Conn)
	h.ok(wsResp, dto.LoginResp{Session: open.Session, UserID: open.UserID, IsAdmin: open.IsAdmin, State: reply.Data})
}

func (h *WsHandler) forward(build builder) ws.HandlerFunc {
	return func(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
		if wsReq.Conn == nil {
			h.fail(ctx, wsResp, transport.InvalidParam, "invalid request", "NO_CONN")
			return
		}
		sess, ok := h.sessions.GetSession(wsReq.Conn)
		if !ok {
			h.fail(ctx, wsResp, transport.NotLoggedIn, "login first", "NO_SESSION")
			return
		}
		msg, err := build(wsReq, messages.RealmBaseMessage{Session: sess})
		if err != nil {
			h.fail(ctx, wsResp, transport.InvalidParam, "invalid request", "BIND_FAIL")
			return
		}
		reply, err := h.realm.Request(ctx, msg)
		if err != nil {
			h.log.Error("realm request failed", zap.String("session", sess), zap.String("route", wsReq.Body.Name), zap.Error(err))
			h.fail(ctx, wsResp, transport.SystemError, "realm unavailable", "ACTOR_FAIL")
			return
		}
		if reply.Code != transport.OK {
			transport.SetErrorReason(ctx, reply.Message)
			wsResp.Body.Code = reply.Code
			wsResp.Body.Msg = reply.Data
			if reply.Data == nil {
				wsResp.Body.Msg = reply.Message
			}
			return
		}
		h.ok(wsResp, reply.Data)
	}
}

func (h *WsHandler) onConnClosed(sess string, conn ws.WSConn) {
	h.realm.Close(sess, connIDOf(conn))
}

func connIDOf(conn ws.WSConn) string {
	if id, ok := conn.GetProperty(connKeyID).(string); ok && id != "" {
		return id
	}
	id := utils.RandSeq(12)
	conn.SetProperty(connKeyID, id)
	return id
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(ctx context.Context, resp *ws.WsMsgResp, code int, msg, reason string) {
	transport.SetErrorReason(ctx, reason)
	resp.Body.Code = code
	resp.Body.Msg = msg
}
