package ws

import (
	"context"
	"fmt"
	"sort"

	"ParallelRealms/internal/shared/logs"
	"ParallelRealms/internal/shared/transport"
	"ParallelRealms/modules/kit/logx"
	"ParallelRealms/modules/kit/tracex"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

// Middleware 包在处理器外层，按 Use 的顺序从外到内。
type Middleware func(next HandlerFunc) HandlerFunc

// Group 同一前缀下的路由，注册时直接写进 Router 的路由表。
type Group struct {
	prefix string
	router *Router
}

func (g *Group) Handle(name string, h HandlerFunc) {
	g.router.routes[g.prefix+"."+name] = h
}

type Router struct {
	routes map[string]HandlerFunc
	mws    []Middleware
	log    logx.Logger
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.NewZapLogger(logs.Logger())
	}
	return &Router{routes: make(map[string]HandlerFunc), log: l}
}

func (r *Router) Group(prefix string) *Group {
	return &Group{prefix: prefix, router: r}
}

func (r *Router) Use(mws ...Middleware) {
	r.mws = append(r.mws, mws...)
}

// Routes 已注册的完整路由名，按字典序。
func (r *Router) Routes() []string {
	out := make([]string, 0, len(r.routes))
	for name := range r.routes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Dispatch 路由名形如 realm.move；每条消息写一行访问日志。
// 处理器 panic 只影响这一条消息，回系统错误。
func (r *Router) Dispatch(req *WsMsgReq, resp *WsMsgResp) {
	if resp == nil || resp.Body == nil {
		return
	}
	if req == nil || req.Body == nil {
		resp.fail(transport.InvalidParam, "invalid request")
		return
	}

	ctx := transport.NewContext("WS " + req.Body.Name)
	if req.Conn != nil {
		if uid, ok := req.Conn.GetProperty(ConnKeyUID).(string); ok && uid != "" {
			ctx = tracex.WithUserID(ctx, uid)
			transport.SetUserID(ctx, uid)
		}
	}
	// 处理器没设置 code 时按系统错误返回
	resp.fail(transport.SystemError, nil)

	defer func() {
		if p := recover(); p != nil {
			r.log.Error("ws handler panic", zap.String("route", req.Body.Name), zap.String("panic", fmt.Sprint(p)))
			transport.SetErrorReason(ctx, "HANDLER_PANIC")
			resp.fail(transport.SystemError, "server error")
		}
		transport.SetBizCode(ctx, transport.BizCode(resp.Body.Code))
		transport.WriteAccessLog(ctx, r.log)
	}()

	h, ok := r.routes[req.Body.Name]
	if !ok {
		if _, _, valid := req.Body.Route(); !valid {
			resp.fail(transport.InvalidParam, "invalid route")
		} else {
			resp.fail(transport.InvalidParam, "route not found")
		}
		transport.SetErrorReason(ctx, "ROUTE_NOT_FOUND")
		return
	}
	for i := len(r.mws) - 1; i >= 0; i-- {
		h = r.mws[i](h)
	}
	h(ctx, req, resp)
}
