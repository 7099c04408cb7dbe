package ws

import "strings"

// 控制消息名和连接属性键。
const (
	HandshakeMsg = "handshake"
	HeartbeatMsg = "heartbeat"

	SecretKey  = "secretKey"
	ConnKeyUID = "uid"
)

// ReqBody 客户端请求帧，Seq 由客户端递增。
type ReqBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

// Route 拆出 group.handler，handler 里不能再有点。
func (b *ReqBody) Route() (group, handler string, ok bool) {
	group, handler, ok = strings.Cut(b.Name, ".")
	if !ok || group == "" || handler == "" || strings.Contains(handler, ".") {
		return "", "", false
	}
	return group, handler, true
}

// RespBody 响应帧和推送帧共用；推送的 Seq 为 0。
type RespBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Msg  any    `json:"msg"`
}

type WsMsgReq struct {
	Body *ReqBody
	Conn WSConn
}

type WsMsgResp struct {
	Body *RespBody
}

// replyTo 响应带上请求的 seq 和 name，客户端靠它配对。
func replyTo(req *ReqBody) *WsMsgResp {
	return &WsMsgResp{Body: &RespBody{Seq: req.Seq, Name: req.Name, Msg: req.Msg}}
}

func (r *WsMsgResp) fail(code int, msg any) {
	r.Body.Code = code
	r.Body.Msg = msg
}

// WSConn handler 看到的连接。
type WSConn interface {
	SetProperty(key string, value any)
	GetProperty(key string) any
	RemoveProperty(key string)
	Addr() string
	Push(name string, data any)
	Close()
	Done() <-chan struct{}
}

type Handshake struct {
	Key string `json:"key"`
}

// Heartbeat 客户端发 ctime，服务端补上 stime 原样回去。
type Heartbeat struct {
	CTime int64 `json:"ctime"`
	STime int64 `json:"stime"`
}
