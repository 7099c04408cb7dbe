package ws

import (
	"net/http"

	"ParallelRealms/modules/kit/logx"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Server struct {
	router     *Router
	log        logx.Logger
	needSecret bool
	upgrader   websocket.Upgrader
}

// NewServer needSecret 为 true 时帧走 zlib + AES，连接建立后先下发握手密钥。
func NewServer(r *Router, l logx.Logger, needSecret bool) *Server {
	if l == nil {
		l = logx.Nop()
	}
	return &Server{
		router:     r,
		log:        l,
		needSecret: needSecret,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	wsConn, err := s.upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}
	s.log.Info("websocket upgrade success", zap.String("addr", wsConn.RemoteAddr().String()))

	wsServer := NewWsServer(wsConn, s.log, s.needSecret)
	wsServer.Router(s.router)
	if s.needSecret {
		wsServer.handshake()
	}
	wsServer.Run()
}
