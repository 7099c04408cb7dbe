package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"ParallelRealms/internal/shared/security"
	"ParallelRealms/internal/shared/utils"
	"ParallelRealms/modules/kit/logx"

	"github.com/go-think/openssl"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const outQueueSize = 1000

type WsServer struct {
	conn       *websocket.Conn
	router     *Router
	outChan    chan *WsMsgResp
	needSecret bool
	property   map[string]any
	sync.RWMutex
	writeMu   sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
	log       logx.Logger
}

func NewWsServer(wsConn *websocket.Conn, l logx.Logger, needSecret bool) *WsServer {
	return &WsServer{
		conn:       wsConn,
		outChan:    make(chan *WsMsgResp, outQueueSize),
		needSecret: needSecret,
		property:   make(map[string]any),
		done:       make(chan struct{}),
		log:        l,
	}
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) SetProperty(key string, value any) {
	s.Lock()
	defer s.Unlock()
	s.property[key] = value
}

func (s *WsServer) GetProperty(key string) any {
	s.RLock()
	defer s.RUnlock()
	return s.property[key]
}

func (s *WsServer) RemoveProperty(key string) {
	s.Lock()
	defer s.Unlock()
	delete(s.property, key)
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

// Push 主动推送；连接已关闭或队列满时丢弃。
func (s *WsServer) Push(name string, data any) {
	s.enqueue(&WsMsgResp{Body: &RespBody{Name: name, Msg: data}})
}

func (s *WsServer) enqueue(msg *WsMsgResp) {
	select {
	case <-s.done:
	case s.outChan <- msg:
	default:
		s.log.Warn("ws_server out queue full, drop msg", zap.String("name", msg.Body.Name), zap.String("addr", s.Addr()))
	}
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error("ws readMsgLoop panic", zap.String("err", fmt.Sprintf("%v", err)))
		}
		s.Close()
	}()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.log.Info("ws_server read closed", zap.String("addr", s.Addr()), zap.Error(err))
			return
		}

		plain, ok := s.decodeFrame(data)
		if !ok {
			continue
		}

		reqBody := ReqBody{}
		if err := json.Unmarshal(plain, &reqBody); err != nil {
			s.log.Error("ws_server unmarshal json error", zap.Error(err))
			continue
		}

		req := WsMsgReq{Body: &reqBody, Conn: s}
		resp := replyTo(&reqBody)
		if reqBody.Name == HeartbeatMsg {
			h := &Heartbeat{}
			if err := decode(reqBody.Msg, h); err != nil {
				s.log.Debug("ws_server heartbeat decode", zap.Error(err))
			}
			h.STime = time.Now().UnixMilli()
			resp.Body.Msg = h
		} else {
			s.log.Debug("ws_server read msg", zap.String("name", reqBody.Name), zap.Int64("seq", reqBody.Seq))
			s.router.Dispatch(&req, resp)
		}
		s.enqueue(resp)
	}
}

// decodeFrame 明文模式直接返回；加密模式先解压再解密，解密失败重新握手。
func (s *WsServer) decodeFrame(data []byte) ([]byte, bool) {
	if !s.needSecret {
		return data, true
	}
	secretData, err := security.UnZip(data)
	if err != nil {
		s.log.Error("ws_server unzip error", zap.Error(err))
		return nil, false
	}
	key, _ := s.GetProperty(SecretKey).(string)
	if key == "" {
		s.log.Error("ws_server secret key not found", zap.String("addr", s.Addr()))
		return nil, false
	}
	plain, err := security.AesCBCDecrypt(secretData, []byte(key), []byte(key), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Error("ws_server decrypt error", zap.Error(err))
		s.handshake()
		return nil, false
	}
	return plain, true
}

func (s *WsServer) writeMsgLoop() {
	for {
		select {
		case msg := <-s.outChan:
			if msg.Body.Name != HeartbeatMsg {
				s.log.Debug("ws_server write msg", zap.String("name", msg.Body.Name), zap.Int64("seq", msg.Body.Seq), zap.Int("code", msg.Body.Code))
			}
			s.write(msg)
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
		close(s.done)
	})
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

func (s *WsServer) write(msg *WsMsgResp) {
	raw, err := json.Marshal(msg.Body)
	if err != nil {
		s.log.Error("ws_server marshal json error", zap.Error(err))
		return
	}
	if !s.needSecret {
		s.writeFrame(websocket.TextMessage, raw)
		return
	}

	key, _ := s.GetProperty(SecretKey).(string)
	if key == "" {
		s.log.Error("ws_server secret key not found", zap.String("name", msg.Body.Name))
		return
	}
	encrypted, err := security.AesCBCEncrypt(raw, []byte(key), []byte(key), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Error("ws_server encrypt error", zap.Error(err))
		return
	}
	zipped, err := security.Zip(encrypted)
	if err != nil {
		s.log.Error("ws_server zip error", zap.Error(err))
		return
	}
	// 压缩后的密文是二进制，只能走 BinaryMessage。
	s.writeFrame(websocket.BinaryMessage, zipped)
}

func (s *WsServer) writeFrame(kind int, data []byte) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteMessage(kind, data); err != nil {
		s.log.Error("ws_server write error", zap.Error(err))
	}
}

// handshake 下发 AES 密钥（已有则复用），握手帧只压缩不加密。
func (s *WsServer) handshake() {
	key, _ := s.GetProperty(SecretKey).(string)
	if key == "" {
		key = utils.RandSeq(16)
		s.SetProperty(SecretKey, key)
	}

	data, err := json.Marshal(&RespBody{Name: HandshakeMsg, Msg: &Handshake{Key: key}})
	if err != nil {
		s.log.Error("ws_server handshake marshal error", zap.Error(err))
		return
	}
	zipped, err := security.Zip(data)
	if err != nil {
		s.log.Error("ws_server handshake zip error", zap.Error(err))
		return
	}
	s.writeFrame(websocket.BinaryMessage, zipped)
}
