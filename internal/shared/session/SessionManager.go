package session

import (
	"sync"

	"ParallelRealms/internal/shared/transport/ws"
)

// KickedMsg 推给被同一会话新连接顶掉的旧连接。
const KickedMsg = "robLogin"

type Manager interface {
	Bind(session string, conn ws.WSConn)
	UnbindConn(conn ws.WSConn)
	GetConn(session string) (ws.WSConn, bool)
	GetSession(conn ws.WSConn) (string, bool)
}

// ClosedFunc 在连接关闭解绑后调用，session 为它最后绑定的会话。
type ClosedFunc func(session string, conn ws.WSConn)

type SessMgr struct {
	sync.RWMutex
	sess2conn map[string]ws.WSConn
	conn2sess map[ws.WSConn]string
	watched   map[ws.WSConn]struct{}
	onClosed  ClosedFunc
}

func NewSessMgr(onClosed ClosedFunc) *SessMgr {
	return &SessMgr{
		sess2conn: make(map[string]ws.WSConn),
		conn2sess: make(map[ws.WSConn]string),
		watched:   make(map[ws.WSConn]struct{}),
		onClosed:  onClosed,
	}
}

func (s *SessMgr) Bind(session string, conn ws.WSConn) {
	if conn == nil || session == "" {
		return
	}
	s.Lock()
	// 每条连接只起一个 watcher，连接关闭后自动解绑。
	if _, ok := s.watched[conn]; !ok {
		s.watched[conn] = struct{}{}
		go s.watchConnDone(conn)
	}
	if prev, ok := s.conn2sess[conn]; ok && prev != session && s.sess2conn[prev] == conn {
		delete(s.sess2conn, prev)
	}
	oldConn := s.sess2conn[session]
	s.sess2conn[session] = conn
	s.conn2sess[conn] = session
	s.Unlock()

	// 踢掉原来的连接，锁外做，Close 会触发它自己的 watcher。
	if oldConn != nil && oldConn != conn {
		oldConn.Push(KickedMsg, nil)
		oldConn.Close()
	}
}

func (s *SessMgr) watchConnDone(conn ws.WSConn) {
	<-conn.Done()
	s.Lock()
	session, bound := s.conn2sess[conn]
	s.Unlock()
	s.UnbindConn(conn)
	if bound && s.onClosed != nil {
		s.onClosed(session, conn)
	}
}

func (s *SessMgr) UnbindConn(conn ws.WSConn) {
	s.Lock()
	defer s.Unlock()
	session, ok := s.conn2sess[conn]
	delete(s.watched, conn)
	delete(s.conn2sess, conn)
	if ok && s.sess2conn[session] == conn {
		delete(s.sess2conn, session)
	}
}

func (s *SessMgr) GetConn(session string) (ws.WSConn, bool) {
	s.RLock()
	defer s.RUnlock()
	conn, ok := s.sess2conn[session]
	return conn, ok
}

func (s *SessMgr) GetSession(conn ws.WSConn) (string, bool) {
	s.RLock()
	defer s.RUnlock()
	session, ok := s.conn2sess[conn]
	return session, ok
}

var _ Manager = (*SessMgr)(nil)
