package session

import (
	"sync"
	"testing"
	"time"

	"ParallelRealms/internal/shared/transport/ws"
)

type fakeConn struct {
	mu     sync.Mutex
	pushed []string
	done   chan struct{}
	once   sync.Once
}

func newFakeConn() *fakeConn { return &fakeConn{done: make(chan struct{})} }

func (c *fakeConn) SetProperty(key string, value any) {}
func (c *fakeConn) GetProperty(key string) any        { return nil }
func (c *fakeConn) RemoveProperty(key string)         {}
func (c *fakeConn) Addr() string                      { return "127.0.0.1:1" }
func (c *fakeConn) Push(name string, data any) {
	c.mu.Lock()
	c.pushed = append(c.pushed, name)
	c.mu.Unlock()
}
func (c *fakeConn) Close()                { c.once.Do(func() { close(c.done) }) }
func (c *fakeConn) Done() <-chan struct{} { return c.done }

func TestSessMgr_新连接顶掉旧连接(t *testing.T) {
	closed := make(chan *fakeConn, 2)
	m := NewSessMgr(func(session string, conn ws.WSConn) {
		closed <- conn.(*fakeConn)
	})
	a, b := newFakeConn(), newFakeConn()
	m.Bind("user:u-1", a)
	m.Bind("user:u-1", b)

	select {
	case got := <-closed:
		if got != a {
			t.Fatalf("期望旧连接被关闭")
		}
	case <-time.After(time.Second):
		t.Fatalf("期望旧连接关闭回调")
	}
	if conn, ok := m.GetConn("user:u-1"); !ok || conn != b {
		t.Fatalf("期望会话指向新连接")
	}
	a.mu.Lock()
	kicked := len(a.pushed) == 1 && a.pushed[0] == KickedMsg
	a.mu.Unlock()
	if !kicked {
		t.Fatalf("期望旧连接收到 %s", KickedMsg)
	}
}

func TestSessMgr_连接关闭自动解绑(t *testing.T) {
	done := make(chan string, 1)
	m := NewSessMgr(func(session string, conn ws.WSConn) { done <- session })
	c := newFakeConn()
	m.Bind("anon:c1", c)
	if s, ok := m.GetSession(c); !ok || s != "anon:c1" {
		t.Fatalf("期望连接绑定到会话")
	}
	c.Close()
	select {
	case s := <-done:
		if s != "anon:c1" {
			t.Fatalf("期望回调带会话键, got=%s", s)
		}
	case <-time.After(time.Second):
		t.Fatalf("期望关闭回调")
	}
	if _, ok := m.GetConn("anon:c1"); ok {
		t.Fatalf("期望解绑")
	}
}
