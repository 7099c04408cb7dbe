package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"ParallelRealms/internal/shared/security"
	"ParallelRealms/internal/shared/transport"
	"ParallelRealms/internal/shared/transport/http/middleware"

	"github.com/gin-gonic/gin"
)

func TestNewHttpServer_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", gin.New(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusOK)
	}
}

func TestCors_预检直接返回(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewHttpServer(":0", gin.New(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodOptions, "/api/game/save", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("期望预检 204 并回显 origin, code=%d", w.Code)
	}
}

func TestAuth_校验令牌(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	s := NewHttpServer(":0", gin.New(), nil)
	s.Group().GET("/me", middleware.Auth(), func(c *gin.Context) {
		claims, _ := middleware.ClaimsFrom(c)
		OK(c, gin.H{"uid": claims.UID})
	})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/me", nil))
	if w.Code != nethttp.StatusUnauthorized {
		t.Fatalf("期望没有令牌 401, got=%d", w.Code)
	}

	token, err := security.Award("u-9", "hero", false)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	w = httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	s.Handler().ServeHTTP(w, req)

	var body struct {
		Code int `json:"code"`
		Data struct {
			UID string `json:"uid"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应体解析失败: %v", err)
	}
	if w.Code != nethttp.StatusOK || body.Code != transport.OK || body.Data.UID != "u-9" {
		t.Fatalf("期望带令牌通过, code=%d body=%s", w.Code, w.Body.String())
	}
}

func TestNewHttpServer_可关闭读写超时(t *testing.T) {
	s := NewHttpServer("127.0.0.1:0", gin.New(), nil, WithTimeouts(0, 0))
	if s.srv.ReadTimeout != 0 || s.srv.WriteTimeout != 0 || s.srv.ReadHeaderTimeout == 0 {
		t.Fatalf("期望只关闭读写超时, read=%v write=%v", s.srv.ReadTimeout, s.srv.WriteTimeout)
	}
	if s.Addr() != "127.0.0.1:0" {
		t.Fatalf("期望保留监听地址, got=%s", s.Addr())
	}
}
