package http

import (
	"context"
	nethttp "net/http"
	"time"

	"ParallelRealms/internal/shared/transport/http/middleware"
	"ParallelRealms/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type Server struct {
	engine *gin.Engine
	group  *gin.RouterGroup
	srv    *nethttp.Server
}

type Option func(*nethttp.Server)

// WithTimeouts 0 表示不限制。挂了 websocket 的服务要关掉读写超时。
func WithTimeouts(read, write time.Duration) Option {
	return func(s *nethttp.Server) {
		s.ReadTimeout, s.WriteTimeout = read, write
	}
}

// NewHttpServer engine 为 nil 时新建一个带 Recovery 的；统一挂上 cors、访问日志和 /healthz。
func NewHttpServer(addr string, engine *gin.Engine, logger logx.Logger, opts ...Option) *Server {
	if engine == nil {
		engine = gin.New()
		engine.Use(gin.Recovery())
	}
	if logger == nil {
		logger = logx.Nop()
	}
	engine.Use(middleware.Cors(), middleware.AccessLog(logger))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})

	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	for _, o := range opts {
		o(srv)
	}
	return &Server{engine: engine, group: engine.Group(""), srv: srv}
}

// Start 阻塞到服务关闭，正常关闭返回 http.ErrServerClosed。
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) Group() *gin.RouterGroup { return s.group }

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) Handler() nethttp.Handler { return s.engine }

func (s *Server) Addr() string { return s.srv.Addr }
