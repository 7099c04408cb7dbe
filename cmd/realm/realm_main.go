package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"ParallelRealms/internal/game/actor"
	"ParallelRealms/internal/game/actors"
	"ParallelRealms/internal/game/app/port"
	"ParallelRealms/internal/game/infra/persistence/memory"
	"ParallelRealms/internal/game/infra/persistence/sqlite"
	"ParallelRealms/internal/game/infra/remote/httpapi"
	"ParallelRealms/internal/game/interfaces"
	"ParallelRealms/internal/shared/gameconfig"
	"ParallelRealms/internal/shared/logs"
	"ParallelRealms/internal/shared/serverconfig"
	"ParallelRealms/internal/shared/transport"
	transporthttp "ParallelRealms/internal/shared/transport/http"
	"ParallelRealms/internal/shared/transport/ws"
	"ParallelRealms/internal/shared/utils"
	"ParallelRealms/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "", "path to conf.yml")
	flag.Parse()

	if _, err := serverconfig.Load(*cfgPath, true, onReload); err != nil {
		panic(err)
	}
	conf := serverconfig.Conf
	if err := logs.Init("realm", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	transport.SetSpanName("realm")
	logs.Info("conf", zap.Any("realm", conf.Realm), zap.Any("persistence", conf.Persistence))

	catalog := gameconfig.MustDefaultCatalog()
	if conf.Game.CatalogFile != "" {
		c, err := gameconfig.LoadCatalog(conf.Game.CatalogFile)
		if err != nil {
			logs.Fatal("load catalog failed", zap.String("file", conf.Game.CatalogFile), zap.Error(err))
		}
		catalog = c
	}

	local, closeLocal := openLocal(conf.Persistence)
	defer closeLocal()

	sf, err := utils.DefaultSnowflake()
	if err != nil {
		logs.Fatal("init snowflake failed", zap.Error(err))
	}

	baseLogger := logx.NewZapLogger(logs.Logger())
	runtime := actor.NewRuntime(actors.Deps{
		Rules:         conf.Game,
		Catalog:       catalog,
		Local:         local,
		Remote:        remoteFactory(conf.Persistence),
		IDs:           utils.NewSnowflakeIDGen(sf),
		Tick:          conf.Realm.Tick(),
		RemoteTimeout: conf.Persistence.RemoteTimeout(),
		Logger:        baseLogger,
	}, conf.Realm.AskTimeout())

	wsRouter := ws.NewRouter(baseLogger)
	realmModule := interfaces.New(runtime, conf.Realm.AllowAnonymous, baseLogger)
	wsModules := []ws.Registrar{
		realmModule,
	}
	for _, m := range wsModules {
		m.WsRegister(wsRouter)
	}
	logs.Info("ws routes registered", zap.Strings("routes", wsRouter.Routes()))

	addr := fmt.Sprintf("%s:%d", hostOr(conf.Realm.Host), conf.Realm.Port)
	httpServer := transporthttp.NewHttpServer(addr, nil, baseLogger, transporthttp.WithTimeouts(0, 0))
	wsServer := ws.NewServer(wsRouter, baseLogger, conf.Realm.NeedSecret)
	httpServer.Engine().Any("/ws", gin.WrapH(wsServer))
	httpServer.Engine().Any("/ws/*any", gin.WrapH(wsServer))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("realm server listening", zap.String("addr", addr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("realm server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logs.Error("server exited", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	// 等每个 RealmActor 写完最后一次存档
	runtime.Shutdown()
	logs.Info("realm server stopped")
}

func onReload(next serverconfig.Config) {
	logs.SetLevel(next.Log.Level)
	logs.Info("config reloaded", zap.String("log_level", next.Log.Level))
}

func openLocal(cfg serverconfig.PersistenceConfig) (port.LocalCache, func()) {
	if cfg.MemoryLocal() {
		logs.Warn("local save cache is in memory, saves are lost on restart")
		return memory.NewSaveCache(), func() {}
	}
	cache, err := sqlite.Open(cfg.LocalPath)
	if err != nil {
		logs.Fatal("open local save cache failed", zap.String("path", cfg.LocalPath), zap.Error(err))
	}
	logs.Info("open local save cache success", zap.String("path", cfg.LocalPath))
	return cache, func() { _ = cache.Close() }
}

// remoteFactory 没有配置后端地址时所有会话只写本地。
func remoteFactory(cfg serverconfig.PersistenceConfig) actors.RemoteFactory {
	if cfg.RemoteBaseURL == "" {
		return nil
	}
	timeout := cfg.RemoteTimeout()
	return func(token string) (port.RemoteStore, port.Economy) {
		c := httpapi.New(cfg.RemoteBaseURL, token, timeout)
		return c, c
	}
}

func hostOr(h string) string {
	if h == "" {
		return "0.0.0.0"
	}
	return h
}
