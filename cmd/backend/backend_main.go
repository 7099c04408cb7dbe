package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"ParallelRealms/internal/backend/app"
	"ParallelRealms/internal/backend/app/port"
	"ParallelRealms/internal/backend/infra/persistence/memory"
	backendmongo "ParallelRealms/internal/backend/infra/persistence/mongodb"
	backendmysql "ParallelRealms/internal/backend/infra/persistence/mysql"
	backendpg "ParallelRealms/internal/backend/infra/persistence/postgres"
	"ParallelRealms/internal/backend/interfaces"
	"ParallelRealms/internal/shared/infrastructure/db"
	sharedmongo "ParallelRealms/internal/shared/infrastructure/mongo"
	sharedpg "ParallelRealms/internal/shared/infrastructure/postgres"
	"ParallelRealms/internal/shared/logs"
	"ParallelRealms/internal/shared/security"
	"ParallelRealms/internal/shared/serverconfig"
	"ParallelRealms/internal/shared/transport"
	transporthttp "ParallelRealms/internal/shared/transport/http"
	"ParallelRealms/internal/shared/utils"
	"ParallelRealms/modules/kit/logx"

	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "", "path to conf.yml")
	flag.Parse()

	if _, err := serverconfig.Load(*cfgPath, true, func(next serverconfig.Config) {
		logs.SetLevel(next.Log.Level)
	}); err != nil {
		panic(err)
	}
	conf := serverconfig.Conf
	if err := logs.Init("backend", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	transport.SetSpanName("backend")
	logs.Info("conf", zap.Any("backend", conf.Backend))

	closers := []func(){}
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	store, closeStore := openSaveStore(conf)
	closers = append(closers, closeStore)
	ledger, users := openLedger(conf)

	owner := conf.Backend.OwnerUsername
	if owner == "" {
		owner = serverconfig.DefaultOwnerUsername
	}
	baseLogger := logx.NewZapLogger(logs.Logger())
	backendModule := interfaces.New(
		app.NewUserService(users,
			app.PwdHasher{Hash: security.HashPassword, Verify: security.CheckPassword},
			security.Award, nextUserID, owner),
		app.NewGameService(store, nil),
		app.NewEconomyService(ledger, owner),
		baseLogger,
	)

	addr := fmt.Sprintf("%s:%d", hostOr(conf.Backend.Host), conf.Backend.Port)
	httpServer := transporthttp.NewHttpServer(addr, nil, baseLogger)
	httpModules := []transporthttp.Registrar{
		backendModule,
	}
	for _, m := range httpModules {
		m.HttpRegister(httpServer.Group())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("backend server listening", zap.String("addr", addr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("backend server start failed: %w", err)
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
}

func openSaveStore(conf serverconfig.Config) (port.SaveStore, func()) {
	switch conf.Backend.SaveStore {
	case "memory":
		logs.Warn("save store is in memory, saves are lost on restart")
		return memory.NewSaveStore(), func() {}
	case "postgres":
		pool, err := sharedpg.Open(context.Background(), conf.Postgres, logs.Logger())
		if err != nil {
			logs.Fatal("open postgres failed", zap.Error(err))
		}
		store := backendpg.NewSaveStore(pool)
		if err := store.Migrate(context.Background()); err != nil {
			logs.Fatal("migrate postgres failed", zap.Error(err))
		}
		return store, pool.Close
	case "mongodb", "":
		client, err := sharedmongo.Open(conf.MongoDB, logs.Logger())
		if err != nil {
			logs.Fatal("open mongodb failed", zap.Error(err))
		}
		store := backendmongo.NewSaveStore(client.Database(conf.MongoDB.Database), conf.MongoDB.Collection)
		return store, func() { _ = client.Disconnect(context.Background()) }
	default:
		logs.Fatal("unknown save store", zap.String("save_store", conf.Backend.SaveStore))
		return nil, nil
	}
}

// openLedger 用户表和金库在同一个库里。
func openLedger(conf serverconfig.Config) (port.Ledger, port.UserRepo) {
	switch conf.Backend.Ledger {
	case "memory":
		logs.Warn("ledger and users are in memory")
		return memory.NewLedger(0), memory.NewUserRepo()
	case "mysql", "":
		gdb, err := db.Open(conf.MySQL)
		if err != nil {
			logs.Fatal("open mysql failed", zap.Error(err))
		}
		ledger := backendmysql.NewLedger(gdb)
		if err := ledger.Migrate(context.Background()); err != nil {
			logs.Fatal("migrate ledger failed", zap.Error(err))
		}
		users := backendmysql.NewUserRepo(gdb)
		if err := users.Migrate(context.Background()); err != nil {
			logs.Fatal("migrate users failed", zap.Error(err))
		}
		return ledger, users
	default:
		logs.Fatal("unknown ledger", zap.String("ledger", conf.Backend.Ledger))
		return nil, nil
	}
}

func nextUserID() (string, error) {
	id, err := utils.NextSnowflakeID()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

func hostOr(h string) string {
	if h == "" {
		return "0.0.0.0"
	}
	return h
}
