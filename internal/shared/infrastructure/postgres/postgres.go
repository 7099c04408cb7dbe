package postgres

import (
	"context"
	"errors"
	"time"

	"ParallelRealms/internal/shared/serverconfig"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Open 建连接池并 ping 一次。
func Open(ctx context.Context, cfg serverconfig.PostgresConfig, l *zap.Logger) (*pgxpool.Pool, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres dsn is empty")
	}
	if l == nil {
		l = zap.NewNop()
	}

	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	l.Info("open postgres success",
		zap.String("host", pcfg.ConnConfig.Host),
		zap.String("database", pcfg.ConnConfig.Database),
		zap.Int32("max_conns", pcfg.MaxConns),
	)
	return pool, nil
}
