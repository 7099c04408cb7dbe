package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ParallelRealms/internal/shared/serverconfig"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

const defaultConnectTimeout = 3 * time.Second

// ClientOptions 由配置生成驱动参数，连接超时同时用作选主超时。
func ClientOptions(cfg serverconfig.MongoDBConfig) *options.ClientOptions {
	timeout := time.Duration(cfg.ConnectTimeoutS) * time.Second
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("parallel-realms-backend").
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	return opts
}

// Open 连上后 ping 主节点，失败时断开。
func Open(cfg serverconfig.MongoDBConfig, l *zap.Logger) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongodb uri is empty")
	}
	if l == nil {
		l = zap.NewNop()
	}
	opts := ClientOptions(cfg)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), *opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	l.Info("mongodb connected", zap.String("database", cfg.Database), zap.String("collection", cfg.Collection))
	return client, nil
}
