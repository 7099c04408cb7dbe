package mongo

import (
	"testing"
	"time"

	"ParallelRealms/internal/shared/serverconfig"
)

func TestClientOptions_默认超时与连接池(t *testing.T) {
	opts := ClientOptions(serverconfig.MongoDBConfig{URI: "mongodb://127.0.0.1:27017"})
	if *opts.ConnectTimeout != defaultConnectTimeout || *opts.ServerSelectionTimeout != defaultConnectTimeout {
		t.Fatalf("期望默认 3s 超时, got=%v", *opts.ConnectTimeout)
	}
	if opts.MaxPoolSize != nil {
		t.Fatalf("期望未配置时不设连接池上限")
	}

	opts = ClientOptions(serverconfig.MongoDBConfig{URI: "mongodb://127.0.0.1:27017", ConnectTimeoutS: 5, MaxPoolSize: 20})
	if *opts.ConnectTimeout != 5*time.Second || *opts.MaxPoolSize != 20 {
		t.Fatalf("期望使用配置值, timeout=%v pool=%v", *opts.ConnectTimeout, opts.MaxPoolSize)
	}
}

func TestOpen_uri为空(t *testing.T) {
	if _, err := Open(serverconfig.MongoDBConfig{}, nil); err == nil {
		t.Fatalf("期望 uri 为空时报错")
	}
}
