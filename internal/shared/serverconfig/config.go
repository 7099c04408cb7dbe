package serverconfig

import (
	"time"

	"ParallelRealms/internal/shared/config"
	"ParallelRealms/internal/shared/gameconfig"
	"ParallelRealms/internal/shared/logs"
	"ParallelRealms/internal/shared/security"

	"go.uber.org/zap"
)

const DefaultOwnerUsername = "DonaldBurt"

// Conf 进程级配置，Load 之后只读。热更新不改 Conf，新值交给 onChange。
var Conf = Default()

func Default() Config {
	return Config{
		Log:  config.LogConfig{Level: "info", MaxSize: 100, MaxBackups: 7, MaxAge: 30},
		Game: gameconfig.DefaultRules(),
		Realm: RealmConfig{
			Host:           "0.0.0.0",
			Port:           8004,
			TickMs:         100,
			AskTimeoutMs:   3000,
			AllowAnonymous: true,
		},
		Backend: BackendConfig{
			Host:          "0.0.0.0",
			Port:          3001,
			SaveStore:     "mongodb",
			Ledger:        "mysql",
			OwnerUsername: DefaultOwnerUsername,
		},
		Persistence: PersistenceConfig{
			LocalPath:       "data/realm-saves.db",
			RemoteTimeoutMs: 5000,
		},
		MongoDB: MongoDBConfig{Database: "parallel_realms", Collection: "game_saves", ConnectTimeoutS: 3},
		MySQL:   MySQLConfig{Charset: "utf8mb4", MaxIdle: 5, MaxConn: 20},
	}
}

// Load 解析配置文件路径（见 config.Resolve）并读到 Conf。
// watch 为 true 时开启热更新，onChange 在每次成功重载后调用。
func Load(cfgName string, watch bool, onChange func(Config)) (*config.Loader, error) {
	path, err := config.Resolve(cfgName)
	if err != nil {
		return nil, err
	}
	l := config.NewLoader(path)
	c := Default()
	if err := l.Load(&c); err != nil {
		return nil, err
	}
	Conf = c
	// 环境变量 JWT_SECRET 优先，security 内部处理。
	security.SetSecret(c.JWTSecret)

	if watch {
		next := c
		l.OnChange(func() {
			security.SetSecret(next.JWTSecret)
			if onChange != nil {
				onChange(next)
			}
		})
		l.Watch(&next, onErr)
	}
	return l, nil
}

func onErr(err error) {
	logs.Warn("config reload failed", zap.Error(err))
}

func (c RealmConfig) Tick() time.Duration {
	if c.TickMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.TickMs) * time.Millisecond
}

func (c RealmConfig) AskTimeout() time.Duration {
	if c.AskTimeoutMs <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.AskTimeoutMs) * time.Millisecond
}

func (c PersistenceConfig) RemoteTimeout() time.Duration {
	if c.RemoteTimeoutMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.RemoteTimeoutMs) * time.Millisecond
}

// MemoryLocal 本地存档只放内存。
func (c PersistenceConfig) MemoryLocal() bool {
	return c.LocalPath == "" || c.LocalPath == "memory"
}
