package serverconfig

import (
	"ParallelRealms/internal/shared/config"
	"ParallelRealms/internal/shared/gameconfig"
)

type Config struct {
	Log         config.LogConfig  `yaml:"log" mapstructure:"log"`
	Realm       RealmConfig       `yaml:"realm" mapstructure:"realm"`
	Backend     BackendConfig     `yaml:"backend" mapstructure:"backend"`
	Game        gameconfig.Rules  `yaml:"game" mapstructure:"game"`
	Persistence PersistenceConfig `yaml:"persistence" mapstructure:"persistence"`
	MongoDB     MongoDBConfig     `yaml:"mongodb" mapstructure:"mongodb"`
	Postgres    PostgresConfig    `yaml:"postgres" mapstructure:"postgres"`
	MySQL       MySQLConfig       `yaml:"mysql" mapstructure:"mysql"`
	JWTSecret   string            `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

// RealmConfig 游戏服：WS 入口和 actor 参数。
type RealmConfig struct {
	Host       string `yaml:"host" mapstructure:"host"`
	Port       int    `yaml:"port" mapstructure:"port"`
	NeedSecret bool   `yaml:"need_secret" mapstructure:"need_secret"`
	// TickMs 驱动事件队列的间隔。
	TickMs         int  `yaml:"tick_ms" mapstructure:"tick_ms"`
	AskTimeoutMs   int  `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
	AllowAnonymous bool `yaml:"allow_anonymous" mapstructure:"allow_anonymous"`
}

// BackendConfig 存档后端。SaveStore: mongodb | postgres | memory；Ledger: mysql | memory。
type BackendConfig struct {
	Host          string `yaml:"host" mapstructure:"host"`
	Port          int    `yaml:"port" mapstructure:"port"`
	SaveStore     string `yaml:"save_store" mapstructure:"save_store"`
	Ledger        string `yaml:"ledger" mapstructure:"ledger"`
	OwnerUsername string `yaml:"owner_username" mapstructure:"owner_username"`
}

type PersistenceConfig struct {
	// LocalPath 为 sqlite 文件路径，"memory" 表示只存内存。
	LocalPath string `yaml:"local_path" mapstructure:"local_path"`
	// RemoteBaseURL 为空时只写本地。
	RemoteBaseURL   string `yaml:"remote_base_url" mapstructure:"remote_base_url"`
	RemoteTimeoutMs int    `yaml:"remote_timeout_ms" mapstructure:"remote_timeout_ms"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	Collection      string `yaml:"collection" mapstructure:"collection"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
	MaxPoolSize     uint64 `yaml:"max_pool_size" mapstructure:"max_pool_size"`
}

type PostgresConfig struct {
	DSN      string `yaml:"dsn" mapstructure:"dsn"`
	MaxConns int32  `yaml:"max_conns" mapstructure:"max_conns"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}
