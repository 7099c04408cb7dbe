package actors

import (
	"time"

	"ParallelRealms/internal/game/app/port"
	"ParallelRealms/internal/game/dc"
	"ParallelRealms/internal/game/dice"
	"ParallelRealms/internal/game/engine"
	"ParallelRealms/internal/shared/gameconfig"
	"ParallelRealms/internal/shared/utils"
	"ParallelRealms/modules/kit/logx"
)

// RemoteFactory 按登录令牌构造远端存档和账本，未配置后端时返回 nil, nil。
type RemoteFactory func(token string) (port.RemoteStore, port.Economy)

// Deps 是所有 RealmActor 共用的依赖。
type Deps struct {
	Rules   gameconfig.Rules
	Catalog *gameconfig.Catalog
	Local   port.LocalCache
	Remote  RemoteFactory

	// Clock / Roller / IDs 为 nil 时用系统时钟、随机骰子和顺序 id。
	Clock  engine.Clock
	Roller func() dice.Roller
	IDs    utils.IDGen

	Tick          time.Duration
	RemoteTimeout time.Duration
	Logger        logx.Logger
}

func (d Deps) newEngine(userID string) *engine.Engine {
	var roll dice.Roller
	if d.Roller != nil {
		roll = d.Roller()
	}
	return engine.New(engine.Options{
		UserID:  userID,
		Rules:   d.Rules,
		Catalog: d.Catalog,
		Clock:   d.Clock,
		Roller:  roll,
		IDs:     d.IDs,
		Logger:  d.Logger,
	})
}

func (d Deps) newDC(userID, token string) *dc.GameDC {
	opts := dc.Options{
		UserID:        userID,
		Local:         d.Local,
		Logger:        d.Logger,
		RemoteTimeout: d.RemoteTimeout,
	}
	if userID != "" && token != "" && d.Remote != nil {
		opts.Remote, opts.Economy = d.Remote(token)
	}
	return dc.NewGameDC(opts)
}

func (d Deps) now() time.Time {
	if d.Clock != nil {
		return d.Clock.Now()
	}
	return time.Now()
}
