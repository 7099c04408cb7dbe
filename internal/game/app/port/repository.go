package port

import (
	"context"

	"ParallelRealms/internal/game/entity"
)

// LocalCache 是本机存档，会话内的权威数据。Load 没有存档时返回 (nil, nil)。
type LocalCache interface {
	Load(ctx context.Context, key string) (*entity.GameState, error)
	Save(ctx context.Context, key string, s entity.GameState) error
	Delete(ctx context.Context, key string) error
}

// RemoteStore 是登录用户的云端存档。LoadGame 没有存档时返回 (nil, nil)。
type RemoteStore interface {
	SaveGame(ctx context.Context, s entity.GameState) error
	LoadGame(ctx context.Context, userID string) (*entity.GameState, error)
	DeleteGame(ctx context.Context, userID string) error
}

// Economy 是全服金币账本。
type Economy interface {
	RecordSpend(ctx context.Context, amount int) (ownerBankGold int, err error)
	Bank(ctx context.Context) (ownerBankGold int, err error)
}
