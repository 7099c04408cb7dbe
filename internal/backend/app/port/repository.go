package port

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ParallelRealms/internal/backend/domain"
)

// ErrSaveNotFound 存档不存在，由仓储返回，服务层转换为 NOT_FOUND。
var ErrSaveNotFound = errors.New("game save not found")

// SaveRecord 一个用户的云端存档。Data 是客户端提交的完整 GameState JSON，后端不解析细节。
type SaveRecord struct {
	UserID     string
	PlayerName string
	Level      int
	LastSaved  time.Time
	UpdatedAt  time.Time
	Data       json.RawMessage
}

type SaveStore interface {
	Upsert(ctx context.Context, rec SaveRecord) error
	Find(ctx context.Context, userID string) (*SaveRecord, error)
	Delete(ctx context.Context, userID string) error
}

// Ledger 全服金库，只有一行。
type Ledger interface {
	Increment(ctx context.Context, amount int64) (int64, error)
	Balance(ctx context.Context) (int64, error)
}

// ErrUserNotFound 用户不存在。
var ErrUserNotFound = errors.New("user not found")

type UserRepo interface {
	// GetUserByUsername 用户名精确匹配。
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// Exists 用户名或邮箱已被占用。
	Exists(ctx context.Context, username, email string) (bool, error)
	HasAdmin(ctx context.Context) (bool, error)
	Save(ctx context.Context, u domain.User) error
}
