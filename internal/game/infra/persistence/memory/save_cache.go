package memory

import (
	"context"
	"encoding/json"
	"sync"

	"ParallelRealms/internal/game/app/port"
	"ParallelRealms/internal/game/entity"
	"ParallelRealms/modules/kit/errx"
)

// SaveCache 进程内的本地存档，按 JSON 保存以便和落盘实现行为一致。
type SaveCache struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewSaveCache() *SaveCache {
	return &SaveCache{data: make(map[string][]byte)}
}

func (c *SaveCache) Load(ctx context.Context, key string) (*entity.GameState, error) {
	_ = ctx
	c.mu.RLock()
	raw, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var s entity.GameState
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errx.ErrCorrupt.WithReason(port.ReasonSnapshotCorrupt).WithData("key", key).WithCause(err)
	}
	return &s, nil
}

func (c *SaveCache) Save(ctx context.Context, key string, s entity.GameState) error {
	_ = ctx
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	c.PutRaw(key, raw)
	return nil
}

func (c *SaveCache) Delete(ctx context.Context, key string) error {
	_ = ctx
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
	return nil
}

// PutRaw 直接写入原始字节。
func (c *SaveCache) PutRaw(key string, raw []byte) {
	c.mu.Lock()
	c.data[key] = append([]byte(nil), raw...)
	c.mu.Unlock()
}

func (c *SaveCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
