package memory

import (
	"context"
	"encoding/json"
	"sync"

	"ParallelRealms/internal/backend/app/port"
)

// SaveStore 进程内存档，backend 配置 save_store=memory 时使用，也用于测试。
type SaveStore struct {
	mu   sync.RWMutex
	recs map[string]port.SaveRecord
}

func NewSaveStore() *SaveStore {
	return &SaveStore{recs: make(map[string]port.SaveRecord)}
}

func (s *SaveStore) Upsert(ctx context.Context, rec port.SaveRecord) error {
	rec.Data = append(json.RawMessage(nil), rec.Data...)
	s.mu.Lock()
	s.recs[rec.UserID] = rec
	s.mu.Unlock()
	return nil
}

func (s *SaveStore) Find(ctx context.Context, userID string) (*port.SaveRecord, error) {
	s.mu.RLock()
	rec, ok := s.recs[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, port.ErrSaveNotFound
	}
	rec.Data = append(json.RawMessage(nil), rec.Data...)
	return &rec, nil
}

func (s *SaveStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[userID]; !ok {
		return port.ErrSaveNotFound
	}
	delete(s.recs, userID)
	return nil
}
