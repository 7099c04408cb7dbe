package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ParallelRealms/internal/backend/app/port"
)

func TestSaveStore_覆盖与删除(t *testing.T) {
	s := NewSaveStore()
	ctx := context.Background()
	_ = s.Upsert(ctx, port.SaveRecord{UserID: "u-1", Level: 1, Data: []byte(`{"userId":"u-1"}`)})
	_ = s.Upsert(ctx, port.SaveRecord{UserID: "u-1", Level: 2, Data: []byte(`{"userId":"u-1"}`)})

	rec, err := s.Find(ctx, "u-1")
	if err != nil || rec.Level != 2 {
		t.Fatalf("期望读到覆盖后的存档, err=%v", err)
	}
	rec.Data[0] = 'x'
	again, _ := s.Find(ctx, "u-1")
	if again.Data[0] != '{' {
		t.Fatalf("期望返回的是副本")
	}
	if err := s.Delete(ctx, "u-1"); err != nil {
		t.Fatalf("期望删除成功: %v", err)
	}
	if _, err := s.Find(ctx, "u-1"); !errors.Is(err, port.ErrSaveNotFound) {
		t.Fatalf("期望删除后不存在, err=%v", err)
	}
	if err := s.Delete(ctx, "u-1"); !errors.Is(err, port.ErrSaveNotFound) {
		t.Fatalf("期望重复删除返回不存在")
	}
}

func TestLedger_并发累加(t *testing.T) {
	l := NewLedger(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.Increment(context.Background(), 2)
		}()
	}
	wg.Wait()
	if got, _ := l.Balance(context.Background()); got != 100 {
		t.Fatalf("期望 100，实际 %d", got)
	}
}
