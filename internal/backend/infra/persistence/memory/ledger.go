package memory

import (
	"context"
	"sync"
)

type Ledger struct {
	mu   sync.Mutex
	gold int64
}

func NewLedger(initial int64) *Ledger {
	return &Ledger{gold: initial}
}

func (l *Ledger) Increment(ctx context.Context, amount int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gold += amount
	return l.gold, nil
}

func (l *Ledger) Balance(ctx context.Context) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gold, nil
}
