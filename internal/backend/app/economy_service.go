package app

import (
	"context"
	"math"

	"ParallelRealms/internal/backend/app/port"
	"ParallelRealms/internal/backend/domain"
)

type EconomyService struct {
	ledger port.Ledger
	owner  string
}

// NewEconomyService owner 为金库所有者用户名，比较时不区分大小写。
func NewEconomyService(ledger port.Ledger, owner string) *EconomyService {
	return &EconomyService{ledger: ledger, owner: owner}
}

// Spend 金币消耗累加进金库，amount 向下取整。
func (s *EconomyService) Spend(ctx context.Context, amount float64) (int, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, reject(ErrInvalidParam, ReasonInvalidAmount).WithData("amount", amount)
	}
	inc := int64(math.Floor(amount))
	total, err := s.ledger.Increment(ctx, inc)
	if err != nil {
		return 0, reject(ErrUnavailable, ReasonLedgerFail).WithData("amount", inc).WithCause(err)
	}
	return int(total), nil
}

// Bank 只有管理员且是金库所有者才能查看。
func (s *EconomyService) Bank(ctx context.Context, caller Caller) (int, error) {
	if !caller.IsAdmin {
		return 0, reject(ErrForbidden, ReasonAdminRequired).WithData("user_id", caller.UserID)
	}
	if !domain.SameName(caller.Username, s.owner) {
		return 0, reject(ErrForbidden, ReasonOwnerRequired).WithData("username", caller.Username)
	}
	total, err := s.ledger.Balance(ctx)
	if err != nil {
		return 0, reject(ErrUnavailable, ReasonLedgerFail).WithCause(err)
	}
	return int(total), nil
}
