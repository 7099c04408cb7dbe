package mysql

import (
	"context"

	"ParallelRealms/internal/backend/errs"
	"ParallelRealms/internal/backend/infra/persistence/mysql/model"

	"gorm.io/gorm"
)

const economyRowID = 1

type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	return &Ledger{db: tx}
}

const (
	OpMigrate   = "repo.economy.Migrate"
	OpIncrement = "repo.economy.Increment"
	OpBalance   = "repo.economy.Balance"
)

// Migrate 建表并保证金库行存在。
func (l *Ledger) Migrate(ctx context.Context) error {
	db := l.db.WithContext(ctx)
	if err := db.AutoMigrate(&model.GlobalEconomy{}); err != nil {
		return errs.Wrap(OpMigrate, errs.KindInfra, err, nil)
	}
	_, err := l.row(ctx)
	return err
}

// Increment 在事务里原子累加，返回累加后的总额。
func (l *Ledger) Increment(ctx context.Context, amount int64) (int64, error) {
	var total int64
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txLedger := l.WithTx(tx)
		if _, err := txLedger.row(ctx); err != nil {
			return err
		}
		res := tx.Model(&model.GlobalEconomy{}).
			Where("id = ?", economyRowID).
			Update("owner_bank_gold", gorm.Expr("owner_bank_gold + ?", amount))
		if res.Error != nil {
			return errs.Wrap(OpIncrement, errs.KindInfra, res.Error, map[string]any{"amount": amount})
		}
		m, err := txLedger.row(ctx)
		if err != nil {
			return err
		}
		total = m.OwnerBankGold
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (l *Ledger) Balance(ctx context.Context) (int64, error) {
	m, err := l.row(ctx)
	if err != nil {
		return 0, err
	}
	return m.OwnerBankGold, nil
}

// row 读金库行，不存在时以 0 创建。
func (l *Ledger) row(ctx context.Context) (*model.GlobalEconomy, error) {
	var m model.GlobalEconomy
	err := l.db.WithContext(ctx).
		Where(model.GlobalEconomy{Id: economyRowID}).
		FirstOrCreate(&m).Error
	if err != nil {
		return nil, errs.Wrap(OpBalance, errs.KindInfra, err, nil)
	}
	return &m, nil
}
