package model

import "time"

// GlobalEconomy 全服金库，只有 id=1 这一行。
type GlobalEconomy struct {
	Id            uint32    `gorm:"column:id;type:int UNSIGNED;primaryKey;not null;" json:"id"`
	OwnerBankGold int64     `gorm:"column:owner_bank_gold;type:bigint;comment:金库;not null;default:0;" json:"ownerBankGold"` // 金库
	UpdatedAt     time.Time `gorm:"column:updated_at;not null;" json:"updatedAt"`
}

func (g *GlobalEconomy) TableName() string {
	return "global_economy"
}
