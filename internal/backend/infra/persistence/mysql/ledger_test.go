package mysql

import (
	"context"
	"os"
	"testing"

	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 需要真实数据库：PR_TEST_MYSQL_DSN 未设置时跳过。
func TestLedger_累加返回总额(t *testing.T) {
	dsn := os.Getenv("PR_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("PR_TEST_MYSQL_DSN not set")
	}
	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("期望连接成功: %v", err)
	}
	ctx := context.Background()
	l := NewLedger(db)
	if err := l.Migrate(ctx); err != nil {
		t.Fatalf("期望建表成功: %v", err)
	}
	before, err := l.Balance(ctx)
	if err != nil {
		t.Fatalf("期望读金库成功: %v", err)
	}
	after, err := l.Increment(ctx, 25)
	if err != nil || after != before+25 {
		t.Fatalf("期望累加 25，before=%d after=%d err=%v", before, after, err)
	}
}
