package security

import (
	"testing"
	"time"
)

func TestAward_缺少JWT_SECRET应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	SetSecret("")
	if _, err := Award("u-1", "hero", false); err == nil {
		t.Fatalf("期望 JWT_SECRET 为空时 Award 返回错误")
	}
}

func TestAwardParse_正常签发并解析(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := Award("u-42", "DonaldBurt", true)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	if token == "" {
		t.Fatalf("期望 token 非空")
	}

	_, claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if claims == nil || claims.UID != "u-42" || claims.Username != "DonaldBurt" || !claims.IsAdmin {
		t.Fatalf("期望 claims 原样带回, got=%+v", claims)
	}
}

func TestParseToken_环境变量优先于配置(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	SetSecret("from-config")
	t.Cleanup(func() { SetSecret("") })

	token, err := Award("u-1", "hero", false)
	if err != nil {
		t.Fatalf("期望使用配置密钥签发: %v", err)
	}
	t.Setenv("JWT_SECRET", "from-env")
	if _, _, err := ParseToken(token); err == nil {
		t.Fatalf("期望环境变量覆盖配置密钥后验签失败")
	}
}

func TestPassword_哈希校验(t *testing.T) {
	old := PasswordCost
	PasswordCost = 4
	defer func() { PasswordCost = old }()

	h, err := HashPassword("secret-1")
	if err != nil {
		t.Fatalf("期望哈希成功: %v", err)
	}
	if h == "secret-1" || !CheckPassword(h, "secret-1") || CheckPassword(h, "secret-2") {
		t.Fatalf("期望只有原密码能通过校验")
	}
}

func TestParseToken_过期拒绝(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")
	token, err := awardAt(time.Now().Add(-8*24*time.Hour), "u-1", "hero", false)
	if err != nil {
		t.Fatalf("awardAt err=%v", err)
	}
	if _, _, err := ParseToken(token); err == nil {
		t.Fatalf("期望过期令牌被拒绝")
	}
}
