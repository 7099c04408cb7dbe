package security

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrJWTSecretMissing = errors.New("JWT_SECRET is not set")

// Claims uid 与存档命名空间一致；IsAdmin 只用于金库查询。
type Claims struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

var (
	secretMu   sync.RWMutex
	confSecret string
)

// SetSecret 设置配置文件里的密钥，环境变量 JWT_SECRET 优先。
func SetSecret(s string) {
	secretMu.Lock()
	confSecret = s
	secretMu.Unlock()
}

const (
	tokenIssuer = "parallel-realms"
	tokenTTL    = 7 * 24 * time.Hour
)

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secretMu.RLock()
		secret = confSecret
		secretMu.RUnlock()
	}
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}
	return []byte(secret), nil
}

// Award 签发 HS256 令牌，backend 登录和 realm 校验共用一个密钥。
func Award(uid, username string, isAdmin bool) (string, error) {
	return awardAt(time.Now(), uid, username, isAdmin)
}

func awardAt(now time.Time, uid, username string, isAdmin bool) (string, error) {
	key, err := jwtSecret()
	if err != nil {
		return "", err
	}
	claims := &Claims{
		UID:      uid,
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

var parser = jwt.NewParser(
	jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	jwt.WithIssuer(tokenIssuer),
	jwt.WithExpirationRequired(),
)

// ParseToken 校验签名、签发方和过期时间，uid 不能为空。
func ParseToken(tokenStr string) (*jwt.Token, *Claims, error) {
	key, err := jwtSecret()
	if err != nil {
		return nil, nil, err
	}
	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return key, nil
	})
	switch {
	case err != nil:
		return nil, nil, err
	case !token.Valid || claims.UID == "":
		return nil, nil, jwt.ErrTokenInvalidClaims
	}
	return token, claims, nil
}
