// Package backendapi 是存档后端的路由和报文，realm 的 http 客户端和 backend 的 gin handler 共用。
package backendapi

import "time"

const (
	PathSave    = "/api/game/save"
	PathLoad    = "/api/game/load/"   // + userId
	PathDelete  = "/api/game/delete/" // + userId
	PathList    = "/api/game/list/"   // + userId
	PathSpend   = "/api/economy/spend"
	PathBank    = "/api/economy/bank"
	ParamUserID = "userId"
)

// Envelope 与 transport/http.Response 同构，Data 延迟解码。
type Envelope[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

type SaveResult struct {
	UserID  string    `json:"userId"`
	SavedAt time.Time `json:"savedAt"`
}

// SaveMeta 存档列表项。
type SaveMeta struct {
	UserID     string    `json:"userId"`
	PlayerName string    `json:"playerName"`
	Level      int       `json:"level"`
	LastSaved  time.Time `json:"lastSaved"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type SpendRequest struct {
	Amount float64 `json:"amount"`
}

type SpendResult struct {
	Success       bool `json:"success"`
	OwnerBankGold int  `json:"ownerBankGold"`
}

type BankResult struct {
	OwnerBankGold int `json:"ownerBankGold"`
}

const (
	PathRegister = "/api/auth/register"
	PathLogin    = "/api/auth/login"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

// AuthResult token 用于 realm.login 和后端所有存档接口。
type AuthResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}
