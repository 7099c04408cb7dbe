package app

import (
	"errors"

	"ParallelRealms/modules/kit/errx"
)

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{Code: c, Message: m}
}

var (
	ReasonUserIDMissing  = NewReason("USER_ID_MISSING", "User ID required")
	ReasonBadSaveBody    = NewReason("SAVE_BODY_INVALID", "Invalid game state")
	ReasonSaveNotFound   = NewReason("SAVE_NOT_FOUND", "No saved game found")
	ReasonOtherUser      = NewReason("OTHER_USER_SAVE", "Cannot access another user's save")
	ReasonInvalidAmount  = NewReason("INVALID_AMOUNT", "Invalid amount")
	ReasonAdminRequired  = NewReason("ADMIN_REQUIRED", "Admin access denied")
	ReasonOwnerRequired  = NewReason("OWNER_REQUIRED", "Owner access denied")
	ReasonSaveStoreFail  = NewReason("SAVE_STORE_UNAVAILABLE", "Save store unavailable")
	ReasonLedgerFail     = NewReason("LEDGER_UNAVAILABLE", "Economy ledger unavailable")
	ReasonSaveDataBroken = NewReason("SAVE_DATA_CORRUPT", "Stored save is corrupt")

	ReasonUsernameShort   = NewReason("USERNAME_TOO_SHORT", "Username must be at least 3 characters")
	ReasonEmailInvalid    = NewReason("EMAIL_INVALID", "Invalid email address")
	ReasonPasswordShort   = NewReason("PASSWORD_TOO_SHORT", "Password must be at least 6 characters")
	ReasonUserExist       = NewReason("USER_EXIST", "Username already exists")
	ReasonCredentialEmpty = NewReason("CREDENTIAL_MISSING", "Username and password required")
	ReasonBadCredential   = NewReason("AUTH_INVALID_CREDENTIAL", "Invalid username or password")
	ReasonUserRepoFail    = NewReason("USER_REPO_UNAVAILABLE", "User store unavailable")
	ReasonTokenIssue      = NewReason("TOKEN_ISSUE", "Failed to issue token")
)

// 哨兵错误：通过 WithReason/WithData/WithCause 派生，不要修改。
var (
	ErrInvalidParam = errx.ErrReqParamERR
	ErrNotFound     = errx.ErrNotFound
	ErrForbidden    = errx.ErrForbidden
	ErrUnavailable  = errx.ErrUnavailable
	ErrCorrupt      = errx.ErrCorrupt
	ErrUnauthorized = errx.ErrUnauthorized
	ErrInternal     = errx.ErrInternal
)

// reject 挂上 reason 和对外文案。
func reject(base *errx.Error, r Reason) *errx.Error {
	return base.WithReason(r).WithData("message", r.Message)
}

// ReasonOf 取错误上挂的 reason code，没有时为空。
func ReasonOf(err error) string {
	var e *errx.Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Reason()
}

// MessageOf 对外文案，没有挂 reason 时用错误码自带的。
func MessageOf(err error) string {
	var e *errx.Error
	if !errors.As(err, &e) {
		return "Server error"
	}
	if m, ok := e.Data()["message"].(string); ok && m != "" {
		return m
	}
	return e.Msg()
}
