package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"ParallelRealms/internal/backend/app/port"
	"ParallelRealms/internal/backend/domain"
	"ParallelRealms/internal/shared/backendapi"
)

// PwdHasher 密码哈希和校验，生产用 bcrypt。
type PwdHasher struct {
	Hash   func(pwd string) (string, error)
	Verify func(hash, pwd string) bool
}

// TokenIssuer 签发 realm 和后端共用的 JWT。
type TokenIssuer func(uid, username string, isAdmin bool) (string, error)

type UserService struct {
	userRepo port.UserRepo
	hasher   PwdHasher
	issue    TokenIssuer
	nextID   func() (string, error)
	owner    string
	now      func() time.Time
}

// NewUserService owner 注册时总是管理员；还没有管理员时第一个注册的用户也是。
func NewUserService(userRepo port.UserRepo, hasher PwdHasher, issue TokenIssuer, nextID func() (string, error), owner string) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		issue:    issue,
		nextID:   nextID,
		owner:    owner,
		now:      time.Now,
	}
}

func (s *UserService) Register(ctx context.Context, req backendapi.RegisterRequest) (*backendapi.AuthResult, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	switch {
	case len(username) < 3:
		return nil, reject(ErrInvalidParam, ReasonUsernameShort)
	case !strings.Contains(email, "@"):
		return nil, reject(ErrInvalidParam, ReasonEmailInvalid)
	case len(req.Password) < 6:
		return nil, reject(ErrInvalidParam, ReasonPasswordShort)
	}

	exist, err := s.userRepo.Exists(ctx, username, email)
	if err != nil {
		return nil, reject(ErrUnavailable, ReasonUserRepoFail).WithCause(err)
	}
	if exist {
		return nil, reject(ErrInvalidParam, ReasonUserExist).WithData("username", username)
	}
	hasAdmin, err := s.userRepo.HasAdmin(ctx)
	if err != nil {
		return nil, reject(ErrUnavailable, ReasonUserRepoFail).WithCause(err)
	}

	uid, err := s.nextID()
	if err != nil {
		return nil, reject(ErrInternal, ReasonTokenIssue).WithCause(err)
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, reject(ErrInternal, ReasonTokenIssue).WithCause(err)
	}
	now := s.now()
	u := domain.User{
		UId:       uid,
		Username:  username,
		Email:     email,
		Passwd:    hash,
		IsAdmin:   !hasAdmin || domain.SameName(username, s.owner),
		LoginTime: now,
		Ctime:     now,
		Mtime:     now,
	}
	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, reject(ErrUnavailable, ReasonUserRepoFail).WithData("username", username).WithCause(err)
	}
	return s.award(u)
}

func (s *UserService) Login(ctx context.Context, req backendapi.LoginRequest) (*backendapi.AuthResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, reject(ErrInvalidParam, ReasonCredentialEmpty)
	}
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		// 区分用户不存在和存储不可用
		switch {
		case errors.Is(err, port.ErrUserNotFound):
			return nil, reject(ErrUnauthorized, ReasonBadCredential).WithData("username", req.Username)
		default:
			return nil, reject(ErrUnavailable, ReasonUserRepoFail).WithCause(err)
		}
	}
	if !user.CheckPassword(req.Password, s.hasher.Verify) {
		return nil, reject(ErrUnauthorized, ReasonBadCredential).WithData("username", req.Username)
	}

	user.LoginTime = s.now()
	if err := s.userRepo.Save(ctx, *user); err != nil {
		return nil, reject(ErrUnavailable, ReasonUserRepoFail).WithData("uid", user.UId).WithCause(err)
	}
	return s.award(*user)
}

func (s *UserService) award(u domain.User) (*backendapi.AuthResult, error) {
	token, err := s.issue(u.UId, u.Username, u.IsAdmin)
	if err != nil {
		return nil, reject(ErrInternal, ReasonTokenIssue).WithData("uid", u.UId).WithCause(err)
	}
	return &backendapi.AuthResult{
		Token: token,
		User:  backendapi.UserView{ID: u.UId, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin},
	}, nil
}
