package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ParallelRealms/internal/backend/infra/persistence/memory"
	"ParallelRealms/internal/shared/backendapi"
	"ParallelRealms/modules/kit/errx"
)

// plainHasher 测试里不跑 bcrypt。
var plainHasher = PwdHasher{
	Hash:   func(pwd string) (string, error) { return "h:" + pwd, nil },
	Verify: func(hash, pwd string) bool { return hash == "h:"+pwd },
}

func fakeIssuer(uid, username string, isAdmin bool) (string, error) {
	return fmt.Sprintf("tok-%s-%v", uid, isAdmin), nil
}

func newUsers() *UserService {
	n := 0
	next := func() (string, error) {
		n++
		return fmt.Sprintf("uid-%d", n), nil
	}
	return NewUserService(memory.NewUserRepo(), plainHasher, fakeIssuer, next, "DonaldBurt")
}

func reg(name string) backendapi.RegisterRequest {
	return backendapi.RegisterRequest{Username: name, Email: name + "@realm.test", Password: "secret-1"}
}

func TestUserService_第一个用户是管理员(t *testing.T) {
	s := newUsers()
	ctx := context.Background()

	first, err := s.Register(ctx, reg("alice"))
	if err != nil || !first.User.IsAdmin || first.Token != "tok-uid-1-true" {
		t.Fatalf("期望第一个用户是管理员, res=%+v err=%v", first, err)
	}
	second, err := s.Register(ctx, reg("bob"))
	if err != nil || second.User.IsAdmin {
		t.Fatalf("期望第二个用户不是管理员, res=%+v err=%v", second, err)
	}
	owner, err := s.Register(ctx, reg("donaldburt"))
	if err != nil || !owner.User.IsAdmin {
		t.Fatalf("期望金库所有者总是管理员, res=%+v err=%v", owner, err)
	}
}

func TestUserService_注册校验(t *testing.T) {
	s := newUsers()
	ctx := context.Background()
	cases := []struct {
		req    backendapi.RegisterRequest
		reason Reason
	}{
		{backendapi.RegisterRequest{Username: "ab", Email: "a@b", Password: "secret-1"}, ReasonUsernameShort},
		{backendapi.RegisterRequest{Username: "alice", Email: "nope", Password: "secret-1"}, ReasonEmailInvalid},
		{backendapi.RegisterRequest{Username: "alice", Email: "a@b", Password: "123"}, ReasonPasswordShort},
	}
	for _, c := range cases {
		if _, err := s.Register(ctx, c.req); ReasonOf(err) != c.reason.Code {
			t.Fatalf("期望 %s，实际 %v", c.reason.Code, err)
		}
	}
	_, _ = s.Register(ctx, reg("alice"))
	if _, err := s.Register(ctx, reg("alice")); ReasonOf(err) != ReasonUserExist.Code {
		t.Fatalf("期望重名被拒, err=%v", err)
	}
}

func TestUserService_登录(t *testing.T) {
	s := newUsers()
	ctx := context.Background()
	_, _ = s.Register(ctx, reg("alice"))

	res, err := s.Login(ctx, backendapi.LoginRequest{Username: "alice", Password: "secret-1"})
	if err != nil || res.User.ID != "uid-1" || res.Token == "" {
		t.Fatalf("期望登录成功, res=%+v err=%v", res, err)
	}
	if _, err := s.Login(ctx, backendapi.LoginRequest{Username: "alice", Password: "wrong-pw"}); !errors.Is(err, errx.ErrUnauthorized) {
		t.Fatalf("期望密码错误 401, err=%v", err)
	}
	if _, err := s.Login(ctx, backendapi.LoginRequest{Username: "nobody", Password: "secret-1"}); ReasonOf(err) != ReasonBadCredential.Code {
		t.Fatalf("期望用户不存在与密码错误同一个 reason, err=%v", err)
	}
	if _, err := s.Login(ctx, backendapi.LoginRequest{Username: "alice"}); errx.CodeOf(err) != errx.CodeReqParamError {
		t.Fatalf("期望缺少密码 400, err=%v", err)
	}
}
