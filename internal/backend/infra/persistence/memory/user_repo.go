package memory

import (
	"context"
	"strings"
	"sync"

	"ParallelRealms/internal/backend/app/port"
	"ParallelRealms/internal/backend/domain"
)

type UserRepo struct {
	mu    sync.RWMutex
	users map[string]domain.User // uid -> user
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]domain.User)}
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, port.ErrUserNotFound
}

func (r *UserRepo) Exists(ctx context.Context, username, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username || strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) HasAdmin(ctx context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.IsAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) Save(ctx context.Context, u domain.User) error {
	r.mu.Lock()
	r.users[u.UId] = u
	r.mu.Unlock()
	return nil
}
