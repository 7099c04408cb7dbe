package mysql

import (
	"context"
	"errors"

	"ParallelRealms/internal/backend/app/port"
	"ParallelRealms/internal/backend/domain"
	"ParallelRealms/internal/backend/errs"

	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

const (
	OpMigrateUser       = "repo.user.Migrate"
	OpGetUserByUsername = "repo.user.GetUserByUsername"
	OpUserExists        = "repo.user.Exists"
	OpHasAdmin          = "repo.user.HasAdmin"
	OpSaveUser          = "repo.user.Save"
)

func (r *UserRepo) Migrate(ctx context.Context) error {
	err := r.db.WithContext(ctx).AutoMigrate(&domain.User{})
	return errs.Wrap(OpMigrateUser, errs.KindInfra, err, nil)
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, port.ErrUserNotFound
	default:
		return nil, errs.Wrap(OpGetUserByUsername, errs.KindInfra, err, map[string]any{"username": username})
	}
}

func (r *UserRepo) Exists(ctx context.Context, username, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error
	if err != nil {
		return false, errs.Wrap(OpUserExists, errs.KindInfra, err, map[string]any{"username": username})
	}
	return n > 0, nil
}

func (r *UserRepo) HasAdmin(ctx context.Context) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("is_admin = ?", true).Count(&n).Error
	if err != nil {
		return false, errs.Wrap(OpHasAdmin, errs.KindInfra, err, nil)
	}
	return n > 0, nil
}

func (r *UserRepo) Save(ctx context.Context, u domain.User) error {
	err := r.db.WithContext(ctx).Save(&u).Error
	return errs.Wrap(OpSaveUser, errs.KindInfra, err, map[string]any{"uid": u.UId})
}
