package user

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	// EnsureUser creates the account when no user with this username exists. An existing account is
	// returned unchanged, its password is not reset.
	EnsureUser(ctx context.Context, username, password string) (User, error)
}

type UserServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *UserServiceImpl {
	return &UserServiceImpl{repo: repo}
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.GetUser(ctx, userId)
}

func (u *UserServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.repo.GetUser(ctx, id)
}

func (u *UserServiceImpl) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return u.repo.GetUserByUsername(ctx, username)
}

func (u *UserServiceImpl) EnsureUser(ctx context.Context, username, password string) (User, error) {
	if err := validateCredentials(username, password); err != nil {
		return User{}, err
	}
	existing, err := u.repo.GetUserByUsername(ctx, username)
	if err == nil {
		log.Debugf("user %s already exists", username)
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user := User{Username: username, PasswordHash: string(hash)}
	user.Id, err = u.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	log.Infof("Created user %s", username)
	return user, nil
}
