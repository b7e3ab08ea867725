package auth

import (
	"context"
	"time"

	"github.com/fintrack/fintrack/pkg/user"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go

type TokenRepo interface {
	StoreToken(ctx context.Context, token Token) error
	// FindToken returns ErrTokenNotFound when no token has this value.
	FindToken(ctx context.Context, value uuid.UUID) (Token, error)
	// DeleteExpired removes tokens that expired at or before now and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// UserProvider looks up the accounts tokens are issued to.
type UserProvider interface {
	GetUser(ctx context.Context, id int) (user.User, error)
	GetUserByUsername(ctx context.Context, username string) (user.User, error)
}
