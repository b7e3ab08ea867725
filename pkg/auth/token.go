package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const TokenType = "Bearer"

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrTokenNotFound = errors.New("token not found")

// Token is an opaque bearer token. It is valid until ExpiresAt, exclusive.
type Token struct {
	Value     uuid.UUID
	UserId    int
	ExpiresAt time.Time
}

func (t Token) ExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
