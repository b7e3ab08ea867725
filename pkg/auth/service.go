package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	// Authenticate exchanges credentials for a new token.
	Authenticate(ctx context.Context, username, password string) (Token, error)
	// Validate returns the owner of a live token, or ErrInvalidToken.
	Validate(ctx context.Context, value string) (user.User, error)
}

type ServiceImpl struct {
	tokens TokenRepo
	users  UserProvider
	clock  utils.Clock
	ttl    time.Duration
}

func NewService(tokens TokenRepo, users UserProvider, clock utils.Clock, ttl time.Duration) *ServiceImpl {
	return &ServiceImpl{tokens: tokens, users: users, clock: clock, ttl: ttl}
}

func (s *ServiceImpl) Authenticate(ctx context.Context, username, password string) (Token, error) {
	if username == "" || password == "" {
		return Token{}, ErrInvalidCredentials
	}
	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			log.Infof("authentication failed for unknown user %s", username)
			return Token{}, ErrInvalidCredentials
		}
		return Token{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		log.Infof("authentication failed for user %s", username)
		return Token{}, ErrInvalidCredentials
	}

	now := s.clock.Now()
	token := Token{Value: uuid.New(), UserId: u.Id, ExpiresAt: now.Add(s.ttl)}
	if err := s.tokens.StoreToken(ctx, token); err != nil {
		return Token{}, fmt.Errorf("failed to issue token: %w", err)
	}

	removed, err := s.tokens.DeleteExpired(ctx, now)
	if err != nil {
		log.Warnf("failed to purge expired tokens: %v", err)
	} else if removed > 0 {
		log.Debugf("purged %d expired tokens", removed)
	}
	return token, nil
}

func (s *ServiceImpl) Validate(ctx context.Context, value string) (user.User, error) {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return user.User{}, ErrInvalidToken
	}
	token, err := s.tokens.FindToken(ctx, parsed)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return user.User{}, ErrInvalidToken
		}
		return user.User{}, err
	}
	if token.ExpiredAt(s.clock.Now()) {
		log.Debugf("token of user %d expired at %s", token.UserId, token.ExpiresAt)
		return user.User{}, ErrInvalidToken
	}

	u, err := s.users.GetUser(ctx, token.UserId)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, ErrInvalidToken
		}
		return user.User{}, err
	}
	return u, nil
}
