package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type TokenRepoStub struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]Token
}

func NewTokenRepoStub() *TokenRepoStub {
	return &TokenRepoStub{tokens: map[uuid.UUID]Token{}}
}

func (s *TokenRepoStub) StoreToken(_ context.Context, token Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.Value] = token
	return nil
}

func (s *TokenRepoStub) FindToken(_ context.Context, value uuid.UUID) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[value]
	if !ok {
		return Token{}, ErrTokenNotFound
	}
	return token, nil
}

func (s *TokenRepoStub) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for value, token := range s.tokens {
		if token.ExpiredAt(now) {
			delete(s.tokens, value)
			removed++
		}
	}
	return removed, nil
}

func (s *TokenRepoStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
