package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type TokenRepoImpl struct {
	db *pgxpool.Pool
}

func NewTokenRepo(db *pgxpool.Pool) *TokenRepoImpl {
	return &TokenRepoImpl{db: db}
}

func (r *TokenRepoImpl) StoreToken(ctx context.Context, token Token) error {
	query := `INSERT INTO auth_token (token, user_id, expires_at) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, token.Value, token.UserId, token.ExpiresAt)
	if err != nil {
		err := fmt.Errorf("could not store token: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *TokenRepoImpl) FindToken(ctx context.Context, value uuid.UUID) (Token, error) {
	query := `SELECT token, user_id, expires_at FROM auth_token WHERE token = $1`
	var token Token
	err := r.db.QueryRow(ctx, query, value).Scan(&token.Value, &token.UserId, &token.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Token{}, ErrTokenNotFound
		}
		err := fmt.Errorf("could not find token: %w", err)
		log.Error(err)
		return Token{}, err
	}
	return token, nil
}

func (r *TokenRepoImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM auth_token WHERE expires_at <= $1`, now)
	if err != nil {
		err := fmt.Errorf("could not delete expired tokens: %w", err)
		log.Error(err)
		return 0, err
	}
	return result.RowsAffected(), nil
}
