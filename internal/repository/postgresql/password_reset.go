package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/etenderhq/etender-backend-go/internal/domain/auth"
	"github.com/etenderhq/etender-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type passwordResetRepositoryImpl struct {
	db *database.DB
}

// NewPasswordResetRepository creates a new password reset repository instance
func NewPasswordResetRepository(db *database.DB) auth.PasswordResetRepository {
	return &passwordResetRepositoryImpl{db: db}
}

// Create implements auth.PasswordResetRepository.
func (r *passwordResetRepositoryImpl) Create(ctx context.Context, reset auth.PasswordReset) (auth.PasswordReset, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO password_resets (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, token, expires_at, used_at, created_at
	`

	var created auth.PasswordReset
	err := q.QueryRow(ctx, query, reset.UserID, reset.Token, reset.ExpiresAt).Scan(
		&created.ID,
		&created.UserID,
		&created.Token,
		&created.ExpiresAt,
		&created.UsedAt,
		&created.CreatedAt,
	)
	if err != nil {
		return auth.PasswordReset{}, fmt.Errorf("failed to create password reset: %w", err)
	}

	return created, nil
}

// GetByToken implements auth.PasswordResetRepository.
func (r *passwordResetRepositoryImpl) GetByToken(ctx context.Context, token string) (auth.PasswordReset, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, token, expires_at, used_at, created_at
		FROM password_resets
		WHERE token = $1
	`

	var found auth.PasswordReset
	err := q.QueryRow(ctx, query, token).Scan(
		&found.ID,
		&found.UserID,
		&found.Token,
		&found.ExpiresAt,
		&found.UsedAt,
		&found.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.PasswordReset{}, auth.ErrResetTokenInvalid
		}
		return auth.PasswordReset{}, fmt.Errorf("failed to get password reset by token: %w", err)
	}

	return found, nil
}

// MarkUsed implements auth.PasswordResetRepository.
func (r *passwordResetRepositoryImpl) MarkUsed(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE password_resets
		SET used_at = NOW()
		WHERE id = $1 AND used_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark password reset used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrResetTokenUsed
	}

	return nil
}
