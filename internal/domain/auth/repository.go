package auth

import "context"

// PasswordResetRepository defines the interface for reset token data access
type PasswordResetRepository interface {
	// Create creates a new reset token record
	Create(ctx context.Context, reset PasswordReset) (PasswordReset, error)

	// GetByToken retrieves a reset record by token
	GetByToken(ctx context.Context, token string) (PasswordReset, error)

	// MarkUsed consumes the token
	MarkUsed(ctx context.Context, id string) error
}
