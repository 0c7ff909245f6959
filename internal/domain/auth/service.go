package auth

import "context"

// AuthService verifies credentials and manages passwords.
type AuthService interface {
	// Login verifies email+password and issues an access token
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// ChangePassword replaces the caller's password after verifying the
	// current one
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error

	// ForgotPassword issues a reset token and emails a reset link; it
	// never discloses whether the email is registered
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error

	// ResetPassword consumes a valid reset token and sets the new password
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}
