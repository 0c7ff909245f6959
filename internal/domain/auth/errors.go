package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrResetTokenInvalid  = errors.New("password reset token is invalid")
	ErrResetTokenExpired  = errors.New("password reset token has expired")
	ErrResetTokenUsed     = errors.New("password reset token has already been used")
)
