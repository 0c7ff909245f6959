package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/etenderhq/etender-backend-go/internal/domain/auth"
	"github.com/etenderhq/etender-backend-go/internal/domain/user"
	"github.com/etenderhq/etender-backend-go/internal/pkg/database"
	"github.com/etenderhq/etender-backend-go/internal/pkg/email"
	"github.com/etenderhq/etender-backend-go/internal/pkg/jwt"
	"github.com/etenderhq/etender-backend-go/internal/pkg/validator"
	"github.com/etenderhq/etender-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

type AuthServiceImpl struct {
	db          *database.DB
	userRepo    user.UserRepository
	resetRepo   auth.PasswordResetRepository
	jwtService  jwt.Service
	emailSvc    email.EmailService
	frontendURL string
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	resetRepo auth.PasswordResetRepository,
	jwtService jwt.Service,
	emailSvc email.EmailService,
	frontendURL string,
) auth.AuthService {
	return &AuthServiceImpl{
		db:          db,
		userRepo:    userRepo,
		resetRepo:   resetRepo,
		jwtService:  jwtService,
		emailSvc:    emailSvc,
		frontendURL: frontendURL,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, validator.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Email:       userData.Email,
		Role:        string(userData.Role),
	}, nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, userID string, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return a.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// ForgotPassword implements auth.AuthService. The response never
// discloses whether the email is registered.
func (a *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.userRepo.GetByEmail(ctx, validator.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	reset, err := a.resetRepo.Create(ctx, auth.PasswordReset{
		UserID:    userData.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	})
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", a.frontendURL, reset.Token)
	if err := a.emailSvc.SendPasswordReset(userData.Email, resetLink, reset.ExpiresAt.Format(time.RFC1123)); err != nil {
		// The token row exists; delivery failure is not surfaced to the
		// caller, matching the fire-and-forget notifier contract.
		slog.Error("failed to send password reset email", "error", err)
	}

	return nil
}

// ResetPassword implements auth.AuthService.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	reset, err := a.resetRepo.GetByToken(ctx, req.Token)
	if err != nil {
		return err
	}

	if reset.IsUsed() {
		return auth.ErrResetTokenUsed
	}
	if reset.IsExpired(time.Now()) {
		return auth.ErrResetTokenExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Consuming the token and replacing the password happen together.
	return postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		if err := a.resetRepo.MarkUsed(txCtx, reset.ID); err != nil {
			return err
		}
		return a.userRepo.UpdatePassword(txCtx, reset.UserID, string(hash))
	})
}
