package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/etenderhq/etender-backend-go/internal/config"
	"github.com/etenderhq/etender-backend-go/internal/domain/user"
	appHTTP "github.com/etenderhq/etender-backend-go/internal/handler/http"
	"github.com/etenderhq/etender-backend-go/internal/pkg/database"
	"github.com/etenderhq/etender-backend-go/internal/pkg/email"
	"github.com/etenderhq/etender-backend-go/internal/pkg/jwt"
	"github.com/etenderhq/etender-backend-go/internal/repository/postgresql"
	authService "github.com/etenderhq/etender-backend-go/internal/service/auth"
	bidService "github.com/etenderhq/etender-backend-go/internal/service/bid"
	notificationService "github.com/etenderhq/etender-backend-go/internal/service/notification"
	tenderService "github.com/etenderhq/etender-backend-go/internal/service/tender"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	if err := database.RunMigrations(cfg.Database.MigrationsURL, dsn); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	tenderRepo := postgresql.NewTenderRepository(db)
	bidRepo := postgresql.NewBidRepository(db)
	resetRepo := postgresql.NewPasswordResetRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	dispatcher := notificationService.NewDispatcher(userRepo, emailService, cfg.App.FrontendURL)
	tenderSvc := tenderService.NewTenderService(tenderRepo, bidRepo, userRepo, dispatcher)
	bidSvc := bidService.NewBidService(bidRepo, tenderRepo)
	authSvc := authService.NewAuthService(db, userRepo, resetRepo, jwtService, emailService, cfg.App.FrontendURL)

	if err := seedAdmin(context.Background(), userRepo, cfg.Admin); err != nil {
		log.Fatal("Failed to seed admin account: ", err)
	}

	authHandler := appHTTP.NewAuthHandler(authSvc)
	tenderHandler := appHTTP.NewTenderHandler(tenderSvc, cfg.App.CompanyID)
	bidHandler := appHTTP.NewBidHandler(bidSvc)

	router := appHTTP.NewRouter(cfg, jwtService, authHandler, tenderHandler, bidHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("server starting", "port", cfg.App.Port, "env", cfg.App.Env)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

// seedAdmin provisions the configured admin account on startup. Skipped
// when the account exists or no credentials are configured.
func seedAdmin(ctx context.Context, userRepo user.UserRepository, cfg config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		slog.Info("admin seeding skipped, no credentials configured")
		return nil
	}

	_, err := userRepo.GetByEmail(ctx, cfg.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = userRepo.Create(ctx, user.User{
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return nil
		}
		return err
	}

	slog.Info("admin account seeded", "email", cfg.Email)
	return nil
}
