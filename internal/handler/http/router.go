package http

import (
	"log/slog"
	"os"

	"github.com/etenderhq/etender-backend-go/internal/config"
	"github.com/etenderhq/etender-backend-go/internal/handler/http/middleware"
	"github.com/etenderhq/etender-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	tenderHandler TenderHandler,
	bidHandler BidHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "etender-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			// Admin only
			r.Route("/admin/tenders", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", tenderHandler.List)
				r.Post("/", tenderHandler.Create)
				r.Put("/{id}", tenderHandler.Update)
				r.Get("/{id}/bids", tenderHandler.GetWithBids)
				r.Post("/{id}/award", tenderHandler.Award)
			})

			// Any authenticated caller; the service enforces who may see what
			r.Get("/tenders/{id}/bids", tenderHandler.GetWithBids)
			r.Get("/my-tenders", tenderHandler.MyTenders)

			// Bidder only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireBidder)
				r.Post("/bids", bidHandler.Create)
				r.Put("/bids/{id}", bidHandler.Update)
			})
		})
	})

	return r
}
