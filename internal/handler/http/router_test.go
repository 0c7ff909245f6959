package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etenderhq/etender-backend-go/internal/config"
	"github.com/etenderhq/etender-backend-go/internal/domain/auth"
	"github.com/etenderhq/etender-backend-go/internal/domain/bid"
	"github.com/etenderhq/etender-backend-go/internal/domain/tender"
	"github.com/etenderhq/etender-backend-go/internal/domain/user"
	"github.com/etenderhq/etender-backend-go/internal/pkg/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerTestSecret = "test-secret-key-for-jwt"

type stubTenderService struct {
	listResult  []tender.ListItem
	withBids    tender.WithBids
	withBidsErr error
}

func (s *stubTenderService) Create(ctx context.Context, companyID string, req tender.CreateRequest) (tender.Response, error) {
	return tender.Response{ID: "tender-1", CompanyID: companyID, Name: req.Name}, nil
}

func (s *stubTenderService) Update(ctx context.Context, companyID, id string, req tender.UpdateRequest) (tender.Response, error) {
	return tender.Response{ID: id}, nil
}

func (s *stubTenderService) Award(ctx context.Context, companyID, id, bidID string) (tender.Response, error) {
	return tender.Response{ID: id}, nil
}

func (s *stubTenderService) List(ctx context.Context, companyID string) ([]tender.ListItem, error) {
	return s.listResult, nil
}

func (s *stubTenderService) GetWithBids(ctx context.Context, id string, caller user.Identity) (tender.WithBids, error) {
	if s.withBidsErr != nil {
		return tender.WithBids{}, s.withBidsErr
	}
	return s.withBids, nil
}

func (s *stubTenderService) MyTenders(ctx context.Context, caller user.Identity) ([]tender.MyTenderItem, error) {
	return nil, nil
}

type stubBidService struct {
	createErr error
}

func (s *stubBidService) Create(ctx context.Context, caller user.Identity, req bid.CreateRequest) (bid.Response, error) {
	if s.createErr != nil {
		return bid.Response{}, s.createErr
	}
	return bid.Response{ID: "bid-1", TenderID: req.TenderID, BidderID: caller.ID, BidAmount: *req.BidAmount}, nil
}

func (s *stubBidService) Update(ctx context.Context, caller user.Identity, bidID string, req bid.UpdateRequest) (bid.Response, error) {
	return bid.Response{ID: bidID}, nil
}

type stubAuthService struct{}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrInvalidCredentials
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID string, req auth.ChangePasswordRequest) error {
	return nil
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	return nil
}

func (s *stubAuthService) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	return nil
}

func newTestRouter(t *testing.T, tenderSvc tender.TenderService, bidSvc bid.BidService) (http.Handler, jwt.Service) {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.CORSOrigins = []string{"http://localhost:5173"}

	jwtSvc := jwt.NewJWTService(routerTestSecret, "1h")
	router := NewRouter(cfg, jwtSvc,
		NewAuthHandler(&stubAuthService{}),
		NewTenderHandler(tenderSvc, "COMPANY_1"),
		NewBidHandler(bidSvc),
	)
	return router, jwtSvc
}

func bearerToken(t *testing.T, jwtSvc jwt.Service, id, email string, role user.Role) string {
	t.Helper()
	token, _, err := jwtSvc.GenerateAccessToken(id, email, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(router http.Handler, method, path, authHeader string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_HealthCheck(t *testing.T) {
	router, _ := newTestRouter(t, &stubTenderService{}, &stubBidService{})

	rec := doJSON(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AuthRequired(t *testing.T) {
	router, _ := newTestRouter(t, &stubTenderService{}, &stubBidService{})

	rec := doJSON(router, http.MethodGet, "/api/v1/my-tenders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/v1/my-tenders", "Bearer not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RoleEnforcement(t *testing.T) {
	router, jwtSvc := newTestRouter(t, &stubTenderService{}, &stubBidService{})

	bidder := bearerToken(t, jwtSvc, "user-1", "alice@example.com", user.RoleBidder)
	admin := bearerToken(t, jwtSvc, "admin-1", "boss@example.com", user.RoleAdmin)

	t.Run("bidder cannot reach admin routes", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/v1/admin/tenders", bidder, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin cannot place bids", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/v1/bids", admin, map[string]interface{}{
			"tenderId":  "tender-1",
			"bidAmount": "250",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin lists tenders", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/v1/admin/tenders", admin, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("my-tenders is open to any authenticated caller", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/v1/my-tenders", bidder, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(router, http.MethodGet, "/api/v1/my-tenders", admin, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_CreateBid(t *testing.T) {
	bidder := func(jwtSvc jwt.Service) string {
		return bearerToken(t, jwtSvc, "user-1", "alice@example.com", user.RoleBidder)
	}

	t.Run("created", func(t *testing.T) {
		router, jwtSvc := newTestRouter(t, &stubTenderService{}, &stubBidService{})

		rec := doJSON(router, http.MethodPost, "/api/v1/bids", bidder(jwtSvc), map[string]interface{}{
			"tenderId":  "tender-1",
			"bidAmount": "250",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var envelope struct {
			Success bool `json:"success"`
			Data    struct {
				ID        string          `json:"id"`
				BidAmount decimal.Decimal `json:"bidAmount"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.True(t, envelope.Success)
		assert.Equal(t, "bid-1", envelope.Data.ID)
		assert.True(t, envelope.Data.BidAmount.Equal(decimal.NewFromInt(250)))
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		router, jwtSvc := newTestRouter(t, &stubTenderService{}, &stubBidService{})

		rec := doJSON(router, http.MethodPost, "/api/v1/bids", bidder(jwtSvc), map[string]interface{}{})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("duplicate bid maps to conflict", func(t *testing.T) {
		router, jwtSvc := newTestRouter(t, &stubTenderService{}, &stubBidService{createErr: bid.ErrDuplicateBid})

		rec := doJSON(router, http.MethodPost, "/api/v1/bids", bidder(jwtSvc), map[string]interface{}{
			"tenderId":  "tender-1",
			"bidAmount": "250",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("uninvited maps to forbidden", func(t *testing.T) {
		router, jwtSvc := newTestRouter(t, &stubTenderService{}, &stubBidService{createErr: bid.ErrNotInvited})

		rec := doJSON(router, http.MethodPost, "/api/v1/bids", bidder(jwtSvc), map[string]interface{}{
			"tenderId":  "tender-1",
			"bidAmount": "250",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("window violation maps to bad request", func(t *testing.T) {
		router, jwtSvc := newTestRouter(t, &stubTenderService{}, &stubBidService{createErr: tender.ErrBidAfterEnd})

		rec := doJSON(router, http.MethodPost, "/api/v1/bids", bidder(jwtSvc), map[string]interface{}{
			"tenderId":  "tender-1",
			"bidAmount": "250",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_GetWithBidsErrorMapping(t *testing.T) {
	router, jwtSvc := newTestRouter(t, &stubTenderService{withBidsErr: bid.ErrNotInvited}, &stubBidService{})
	bidder := bearerToken(t, jwtSvc, "user-1", "mallory@example.com", user.RoleBidder)

	rec := doJSON(router, http.MethodGet, "/api/v1/tenders/tender-1/bids", bidder, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_LoginErrorMapping(t *testing.T) {
	router, _ := newTestRouter(t, &stubTenderService{}, &stubBidService{})

	rec := doJSON(router, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
