package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/vogelpark/storefront/api/middleware"
	authsvc "github.com/vogelpark/storefront/internal/auth"
	"github.com/vogelpark/storefront/pkg/enums"
	pkgerrors "github.com/vogelpark/storefront/pkg/errors"
)

type stubAuthService struct {
	registerResp *authsvc.RegisterResponse
	registerErr  error
	loginResp    *authsvc.LoginResponse
	loginErr     error
	logoutErr    error

	loggedOutWith string
}

func (s *stubAuthService) Register(ctx context.Context, req authsvc.RegisterRequest) (*authsvc.RegisterResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.loggedOutWith = accessID
	return s.logoutErr
}

func TestAuthRegister(t *testing.T) {
	logg := testLogger()

	t.Run("created", func(t *testing.T) {
		svc := &stubAuthService{registerResp: &authsvc.RegisterResponse{Message: "account created", ID: uuid.New()}}
		body := `{"username":"maria","password":"langesgeheimnis","firstname":"Maria","lastname":"Vogel","email":"maria@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
		rec := httptest.NewRecorder()
		AuthRegister(svc, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "account created") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"username":"maria"}`))
		rec := httptest.NewRecorder()
		AuthRegister(&stubAuthService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc := &stubAuthService{registerErr: pkgerrors.New(pkgerrors.CodeConflict, "username already taken")}
		body := `{"username":"maria","password":"langesgeheimnis","firstname":"Maria","lastname":"Vogel","email":"maria@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
		rec := httptest.NewRecorder()
		AuthRegister(svc, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "username already taken") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})
}

func TestAuthLogin(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		svc := &stubAuthService{loginResp: &authsvc.LoginResponse{
			Token:    "tok-abc",
			ID:       uuid.New(),
			Username: "maria",
			Role:     enums.RoleCustomer,
		}}
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"maria","password":"geheim"}`))
		rec := httptest.NewRecorder()
		AuthLogin(svc, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		for _, key := range []string{`"token"`, `"id"`, `"username"`, `"role"`} {
			if !strings.Contains(rec.Body.String(), key) {
				t.Fatalf("expected %s in body, got %s", key, rec.Body.String())
			}
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := &stubAuthService{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"maria","password":"falsch"}`))
		rec := httptest.NewRecorder()
		AuthLogin(svc, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "invalid credentials") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})
}

func TestAuthLogout(t *testing.T) {
	logg := testLogger()
	svc := &stubAuthService{}

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req = req.WithContext(middleware.WithAccessID(context.Background(), "sess-123"))
	rec := httptest.NewRecorder()
	AuthLogout(svc, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.loggedOutWith != "sess-123" {
		t.Fatalf("expected logout with session id, got %q", svc.loggedOutWith)
	}
}
