package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
)

// stubAuthService delegates to a function field so each test controls the
// outcome.
type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func newLoginContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "kavitasarapali50@gmail.com" || password != "secret123" {
				t.Fatalf("credentials not forwarded: %s / %s", email, password)
			}
			return "signed-token", &domain.User{ID: "u1", Email: email, Name: "Kavita", Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newLoginContext(t, `{"email":"kavitasarapali50@gmail.com","password":"secret123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Fatalf("expected token in response, got %q", resp.Token)
	}
	if resp.User.Role != domain.RoleAdmin || resp.User.ID != "u1" {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not carry password material: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_PropagatesDomainErrors(t *testing.T) {
	for _, want := range []error{domain.ErrNotAuthorized, domain.ErrInvalidCredentials} {
		svc := &stubAuthService{
			loginFn: func(context.Context, string, string) (string, *domain.User, error) {
				return "", nil, want
			},
		}
		h := NewAuthHandler(svc)

		c, _ := newLoginContext(t, `{"email":"a@example.com","password":"pw"}`)
		err := h.Login(c)
		if !errors.Is(err, want) {
			t.Fatalf("expected %v to propagate, got %v", want, err)
		}
	}
}

func TestAuthHandler_Login_ValidatesPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			t.Fatalf("service must not be called on invalid payload")
			return "", nil, nil
		},
	})

	for _, body := range []string{
		`{"email":"not-an-email","password":"pw"}`,
		`{"password":"pw"}`,
		`{"email":"a@example.com"}`,
	} {
		c, _ := newLoginContext(t, body)
		err := h.Login(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestAuthHandler_Register_AlwaysClosed(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); !errors.Is(err, domain.ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed, got %v", err)
	}
}
