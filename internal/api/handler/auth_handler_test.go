package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/midas/product-tracker/internal/core/domain"
)

type stubIdentityService struct {
	loginFn func(ctx context.Context, username, password string) (string, domain.Actor, error)
}

func (s *stubIdentityService) Login(ctx context.Context, username, password string) (string, domain.Actor, error) {
	return s.loginFn(ctx, username, password)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	stub := &stubIdentityService{
		loginFn: func(ctx context.Context, username, password string) (string, domain.Actor, error) {
			if username != "Admin" || password != "anything" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", domain.NewActor(username), nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"Admin","password":"anything"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "Admin" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_Form(t *testing.T) {
	e := echo.New()
	stub := &stubIdentityService{
		loginFn: func(ctx context.Context, username, password string) (string, domain.Actor, error) {
			return "tok", domain.NewActor(username), nil
		},
	}
	handler := NewAuthHandler(stub)

	form := url.Values{"username": {"alice"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"role":"regular"`) {
		t.Fatalf("expected regular role, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_Rejected(t *testing.T) {
	e := echo.New()
	stub := &stubIdentityService{
		loginFn: func(ctx context.Context, username, password string) (string, domain.Actor, error) {
			return "", domain.Actor{}, domain.ErrLoginRejected
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); !errors.Is(err, domain.ErrLoginRejected) {
		t.Fatalf("expected ErrLoginRejected for the error handler, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("handler must not render the rejection itself, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_UnexpectedError(t *testing.T) {
	e := echo.New()
	boom := errors.New("signing failed")
	stub := &stubIdentityService{
		loginFn: func(ctx context.Context, username, password string) (string, domain.Actor, error) {
			return "", domain.Actor{}, boom
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := handler.Login(c); !errors.Is(err, boom) {
		t.Fatalf("expected error to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := echo.New()
	stub := &stubIdentityService{
		loginFn: func(ctx context.Context, username, password string) (string, domain.Actor, error) {
			t.Fatalf("should not be called")
			return "", domain.Actor{}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
