package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/midas/product-tracker/internal/core/domain"
)

func TestIdentityService_Login_Regular(t *testing.T) {
	svc := NewIdentityService("secret", time.Hour, discardLogger)

	token, actor, err := svc.Login(context.Background(), "alice", "whatever")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if actor.Username != "alice" || actor.Role != domain.RoleRegular {
		t.Fatalf("unexpected actor: %+v", actor)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "alice" {
		t.Fatalf("expected username alice, got %v", claims["username"])
	}
	if claims["role"] != string(domain.RoleRegular) {
		t.Fatalf("expected role %s, got %v", domain.RoleRegular, claims["role"])
	}
}

func TestIdentityService_Login_AdminMixedCase(t *testing.T) {
	svc := NewIdentityService("secret", time.Hour, discardLogger)

	_, actor, err := svc.Login(context.Background(), "Admin", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if actor.Role != domain.RoleAdmin || actor.Username != "Admin" {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestIdentityService_Login_Rejected(t *testing.T) {
	svc := NewIdentityService("secret", time.Hour, discardLogger)

	for _, in := range [][2]string{{"", "pw"}, {"alice", ""}} {
		token, _, err := svc.Login(context.Background(), in[0], in[1])
		if err != domain.ErrLoginRejected {
			t.Fatalf("expected ErrLoginRejected for %q/%q, got %v", in[0], in[1], err)
		}
		if token != "" {
			t.Fatalf("expected no token on rejection")
		}
	}
}

func TestIdentityService_DefaultTTL(t *testing.T) {
	svc := NewIdentityService("secret", 0, discardLogger)
	if svc.tokenTTL != 24*time.Hour {
		t.Fatalf("expected default ttl 24h, got %v", svc.tokenTTL)
	}
}
