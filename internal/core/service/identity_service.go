package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/midas/product-tracker/internal/api/metrics"
	"github.com/midas/product-tracker/internal/core/domain"
)

// IdentityService resolves logins and issues session tokens carrying the
// username. No credential store is consulted.
type IdentityService struct {
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewIdentityService(jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *IdentityService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &IdentityService{jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *IdentityService) Login(_ context.Context, username, password string) (string, domain.Actor, error) {
	actor, err := domain.ResolveActor(username, password)
	if err != nil {
		metrics.LoginRejectionsTotal.Inc()
		return "", domain.Actor{}, err
	}

	token, err := s.generateToken(actor)
	if err != nil {
		return "", domain.Actor{}, err
	}

	metrics.LoginsTotal.WithLabelValues(string(actor.Role)).Inc()
	s.log.Info().Str("username", actor.Username).Str("role", string(actor.Role)).Msg("login")

	return token, actor, nil
}

func (s *IdentityService) generateToken(actor domain.Actor) (string, error) {
	claims := jwt.MapClaims{
		"username": actor.Username,
		"role":     string(actor.Role),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
