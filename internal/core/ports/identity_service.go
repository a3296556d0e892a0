package ports

import (
	"context"

	"github.com/midas/product-tracker/internal/core/domain"
)

// IdentityService resolves a login into an actor and a session token.
type IdentityService interface {
	Login(ctx context.Context, username, password string) (string, domain.Actor, error)
}
