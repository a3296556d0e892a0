package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/midas/product-tracker/internal/core/domain"
)

// ctxActor rebuilds the actor from the username injected by the Auth
// middleware. The role is derived again rather than trusted from the token.
func ctxActor(c echo.Context) (domain.Actor, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.NewActor(username), nil
}
