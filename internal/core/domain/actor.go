package domain

import (
	"errors"
	"strings"
)

// Role controls which tracked products an actor may see.
type Role string

const (
	RoleRegular Role = "regular"
	RoleAdmin   Role = "admin"
)

// adminUsername is the only privileged login, compared case-insensitively.
const adminUsername = "admin"

var ErrLoginRejected = errors.New("username and password are required")

// Actor is the identity performing an operation. It is derived per request
// and never persisted.
type Actor struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the actor may see every user's products.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// NewActor derives the role for username.
func NewActor(username string) Actor {
	role := RoleRegular
	if strings.ToLower(username) == adminUsername {
		role = RoleAdmin
	}
	return Actor{Username: username, Role: role}
}

// ResolveActor turns a submitted login into an Actor. Both fields must be
// non-empty; the password itself is not checked against anything.
func ResolveActor(username, password string) (Actor, error) {
	if username == "" || password == "" {
		return Actor{}, ErrLoginRejected
	}
	return NewActor(username), nil
}
