package auth

import (
	"context"
	"strings"

	"restaurant-graphql-api/internal/apperr"
)

const bearerPrefix = "Bearer "

// Policy is the authorization requirement declared for one operation.
type Policy struct {
	MinRole  Role
	Optional bool
}

// Guard resolves the caller of an operation from its bearer token.
// It holds no state beyond the token manager.
type Guard struct {
	tokens *TokenManager
}

func NewGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// Authorize returns the caller's identity if the request satisfies p.
// An optional policy with no Authorization header yields the zero Identity.
func (g *Guard) Authorize(ctx context.Context, p Policy) (Identity, error) {
	header := AuthorizationFromContext(ctx)
	if p.Optional && header == "" {
		return Identity{}, nil
	}

	token, ok := strings.CutPrefix(header, bearerPrefix)
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return Identity{}, apperr.ErrUnauthenticated
	}

	id, err := g.tokens.Verify(token)
	if err != nil {
		return Identity{}, apperr.ErrUnauthenticated
	}
	if !id.Role.AtLeast(p.MinRole) {
		return Identity{}, apperr.PermissionDenied("permission denied")
	}
	return id, nil
}
