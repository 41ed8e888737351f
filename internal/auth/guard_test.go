package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-graphql-api/internal/apperr"
)

func newTestGuard(t *testing.T) (*Guard, *TokenManager) {
	t.Helper()
	m := NewTokenManager(testSecret, DefaultTokenTTL)
	return NewGuard(m), m
}

func bearerCtx(t *testing.T, m *TokenManager, id Identity) context.Context {
	t.Helper()
	token, err := m.Issue(id)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return WithAuthorization(context.Background(), "Bearer "+token)
}

func TestAuthorize_RoleHierarchy(t *testing.T) {
	g, m := newTestGuard(t)
	roles := []Role{RoleUser, RoleAdmin, RoleSuperadmin}

	for _, have := range roles {
		for _, need := range roles {
			ctx := bearerCtx(t, m, Identity{ID: "u-" + have.String(), Role: have})
			id, err := g.Authorize(ctx, Policy{MinRole: need})

			if have < need {
				if !apperr.Is(err, apperr.KindPermissionDenied) {
					t.Errorf("%s calling %s-only operation: want PermissionDenied, got %v", have, need, err)
				}
				continue
			}
			if err != nil {
				t.Errorf("%s calling %s-only operation: unexpected error %v", have, need, err)
				continue
			}
			if id.Role != have {
				t.Errorf("identity role: want %s, got %s", have, id.Role)
			}
		}
	}
}

func TestAuthorize_MissingHeader(t *testing.T) {
	g, _ := newTestGuard(t)

	_, err := g.Authorize(context.Background(), Policy{MinRole: RoleUser})
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("want Unauthenticated, got %v", err)
	}
}

func TestAuthorize_OptionalWithoutHeader(t *testing.T) {
	g, _ := newTestGuard(t)

	id, err := g.Authorize(context.Background(), Policy{Optional: true, MinRole: RoleAdmin})
	if err != nil {
		t.Fatalf("optional auth without token should pass, got %v", err)
	}
	if id != (Identity{}) {
		t.Errorf("expected zero identity, got %+v", id)
	}
}

func TestAuthorize_OptionalWithInvalidToken(t *testing.T) {
	g, _ := newTestGuard(t)
	ctx := WithAuthorization(context.Background(), "Bearer invalid_token")

	_, err := g.Authorize(ctx, Policy{Optional: true})
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("a supplied token is always verified, got %v", err)
	}
}

func TestAuthorize_MalformedHeaders(t *testing.T) {
	g, m := newTestGuard(t)
	token, _ := m.Issue(Identity{ID: "u1", Role: RoleSuperadmin})

	headers := []string{
		token,              // no scheme
		"Basic " + token,   // wrong scheme
		"Bearer ",          // empty token
		"bearer " + token,  // scheme is case-sensitive
		"Bearer not-a-jwt", // garbage
	}
	for _, h := range headers {
		_, err := g.Authorize(WithAuthorization(context.Background(), h), Policy{})
		if !errors.Is(err, apperr.ErrUnauthenticated) {
			t.Errorf("header %q: want Unauthenticated, got %v", h, err)
		}
	}
}

func TestAuthorize_ExpiredAndBadSignatureLookIdentical(t *testing.T) {
	g, m := newTestGuard(t)

	expiredToken, _ := m.WithClock(fixedClock(time.Now().Add(-48 * time.Hour))).Issue(Identity{ID: "u1", Role: RoleUser})
	foreignToken, _ := NewTokenManager("other", 0).Issue(Identity{ID: "u1", Role: RoleUser})

	_, errExpired := g.Authorize(WithAuthorization(context.Background(), "Bearer "+expiredToken), Policy{})
	_, errForeign := g.Authorize(WithAuthorization(context.Background(), "Bearer "+foreignToken), Policy{})

	if errExpired == nil || errForeign == nil {
		t.Fatal("both tokens must be rejected")
	}
	if errExpired.Error() != errForeign.Error() {
		t.Errorf("failure reasons must not leak: %q vs %q", errExpired, errForeign)
	}
}
