//go:build integration

package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-graphql-api/internal/app/users"
	"restaurant-graphql-api/internal/apperr"
	"restaurant-graphql-api/internal/auth"
	"restaurant-graphql-api/internal/mongodb/mongotest"
)

func TestMongoRepository_UniqueEmail(t *testing.T) {
	db := mongotest.Database(t)
	repo := users.NewMongoRepository(db)
	ctx := context.Background()

	first, err := repo.Insert(ctx, users.User{Name: "First", Email: "dup@example.com", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, users.User{Name: "Second", Email: "dup@example.com", PasswordHash: "h2"})
	assert.True(t, apperr.Is(err, apperr.KindAlreadyExists), "got %v", err)

	stored, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, stored)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_RegisterLoginChangeRole(t *testing.T) {
	db := mongotest.Database(t)
	tokens := auth.NewTokenManager("integration-secret", time.Hour)
	svc := users.NewService(users.NewMongoRepository(db), tokens, auth.PasswordHasher{Cost: 4})
	ctx := context.Background()

	reg, err := svc.Register(ctx, users.RegisterInput{Email: "newuser@example.com", Name: "New User", Password: "Test123!"})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleUser, reg.User.Role)

	res, err := svc.Login(ctx, users.LoginInput{Email: "newuser@example.com", Password: "Test123!"})
	require.NoError(t, err)
	id, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, id.ID)

	_, err = svc.Login(ctx, users.LoginInput{Email: "newuser@example.com", Password: "Wrong123!"})
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	promoted, err := svc.ChangeRole(ctx, auth.Identity{Role: auth.RoleSuperadmin}, reg.User.ID, auth.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, promoted.Role)

	_, err = svc.ChangeRole(ctx, auth.Identity{Role: auth.RoleSuperadmin}, "ffffffffffffffffffffffff", auth.RoleAdmin)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "got %v", err)

	_, err = svc.Get(ctx, "not-an-id")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput), "got %v", err)
}
