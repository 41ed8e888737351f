package users

import (
	"context"
	"fmt"
	"strings"

	"restaurant-graphql-api/internal/apperr"
	"restaurant-graphql-api/internal/auth"
	"restaurant-graphql-api/internal/validation"
)

// ---------------------------------------------------------------------------
// Domain types (passed to/from resolvers)
// ---------------------------------------------------------------------------

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         auth.Role
}

// Identity returns the token identity for u.
func (u User) Identity() auth.Identity {
	return auth.Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Name     string `validate:"required,max=100"`
	Password string `validate:"required,max=72,strongpassword"`
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  User
	Token string
}

// TokenIssuer signs tokens for authenticated users.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service struct {
	repo   Repository
	tokens TokenIssuer
	hasher auth.PasswordHasher
}

func NewService(repo Repository, tokens TokenIssuer, hasher auth.PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
	}
}

// Register creates a user with role "user" and signs them in.
func (s *Service) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	input.Email = normalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return AuthResult{}, err
	}

	if _, exists, err := s.repo.FindByEmail(ctx, input.Email); err != nil {
		return AuthResult{}, err
	} else if exists {
		return AuthResult{}, errUserExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	// The unique index still catches a concurrent registration.
	user, err := s.repo.Insert(ctx, User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         auth.RoleUser,
	})
	if err != nil {
		return AuthResult{}, err
	}
	return s.signIn(user)
}

// Login checks credentials. Unknown email and wrong password produce the
// same error.
func (s *Service) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	user, exists, err := s.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return AuthResult{}, err
	}
	if !exists {
		return AuthResult{}, apperr.ErrInvalidCredentials
	}

	ok, err := s.hasher.Check(user.PasswordHash, input.Password)
	if err != nil || !ok {
		return AuthResult{}, apperr.ErrInvalidCredentials
	}
	return s.signIn(user)
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// ChangeRole sets userID's role. Only a superadmin may do this.
func (s *Service) ChangeRole(ctx context.Context, actor auth.Identity, userID string, role auth.Role) (User, error) {
	if !actor.Role.AtLeast(auth.RoleSuperadmin) {
		return User{}, apperr.PermissionDenied("permission denied")
	}
	if !role.IsValid() {
		return User{}, apperr.InvalidInput(fmt.Sprintf("unknown role %d", int(role)))
	}
	return s.repo.SetRole(ctx, userID, role)
}

func (s *Service) signIn(user User) (AuthResult, error) {
	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
