package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"restaurant-graphql-api/internal/apperr"
	"restaurant-graphql-api/internal/auth"
)

// ---------------------------------------------------------------------------
// In-memory repository
// ---------------------------------------------------------------------------

type memRepo struct {
	mu     sync.Mutex
	nextID int
	byID   map[string]User
	// findByEmailErr, when set, is returned by FindByEmail.
	findByEmailErr error
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[string]User{}}
}

func (m *memRepo) Insert(_ context.Context, u User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return User{}, errUserExists
		}
	}
	m.nextID++
	u.ID = fmt.Sprintf("%024x", m.nextID)
	m.byID[u.ID] = u
	return u, nil
}

func (m *memRepo) FindByID(_ context.Context, id string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return User{}, errUserNotFound
	}
	return u, nil
}

func (m *memRepo) FindByEmail(_ context.Context, email string) (User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findByEmailErr != nil {
		return User{}, false, m.findByEmailErr
	}
	for _, u := range m.byID {
		if u.Email == email {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

func (m *memRepo) List(_ context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memRepo) SetRole(_ context.Context, id string, role auth.Role) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return User{}, errUserNotFound
	}
	u.Role = role
	m.byID[id] = u
	return u, nil
}

const testSecret = "users-test-secret"

func newTestService(repo Repository) (*Service, *auth.TokenManager) {
	tokens := auth.NewTokenManager(testSecret, time.Hour)
	return NewService(repo, tokens, auth.PasswordHasher{Cost: 4}), tokens
}

func registerInput(email string) RegisterInput {
	return RegisterInput{Email: email, Name: "New User", Password: "Test123!"}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestRegister_CreatesUserAndToken(t *testing.T) {
	repo := newMemRepo()
	svc, tokens := newTestService(repo)

	res, err := svc.Register(context.Background(), registerInput("newuser@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.User.Name != "New User" || res.User.Role != auth.RoleUser {
		t.Errorf("unexpected user %+v", res.User)
	}
	if res.User.PasswordHash == "Test123!" || res.User.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}

	id, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("issued token should verify: %v", err)
	}
	if id.ID != res.User.ID || id.Email != "newuser@example.com" || id.Role != auth.RoleUser {
		t.Errorf("token identity mismatch: %+v", id)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Register(ctx, registerInput("dup@example.com"))
	if err != nil {
		t.Fatalf("first Register: %v", err)
	}

	second := RegisterInput{Email: "DUP@example.com ", Name: "Impostor", Password: "Other123!"}
	_, err = svc.Register(ctx, second)
	if !apperr.Is(err, apperr.KindAlreadyExists) {
		t.Fatalf("want AlreadyExists, got %v", err)
	}

	stored, err := repo.FindByID(ctx, first.User.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored != first.User {
		t.Errorf("first user changed: before %+v, after %+v", first.User, stored)
	}
	if all, _ := repo.List(ctx); len(all) != 1 {
		t.Errorf("expected exactly one stored user, got %d", len(all))
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(newMemRepo())
	cases := []RegisterInput{
		{Email: "not-an-email", Name: "X", Password: "Test123!"},
		{Email: "a@example.com", Name: "  ", Password: "Test123!"},
		{Email: "a@example.com", Name: "X", Password: "weakpassword"},
		{Email: "a@example.com", Name: "X", Password: "Aa1!" + strings.Repeat("x", 80)},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !apperr.Is(err, apperr.KindInvalidInput) {
			t.Errorf("%+v: want InvalidInput, got %v", in, err)
		}
	}
}

func TestRegister_RepositoryError(t *testing.T) {
	repo := newMemRepo()
	repo.findByEmailErr = errors.New("connection reset")
	svc, _ := newTestService(repo)

	_, err := svc.Register(context.Background(), registerInput("a@example.com"))
	if err == nil || err.Error() != "connection reset" {
		t.Fatalf("database errors propagate as-is, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestService(newMemRepo())
	ctx := context.Background()
	reg, _ := svc.Register(ctx, registerInput("login@example.com"))

	res, err := svc.Login(ctx, LoginInput{Email: "Login@Example.com", Password: "Test123!"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.User.ID != reg.User.ID || res.Token == "" {
		t.Errorf("unexpected login result %+v", res)
	}
}

func TestLogin_UnknownEmailAndWrongPasswordAreIdentical(t *testing.T) {
	svc, _ := newTestService(newMemRepo())
	ctx := context.Background()
	_, _ = svc.Register(ctx, registerInput("known@example.com"))

	_, errUnknown := svc.Login(ctx, LoginInput{Email: "nonexistinguser@example.com", Password: "Test123!"})
	_, errWrong := svc.Login(ctx, LoginInput{Email: "known@example.com", Password: "wrongpassword"})

	if !errors.Is(errUnknown, apperr.ErrInvalidCredentials) || !errors.Is(errWrong, apperr.ErrInvalidCredentials) {
		t.Fatalf("want InvalidCredentials for both, got %v / %v", errUnknown, errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Errorf("messages differ: %q vs %q", errUnknown, errWrong)
	}
}

// ---------------------------------------------------------------------------
// ChangeRole
// ---------------------------------------------------------------------------

func TestChangeRole(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()
	reg, _ := svc.Register(ctx, registerInput("promote@example.com"))

	superadmin := auth.Identity{ID: "root", Role: auth.RoleSuperadmin}
	updated, err := svc.ChangeRole(ctx, superadmin, reg.User.ID, auth.RoleAdmin)
	if err != nil {
		t.Fatalf("ChangeRole: %v", err)
	}
	if updated.Role != auth.RoleAdmin {
		t.Errorf("role: want admin, got %s", updated.Role)
	}

	admin := auth.Identity{ID: "a", Role: auth.RoleAdmin}
	if _, err := svc.ChangeRole(ctx, admin, reg.User.ID, auth.RoleSuperadmin); !apperr.Is(err, apperr.KindPermissionDenied) {
		t.Errorf("admin must not change roles, got %v", err)
	}
	if _, err := svc.ChangeRole(ctx, superadmin, reg.User.ID, auth.Role(9)); !apperr.Is(err, apperr.KindInvalidInput) {
		t.Errorf("unknown role: want InvalidInput, got %v", err)
	}
	if _, err := svc.ChangeRole(ctx, superadmin, "ffffffffffffffffffffffff", auth.RoleAdmin); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing user: want NotFound, got %v", err)
	}
}
