package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-signing-secret"

var testIdentity = Identity{ID: "64b7f0c2a1b2c3d4e5f60718", Email: "user1@example.com", Role: RoleAdmin}

// fixedClock returns a clock frozen at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestManager(now time.Time) *TokenManager {
	return NewTokenManager(testSecret, DefaultTokenTTL).WithClock(fixedClock(now))
}

// ---- Valid cases --------------------------------------------------------

func TestVerify_Valid(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(issuedAt)

	token, err := m.Issue(testIdentity)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := m.Verify(token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got != testIdentity {
		t.Errorf("identity: want %+v, got %+v", testIdentity, got)
	}
}

func TestVerify_ClaimsCarryEmailAndUserID(t *testing.T) {
	m := newTestManager(time.Now())
	token, err := m.Issue(testIdentity)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("ParseUnverified: %v", err)
	}
	if claims.Email != testIdentity.Email || claims.UserID != testIdentity.ID {
		t.Errorf("claims: got email=%q userId=%q", claims.Email, claims.UserID)
	}
}

func TestVerify_JustBeforeExpiry(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token, _ := newTestManager(issuedAt).Issue(testIdentity)

	later := newTestManager(issuedAt.Add(24*time.Hour - time.Minute))
	if _, err := later.Verify(token); err != nil {
		t.Fatalf("token should still be valid a minute before expiry: %v", err)
	}
}

// ---- Expiry --------------------------------------------------------------

func TestVerify_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token, _ := newTestManager(issuedAt).Issue(testIdentity)

	later := newTestManager(issuedAt.Add(24*time.Hour + time.Second))
	if _, err := later.Verify(token); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestNewTokenManager_ZeroTTLUsesDefault(t *testing.T) {
	m := NewTokenManager(testSecret, 0)
	if m.ttl != DefaultTokenTTL {
		t.Errorf("ttl: want %v, got %v", DefaultTokenTTL, m.ttl)
	}
}

// ---- Signature / format ------------------------------------------------

func TestVerify_WrongSecret(t *testing.T) {
	now := time.Now()
	token, _ := NewTokenManager("other-secret", DefaultTokenTTL).WithClock(fixedClock(now)).Issue(testIdentity)

	if _, err := newTestManager(now).Verify(token); err == nil {
		t.Fatal("expected signature error, got nil")
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	now := time.Now()
	m := newTestManager(now)
	token, _ := m.Issue(testIdentity)

	// Keep the original header and signature, swap in a superadmin payload.
	forged, _ := NewTokenManager("attacker", DefaultTokenTTL).WithClock(fixedClock(now)).
		Issue(Identity{ID: testIdentity.ID, Role: RoleSuperadmin})
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	if _, err := m.Verify(tampered); err == nil {
		t.Fatal("expected error for tampered payload, got nil")
	}
}

func TestVerify_AlgNoneRejected(t *testing.T) {
	claims := Claims{
		UserID: "u1",
		Role:   RoleSuperadmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := NewTokenManager(testSecret, 0).Verify(token); err == nil {
		t.Fatal("alg=none must be rejected")
	}
}

func TestVerify_MissingExpiry(t *testing.T) {
	claims := Claims{UserID: "u1", Role: RoleUser}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))

	if _, err := NewTokenManager(testSecret, 0).Verify(token); err == nil {
		t.Fatal("tokens without exp must be rejected")
	}
}

func TestVerify_MissingUserID(t *testing.T) {
	m := newTestManager(time.Now())
	token, _ := m.Issue(Identity{Role: RoleUser})

	if _, err := m.Verify(token); err == nil {
		t.Fatal("tokens without userId must be rejected")
	}
}

func TestVerify_Garbage(t *testing.T) {
	m := NewTokenManager(testSecret, 0)
	for _, tok := range []string{"", "invalid_token", "a.b.c", "....."} {
		if _, err := m.Verify(tok); err == nil {
			t.Errorf("expected error for %q", tok)
		}
	}
}
