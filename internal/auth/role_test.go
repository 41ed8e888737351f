package auth

import (
	"bytes"
	"testing"

	"restaurant-graphql-api/internal/apperr"
)

func TestRole_TotalOrder(t *testing.T) {
	if !(RoleUser < RoleAdmin && RoleAdmin < RoleSuperadmin) {
		t.Fatal("roles must be ordered user < admin < superadmin")
	}
	if int(RoleUser) != 0 || int(RoleAdmin) != 1 || int(RoleSuperadmin) != 2 {
		t.Fatal("stored role values must be 0, 1, 2")
	}
	if !RoleSuperadmin.AtLeast(RoleAdmin) || RoleUser.AtLeast(RoleAdmin) || !RoleAdmin.AtLeast(RoleAdmin) {
		t.Fatal("AtLeast disagrees with the numeric order")
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleAdmin, RoleSuperadmin} {
		got, err := ParseRole(r.String())
		if err != nil || got != r {
			t.Errorf("ParseRole(%q): got %v, %v", r.String(), got, err)
		}
	}
	if _, err := ParseRole("root"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestRole_GQLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	RoleSuperadmin.MarshalGQL(&buf)
	if buf.String() != `"superadmin"` {
		t.Fatalf("MarshalGQL: got %s", buf.String())
	}

	var r Role
	if err := r.UnmarshalGQL("admin"); err != nil || r != RoleAdmin {
		t.Fatalf("UnmarshalGQL(admin): got %v, %v", r, err)
	}
	if err := r.UnmarshalGQL(1); err == nil {
		t.Error("non-string enum values must be rejected")
	}
}

func TestRole_StringOutOfRange(t *testing.T) {
	if got := Role(7).String(); got != "Role(7)" {
		t.Errorf("got %q", got)
	}
}

func TestCheckOwnership(t *testing.T) {
	const owner = "owner-id"
	cases := []struct {
		name  string
		actor Identity
		ok    bool
	}{
		{"creator admin", Identity{ID: owner, Role: RoleAdmin}, true},
		{"creator user", Identity{ID: owner, Role: RoleUser}, true},
		{"other admin", Identity{ID: "someone-else", Role: RoleAdmin}, false},
		{"other user", Identity{ID: "someone-else", Role: RoleUser}, false},
		{"superadmin", Identity{ID: "root", Role: RoleSuperadmin}, true},
		{"anonymous", Identity{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckOwnership(tc.actor, owner)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if !tc.ok && !apperr.Is(err, apperr.KindPermissionDenied) {
				t.Fatalf("want PermissionDenied, got %v", err)
			}
		})
	}
}

func TestCheckOwnership_EmptyCreator(t *testing.T) {
	if err := CheckOwnership(Identity{}, ""); err == nil {
		t.Fatal("an anonymous actor must never own a resource with no creator")
	}
}

func TestPasswordHasher(t *testing.T) {
	h := PasswordHasher{Cost: 4}
	hash, err := h.Hash("Test123!")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "Test123!" {
		t.Fatal("hash must not equal the password")
	}

	ok, err := h.Check(hash, "Test123!")
	if err != nil || !ok {
		t.Fatalf("Check(correct): got %v, %v", ok, err)
	}
	ok, err = h.Check(hash, "wrong")
	if err != nil || ok {
		t.Fatalf("Check(wrong): got %v, %v", ok, err)
	}
	if _, err := h.Check("not-a-bcrypt-hash", "x"); err == nil {
		t.Fatal("Check with a malformed hash should error")
	}
}
