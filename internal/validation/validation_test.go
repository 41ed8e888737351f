package validation

import (
	"testing"

	"restaurant-graphql-api/internal/apperr"
)

type signup struct {
	Email    string `validate:"required,email"`
	Password string `validate:"strongpassword"`
	Rating   int    `validate:"gte=0,lte=5"`
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(signup{Email: "a@example.com", Password: "Test123!", Rating: 5}); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestStruct_FailuresAreInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		in   signup
		msg  string
	}{
		{"missing email", signup{Password: "Test123!"}, "email is required"},
		{"bad email", signup{Email: "nope", Password: "Test123!"}, "email must be a valid email address"},
		{"weak password", signup{Email: "a@example.com", Password: "weakpassword"}, "password is not strong enough"},
		{"rating too high", signup{Email: "a@example.com", Password: "Test123!", Rating: 6}, "rating must be at most 5"},
		{"rating negative", signup{Email: "a@example.com", Password: "Test123!", Rating: -1}, "rating must be at least 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(tc.in)
			if !apperr.Is(err, apperr.KindInvalidInput) {
				t.Fatalf("want InvalidInput, got %v", err)
			}
			if err.Error() != tc.msg {
				t.Errorf("message: want %q, got %q", tc.msg, err.Error())
			}
		})
	}
}

func TestIsStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Test123!":         true,
		"StrongPassword1!": true,
		"weakpassword":     false,
		"Sh0rt!":           false,
		"NoDigits!!":       false,
		"nouppercase1!":    false,
		"NOLOWERCASE1!":    false,
		"NoSymbol123":      false,
	}
	for pw, want := range cases {
		if got := IsStrongPassword(pw); got != want {
			t.Errorf("IsStrongPassword(%q): want %v, got %v", pw, want, got)
		}
	}
}
