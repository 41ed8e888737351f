package mongodb

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"restaurant-graphql-api/internal/apperr"
)

func TestParseID(t *testing.T) {
	const hex = "64b7f0c2a1b2c3d4e5f60718"
	oid, err := ParseID(hex)
	if err != nil {
		t.Fatalf("ParseID(%q): %v", hex, err)
	}
	if oid.Hex() != hex {
		t.Errorf("round trip: got %s", oid.Hex())
	}

	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", hex + "00"} {
		if _, err := ParseID(bad); !apperr.Is(err, apperr.KindInvalidInput) {
			t.Errorf("ParseID(%q): want InvalidInput, got %v", bad, err)
		}
	}
}

func TestIsNoDocuments(t *testing.T) {
	if !IsNoDocuments(fmt.Errorf("find: %w", mongo.ErrNoDocuments)) {
		t.Error("wrapped ErrNoDocuments should match")
	}
	if IsNoDocuments(errors.New("timeout")) {
		t.Error("unrelated errors should not match")
	}
}

func TestIsDuplicateKey(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	if !IsDuplicateKey(dup) {
		t.Error("E11000 write error should be a duplicate key")
	}
	if IsDuplicateKey(errors.New("boom")) {
		t.Error("plain errors are not duplicate keys")
	}
}
