//go:build integration

// Package mongotest starts a throwaway MongoDB for integration tests.
package mongotest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"

	"restaurant-graphql-api/internal/mongodb"
)

const image = "mongo:7"

var (
	once     sync.Once
	uri      string
	startErr error
)

// Database returns a fresh database with indexes in a container shared by the
// whole test binary. The database is dropped when t finishes; the container
// is reaped by testcontainers when the process exits.
func Database(t *testing.T) *mongodb.Database {
	t.Helper()
	ctx := context.Background()

	once.Do(func() {
		var c *tcmongo.MongoDBContainer
		c, startErr = tcmongo.Run(ctx, image,
			testcontainers.WithWaitStrategy(
				wait.ForLog("Waiting for connections").WithStartupTimeout(60*time.Second)),
		)
		if startErr != nil {
			return
		}
		uri, startErr = c.ConnectionString(ctx)
	})
	if startErr != nil {
		t.Fatalf("start mongodb container: %v", startErr)
	}

	name := fmt.Sprintf("test_%s_%d", sanitize(t.Name()), time.Now().UnixNano())
	db, err := mongodb.Connect(ctx, uri, name)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop database: %v", err)
		}
		_ = db.Close(ctx)
	})
	return db
}

// sanitize keeps database names within MongoDB's allowed characters and
// length.
func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
	if len(s) > 30 {
		s = s[:30]
	}
	return s
}
