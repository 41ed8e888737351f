package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// chdirTemp moves the test into an empty directory so no stray .env is
// picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CONFIG_PATH", "PORT", "DATABASE_URL", "MONGO_DATABASE", "SECRET", "TOKEN_TTL", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("SECRET", "s3cret")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != "9000" || cfg.Mongo.URI != "mongodb://localhost:27017" || cfg.Auth.Secret != "s3cret" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Mongo.Database != "restaurants" || cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)

	path := filepath.Join(dir, "config.yaml")
	yml := "http:\n  port: \"4000\"\nmongo:\n  uri: mongodb://db:27017\n  database: yamldb\nauth:\n  secret: fromyaml\n  tokenTtl: 2h\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("MONGO_DATABASE", "envdb")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != "4000" || cfg.Auth.Secret != "fromyaml" || cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("yaml not applied: %+v", cfg)
	}
	if cfg.Mongo.Database != "envdb" {
		t.Errorf("env should override yaml, got %q", cfg.Mongo.Database)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	// t.Setenv("X", "") leaves X set, so unset the keys .env provides.
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("SECRET")

	env := "DATABASE_URL=mongodb://dotenv:27017\nSECRET=fromdotenv\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("SECRET")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mongo.URI != "mongodb://dotenv:27017" || cfg.Auth.Secret != "fromdotenv" {
		t.Errorf(".env not applied: %+v", cfg)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("want missing DATABASE_URL error, got %v", err)
	}

	t.Setenv("DATABASE_URL", "mongodb://localhost")
	_, err = Load()
	if err == nil || !strings.Contains(err.Error(), "SECRET") {
		t.Fatalf("want missing SECRET error, got %v", err)
	}

	t.Setenv("SECRET", "x")
	t.Setenv("TOKEN_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("want TOKEN_TTL parse error")
	}
}
