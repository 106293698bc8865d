// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"os"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "file:ballot.db")
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Errorf("expected default access TTL 15m, got %s", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 30*24*time.Hour {
		t.Errorf("expected default refresh TTL 720h, got %s", cfg.RefreshTokenTTL)
	}
	if cfg.PhotoStorageConfigured() {
		t.Error("photo storage should be off without a bucket")
	}
}

func TestParseFlags_RequiredSettings(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected an error without DATABASE_URL")
	}

	os.Setenv("DATABASE_URL", "file:ballot.db")
	defer os.Clearenv()
	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected an error without JWT_SECRET")
	}
}

func TestParseFlags_RejectsUnknownDatabaseType(t *testing.T) {
	os.Setenv("DATABASE_URL", "file:ballot.db")
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Clearenv()

	if _, err := ParseFlags([]string{"-t", "mysql"}); err == nil {
		t.Error("expected an error for an unsupported database type")
	}
}

func TestParseFlags_TTLParsing(t *testing.T) {
	os.Setenv("DATABASE_URL", "file:ballot.db")
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("ACCESS_TOKEN_TTL", "5m")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-refresh-ttl", "24h"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AccessTokenTTL != 5*time.Minute {
		t.Errorf("expected 5m, got %s", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 24*time.Hour {
		t.Errorf("expected 24h, got %s", cfg.RefreshTokenTTL)
	}

	os.Setenv("ACCESS_TOKEN_TTL", "not-a-duration")
	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected an error for a malformed TTL")
	}
}
