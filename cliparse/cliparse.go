// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	GoogleClientID string

	S3AccessKey     string
	S3SecretKey     string
	S3Region        string
	S3Bucket        string
	S3Endpoint      string
	S3PublicBaseURL string
}

// ParseFlags builds the configuration from CLI flags with environment
// variable fallbacks. Secrets should come from the environment.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var accessTTL, refreshTTL string

	fs := flag.NewFlagSet("ballot-box", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")
	fs.StringVar(&accessTTL, "access-ttl", "", "Access token lifetime (e.g. 15m)")
	fs.StringVar(&refreshTTL, "refresh-ttl", "", "Refresh token lifetime (e.g. 720h)")

	fs.StringVar(&cfg.GoogleClientID, "google-client-id", "", "Google OAuth client ID for ID token verification")

	fs.StringVar(&cfg.S3AccessKey, "s3-access-key", "", "Object storage access key (prefer env)")
	fs.StringVar(&cfg.S3SecretKey, "s3-secret-key", "", "Object storage secret key (prefer env)")
	fs.StringVar(&cfg.S3Region, "s3-region", "", "Object storage region")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", "", "Object storage bucket for candidate photos")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", "", "Object storage endpoint (for S3-compatible backends)")
	fs.StringVar(&cfg.S3PublicBaseURL, "s3-public-url", "", "Public base URL for stored objects")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	var err error
	cfg.AccessTokenTTL, err = parseTTL(accessTTL, "ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.RefreshTokenTTL, err = parseTTL(refreshTTL, "REFRESH_TOKEN_TTL", 30*24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	if cfg.GoogleClientID == "" {
		cfg.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}

	if cfg.S3AccessKey == "" {
		cfg.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
	}
	if cfg.S3SecretKey == "" {
		cfg.S3SecretKey = os.Getenv("S3_SECRET_KEY")
	}
	if cfg.S3Region == "" {
		cfg.S3Region = os.Getenv("S3_REGION")
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1"
		}
	}
	if cfg.S3Bucket == "" {
		cfg.S3Bucket = os.Getenv("S3_BUCKET")
	}
	if cfg.S3Endpoint == "" {
		cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	}
	if cfg.S3PublicBaseURL == "" {
		cfg.S3PublicBaseURL = os.Getenv("S3_PUBLIC_BASE_URL")
	}

	return cfg, nil
}

// PhotoStorageConfigured reports whether the object storage settings are
// complete enough to accept photo uploads.
func (c Config) PhotoStorageConfigured() bool {
	return c.S3Bucket != "" && c.S3PublicBaseURL != ""
}

func parseTTL(flagValue, envName string, fallback time.Duration) (time.Duration, error) {
	raw := flagValue
	if raw == "" {
		raw = os.Getenv(envName)
	}
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.New("invalid " + envName + " duration")
	}
	return d, nil
}
