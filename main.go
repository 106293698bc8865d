// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/ballot-box/auth"
	"github.com/danielhkuo/ballot-box/cliparse"
	"github.com/danielhkuo/ballot-box/db"
	"github.com/danielhkuo/ballot-box/lifecycle"
	"github.com/danielhkuo/ballot-box/router"
	"github.com/danielhkuo/ballot-box/storage"
	"github.com/danielhkuo/ballot-box/store"
	"github.com/danielhkuo/ballot-box/voting"
)

func main() {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Apply migrations
	if err := db.Migrate(ctx, dbConn, cfg.DatabaseType); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Wire stores and services
	polls := store.NewSQLPollStore(dbConn)
	candidates := store.NewSQLCandidateStore(dbConn)
	votes := store.NewSQLVoteStore(dbConn)
	users := store.NewSQLUserStore(dbConn)
	tokens := store.NewSQLTokenStore(dbConn)

	authSvc := auth.NewService(
		users, tokens,
		auth.NewIDTokenVerifier(cfg.GoogleClientID),
		[]byte(cfg.JWTSecret),
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)

	var photos storage.PhotoStore
	if cfg.PhotoStorageConfigured() {
		s3Store, err := storage.NewS3PhotoStore(ctx, storage.S3Config{
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			BaseEndpoint:  cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			slog.Error("photo storage setup failed", "error", err)
			os.Exit(1)
		}
		photos = s3Store
		slog.Info("Photo storage ready", "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("Photo storage not configured; uploads are disabled")
	}

	// Create router
	handler := router.NewRouter(router.Deps{
		Auth:       authSvc,
		Polls:      polls,
		Candidates: candidates,
		Ledger:     voting.NewLedger(polls, votes),
		Lifecycle:  lifecycle.NewManager(polls),
		Photos:     photos,
	})

	// Create server
	server := http.Server{
		Handler: handler,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
