// Package main is the entry point for the AstraLearn server.
//
// Its job is to read configuration, pick the storage backend and
// analyzer, and hand everything to internal/server. All actual logic
// lives in the imported packages.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sakif/astralearn/internal/analysis"
	"github.com/sakif/astralearn/internal/repository"
	"github.com/sakif/astralearn/internal/repository/memory"
	"github.com/sakif/astralearn/internal/repository/sqlite"
	"github.com/sakif/astralearn/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// PORT defaults to 8080.
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// DB_PATH selects the backend: unset means the in-memory store,
	// which loses everything on restart but needs zero setup. Set it
	// to a file path for durable SQLite storage.
	var (
		store  repository.Store
		closer func() error
	)
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", filepath.Dir(dbPath)),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}

		db, err := sqlite.New(dbPath)
		if err != nil {
			logger.Error("failed to open database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		store = db
		closer = db.Close
		logger.Info("using sqlite storage", slog.String("path", dbPath))
	} else {
		store = memory.New()
		logger.Info("using in-memory storage (set DB_PATH for durability)")
	}

	// OPENAI_API_KEY is required for real analysis; without it every
	// AI-backed route will fail with an analysis error.
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Warn("OPENAI_API_KEY not set — AI analysis calls will fail")
	}
	analyzer := analysis.NewOpenAIAnalyzer(apiKey, logger)

	// JWT_SECRET must be a long random string. Use:
	//   JWT_SECRET=$(openssl rand -hex 32)
	// If unset, an ephemeral secret is generated: tokens survive until
	// the process restarts, then all become invalid.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			logger.Error("failed to generate ephemeral JWT secret", slog.String("error", err.Error()))
			os.Exit(1)
		}
		jwtSecret = hex.EncodeToString(buf)
		logger.Warn("JWT_SECRET not set — using an ephemeral secret, tokens won't survive restarts")
	}

	cfg := server.Config{
		Port:      port,
		JWTSecret: jwtSecret,
	}

	srv, err := server.New(cfg, logger, store, analyzer)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if closer != nil {
		srv.SetCloser(closer)
	}

	// Start() blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
