// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kedjora/kedjora-go/internal/auth"
	"github.com/kedjora/kedjora-go/internal/config"
	"github.com/kedjora/kedjora-go/internal/logging"
	"github.com/kedjora/kedjora-go/internal/store"
	"github.com/kedjora/kedjora-go/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "kedjora",
	Short: "Kedjora agency site and admin backend",
	Long: `Kedjora serves the public agency site and the admin area.

Environment variables:
  KEDJORA_SESSION_SECRET   Session signing key (required, min 32 bytes)
  KEDJORA_DB_PATH          SQLite database path (default: ./data/kedjora.db)
  KEDJORA_SERVER_PORT      Server port (default: 8080)
  KEDJORA_ENV              development|production (default: development)
  KEDJORA_REDIS_URL        Redis URL for the content cache (optional)
  KEDJORA_ADMIN_PASSWORD   Seeded admin password (required outside development)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env files are a development convenience; a missing file is fine.
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)

		v, err := store.MigrationVersion(db)
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
		slog.Info("database migrated", "version", v)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the bootstrap admin and optionally demo content",
	RunE: func(cmd *cobra.Command, args []string) error {
		demo, err := cmd.Flags().GetBool("demo")
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)

		return seed(cmd.Context(), db, cfg, demo)
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print an argon2id hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
	},
}

func init() {
	seedCmd.Flags().Bool("demo", false, "also seed demo services, portfolio, testimonials and posts")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, hashPasswordCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration and installs the stdout logger. A
// missing or weak signing secret stops the process here.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	})))
	return cfg, nil
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openDB opens the database and runs migrations.
func openDB(cfg *config.Config) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	if err := store.Migrate(db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing database connection", "error", err)
	}
}

// useEventLog mirrors warnings and errors into the events table.
func useEventLog(db *sql.DB, cfg *config.Config) {
	text := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})
	slog.SetDefault(slog.New(logging.NewEventLogHandler(text, db)))
	slog.Info("event log integration enabled", "min_level", "warn")
}

// seed creates the bootstrap admin when missing and, with demo, the sample
// content.
func seed(ctx context.Context, db *sql.DB, cfg *config.Config, demo bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.AdminPassword == "" {
		return errors.New("KEDJORA_ADMIN_PASSWORD is required to seed the admin user")
	}
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	if _, err := store.Seed(ctx, db, store.AdminSeed{
		Email:        cfg.AdminEmail,
		Name:         cfg.AdminName,
		PasswordHash: hash,
	}); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}

	if demo {
		if err := store.SeedDemo(ctx, db); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}
	return nil
}
