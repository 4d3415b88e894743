// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// RoleAdmin and RoleEditor are the user roles.
const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
)

// AdminSeed describes the bootstrap administrator. PasswordHash must
// already be hashed by the caller.
type AdminSeed struct {
	Email        string
	Name         string
	PasswordHash string
}

// Seed creates the bootstrap admin user unless a user with the same email exists.
// It reports whether a user was created.
func Seed(ctx context.Context, db *sql.DB, admin AdminSeed) (bool, error) {
	queries := New(db)

	email := strings.TrimSpace(admin.Email)
	if email == "" || admin.PasswordHash == "" {
		return false, errors.New("admin email and password hash are required")
	}

	_, err := queries.GetUserByEmail(ctx, email)
	if err == nil {
		slog.Info("admin user already exists, skipping seed", "email", email)
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("checking for admin user: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Admin"
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        email,
		PasswordHash: admin.PasswordHash,
		Name:         name,
		Role:         RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return false, fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created admin user", "id", user.ID, "email", user.Email)
	return true, nil
}
