// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/portfolio-go/internal/model"
)

// CreateUser inserts a new user. The password must already be hashed
// by the caller.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash, role string) (*model.User, error) {
	if role == "" {
		role = model.RoleAdmin
	}
	res, err := s.Exec(ctx,
		"INSERT INTO users (username, email, password, role) VALUES (?, ?, ?, ?)",
		username, email, passwordHash, role)
	if err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, res.LastInsertID)
}

// GetUserByID fetches a user by primary key.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.QueryOne(ctx, "SELECT * FROM users WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return userFromRow(row), nil
}

// GetUserByUsername fetches a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row, err := s.QueryOne(ctx, "SELECT * FROM users WHERE username = ?", username)
	if err != nil {
		return nil, err
	}
	return userFromRow(row), nil
}

// GetUserByEmail fetches a user by email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.QueryOne(ctx, "SELECT * FROM users WHERE email = ?", email)
	if err != nil {
		return nil, err
	}
	return userFromRow(row), nil
}

// UpdateUserPassword replaces a user's password hash.
func (s *Store) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := s.Exec(ctx,
		"UPDATE users SET password = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		passwordHash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdminExists reports whether at least one admin account exists.
func (s *Store) AdminExists(ctx context.Context) (bool, error) {
	row, err := s.QueryOne(ctx, "SELECT COUNT(*) AS count FROM users WHERE role = ?", model.RoleAdmin)
	if err != nil {
		return false, err
	}
	return row.Int64("count") > 0, nil
}

// CountUsers returns the number of user accounts.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	row, err := s.QueryOne(ctx, "SELECT COUNT(*) AS count FROM users")
	if err != nil {
		return 0, err
	}
	return row.Int64("count"), nil
}

func userFromRow(row Row) *model.User {
	return &model.User{
		ID:           row.Int64("id"),
		Username:     row.String("username"),
		Email:        row.String("email"),
		PasswordHash: row.String("password"),
		Role:         row.String("role"),
		CreatedAt:    row.Time("created_at"),
		UpdatedAt:    row.Time("updated_at"),
	}
}
