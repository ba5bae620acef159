// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/intake/auth"
	"github.com/danielhkuo/intake/cliparse"
	"github.com/danielhkuo/intake/middleware"
	"github.com/danielhkuo/intake/models"
)

// currentUser resolves the Authorization bearer header to a stored user.
// A token whose subject no longer exists is treated the same as a bad
// signature: auth.ErrInvalidToken.
func currentUser(conn *sql.DB, cfg cliparse.Config, r *http.Request) (*models.User, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, auth.ErrInvalidToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	username, err := auth.ParseToken(token, cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = conn.QueryRow(`
		SELECT id, username, password_hash, is_admin FROM app_user WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin)

	if err == sql.ErrNoRows {
		return nil, auth.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// requireUser authenticates the request, writing a 401 (or 500) and
// returning nil if it fails.
func requireUser(conn *sql.DB, cfg cliparse.Config, w http.ResponseWriter, r *http.Request) *models.User {
	user, err := currentUser(conn, cfg, r)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or missing bearer token")
			return nil
		}
		slog.Error("failed to resolve bearer token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil
	}
	return user
}

// requireAdmin authenticates the request and enforces the admin flag.
// Every /admin handler calls this before touching data.
func requireAdmin(conn *sql.DB, cfg cliparse.Config, w http.ResponseWriter, r *http.Request) *models.User {
	user := requireUser(conn, cfg, w, r)
	if user == nil {
		return nil
	}
	if !user.IsAdmin {
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin access required")
		return nil
	}
	return user
}

// isUniqueViolation reports whether err is a uniqueness-constraint error
// from either supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // modernc sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") // lib/pq
}
