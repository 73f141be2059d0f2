// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/feedback-hub/auth"
	"github.com/danielhkuo/feedback-hub/cliparse"
	"github.com/danielhkuo/feedback-hub/db"
	"github.com/danielhkuo/feedback-hub/middleware"
	"github.com/danielhkuo/feedback-hub/models"
)

// Same message for unknown users and wrong passwords
const invalidCredentials = "Invalid credentials"

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password required")
		return
	}

	ctx := r.Context()

	var existing int64
	err := h.db.QueryRowContext(ctx, `SELECT id FROM users WHERE username = $1`, req.Username).Scan(&existing)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Username already exists")
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	role := models.NormalizeRole(req.Role)

	var id int64
	err = h.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password, role, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, req.Username, hash, role, time.Now().UTC()).Scan(&id)
	if err != nil {
		// Lost a race with a concurrent registration
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Username already exists")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	slog.Info("user registered", "user_id", id, "role", role)

	middleware.JSONResponse(w, http.StatusCreated, models.UserInfo{
		ID:       id,
		Username: req.Username,
		Role:     role,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password required")
		return
	}

	var user models.UserInfo
	var hash string
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, username, password, role FROM users WHERE username = $1
	`, req.Username).Scan(&user.ID, &user.Username, &hash, &user.Role)

	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	if !auth.CheckPassword(hash, req.Password) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	token, err := auth.IssueToken([]byte(h.cfg.JWTSecret), user.ID, user.Username, user.Role, h.cfg.TokenTTL)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token: token,
		User:  user,
	})
}
