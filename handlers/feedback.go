// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/feedback-hub/cliparse"
	"github.com/danielhkuo/feedback-hub/middleware"
	"github.com/danielhkuo/feedback-hub/models"
)

type FeedbackHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFeedbackHandler(db *sql.DB, cfg cliparse.Config) *FeedbackHandler {
	return &FeedbackHandler{db: db, cfg: cfg}
}

const feedbackColumns = `f.id, f.user_id, f.feedback_text, f.votes, f.created_at, COALESCE(u.username, '')`

func scanFeedback(row interface{ Scan(...any) error }, fb *models.Feedback) error {
	return row.Scan(&fb.ID, &fb.UserID, &fb.FeedbackText, &fb.Votes, &fb.CreatedAt, &fb.Username)
}

// listFeedback returns feedback newest first, optionally with votes >= minVotes
func listFeedback(ctx context.Context, conn *sql.DB, minVotes *int64) ([]models.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback f JOIN users u ON f.user_id = u.id`
	var args []any
	if minVotes != nil {
		query += ` WHERE f.votes >= $1`
		args = append(args, *minVotes)
	}
	query += ` ORDER BY f.created_at DESC, f.id DESC`

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Feedback{}
	for rows.Next() {
		var fb models.Feedback
		if err := scanFeedback(rows, &fb); err != nil {
			return nil, err
		}
		items = append(items, fb)
	}
	return items, rows.Err()
}

// getFeedback returns nil without error when the row does not exist
func (h *FeedbackHandler) getFeedback(ctx context.Context, id int64) (*models.Feedback, error) {
	var fb models.Feedback
	err := scanFeedback(h.db.QueryRowContext(ctx, `
		SELECT `+feedbackColumns+`
		FROM feedback f LEFT JOIN users u ON f.user_id = u.id
		WHERE f.id = $1
	`, id), &fb)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

// List handles GET /api/feedback
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := listFeedback(r.Context(), h.db, nil)
	if err != nil {
		slog.Error("failed to list feedback", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// Create handles POST /api/feedback
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.IdentityFromContext(r.Context())

	var req models.FeedbackRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FeedbackText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "feedback_text required")
		return
	}

	var id int64
	err := h.db.QueryRowContext(r.Context(), `
		INSERT INTO feedback (user_id, feedback_text, votes, created_at)
		VALUES ($1, $2, 0, $3)
		RETURNING id
	`, claims.ID, req.FeedbackText, time.Now().UTC()).Scan(&id)
	if err != nil {
		slog.Error("failed to insert feedback", "error", err, "user_id", claims.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create feedback")
		return
	}

	created, err := h.getFeedback(r.Context(), id)
	if err != nil {
		slog.Error("failed to load feedback", "error", err, "feedback_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("feedback created", "feedback_id", id, "user_id", claims.ID)

	middleware.JSONResponse(w, http.StatusCreated, created)
}

// Update handles PUT /api/feedback/{id}
// Only the author's row is changed; other callers get the row back untouched.
func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.IdentityFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.FeedbackRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FeedbackText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "feedback_text required")
		return
	}

	_, err := h.db.ExecContext(r.Context(), `
		UPDATE feedback SET feedback_text = $1 WHERE id = $2 AND user_id = $3
	`, req.FeedbackText, id, claims.ID)
	if err != nil {
		slog.Error("failed to update feedback", "error", err, "feedback_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	updated, err := h.getFeedback(r.Context(), id)
	if err != nil {
		slog.Error("failed to load feedback", "error", err, "feedback_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/feedback/{id}
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.IdentityFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := h.db.ExecContext(r.Context(), `
		DELETE FROM feedback WHERE id = $1 AND user_id = $2
	`, id, claims.ID)
	if err != nil {
		slog.Error("failed to delete feedback", "error", err, "feedback_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if n, _ := res.RowsAffected(); n > 0 {
		slog.Info("feedback deleted", "feedback_id", id, "user_id", claims.ID)
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Vote handles POST /api/feedback/{id}/vote
// There is no per-user ledger, so repeated votes all count.
func (h *FeedbackHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	// An empty body is an upvote
	var req models.VoteRequest
	if r.ContentLength != 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	delta := 1
	if req.Direction == "down" {
		delta = -1
	}

	_, err := h.db.ExecContext(r.Context(), `
		UPDATE feedback SET votes = votes + $1 WHERE id = $2
	`, delta, id)
	if err != nil {
		slog.Error("failed to vote on feedback", "error", err, "feedback_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	updated, err := h.getFeedback(r.Context(), id)
	if err != nil {
		slog.Error("failed to load feedback", "error", err, "feedback_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, updated)
}
