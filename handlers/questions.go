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

type QuestionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewQuestionHandler(db *sql.DB, cfg cliparse.Config) *QuestionHandler {
	return &QuestionHandler{db: db, cfg: cfg}
}

const questionColumns = `id, form_id, question_text, type, options, answer, image_url`

func scanQuestion(row interface{ Scan(...any) error }, q *models.Question) error {
	return row.Scan(&q.ID, &q.FormID, &q.QuestionText, &q.Type, &q.Options, &q.Answer, &q.ImageURL)
}

// listQuestions returns questions ordered by id, all of them when formID is nil
func listQuestions(ctx context.Context, conn *sql.DB, formID *int64) ([]models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions`
	var args []any
	if formID != nil {
		query += ` WHERE form_id = $1`
		args = append(args, *formID)
	}
	query += ` ORDER BY id ASC`

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func getQuestion(ctx context.Context, conn *sql.DB, id int64) (*models.Question, error) {
	var q models.Question
	err := scanQuestion(conn.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id), &q)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// insertQuestion coerces the type and serializes the options before storing
func insertQuestion(ctx context.Context, conn *sql.DB, in models.QuestionInput) (int64, error) {
	options, err := encodeOptions(in.Options)
	if err != nil {
		return 0, err
	}

	var id int64
	err = conn.QueryRowContext(ctx, `
		INSERT INTO questions (form_id, question_text, type, options, answer, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, in.FormID, in.QuestionText, models.NormalizeQuestionType(in.Type), options,
		nullIfEmpty(in.Answer), nullIfEmpty(in.ImageURL)).Scan(&id)
	return id, err
}

// requireAdminInline is the in-handler role check used by the question routes
func requireAdminInline(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.IdentityFromContext(r.Context())
	if !ok || claims.Role != models.RoleAdmin {
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin only")
		return false
	}
	return true
}

// List handles GET /api/questions
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	questions, err := listQuestions(r.Context(), h.db, nil)
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// Create handles POST /api/questions (admin)
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdminInline(w, r) {
		return
	}

	var req models.QuestionInput
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.QuestionText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_text required")
		return
	}

	id, err := insertQuestion(r.Context(), h.db, req)
	if err != nil {
		slog.Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	created, err := getQuestion(r.Context(), h.db, id)
	if err != nil {
		slog.Error("failed to load question", "error", err, "question_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("question created", "question_id", id)

	middleware.JSONResponse(w, http.StatusCreated, created)
}

// Update handles PUT /api/questions/{id} (admin)
// Replaces text, options and canonical answer; type and form stay as they are.
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireAdminInline(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.QuestionInput
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.QuestionText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_text required")
		return
	}

	options, err := encodeOptions(req.Options)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid options")
		return
	}

	_, err = h.db.ExecContext(r.Context(), `
		UPDATE questions SET question_text = $1, options = $2, answer = $3 WHERE id = $4
	`, req.QuestionText, options, nullIfEmpty(req.Answer), id)
	if err != nil {
		slog.Error("failed to update question", "error", err, "question_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	updated, err := getQuestion(r.Context(), h.db, id)
	if err != nil {
		slog.Error("failed to load question", "error", err, "question_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/questions/{id} (admin)
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdminInline(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if _, err := h.db.ExecContext(r.Context(), `DELETE FROM questions WHERE id = $1`, id); err != nil {
		slog.Error("failed to delete question", "error", err, "question_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("question deleted", "question_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Answer handles POST /api/questions/{id}/answer
// Every call appends a response; the answer is not checked against the
// question's type or options.
func (h *QuestionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.IdentityFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.AnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO responses (user_id, question_id, answer, created_at)
		VALUES ($1, $2, $3, $4)
	`, claims.ID, id, req.Answer.Ptr(), time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert response", "error", err, "question_id", id, "user_id", claims.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save answer")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
