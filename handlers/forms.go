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

type FormHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFormHandler(db *sql.DB, cfg cliparse.Config) *FormHandler {
	return &FormHandler{db: db, cfg: cfg}
}

const formColumns = `id, title, description, image_url, published, created_by, created_at`

func scanForm(row interface{ Scan(...any) error }, f *models.Form) error {
	return row.Scan(&f.ID, &f.Title, &f.Description, &f.ImageURL, &f.Published, &f.CreatedBy, &f.CreatedAt)
}

func (h *FormHandler) getForm(ctx context.Context, id int64) (*models.Form, error) {
	var f models.Form
	err := scanForm(h.db.QueryRowContext(ctx, `SELECT `+formColumns+` FROM forms WHERE id = $1`, id), &f)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (h *FormHandler) queryForms(ctx context.Context, publishedOnly bool) ([]models.Form, error) {
	var rows *sql.Rows
	var err error
	if publishedOnly {
		rows, err = h.db.QueryContext(ctx, `
			SELECT `+formColumns+` FROM forms WHERE published = TRUE ORDER BY created_at DESC, id DESC
		`)
	} else {
		// Leaves published out so it works on schemas without the column
		rows, err = h.db.QueryContext(ctx, `
			SELECT id, title, description, image_url, created_by, created_at
			FROM forms ORDER BY created_at DESC, id DESC
		`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	forms := []models.Form{}
	for rows.Next() {
		var f models.Form
		if publishedOnly {
			err = scanForm(rows, &f)
		} else {
			err = rows.Scan(&f.ID, &f.Title, &f.Description, &f.ImageURL, &f.CreatedBy, &f.CreatedAt)
		}
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	return forms, rows.Err()
}

// List handles GET /api/forms
// Returns published forms, or every form if the published filter cannot run.
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	forms, err := h.queryForms(r.Context(), true)
	if err != nil {
		slog.Warn("published form query failed, listing all forms", "error", err)
		forms, err = h.queryForms(r.Context(), false)
	}
	if err != nil {
		slog.Error("failed to list forms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, forms)
}

// Get handles GET /api/forms/{id}
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	form, err := h.getForm(r.Context(), id)
	if err != nil {
		slog.Error("failed to query form", "error", err, "form_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if form == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}

	questions, err := listQuestions(r.Context(), h.db, &id)
	if err != nil {
		slog.Error("failed to query questions", "error", err, "form_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FormWithQuestions{
		Form:      *form,
		Questions: questions,
	})
}

// Create handles POST /api/forms (admin)
// The form and its questions are separate inserts; a failure part-way
// leaves the rows written so far.
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.IdentityFromContext(r.Context())

	var req models.CreateFormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title required")
		return
	}

	ctx := r.Context()

	var formID int64
	err := h.db.QueryRowContext(ctx, `
		INSERT INTO forms (title, description, image_url, published, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, req.Title, nullIfEmpty(req.Description), nullIfEmpty(req.ImageURL), req.Published, claims.ID, time.Now().UTC()).Scan(&formID)
	if err != nil {
		slog.Error("failed to insert form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create form")
		return
	}

	for i, q := range req.Questions {
		q.FormID = &formID
		if _, err := insertQuestion(ctx, h.db, q); err != nil {
			slog.Error("failed to insert question", "error", err, "form_id", formID, "index", i)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create form")
			return
		}
	}

	created, err := h.getForm(ctx, formID)
	if err != nil || created == nil {
		slog.Error("failed to load form", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("form created", "form_id", formID, "questions", len(req.Questions), "published", req.Published)

	middleware.JSONResponse(w, http.StatusCreated, created)
}

// Publish handles PUT /api/forms/{id}/publish (admin)
func (h *FormHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.PublishFormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	_, err := h.db.ExecContext(r.Context(), `UPDATE forms SET published = $1 WHERE id = $2`, req.Published, id)
	if err != nil {
		slog.Error("failed to update form", "error", err, "form_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("form publish state changed", "form_id", id, "published", req.Published)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
