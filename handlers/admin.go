// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/feedback-hub/cliparse"
	"github.com/danielhkuo/feedback-hub/middleware"
	"github.com/danielhkuo/feedback-hub/models"
)

const (
	defaultHistoryLimit  = 100
	defaultHistoryOffset = 0
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

func (h *AdminHandler) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := h.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// Analytics handles GET /api/admin/analytics (admin)
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.analytics(r.Context())
	if err != nil {
		slog.Error("failed to compute analytics", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, analytics)
}

func (h *AdminHandler) analytics(ctx context.Context) (*models.Analytics, error) {
	out := &models.Analytics{}
	var err error
	if out.Users, err = h.count(ctx, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if out.Feedback, err = h.count(ctx, `SELECT COUNT(*) FROM feedback`); err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT CAST(DATE(created_at) AS TEXT) AS day, COUNT(*)
		FROM feedback
		GROUP BY CAST(DATE(created_at) AS TEXT)
		ORDER BY day ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query trends: %w", err)
	}
	out.Trends = []models.TrendPoint{}
	for rows.Next() {
		var p models.TrendPoint
		if err := rows.Scan(&p.Date, &p.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan trend: %w", err)
		}
		out.Trends = append(out.Trends, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate trends: %w", err)
	}
	rows.Close()

	err = h.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN votes > 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN votes < 0 THEN 1 ELSE 0 END), 0)
		FROM feedback
	`).Scan(&out.Votes.Positive, &out.Votes.Negative)
	if err != nil {
		return nil, fmt.Errorf("split votes: %w", err)
	}

	return out, nil
}

// Stats handles GET /api/admin/stats
// Open to every authenticated user; global totals are only filled for admins.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, _ := middleware.IdentityFromContext(ctx)

	var stats models.Stats
	var err error

	stats.UserSubmitted, err = h.count(ctx, `SELECT COUNT(DISTINCT question_id) FROM responses WHERE user_id = $1`, claims.ID)
	if err == nil {
		stats.UserFeedbackAuthored, err = h.count(ctx, `SELECT COUNT(*) FROM feedback WHERE user_id = $1`, claims.ID)
	}
	if err == nil && claims.Role == models.RoleAdmin {
		stats.TotalForms, err = h.count(ctx, `SELECT COUNT(*) FROM forms`)
		if err == nil {
			stats.TotalResponses, err = h.count(ctx, `SELECT COUNT(*) FROM responses`)
		}
	}
	if err != nil {
		slog.Error("failed to compute stats", "error", err, "user_id", claims.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// Fixture content for Seed
var (
	seedForm = models.CreateFormRequest{
		Title:       "Product Satisfaction Survey",
		Description: "Quick survey about your experience with our product",
		ImageURL:    "https://images.unsplash.com/photo-1522202176988-66273c2fd55f?w=640&q=80&auto=format&fit=crop",
		Questions: []models.QuestionInput{
			{QuestionText: "How satisfied are you with our product?", Options: []string{"Very satisfied", "Satisfied", "Neutral", "Dissatisfied"}},
			{QuestionText: "How likely are you to recommend us?", Options: []string{"Very likely", "Likely", "Unlikely"}},
			{QuestionText: "Rate the value for money", Options: []string{"Excellent", "Good", "Fair", "Poor"}},
		},
	}

	seedFeedback = []struct {
		text  string
		votes int
	}{
		{"Great product!", 5},
		{"Could be better.", 2},
		{"Excellent customer service.", 8},
	}
)

// Seed handles POST /api/admin/seed (admin)
// Not atomic: a failure part-way keeps what was already inserted.
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, _ := middleware.IdentityFromContext(ctx)

	formID, err := h.seed(ctx, &claims.ID)
	if err != nil {
		slog.Error("failed to seed data", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to seed data")
		return
	}

	slog.Info("demo data seeded", "form_id", formID, "by", claims.ID)

	middleware.JSONResponse(w, http.StatusOK, models.SeedResponse{Success: true, FormID: formID})
}

// seed adds the demo form and, when any user exists, feedback owned by the
// oldest account. createdBy may be nil.
func (h *AdminHandler) seed(ctx context.Context, createdBy *int64) (int64, error) {
	now := time.Now().UTC()

	var formID int64
	err := h.db.QueryRowContext(ctx, `
		INSERT INTO forms (title, description, image_url, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, seedForm.Title, seedForm.Description, seedForm.ImageURL, createdBy, now).Scan(&formID)
	if err != nil {
		return 0, fmt.Errorf("insert form: %w", err)
	}

	for _, q := range seedForm.Questions {
		q.FormID = &formID
		if _, err := insertQuestion(ctx, h.db, q); err != nil {
			return formID, fmt.Errorf("insert question: %w", err)
		}
	}

	var userID int64
	err = h.db.QueryRowContext(ctx, `SELECT id FROM users ORDER BY id LIMIT 1`).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return formID, nil
	}
	if err != nil {
		return formID, fmt.Errorf("find user: %w", err)
	}

	for _, fb := range seedFeedback {
		_, err := h.db.ExecContext(ctx, `
			INSERT INTO feedback (user_id, feedback_text, votes, created_at)
			VALUES ($1, $2, $3, $4)
		`, userID, fb.text, fb.votes, now)
		if err != nil {
			return formID, fmt.Errorf("insert feedback: %w", err)
		}
	}

	return formID, nil
}

// Feedback handles GET /api/admin/feedback (admin)
// ?minVotes=N keeps rows with votes >= N; an unparsable value is ignored.
func (h *AdminHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var minVotes *int64
	if v, ok := queryInt64(r, "minVotes"); ok {
		minVotes = &v
	}

	items, err := listFeedback(r.Context(), h.db, minVotes)
	if err != nil {
		slog.Error("failed to list feedback", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// HistoryFilter narrows the submission history
type HistoryFilter struct {
	FormID *int64
	UserID *int64
	Limit  int64
	Offset int64
}

// parseHistoryFilter never fails: malformed values fall back to defaults
func parseHistoryFilter(r *http.Request) HistoryFilter {
	f := HistoryFilter{Limit: defaultHistoryLimit, Offset: defaultHistoryOffset}
	if v, ok := queryInt64(r, "formId"); ok {
		f.FormID = &v
	}
	if v, ok := queryInt64(r, "userId"); ok {
		f.UserID = &v
	}
	if v, ok := queryInt64(r, "limit"); ok && v >= 0 {
		f.Limit = v
	}
	if v, ok := queryInt64(r, "offset"); ok && v >= 0 {
		f.Offset = v
	}
	return f
}

// History handles GET /api/admin/history (admin)
func (h *AdminHandler) History(w http.ResponseWriter, r *http.Request) {
	filter := parseHistoryFilter(r)

	entries, err := h.history(r.Context(), filter)
	if err != nil {
		slog.Error("failed to load submission history", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load submission history")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}

func (h *AdminHandler) history(ctx context.Context, f HistoryFilter) ([]models.HistoryEntry, error) {
	var conds []string
	var args []any
	if f.FormID != nil {
		args = append(args, *f.FormID)
		conds = append(conds, fmt.Sprintf("q.form_id = $%d", len(args)))
	}
	if f.UserID != nil {
		args = append(args, *f.UserID)
		conds = append(conds, fmt.Sprintf("r.user_id = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT
			r.id, r.user_id, u.username, r.question_id, q.question_text, q.type,
			q.form_id, fm.title, r.answer, r.created_at
		FROM responses r
		JOIN users u ON r.user_id = u.id
		JOIN questions q ON r.question_id = q.id
		LEFT JOIN forms fm ON q.form_id = fm.id
		%s
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.QuestionID, &e.QuestionText, &e.Type,
			&e.FormID, &e.FormTitle, &e.Answer, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Users handles GET /api/admin/users (admin)
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT
			u.id, u.username, u.role,
			COALESCE(rc.response_count, 0),
			COALESCE(fc.feedback_count, 0),
			rc.last_response_at
		FROM users u
		LEFT JOIN (
			SELECT user_id, COUNT(*) AS response_count, MAX(created_at) AS last_response_at
			FROM responses GROUP BY user_id
		) rc ON rc.user_id = u.id
		LEFT JOIN (
			SELECT user_id, COUNT(*) AS feedback_count FROM feedback GROUP BY user_id
		) fc ON fc.user_id = u.id
		ORDER BY u.username ASC
	`)
	if err != nil {
		slog.Error("failed to query users overview", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	users := []models.UserOverview{}
	for rows.Next() {
		var u models.UserOverview
		var last sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.ResponseCount, &u.FeedbackCount, &last); err != nil {
			slog.Error("failed to scan user overview", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if u.LastResponseAt, err = parseDBTime(last); err != nil {
			slog.Error("failed to parse last response time", "error", err, "user_id", u.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate users overview", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}
