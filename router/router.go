// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/feedback-hub/cliparse"
	"github.com/danielhkuo/feedback-hub/handlers"
	"github.com/danielhkuo/feedback-hub/middleware"
	"github.com/danielhkuo/feedback-hub/models"
)

const Version = "1.0.0"

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	feedbackHandler := handlers.NewFeedbackHandler(db, cfg)
	formHandler := handlers.NewFormHandler(db, cfg)
	questionHandler := handlers.NewQuestionHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	requireAuth := middleware.RequireAuth([]byte(cfg.JWTSecret))
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(requireAuth(h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(requireAuth(middleware.RequireAdmin(h)))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{Status: "ok"})
	})

	// Auth (public)
	mux.HandleFunc("POST /api/auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.WithLogging(authHandler.Login))

	// Feedback
	mux.HandleFunc("GET /api/feedback", authed(feedbackHandler.List))
	mux.HandleFunc("POST /api/feedback", authed(feedbackHandler.Create))
	mux.HandleFunc("PUT /api/feedback/{id}", authed(feedbackHandler.Update))
	mux.HandleFunc("DELETE /api/feedback/{id}", authed(feedbackHandler.Delete))
	mux.HandleFunc("POST /api/feedback/{id}/vote", authed(feedbackHandler.Vote))

	// Forms
	mux.HandleFunc("GET /api/forms", authed(formHandler.List))
	mux.HandleFunc("GET /api/forms/{id}", authed(formHandler.Get))
	mux.HandleFunc("POST /api/forms", admin(formHandler.Create))
	mux.HandleFunc("PUT /api/forms/{id}/publish", admin(formHandler.Publish))

	// Questions (role checked inside the handlers)
	mux.HandleFunc("GET /api/questions", authed(questionHandler.List))
	mux.HandleFunc("POST /api/questions", authed(questionHandler.Create))
	mux.HandleFunc("PUT /api/questions/{id}", authed(questionHandler.Update))
	mux.HandleFunc("DELETE /api/questions/{id}", authed(questionHandler.Delete))
	mux.HandleFunc("POST /api/questions/{id}/answer", authed(questionHandler.Answer))

	// Admin
	mux.HandleFunc("GET /api/admin/analytics", admin(adminHandler.Analytics))
	mux.HandleFunc("GET /api/admin/stats", authed(adminHandler.Stats))
	mux.HandleFunc("POST /api/admin/seed", admin(adminHandler.Seed))
	mux.HandleFunc("GET /api/admin/feedback", admin(adminHandler.Feedback))
	mux.HandleFunc("GET /api/admin/history", admin(adminHandler.History))
	mux.HandleFunc("GET /api/admin/users", admin(adminHandler.Users))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.RootResponse{
			Message: "Feedback Hub API",
			Status:  "running",
			Version: Version,
			Endpoints: map[string]string{
				"health":    "/api/health",
				"auth":      "/api/auth",
				"feedback":  "/api/feedback",
				"forms":     "/api/forms",
				"questions": "/api/questions",
				"admin":     "/api/admin",
			},
		})
	})

	var h http.Handler = mux
	h = middleware.Recover(h)
	h = chimw.RealIP(h)
	h = chimw.RequestID(h)
	h = middleware.CORS(cfg.AllowedOrigins)(h)
	return h
}
