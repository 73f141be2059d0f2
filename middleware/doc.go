// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/health", middleware.WithLogging(handler))

Logs request start (method, path, remote, request_id) and completion
(status, duration_ms). Request IDs come from chi's RequestID middleware.

# Authentication

RequireAuth validates the bearer token and stores the claims in the
request context; RequireAdmin additionally demands the admin role:

	authed := middleware.RequireAuth(secret)
	mux.HandleFunc("GET /api/feedback", middleware.WithLogging(authed(h.List)))
	mux.HandleFunc("GET /api/admin/users", middleware.WithLogging(authed(middleware.RequireAdmin(h.Users))))

Handlers read the caller with:

	claims, ok := middleware.IdentityFromContext(r.Context())

# Recovery and CORS

Recover converts panics into a generic 500 JSON error. CORS wraps
go-chi/cors with the allowed origins from the configuration.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
