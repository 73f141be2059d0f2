// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Feedback Hub API.

# Route Registration

NewRouter returns the full handler stack:

	h := router.NewRouter(db, cfg)

Requests pass CORS, request ID, real IP and panic recovery before reaching
the mux. Every route is wrapped in middleware.WithLogging.

# Endpoints

Public:

	GET  /                   - Service info
	GET  /api/health         - Liveness
	POST /api/auth/register  - Create account
	POST /api/auth/login     - Obtain bearer token

Authenticated (Authorization: Bearer <token>):

	GET    /api/feedback             - List feedback
	POST   /api/feedback             - Submit feedback
	PUT    /api/feedback/{id}        - Edit own feedback
	DELETE /api/feedback/{id}        - Delete own feedback
	POST   /api/feedback/{id}/vote   - Up or down vote
	GET    /api/forms                - Published forms
	GET    /api/forms/{id}           - Form with questions
	GET    /api/questions            - All questions
	POST   /api/questions/{id}/answer
	GET    /api/admin/stats          - Caller stats

Admin only:

	POST /api/forms
	PUT  /api/forms/{id}/publish
	POST|PUT|DELETE /api/questions[/{id}]
	GET  /api/admin/analytics|feedback|history|users
	POST /api/admin/seed
*/
package router
