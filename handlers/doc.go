// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Feedback Hub API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: Registration and login
  - FeedbackHandler: Feedback CRUD and voting
  - FormHandler: Survey forms and publishing
  - QuestionHandler: Question CRUD and answers
  - AdminHandler: Analytics, stats, history, user overview, demo seeding

Handlers are created via constructor functions that accept *sql.DB and Config:

	feedbackHandler := handlers.NewFeedbackHandler(db, cfg)

# Identity

Routes behind middleware.RequireAuth read the caller with
middleware.IdentityFromContext. Question mutations check the admin role
themselves; the other admin routes rely on middleware.RequireAdmin.

# Ownership

Feedback update and delete are scoped to the caller by the WHERE clause
only. A request for someone else's row changes nothing and still returns
200.

# SQL

Queries use $n placeholders and RETURNING, which both lib/pq and
modernc.org/sqlite accept, so every handler runs unchanged on either
database.
*/
package handlers
