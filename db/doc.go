// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages its schema.

# Connecting

Open returns a verified connection for either supported dialect:

	conn, err := db.Open(db.DialectPostgres, "postgres://...")
	conn, err := db.Open(db.DialectSQLite, "feedback.db")

SQLite connections always enable foreign keys and a busy timeout.

# Migrations

Migrate applies the embedded migrations under migrations/<dialect>:

	if err := db.Migrate(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call on every start; an up-to-date schema is not an error.

# Tables

  - users: accounts with a bcrypt password hash and a role (user, admin)
  - feedback: free-text items with a signed vote score
  - forms: admin-authored surveys with a published flag
  - questions: survey questions, optionally attached to a form
  - responses: append-only answers linking a user to a question

# Relationships

	users 1──* feedback
	users 1──* responses
	forms 1──* questions
	questions 1──* responses

# Errors

IsUniqueViolation recognises duplicate-key errors from lib/pq and
modernc.org/sqlite, so handlers can map them to 409 Conflict.
*/
package db
