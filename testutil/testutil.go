// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/feedback-hub/auth"
	"github.com/danielhkuo/feedback-hub/cliparse"
	"github.com/danielhkuo/feedback-hub/db"
	"github.com/danielhkuo/feedback-hub/models"
)

const TestJWTSecret = "test-secret"

// SetupTestDB creates a migrated SQLite database private to the test.
// It is closed automatically when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.DialectSQLite, path)
	require.NoError(t, err, "open test database")

	// One connection keeps concurrent tests off SQLITE_BUSY
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.Migrate(conn, db.DialectSQLite), "migrate test database")

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           4000,
		DatabaseURL:    "test.db",
		DatabaseType:   cliparse.DatabaseSQLite,
		JWTSecret:      TestJWTSecret,
		TokenTTL:       24 * time.Hour,
		AllowedOrigins: []string{"*"},
	}
}

// CreateTestUser inserts a user with a bcrypt-hashed password and returns
// its identity
func CreateTestUser(t *testing.T, conn *sql.DB, username, password, role string) models.UserInfo {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := models.UserInfo{Username: username, Role: models.NormalizeRole(role)}
	err = conn.QueryRow(`
		INSERT INTO users (username, password, role, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, username, hash, user.Role, time.Now().UTC()).Scan(&user.ID)
	require.NoError(t, err, "create test user")

	return user
}

// Claims builds the identity the auth middleware would attach for user
func Claims(user models.UserInfo) *auth.Claims {
	return &auth.Claims{ID: user.ID, Username: user.Username, Role: user.Role}
}

// TokenFor issues a bearer token for user signed with cfg's secret
func TokenFor(t *testing.T, cfg cliparse.Config, user models.UserInfo) string {
	t.Helper()

	token, err := auth.IssueToken([]byte(cfg.JWTSecret), user.ID, user.Username, user.Role, cfg.TokenTTL)
	require.NoError(t, err)
	return token
}

// AuthHeader returns request headers carrying a bearer token for user
func AuthHeader(t *testing.T, cfg cliparse.Config, user models.UserInfo) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + TokenFor(t, cfg, user)}
}

// CreateTestForm inserts a form and returns its ID
func CreateTestForm(t *testing.T, conn *sql.DB, title string, published bool, createdAt time.Time) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO forms (title, published, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, title, published, createdAt.UTC()).Scan(&id)
	require.NoError(t, err, "create test form")

	return id
}

// AddTestQuestion adds a question to a form and returns the question ID.
// A zero formID creates a standalone question.
func AddTestQuestion(t *testing.T, conn *sql.DB, formID int64, text, qtype string, options ...string) int64 {
	t.Helper()

	var form *int64
	if formID != 0 {
		form = &formID
	}
	if options == nil {
		options = []string{}
	}
	encoded, err := json.Marshal(options)
	require.NoError(t, err)

	var id int64
	err = conn.QueryRow(`
		INSERT INTO questions (form_id, question_text, type, options)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, form, text, qtype, string(encoded)).Scan(&id)
	require.NoError(t, err, "create test question")

	return id
}

// CreateTestFeedback inserts feedback with a fixed vote total and timestamp
func CreateTestFeedback(t *testing.T, conn *sql.DB, userID int64, text string, votes int, createdAt time.Time) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO feedback (user_id, feedback_text, votes, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, userID, text, votes, createdAt.UTC()).Scan(&id)
	require.NoError(t, err, "create test feedback")

	return id
}

// CreateTestResponse records an answer at a fixed time
func CreateTestResponse(t *testing.T, conn *sql.DB, userID, questionID int64, answer string, createdAt time.Time) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO responses (user_id, question_id, answer, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, userID, questionID, answer, createdAt.UTC()).Scan(&id)
	require.NoError(t, err, "create test response")

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	require.Equal(t, expected, w.Code, "unexpected status, body: %s", w.Body.String())
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v), "decode JSON response")
}
