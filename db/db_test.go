// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Idempotent(t *testing.T) {
	conn, err := Open(DialectSQLite, filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, Migrate(conn, DialectSQLite))
	require.NoError(t, Migrate(conn, DialectSQLite), "second run should be a no-op")

	for _, table := range []string{"users", "feedback", "forms", "questions", "responses"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestOpen_UnsupportedDialect(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	conn, err := Open(DialectSQLite, filepath.Join(t.TempDir(), "unique.db"))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, Migrate(conn, DialectSQLite))

	insert := `INSERT INTO users (username, password, role, created_at) VALUES ($1, 'x', 'user', $2)`
	_, err = conn.Exec(insert, "alice", time.Now().UTC())
	require.NoError(t, err)

	_, err = conn.Exec(insert, "alice", time.Now().UTC())
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestSQLiteTimeRoundTrip(t *testing.T) {
	conn, err := Open(DialectSQLite, filepath.Join(t.TempDir(), "time.db"))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, Migrate(conn, DialectSQLite))

	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	_, err = conn.Exec(`INSERT INTO users (username, password, role, created_at) VALUES ('bob', 'x', 'user', $1)`, now)
	require.NoError(t, err)

	var got time.Time
	var day string
	err = conn.QueryRow(`SELECT created_at, CAST(DATE(created_at) AS TEXT) FROM users WHERE username = 'bob'`).Scan(&got, &day)
	require.NoError(t, err)

	assert.True(t, now.Equal(got), "expected %v, got %v", now, got)
	assert.Equal(t, "2025-03-14", day)
}
