// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/feedback-hub/middleware"
)

// pathID parses the {id} path segment, writing a 400 when it is not a number
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// nullIfEmpty stores empty optional strings as NULL
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// encodeOptions serializes an option list the way it is stored
func encodeOptions(options []string) (string, error) {
	if options == nil {
		options = []string{}
	}
	b, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("failed to encode options: %w", err)
	}
	return string(b), nil
}

// Aggregates like MAX(created_at) lose their column type in SQLite and come
// back as text, while lib/pq hands database/sql a time.Time that it renders
// as RFC 3339.
var dbTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func parseDBTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	for _, layout := range dbTimeLayouts {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognised timestamp %q", ns.String)
}

// queryInt64 parses an optional query parameter; ok is false when the value
// is absent or malformed
func queryInt64(r *http.Request, key string) (int64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
