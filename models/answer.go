// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
)

// AnswerValue accepts any JSON value for an answer. Strings keep their
// content, null leaves it unset, and numbers, booleans, arrays and objects
// keep their compact JSON text ("4", "true", `["a","b"]`).
type AnswerValue struct {
	Text  string
	Valid bool
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = AnswerValue{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AnswerValue{Text: s, Valid: true}
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*a = AnswerValue{Text: buf.String(), Valid: true}
	return nil
}

// Ptr returns nil for an unset answer, for use as a nullable SQL argument
func (a AnswerValue) Ptr() *string {
	if !a.Valid {
		return nil
	}
	s := a.Text
	return &s
}
