// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/feedback-hub/models"
	"github.com/danielhkuo/feedback-hub/testutil"
)

func TestQuestionMutations_AdminOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewQuestionHandler(db, testutil.GetTestConfig())
	user := testutil.CreateTestUser(t, db, "u", "pw", models.RoleUser)
	qID := testutil.AddTestQuestion(t, db, 0, "Keep me", models.QuestionSingle)
	idStr := strconv.FormatInt(qID, 10)

	tests := []struct {
		name string
		call func(w http.ResponseWriter, r *http.Request)
		req  *http.Request
	}{
		{"create", handler.Create, testutil.MakeRequest("POST", "/api/questions", models.QuestionInput{QuestionText: "x"}, nil)},
		{"update", handler.Update, testutil.MakeRequest("PUT", "/api/questions/"+idStr, models.QuestionInput{QuestionText: "x"}, nil)},
		{"delete", handler.Delete, httptest.NewRequest("DELETE", "/api/questions/"+idStr, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.SetPathValue("id", idStr)
			w := httptest.NewRecorder()
			tt.call(w, asUser(tt.req, user))
			testutil.AssertStatus(t, w, http.StatusForbidden)

			var errResp models.ErrorResponse
			testutil.AssertJSON(t, w, &errResp)
			assert.Equal(t, "Admin only", errResp.Message)
		})
	}

	questions, err := listQuestions(t.Context(), db, nil)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Keep me", questions[0].QuestionText)
}

func TestQuestionCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewQuestionHandler(db, testutil.GetTestConfig())
	admin := testutil.CreateTestUser(t, db, "admin", "pw", models.RoleAdmin)
	formID := testutil.CreateTestForm(t, db, "Survey", true, time.Now())

	// Create
	req := testutil.MakeRequest("POST", "/api/questions", models.QuestionInput{
		FormID:       &formID,
		QuestionText: "Favourite colour?",
		Type:         "colour-wheel",
		Options:      []string{"Red", "Blue"},
		Answer:       "Blue",
	}, nil)
	w := httptest.NewRecorder()
	handler.Create(w, asUser(req, admin))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var created models.Question
	testutil.AssertJSON(t, w, &created)
	assert.Equal(t, "Favourite colour?", created.QuestionText)
	assert.Equal(t, models.QuestionSingle, created.Type)
	assert.Equal(t, `["Red","Blue"]`, created.Options)
	require.NotNil(t, created.FormID)
	assert.Equal(t, formID, *created.FormID)
	require.NotNil(t, created.Answer)
	assert.Equal(t, "Blue", *created.Answer)

	idStr := strconv.FormatInt(created.ID, 10)

	// Update
	req = testutil.MakeRequest("PUT", "/api/questions/"+idStr, models.QuestionInput{
		QuestionText: "Favourite color?",
		Options:      []string{"Red", "Green"},
	}, nil)
	req.SetPathValue("id", idStr)
	w = httptest.NewRecorder()
	handler.Update(w, asUser(req, admin))
	testutil.AssertStatus(t, w, http.StatusOK)

	var updated models.Question
	testutil.AssertJSON(t, w, &updated)
	assert.Equal(t, "Favourite color?", updated.QuestionText)
	assert.Equal(t, `["Red","Green"]`, updated.Options)
	assert.Nil(t, updated.Answer)
	assert.Equal(t, models.QuestionSingle, updated.Type)

	// List
	w = httptest.NewRecorder()
	handler.List(w, asUser(httptest.NewRequest("GET", "/api/questions", nil), admin))
	testutil.AssertStatus(t, w, http.StatusOK)
	var all []models.Question
	testutil.AssertJSON(t, w, &all)
	require.Len(t, all, 1)

	// Delete
	req = httptest.NewRequest("DELETE", "/api/questions/"+idStr, nil)
	req.SetPathValue("id", idStr)
	w = httptest.NewRecorder()
	handler.Delete(w, asUser(req, admin))
	testutil.AssertStatus(t, w, http.StatusOK)

	gone, err := getQuestion(t.Context(), db, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestQuestionCreate_RequiresText(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewQuestionHandler(db, testutil.GetTestConfig())
	admin := testutil.CreateTestUser(t, db, "admin", "pw", models.RoleAdmin)

	req := testutil.MakeRequest("POST", "/api/questions", models.QuestionInput{Type: models.QuestionText}, nil)
	w := httptest.NewRecorder()
	handler.Create(w, asUser(req, admin))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestQuestionUpdate_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewQuestionHandler(db, testutil.GetTestConfig())
	admin := testutil.CreateTestUser(t, db, "admin", "pw", models.RoleAdmin)

	req := testutil.MakeRequest("PUT", "/api/questions/77", models.QuestionInput{QuestionText: "x"}, nil)
	req.SetPathValue("id", "77")
	w := httptest.NewRecorder()
	handler.Update(w, asUser(req, admin))
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Equal(t, "null\n", w.Body.String())
}

func TestQuestionAnswer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewQuestionHandler(db, testutil.GetTestConfig())
	user := testutil.CreateTestUser(t, db, "u", "pw", models.RoleUser)
	qID := testutil.AddTestQuestion(t, db, 0, "Rate us", models.QuestionStars)
	idStr := strconv.FormatInt(qID, 10)

	answer := func(body string) {
		req := httptest.NewRequest("POST", "/api/questions/"+idStr+"/answer", bytes.NewBufferString(body))
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		handler.Answer(w, asUser(req, user))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SuccessResponse
		testutil.AssertJSON(t, w, &resp)
		assert.True(t, resp.Success)
	}

	answer(`{"answer":"4"}`)
	answer(`{"answer":5}`)
	answer(`{"answer":["a", "b"]}`)
	answer(`{}`)

	rows, err := db.Query(`SELECT answer FROM responses WHERE user_id = $1 ORDER BY id`, user.ID)
	require.NoError(t, err)
	defer rows.Close()

	var got []sql.NullString
	for rows.Next() {
		var a sql.NullString
		require.NoError(t, rows.Scan(&a))
		got = append(got, a)
	}
	require.NoError(t, rows.Err())

	// Every answer is appended, never replaced
	require.Len(t, got, 4)
	assert.Equal(t, sql.NullString{String: "4", Valid: true}, got[0])
	assert.Equal(t, sql.NullString{String: "5", Valid: true}, got[1])
	assert.Equal(t, sql.NullString{String: `["a","b"]`, Valid: true}, got[2])
	assert.False(t, got[3].Valid)
}

func TestQuestionAnswer_UnknownQuestion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewQuestionHandler(db, testutil.GetTestConfig())
	user := testutil.CreateTestUser(t, db, "u", "pw", models.RoleUser)

	req := testutil.MakeRequest("POST", "/api/questions/999/answer", map[string]string{"answer": "x"}, nil)
	req.SetPathValue("id", "999")
	w := httptest.NewRecorder()
	handler.Answer(w, asUser(req, user))
	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}
