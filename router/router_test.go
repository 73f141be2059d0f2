// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/feedback-hub/models"
	"github.com/danielhkuo/feedback-hub/testutil"
)

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewRouter(db, testutil.GetTestConfig())

	w := serve(h, httptest.NewRequest("GET", "/api/health", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.HealthResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "ok", resp.Status)
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewRouter(db, testutil.GetTestConfig())

	w := serve(h, httptest.NewRequest("GET", "/", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RootResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "running", resp.Status)
	assert.Equal(t, Version, resp.Version)
	assert.Equal(t, "/api/health", resp.Endpoints["health"])

	w = serve(h, httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSHeaders(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := serve(h, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouteAuthorization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewRouter(db, cfg)

	user := testutil.CreateTestUser(t, db, "plain", "pw", models.RoleUser)
	admin := testutil.CreateTestUser(t, db, "boss", "pw", models.RoleAdmin)
	userHeader := testutil.AuthHeader(t, cfg, user)
	adminHeader := testutil.AuthHeader(t, cfg, admin)

	tests := []struct {
		method string
		path   string
		body   interface{}
		anon   int
		user   int
		admin  int
	}{
		{"GET", "/api/feedback", nil, 401, 200, 200},
		{"GET", "/api/forms", nil, 401, 200, 200},
		{"GET", "/api/questions", nil, 401, 200, 200},
		{"GET", "/api/admin/stats", nil, 401, 200, 200},
		{"POST", "/api/forms", models.CreateFormRequest{Title: "t"}, 401, 403, 201},
		{"POST", "/api/questions", models.QuestionInput{QuestionText: "q"}, 401, 403, 201},
		{"GET", "/api/admin/analytics", nil, 401, 403, 200},
		{"GET", "/api/admin/feedback", nil, 401, 403, 200},
		{"GET", "/api/admin/history", nil, 401, 403, 200},
		{"GET", "/api/admin/users", nil, 401, 403, 200},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(h, testutil.MakeRequest(tt.method, tt.path, tt.body, nil))
			assert.Equal(t, tt.anon, w.Code, "anonymous")

			w = serve(h, testutil.MakeRequest(tt.method, tt.path, tt.body, userHeader))
			assert.Equal(t, tt.user, w.Code, "user: %s", w.Body.String())

			w = serve(h, testutil.MakeRequest(tt.method, tt.path, tt.body, adminHeader))
			assert.Equal(t, tt.admin, w.Code, "admin: %s", w.Body.String())
		})
	}
}

func TestInvalidToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewRouter(db, testutil.GetTestConfig())

	w := serve(h, testutil.MakeRequest("GET", "/api/feedback", nil, map[string]string{
		"Authorization": "Bearer not-a-jwt",
	}))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	var errResp models.ErrorResponse
	testutil.AssertJSON(t, w, &errResp)
	assert.Equal(t, "Unauthorized", errResp.Error)
}

// TestRegisterLoginFeedbackFlow drives the whole stack through HTTP only
func TestRegisterLoginFeedbackFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewRouter(db, testutil.GetTestConfig())

	creds := models.RegisterRequest{Username: "userA", Password: "pw"}

	w := serve(h, testutil.MakeRequest("POST", "/api/auth/register", creds, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = serve(h, testutil.MakeRequest("POST", "/api/auth/register", creds, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = serve(h, testutil.MakeRequest("POST", "/api/auth/login", models.LoginRequest{Username: "userA", Password: "pw"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var login models.LoginResponse
	testutil.AssertJSON(t, w, &login)
	authz := map[string]string{"Authorization": "Bearer " + login.Token}

	w = serve(h, testutil.MakeRequest("POST", "/api/feedback", models.FeedbackRequest{FeedbackText: "hello"}, authz))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created models.Feedback
	testutil.AssertJSON(t, w, &created)

	w = serve(h, testutil.MakeRequest("GET", "/api/feedback", nil, authz))
	testutil.AssertStatus(t, w, http.StatusOK)
	var items []models.Feedback
	testutil.AssertJSON(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "hello", items[0].FeedbackText)
	assert.Equal(t, 0, items[0].Votes)
	assert.Equal(t, "userA", items[0].Username)

	votePath := "/api/feedback/" + strconv.FormatInt(created.ID, 10) + "/vote"
	w = serve(h, testutil.MakeRequest("POST", votePath, models.VoteRequest{Direction: "down"}, authz))
	testutil.AssertStatus(t, w, http.StatusOK)
	var voted models.Feedback
	testutil.AssertJSON(t, w, &voted)
	assert.Equal(t, -1, voted.Votes)

	w = serve(h, testutil.MakeRequest("POST", "/api/feedback/abc/vote", nil, authz))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

// TestAdminSurveyFlow: admin builds a form, a user answers it, admin sees it
func TestAdminSurveyFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewRouter(db, cfg)

	admin := testutil.CreateTestUser(t, db, "admin", "pw", models.RoleAdmin)
	user := testutil.CreateTestUser(t, db, "user", "pw", models.RoleUser)
	adminHeader := testutil.AuthHeader(t, cfg, admin)
	userHeader := testutil.AuthHeader(t, cfg, user)

	w := serve(h, testutil.MakeRequest("POST", "/api/forms", models.CreateFormRequest{
		Title:     "Stars",
		Published: true,
		Questions: []models.QuestionInput{{QuestionText: "Rate", Type: models.QuestionStars}},
	}, adminHeader))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var form models.Form
	testutil.AssertJSON(t, w, &form)
	formIDStr := strconv.FormatInt(form.ID, 10)

	w = serve(h, testutil.MakeRequest("GET", "/api/forms/"+formIDStr, nil, userHeader))
	testutil.AssertStatus(t, w, http.StatusOK)
	var detail models.FormWithQuestions
	testutil.AssertJSON(t, w, &detail)
	require.Len(t, detail.Questions, 1)
	qIDStr := strconv.FormatInt(detail.Questions[0].ID, 10)

	w = serve(h, testutil.MakeRequest("POST", "/api/questions/"+qIDStr+"/answer", map[string]string{"answer": "4"}, userHeader))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = serve(h, testutil.MakeRequest("GET", "/api/admin/history?formId="+formIDStr+"&limit=2&offset=0", nil, adminHeader))
	testutil.AssertStatus(t, w, http.StatusOK)
	var history []models.HistoryEntry
	testutil.AssertJSON(t, w, &history)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].Answer)
	assert.Equal(t, "4", *history[0].Answer)
	assert.Equal(t, user.ID, history[0].UserID)

	w = serve(h, testutil.MakeRequest("GET", "/api/forms/999", nil, userHeader))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = serve(h, testutil.MakeRequest("POST", "/api/admin/seed", nil, adminHeader))
	testutil.AssertStatus(t, w, http.StatusOK)
	var seed models.SeedResponse
	testutil.AssertJSON(t, w, &seed)
	assert.True(t, seed.Success)
	assert.NotEqual(t, form.ID, seed.FormID)
}
