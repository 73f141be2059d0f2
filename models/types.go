package models

import "time"

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Question types
const (
	QuestionSingle = "single"
	QuestionYesNo  = "yesno"
	QuestionLikert = "likert"
	QuestionText   = "text"
	QuestionStars  = "stars"
)

// NormalizeRole grants admin only when it was asked for verbatim
func NormalizeRole(role string) string {
	if role == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// NormalizeQuestionType maps unknown types to single
func NormalizeQuestionType(t string) string {
	switch t {
	case QuestionSingle, QuestionYesNo, QuestionLikert, QuestionText, QuestionStars:
		return t
	default:
		return QuestionSingle
	}
}

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type FeedbackRequest struct {
	FeedbackText string `json:"feedback_text"`
}

// "down" decrements, anything else increments
type VoteRequest struct {
	Direction string `json:"direction"`
}

type QuestionInput struct {
	FormID       *int64   `json:"form_id,omitempty"`
	QuestionText string   `json:"question_text"`
	Type         string   `json:"type"`
	Options      []string `json:"options"`
	Answer       string   `json:"answer"`
	ImageURL     string   `json:"image_url"`
}

type CreateFormRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Published   bool            `json:"published"`
	Questions   []QuestionInput `json:"questions"`
}

type PublishFormRequest struct {
	Published bool `json:"published"`
}

// Answer is free-form: strings are stored as-is, other JSON values verbatim
type AnswerRequest struct {
	Answer AnswerValue `json:"answer"`
}

// Response types

type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type SeedResponse struct {
	Success bool  `json:"success"`
	FormID  int64 `json:"formId"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type RootResponse struct {
	Message   string            `json:"message"`
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// Domain types

type Feedback struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	FeedbackText string    `json:"feedback_text"`
	Votes        int       `json:"votes"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username,omitempty"`
}

type Form struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	Published   bool      `json:"published"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type FormWithQuestions struct {
	Form
	Questions []Question `json:"questions"`
}

// Options holds the JSON-encoded option list exactly as stored
type Question struct {
	ID           int64   `json:"id"`
	FormID       *int64  `json:"form_id"`
	QuestionText string  `json:"question_text"`
	Type         string  `json:"type"`
	Options      string  `json:"options"`
	Answer       *string `json:"answer"`
	ImageURL     *string `json:"image_url"`
}

// Admin types

type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Counts of feedback rows with a positive / negative total, not vote sums
type VoteSplit struct {
	Positive int64 `json:"positive"`
	Negative int64 `json:"negative"`
}

type Analytics struct {
	Users    int64        `json:"users"`
	Feedback int64        `json:"feedback"`
	Trends   []TrendPoint `json:"trends"`
	Votes    VoteSplit    `json:"votes"`
}

type Stats struct {
	UserSubmitted        int64 `json:"userSubmitted"`
	UserFeedbackAuthored int64 `json:"userFeedbackAuthored"`
	TotalForms           int64 `json:"totalForms"`
	TotalResponses       int64 `json:"totalResponses"`
}

type HistoryEntry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	QuestionID   int64     `json:"question_id"`
	QuestionText string    `json:"question_text"`
	Type         string    `json:"type"`
	FormID       *int64    `json:"form_id"`
	FormTitle    *string   `json:"form_title"`
	Answer       *string   `json:"answer"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserOverview struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Role           string     `json:"role"`
	ResponseCount  int64      `json:"response_count"`
	FeedbackCount  int64      `json:"feedback_count"`
	LastResponseAt *time.Time `json:"last_response_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
