// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: username, password, role
  - LoginRequest: username, password
  - FeedbackRequest: feedback_text
  - VoteRequest: direction ("down" or anything else)
  - CreateFormRequest: title, description, image_url, published, questions
  - QuestionInput: question_text, type, options, answer, image_url
  - PublishFormRequest: published
  - AnswerRequest: answer (any JSON value, see AnswerValue)

# Response Types

  - LoginResponse: token, user
  - UserInfo: id, username, role
  - SuccessResponse, SeedResponse, HealthResponse, RootResponse
  - Analytics, Stats, HistoryEntry, UserOverview
  - ErrorResponse: error, message

# Domain Types

  - Feedback: text with a signed vote score and optional author username
  - Form: survey metadata; FormWithQuestions adds its ordered questions
  - Question: typed question with JSON-encoded options

# Constants

Roles:

	RoleUser  = "user"
	RoleAdmin = "admin"

Question types (anything else is stored as single):

	QuestionSingle = "single"
	QuestionYesNo  = "yesno"
	QuestionLikert = "likert"
	QuestionText   = "text"
	QuestionStars  = "stars"
*/
package models
