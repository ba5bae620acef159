package models

import "time"

// Question type constants
const (
	QuestionTypeMCQ   = "mcq"
	QuestionTypeInput = "input"
)

// Request types

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AnswerSubmission struct {
	QuestionID int      `json:"question_id"`
	Value      []string `json:"value"`
}

type SubmitResponseRequest struct {
	QuestionnaireID int                `json:"questionnaire_id"`
	Answers         []AnswerSubmission `json:"answers"`
}

// Response types

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponseCount struct {
	Username      string `json:"username"`
	ResponseCount int    `json:"response_count"`
}

// AnswerDetail pairs a question's prompt with the submitted value for the
// admin per-user report.
type AnswerDetail struct {
	QuestionID int      `json:"question_id"`
	Question   string   `json:"question"`
	Value      []string `json:"value"`
}

type ResponseDetail struct {
	QuestionnaireID   int            `json:"questionnaire_id"`
	QuestionnaireName string         `json:"questionnaire_name"`
	SubmittedAt       time.Time      `json:"submitted_at"`
	Answers           []AnswerDetail `json:"answers"`
}

// Domain types

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never expose in JSON
	IsAdmin      bool   `json:"is_admin"`
}

type Questionnaire struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Question carries the prompt text in Text; the JSON field stays "question"
// to match the seeded catalog payloads.
type Question struct {
	ID      int      `json:"id"`
	Type    string   `json:"type"`
	Options []string `json:"options"`
	Text    string   `json:"question"`
}

type QuestionnaireDetail struct {
	Questionnaire
	Questions []Question `json:"questions"`
}

type Response struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	QuestionnaireID int       `json:"questionnaire_id"`
	SubmittedAt     time.Time `json:"submitted_at"`
	Answers         []Answer  `json:"answers"`
}

type Answer struct {
	ID         string   `json:"id"`
	ResponseID string   `json:"response_id"`
	QuestionID int      `json:"question_id"`
	Value      []string `json:"value"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
