// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/intake/auth"
	"github.com/danielhkuo/intake/cliparse"
	"github.com/danielhkuo/intake/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. MaxOpenConns(1) keeps the pool on a single connection so every
// query sees the same in-memory database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8000,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		JWTSecret:    "test-jwt-secret",
		TokenTTL:     30 * time.Minute,
	}
}

// CreateTestUser inserts a user with a bcrypt-hashed password and returns
// its id
func CreateTestUser(t *testing.T, conn *sql.DB, username, password string, isAdmin bool) string {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	userID := uuid.NewString()
	_, err = conn.Exec(`
		INSERT INTO app_user (id, username, password_hash, is_admin)
		VALUES ($1, $2, $3, $4)
	`, userID, username, hash, isAdmin)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// CreateTestQuestionnaire inserts a questionnaire with an explicit catalog id
func CreateTestQuestionnaire(t *testing.T, conn *sql.DB, id int, name string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO questionnaire (id, name)
		VALUES ($1, $2)
	`, id, name)
	if err != nil {
		t.Fatalf("Failed to create test questionnaire: %v", err)
	}
}

// CreateTestQuestion inserts a question; options may be nil for input type
func CreateTestQuestion(t *testing.T, conn *sql.DB, id int, qtype string, options []string, text string) {
	t.Helper()

	optionsJSON, err := json.Marshal(options)
	if err != nil {
		t.Fatalf("Failed to encode test options: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO question (id, type, options, question)
		VALUES ($1, $2, $3, $4)
	`, id, qtype, string(optionsJSON), text)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
}

// LinkQuestion creates a junction row placing a question in a
// questionnaire at the given priority
func LinkQuestion(t *testing.T, conn *sql.DB, junctionID, questionnaireID, questionID, priority int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO question_junction (id, questionnaire_id, question_id, priority)
		VALUES ($1, $2, $3, $4)
	`, junctionID, questionnaireID, questionID, priority)
	if err != nil {
		t.Fatalf("Failed to create test junction: %v", err)
	}
}

// CreateTestResponse inserts a response with answers and returns the
// response id
func CreateTestResponse(t *testing.T, conn *sql.DB, userID string, questionnaireID int, answers map[int][]string) string {
	t.Helper()

	responseID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO response (id, user_id, questionnaire_id, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, responseID, userID, questionnaireID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	for questionID, value := range answers {
		valueJSON, err := json.Marshal(value)
		if err != nil {
			t.Fatalf("Failed to encode test answer value: %v", err)
		}
		_, err = conn.Exec(`
			INSERT INTO answer (id, response_id, question_id, value)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), responseID, questionID, string(valueJSON))
		if err != nil {
			t.Fatalf("Failed to create test answer: %v", err)
		}
	}

	return responseID
}

// BearerToken signs a token for the given username using the test config
// secret
func BearerToken(t *testing.T, cfg cliparse.Config, username string) string {
	t.Helper()

	token, err := auth.SignToken(username, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return token
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
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
