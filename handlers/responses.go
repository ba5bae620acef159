// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/intake/cliparse"
	"github.com/danielhkuo/intake/middleware"
	"github.com/danielhkuo/intake/models"
)

type ResponseHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResponseHandler(db *sql.DB, cfg cliparse.Config) *ResponseHandler {
	return &ResponseHandler{db: db, cfg: cfg}
}

// Submit handles POST /responses/
//
// Resubmission replaces: inside one transaction any prior response (and
// its answers) for this user and questionnaire is deleted before the new
// rows are inserted, so a reader never sees answers from two submissions
// mixed together.
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := requireUser(h.db, h.cfg, w, r)
	if user == nil {
		return
	}

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM questionnaire WHERE id = $1)
	`, req.QuestionnaireID).Scan(&exists)
	if err != nil {
		slog.Error("failed to check questionnaire", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Questionnaire not found")
		return
	}

	// Validate every answer against the question catalog before touching
	// the response tables. An invalid submission must leave any prior
	// response intact. Membership in the submitted questionnaire is not
	// checked, only existence.
	valid, err := h.questionIDs()
	if err != nil {
		slog.Error("failed to load questionnaire questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	for _, a := range req.Answers {
		if !valid[a.QuestionID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid question_id: %d", a.QuestionID))
			return
		}
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var priorID string
	err = tx.QueryRow(`
		SELECT id FROM response WHERE user_id = $1 AND questionnaire_id = $2
	`, user.ID, req.QuestionnaireID).Scan(&priorID)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query prior response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Explicit deletes rather than relying on ON DELETE CASCADE so the
	// replacement works regardless of driver cascade configuration.
	if priorID != "" {
		if _, err := tx.Exec(`DELETE FROM answer WHERE response_id = $1`, priorID); err != nil {
			slog.Error("failed to delete prior answers", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if _, err := tx.Exec(`DELETE FROM response WHERE id = $1`, priorID); err != nil {
			slog.Error("failed to delete prior response", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	response := models.Response{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		QuestionnaireID: req.QuestionnaireID,
		SubmittedAt:     time.Now().UTC(),
		Answers:         []models.Answer{},
	}

	_, err = tx.Exec(`
		INSERT INTO response (id, user_id, questionnaire_id, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, response.ID, response.UserID, response.QuestionnaireID, response.SubmittedAt)
	if err != nil {
		// Concurrent submission for the same (user, questionnaire)
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Response already being submitted")
			return
		}
		slog.Error("failed to insert response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for _, a := range req.Answers {
		value := a.Value
		if value == nil {
			value = []string{}
		}
		valueJSON, err := json.Marshal(value)
		if err != nil {
			slog.Error("failed to encode answer value", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		answer := models.Answer{
			ID:         uuid.NewString(),
			ResponseID: response.ID,
			QuestionID: a.QuestionID,
			Value:      value,
		}

		_, err = tx.Exec(`
			INSERT INTO answer (id, response_id, question_id, value)
			VALUES ($1, $2, $3, $4)
		`, answer.ID, answer.ResponseID, answer.QuestionID, string(valueJSON))
		if err != nil {
			if isUniqueViolation(err) {
				middleware.ErrorResponse(w, http.StatusConflict,
					fmt.Sprintf("Duplicate answer for question_id: %d", a.QuestionID))
				return
			}
			slog.Error("failed to insert answer", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		response.Answers = append(response.Answers, answer)
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save response")
		return
	}

	slog.Info("response submitted",
		"response_id", response.ID,
		"user_id", user.ID,
		"questionnaire_id", req.QuestionnaireID,
		"answers", len(response.Answers),
		"replaced", priorID != "")

	middleware.JSONResponse(w, http.StatusCreated, response)
}

// questionIDs returns the set of all question ids in the catalog.
func (h *ResponseHandler) questionIDs() (map[int]bool, error) {
	rows, err := h.db.Query(`
		SELECT id FROM question
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := map[int]bool{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
