// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/intake/cliparse"
	"github.com/danielhkuo/intake/middleware"
	"github.com/danielhkuo/intake/models"
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// ListAll handles GET /admin/responses/
func (h *AdminHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(h.db, h.cfg, w, r) == nil {
		return
	}

	responses, err := h.fetchResponses(`
		SELECT id, user_id, questionnaire_id, submitted_at
		FROM response
		ORDER BY submitted_at, id
	`)
	if err != nil {
		slog.Error("failed to query responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, responses)
}

// ByUser handles GET /admin/users/{id}/responses
// An unknown user id is not an error, it just has no responses.
func (h *AdminHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(h.db, h.cfg, w, r) == nil {
		return
	}

	userID := r.PathValue("id")

	responses, err := h.fetchResponses(`
		SELECT id, user_id, questionnaire_id, submitted_at
		FROM response
		WHERE user_id = $1
		ORDER BY questionnaire_id
	`, userID)
	if err != nil {
		slog.Error("failed to query responses", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, responses)
}

// Counts handles GET /admin/user-responses
//
// Every non-admin user appears, with 0 for users who have not submitted
// anything yet.
func (h *AdminHandler) Counts(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(h.db, h.cfg, w, r) == nil {
		return
	}

	rows, err := h.db.Query(`
		SELECT u.username, COUNT(r.id)
		FROM app_user u
		LEFT JOIN response r ON r.user_id = u.id
		WHERE u.is_admin = FALSE
		GROUP BY u.username
		ORDER BY u.username
	`)
	if err != nil {
		slog.Error("failed to query response counts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	counts := []models.UserResponseCount{}
	for rows.Next() {
		var c models.UserResponseCount
		if err := rows.Scan(&c.Username, &c.ResponseCount); err != nil {
			slog.Error("failed to scan response count", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate response counts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, counts)
}

// Detail handles GET /admin/user-responses/{username}
// Returns one entry per submitted questionnaire with answers paired to
// their question prompts.
func (h *AdminHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(h.db, h.cfg, w, r) == nil {
		return
	}

	username := r.PathValue("username")

	var userID string
	err := h.db.QueryRow(`
		SELECT id FROM app_user WHERE username = $1
	`, username).Scan(&userID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT r.id, r.questionnaire_id, qn.name, r.submitted_at
		FROM response r
		JOIN questionnaire qn ON qn.id = r.questionnaire_id
		WHERE r.user_id = $1
		ORDER BY r.questionnaire_id
	`, userID)
	if err != nil {
		slog.Error("failed to query user responses", "error", err, "username", username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	details := []models.ResponseDetail{}
	responseIDs := []string{}
	byResponse := map[string]int{}
	for rows.Next() {
		var responseID string
		var d models.ResponseDetail
		if err := rows.Scan(&responseID, &d.QuestionnaireID, &d.QuestionnaireName, &d.SubmittedAt); err != nil {
			slog.Error("failed to scan user response", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		d.Answers = []models.AnswerDetail{}
		byResponse[responseID] = len(details)
		responseIDs = append(responseIDs, responseID)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate user responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// One answer query per response keeps the SQL in the shared
	// PostgreSQL/SQLite subset; response counts per user are small.
	for _, responseID := range responseIDs {
		answerRows, err := h.db.Query(`
			SELECT a.question_id, q.question, a.value
			FROM answer a
			JOIN question q ON q.id = a.question_id
			WHERE a.response_id = $1
			ORDER BY a.question_id
		`, responseID)
		if err != nil {
			slog.Error("failed to query answers", "error", err, "response_id", responseID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		idx := byResponse[responseID]
		for answerRows.Next() {
			var a models.AnswerDetail
			var valueJSON sql.NullString
			if err := answerRows.Scan(&a.QuestionID, &a.Question, &valueJSON); err != nil {
				answerRows.Close()
				slog.Error("failed to scan answer", "error", err)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
				return
			}
			a.Value, err = decodeStringList(valueJSON)
			if err != nil {
				answerRows.Close()
				slog.Error("failed to decode answer value", "error", err)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
				return
			}
			if a.Value == nil {
				a.Value = []string{}
			}
			details[idx].Answers = append(details[idx].Answers, a)
		}
		if err := answerRows.Err(); err != nil {
			answerRows.Close()
			slog.Error("failed to iterate answers", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		answerRows.Close()
	}

	middleware.JSONResponse(w, http.StatusOK, details)
}

// fetchResponses runs a response query and attaches each response's
// answers, keyed by response id to avoid per-row answer queries.
func (h *AdminHandler) fetchResponses(query string, args ...interface{}) ([]models.Response, error) {
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []models.Response{}
	byID := map[string]int{}
	for rows.Next() {
		var resp models.Response
		if err := rows.Scan(&resp.ID, &resp.UserID, &resp.QuestionnaireID, &resp.SubmittedAt); err != nil {
			return nil, err
		}
		resp.Answers = []models.Answer{}
		byID[resp.ID] = len(responses)
		responses = append(responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return responses, nil
	}

	answerRows, err := h.db.Query(`
		SELECT id, response_id, question_id, value FROM answer ORDER BY question_id
	`)
	if err != nil {
		return nil, err
	}
	defer answerRows.Close()

	for answerRows.Next() {
		var a models.Answer
		var valueJSON sql.NullString
		if err := answerRows.Scan(&a.ID, &a.ResponseID, &a.QuestionID, &valueJSON); err != nil {
			return nil, err
		}
		idx, ok := byID[a.ResponseID]
		if !ok {
			continue
		}
		a.Value, err = decodeStringList(valueJSON)
		if err != nil {
			return nil, err
		}
		if a.Value == nil {
			a.Value = []string{}
		}
		responses[idx].Answers = append(responses[idx].Answers, a)
	}
	return responses, answerRows.Err()
}
