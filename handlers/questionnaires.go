// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/intake/cliparse"
	"github.com/danielhkuo/intake/middleware"
	"github.com/danielhkuo/intake/models"
)

type QuestionnaireHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewQuestionnaireHandler(db *sql.DB, cfg cliparse.Config) *QuestionnaireHandler {
	return &QuestionnaireHandler{db: db, cfg: cfg}
}

// List handles GET /questionnaires/
func (h *QuestionnaireHandler) List(w http.ResponseWriter, r *http.Request) {
	if requireUser(h.db, h.cfg, w, r) == nil {
		return
	}

	rows, err := h.db.Query(`
		SELECT id, name FROM questionnaire ORDER BY id
	`)
	if err != nil {
		slog.Error("failed to query questionnaires", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	questionnaires := []models.Questionnaire{}
	for rows.Next() {
		var q models.Questionnaire
		if err := rows.Scan(&q.ID, &q.Name); err != nil {
			slog.Error("failed to scan questionnaire", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		questionnaires = append(questionnaires, q)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate questionnaires", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questionnaires)
}

// Get handles GET /questionnaires/{id}
// Questions come back ordered by junction priority, ties broken by
// question id so the order is stable.
func (h *QuestionnaireHandler) Get(w http.ResponseWriter, r *http.Request) {
	if requireUser(h.db, h.cfg, w, r) == nil {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid questionnaire ID")
		return
	}

	var detail models.QuestionnaireDetail
	err = h.db.QueryRow(`
		SELECT id, name FROM questionnaire WHERE id = $1
	`, id).Scan(&detail.ID, &detail.Name)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Questionnaire not found")
		return
	}
	if err != nil {
		slog.Error("failed to query questionnaire", "error", err, "questionnaire_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT q.id, q.type, q.options, q.question
		FROM question_junction j
		JOIN question q ON q.id = j.question_id
		WHERE j.questionnaire_id = $1
		ORDER BY j.priority ASC, q.id ASC
	`, id)
	if err != nil {
		slog.Error("failed to query questions", "error", err, "questionnaire_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	detail.Questions = []models.Question{}
	for rows.Next() {
		var q models.Question
		var optionsJSON sql.NullString
		if err := rows.Scan(&q.ID, &q.Type, &optionsJSON, &q.Text); err != nil {
			slog.Error("failed to scan question", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		q.Options, err = decodeStringList(optionsJSON)
		if err != nil {
			slog.Error("failed to decode question options", "error", err, "question_id", q.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		detail.Questions = append(detail.Questions, q)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// decodeStringList unpacks a JSON-encoded string array column. NULL and
// JSON null both come back as nil.
func decodeStringList(col sql.NullString) ([]string, error) {
	if !col.Valid || col.String == "" || col.String == "null" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(col.String), &list); err != nil {
		return nil, err
	}
	return list, nil
}
