// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The DDL sticks to the subset shared by PostgreSQL and SQLite: $N
// placeholders in queries, CURRENT_TIMESTAMP defaults, TEXT/INTEGER/JSONB
// column types. "app_user" instead of "user" because user is a reserved
// word in PostgreSQL.
const schema = `
-- Users
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_app_user_username ON app_user(username);

-- Questionnaires
CREATE TABLE IF NOT EXISTS questionnaire (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

-- Questions
CREATE TABLE IF NOT EXISTS question (
    id INTEGER PRIMARY KEY,
    type TEXT NOT NULL CHECK (type IN ('mcq', 'input')),
    options JSONB,
    question TEXT NOT NULL
);

-- Junctions: ordered many-to-many between questionnaires and questions.
-- priority ascending defines display order.
CREATE TABLE IF NOT EXISTS question_junction (
    id INTEGER PRIMARY KEY,
    questionnaire_id INTEGER NOT NULL REFERENCES questionnaire(id) ON DELETE CASCADE,
    question_id INTEGER NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    priority INTEGER NOT NULL,
    UNIQUE (questionnaire_id, question_id)
);

CREATE INDEX IF NOT EXISTS idx_question_junction_questionnaire_id ON question_junction(questionnaire_id);

-- Responses: at most one per (user, questionnaire)
CREATE TABLE IF NOT EXISTS response (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    questionnaire_id INTEGER NOT NULL REFERENCES questionnaire(id) ON DELETE CASCADE,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (user_id, questionnaire_id)
);

CREATE INDEX IF NOT EXISTS idx_response_user_id ON response(user_id);
CREATE INDEX IF NOT EXISTS idx_response_questionnaire_id ON response(questionnaire_id);

-- Answers: at most one per (response, question), owned by the response
CREATE TABLE IF NOT EXISTS answer (
    id TEXT PRIMARY KEY,
    response_id TEXT NOT NULL REFERENCES response(id) ON DELETE CASCADE,
    question_id INTEGER NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    value JSONB NOT NULL,
    UNIQUE (response_id, question_id)
);

CREATE INDEX IF NOT EXISTS idx_answer_response_id ON answer(response_id);
`
