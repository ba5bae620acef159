// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"strings"
	"testing"
)

func setup(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

func TestCreateSchemaIdempotent(t *testing.T) {
	conn := setup(t)
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Errorf("Expected second CreateSchema to succeed, got: %v", err)
	}
}

func TestOpenRejectsUnknownType(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("Expected an error for an unsupported database type")
	}
}

func TestUniquenessConstraints(t *testing.T) {
	conn := setup(t)
	defer conn.Close()

	mustExec := func(query string, args ...interface{}) {
		t.Helper()
		if _, err := conn.Exec(query, args...); err != nil {
			t.Fatalf("Setup insert failed: %v", err)
		}
	}

	mustExec(`INSERT INTO app_user (id, username, password_hash) VALUES ('u1', 'alice', 'hash')`)
	mustExec(`INSERT INTO questionnaire (id, name) VALUES (1, 'Feedback')`)
	mustExec(`INSERT INTO question (id, type, options, question) VALUES (10, 'input', 'null', 'Comments?')`)
	mustExec(`INSERT INTO question_junction (id, questionnaire_id, question_id, priority) VALUES (1, 1, 10, 1)`)
	mustExec(`INSERT INTO response (id, user_id, questionnaire_id) VALUES ('r1', 'u1', 1)`)
	mustExec(`INSERT INTO answer (id, response_id, question_id, value) VALUES ('a1', 'r1', 10, '["x"]')`)

	testCases := []struct {
		name  string
		query string
	}{
		{
			"duplicate username",
			`INSERT INTO app_user (id, username, password_hash) VALUES ('u2', 'alice', 'hash')`,
		},
		{
			"duplicate junction pair",
			`INSERT INTO question_junction (id, questionnaire_id, question_id, priority) VALUES (2, 1, 10, 5)`,
		},
		{
			"duplicate response per user and questionnaire",
			`INSERT INTO response (id, user_id, questionnaire_id) VALUES ('r2', 'u1', 1)`,
		},
		{
			"duplicate answer per response and question",
			`INSERT INTO answer (id, response_id, question_id, value) VALUES ('a2', 'r1', 10, '["y"]')`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := conn.Exec(tc.query)
			if err == nil {
				t.Fatal("Expected a uniqueness violation")
			}
			if !strings.Contains(err.Error(), "UNIQUE") {
				t.Errorf("Expected a UNIQUE constraint error, got: %v", err)
			}
		})
	}
}

func TestCascadeDeleteAnswers(t *testing.T) {
	conn := setup(t)
	defer conn.Close()

	inserts := []string{
		`INSERT INTO app_user (id, username, password_hash) VALUES ('u1', 'alice', 'hash')`,
		`INSERT INTO questionnaire (id, name) VALUES (1, 'Feedback')`,
		`INSERT INTO question (id, type, options, question) VALUES (10, 'input', 'null', 'Comments?')`,
		`INSERT INTO response (id, user_id, questionnaire_id) VALUES ('r1', 'u1', 1)`,
		`INSERT INTO answer (id, response_id, question_id, value) VALUES ('a1', 'r1', 10, '["x"]')`,
	}
	for _, q := range inserts {
		if _, err := conn.Exec(q); err != nil {
			t.Fatalf("Setup insert failed: %v", err)
		}
	}

	if _, err := conn.Exec(`DELETE FROM response WHERE id = 'r1'`); err != nil {
		t.Fatalf("Failed to delete response: %v", err)
	}

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM answer`).Scan(&n); err != nil {
		t.Fatalf("Failed to count answers: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected answers to cascade with their response, got %d rows", n)
	}
}
