// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/danielhkuo/intake/auth"
)

// CSV catalog exports expected under the seed directory.
const (
	questionnairesFile = "questionnaire_questionnaires.csv"
	questionsFile      = "questionnaire_questions.csv"
	junctionsFile      = "questionnaire_junction.csv"
)

// questionPayload is the JSON document stored in the question column of
// the questions export.
type questionPayload struct {
	Type     string   `json:"type"`
	Options  []string `json:"options"`
	Question string   `json:"question"`
}

// LoadDir replaces the questionnaire catalog with the CSV exports found
// in dir. Everything happens in one transaction: all response data is
// wiped first (answers reference the catalog), then the three catalog
// files are imported. A missing or malformed file aborts the whole load.
func LoadDir(db *sql.DB, dir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	// Children before parents so foreign keys stay satisfied
	for _, table := range []string{"answer", "response", "question_junction", "question", "questionnaire"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	questionnaires, err := loadQuestionnaires(tx, filepath.Join(dir, questionnairesFile))
	if err != nil {
		return err
	}
	questions, err := loadQuestions(tx, filepath.Join(dir, questionsFile))
	if err != nil {
		return err
	}
	junctions, err := loadJunctions(tx, filepath.Join(dir, junctionsFile))
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	slog.Info("seed data loaded",
		"dir", dir,
		"questionnaires", questionnaires,
		"questions", questions,
		"junctions", junctions)

	return nil
}

// EnsureAdmin creates an admin account if no user with that username
// exists. An existing user keeps their password and admin flag.
func EnsureAdmin(db *sql.DB, username, password string) error {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM app_user WHERE username = $1)
	`, username).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO app_user (id, username, password_hash, is_admin)
		VALUES ($1, $2, $3, TRUE)
	`, uuid.NewString(), username, hash)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	slog.Info("admin user created", "username", username)

	return nil
}

func loadQuestionnaires(tx *sql.Tx, path string) (int, error) {
	rows, err := readCSV(path, 2)
	if err != nil {
		return 0, err
	}

	for i, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return 0, fmt.Errorf("%s row %d: bad id %q: %w", path, i+1, row[0], err)
		}
		_, err = tx.Exec(`
			INSERT INTO questionnaire (id, name) VALUES ($1, $2)
		`, id, row[1])
		if err != nil {
			return 0, fmt.Errorf("%s row %d: %w", path, i+1, err)
		}
	}
	return len(rows), nil
}

func loadQuestions(tx *sql.Tx, path string) (int, error) {
	rows, err := readCSV(path, 2)
	if err != nil {
		return 0, err
	}

	for i, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return 0, fmt.Errorf("%s row %d: bad id %q: %w", path, i+1, row[0], err)
		}

		var payload questionPayload
		if err := json.Unmarshal([]byte(row[1]), &payload); err != nil {
			return 0, fmt.Errorf("%s row %d: bad question JSON: %w", path, i+1, err)
		}
		if payload.Type != "mcq" && payload.Type != "input" {
			return 0, fmt.Errorf("%s row %d: unknown question type %q", path, i+1, payload.Type)
		}

		optionsJSON, err := json.Marshal(payload.Options)
		if err != nil {
			return 0, fmt.Errorf("%s row %d: %w", path, i+1, err)
		}

		_, err = tx.Exec(`
			INSERT INTO question (id, type, options, question)
			VALUES ($1, $2, $3, $4)
		`, id, payload.Type, string(optionsJSON), payload.Question)
		if err != nil {
			return 0, fmt.Errorf("%s row %d: %w", path, i+1, err)
		}
	}
	return len(rows), nil
}

func loadJunctions(tx *sql.Tx, path string) (int, error) {
	rows, err := readCSV(path, 4)
	if err != nil {
		return 0, err
	}

	for i, row := range rows {
		fields := make([]int, 4)
		for j, s := range row {
			fields[j], err = strconv.Atoi(s)
			if err != nil {
				return 0, fmt.Errorf("%s row %d: bad integer %q: %w", path, i+1, s, err)
			}
		}
		_, err = tx.Exec(`
			INSERT INTO question_junction (id, questionnaire_id, question_id, priority)
			VALUES ($1, $2, $3, $4)
		`, fields[0], fields[1], fields[2], fields[3])
		if err != nil {
			return 0, fmt.Errorf("%s row %d: %w", path, i+1, err)
		}
	}
	return len(rows), nil
}

// readCSV reads all records from a CSV file, skipping the header row and
// requiring at least minFields columns per record.
func readCSV(path string, minFields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows := [][]string{}
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if header {
			header = false
			continue
		}
		if len(record) < minFields {
			return nil, fmt.Errorf("%s: expected at least %d fields, got %d", path, minFields, len(record))
		}
		rows = append(rows, record)
	}
	return rows, nil
}
