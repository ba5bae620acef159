// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/intake/auth"
	"github.com/danielhkuo/intake/testutil"
)

func writeSeedFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write seed file %s: %v", name, err)
		}
	}
	return dir
}

func validSeedFiles() map[string]string {
	return map[string]string{
		"questionnaire_questionnaires.csv": "id,name\n1,Feedback\n2,Onboarding\n",
		"questionnaire_questions.csv": `id,question
10,"{""type"": ""mcq"", ""options"": [""yes"", ""no""], ""question"": ""Would you recommend us?""}"
11,"{""type"": ""input"", ""options"": null, ""question"": ""Anything to add?""}"
`,
		"questionnaire_junction.csv": "id,questionnaire_id,question_id,priority\n1,1,10,1\n2,1,11,2\n",
	}
}

func TestLoadDir(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	dir := writeSeedFiles(t, validSeedFiles())

	if err := LoadDir(conn, dir); err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	counts := map[string]int{
		"questionnaire":     2,
		"question":          2,
		"question_junction": 2,
	}
	for table, want := range counts {
		var got int
		if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&got); err != nil {
			t.Fatalf("Failed to count %s: %v", table, err)
		}
		if got != want {
			t.Errorf("Expected %d rows in %s, got %d", want, table, got)
		}
	}

	var qtype, question string
	err := conn.QueryRow(`SELECT type, question FROM question WHERE id = 10`).Scan(&qtype, &question)
	if err != nil {
		t.Fatalf("Failed to read imported question: %v", err)
	}
	if qtype != "mcq" {
		t.Errorf("Expected type 'mcq', got '%s'", qtype)
	}
	if question != "Would you recommend us?" {
		t.Errorf("Unexpected question text '%s'", question)
	}
}

func TestLoadDirReplacesCatalog(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	testutil.CreateTestQuestionnaire(t, conn, 99, "Old")
	userID := testutil.CreateTestUser(t, conn, "alice", "pw", false)
	testutil.CreateTestResponse(t, conn, userID, 99, nil)

	dir := writeSeedFiles(t, validSeedFiles())

	if err := LoadDir(conn, dir); err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	// Old catalog and its responses are gone; users survive
	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM questionnaire WHERE id = 99`).Scan(&n); err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if n != 0 {
		t.Error("Expected old questionnaire to be removed")
	}
	if err := conn.QueryRow(`SELECT COUNT(*) FROM response`).Scan(&n); err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if n != 0 {
		t.Error("Expected responses to be wiped with the catalog")
	}
	if err := conn.QueryRow(`SELECT COUNT(*) FROM app_user`).Scan(&n); err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if n != 1 {
		t.Error("Expected users to survive a reseed")
	}
}

func TestLoadDirFailureRollsBack(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	testutil.CreateTestQuestionnaire(t, conn, 99, "Old")

	files := validSeedFiles()
	files["questionnaire_questions.csv"] = "id,question\n10,not-json\n"
	dir := writeSeedFiles(t, files)

	if err := LoadDir(conn, dir); err == nil {
		t.Fatal("Expected LoadDir to fail on malformed question JSON")
	}

	// Previous catalog survives the failed load
	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM questionnaire WHERE id = 99`).Scan(&n); err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if n != 1 {
		t.Error("Expected previous catalog to remain after a failed load")
	}
}

func TestLoadDirMissingFile(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	files := validSeedFiles()
	delete(files, "questionnaire_junction.csv")
	dir := writeSeedFiles(t, files)

	if err := LoadDir(conn, dir); err == nil {
		t.Fatal("Expected LoadDir to fail on missing junction file")
	}
}

func TestEnsureAdmin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	if err := EnsureAdmin(conn, "admin", "adminpw"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}

	var hash string
	var isAdmin bool
	err := conn.QueryRow(`
		SELECT password_hash, is_admin FROM app_user WHERE username = 'admin'
	`).Scan(&hash, &isAdmin)
	if err != nil {
		t.Fatalf("Failed to read admin user: %v", err)
	}
	if !isAdmin {
		t.Error("Expected admin flag to be set")
	}
	if err := auth.CheckPassword("adminpw", hash); err != nil {
		t.Error("Expected stored hash to match the admin password")
	}

	// Second call leaves the existing account alone
	if err := EnsureAdmin(conn, "admin", "different"); err != nil {
		t.Fatalf("EnsureAdmin second call failed: %v", err)
	}
	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM app_user WHERE username = 'admin'`).Scan(&n); err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 admin user, got %d", n)
	}
	if err := auth.CheckPassword("adminpw", hash); err != nil {
		t.Error("Expected original password to survive")
	}
}
