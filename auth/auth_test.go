package auth

import (
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if err := CheckPassword("correct horse battery staple", hash); err != nil {
		t.Errorf("expected matching password to verify, got %v", err)
	}

	if err := CheckPassword("wrong password", hash); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := CheckPassword("anything", "not-a-bcrypt-hash"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for garbage hash, got %v", err)
	}
}

func TestHashPasswordUnique(t *testing.T) {
	// bcrypt salts per call; two hashes of the same input must differ
	h1, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if h1 == h2 {
		t.Error("expected distinct salts to produce distinct hashes")
	}
}

func TestSignAndParseToken(t *testing.T) {
	token, err := SignToken("alice", "test-secret", 30*time.Minute)
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	username, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if username != "alice" {
		t.Errorf("expected subject alice, got %q", username)
	}
}

func TestParseTokenFailures(t *testing.T) {
	valid, err := SignToken("alice", "test-secret", 30*time.Minute)
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}

	expired, err := SignToken("alice", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "malformed token", token: "not.a.jwt", secret: "test-secret"},
		{name: "empty token", token: "", secret: "test-secret"},
		{name: "wrong secret", token: valid, secret: "other-secret"},
		{name: "expired token", token: expired, secret: "test-secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.token, tt.secret); err != ErrInvalidToken {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
