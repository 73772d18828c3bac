package security

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestIssueAndParseSessionToken(t *testing.T) {
	t.Parallel()

	token, err := IssueSessionToken(testSecret, "u1", "a@x.com", "creator", true, true, time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken error: %v", err)
	}

	claims, err := ParseSessionToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseSessionToken error: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "a@x.com" || claims.Role != "creator" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if !claims.Approved || !claims.FirstLogin {
		t.Fatalf("flag mismatch: %+v", claims)
	}
}

func TestParseSessionTokenBearerPrefix(t *testing.T) {
	t.Parallel()

	token, err := IssueSessionToken(testSecret, "u1", "a@x.com", "admin", true, false, time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken error: %v", err)
	}

	claims, err := ParseSessionToken("Bearer "+token, testSecret)
	if err != nil {
		t.Fatalf("ParseSessionToken with Bearer prefix error: %v", err)
	}
	if claims.UserID != "u1" {
		t.Fatalf("userID mismatch: got %q", claims.UserID)
	}
}

func TestParseSessionTokenExpired(t *testing.T) {
	t.Parallel()

	token, err := IssueSessionToken(testSecret, "u1", "a@x.com", "creator", true, false, -time.Minute)
	if err != nil {
		t.Fatalf("IssueSessionToken error: %v", err)
	}

	_, err = ParseSessionToken(token, testSecret)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := IssueSessionToken(testSecret, "u1", "a@x.com", "creator", true, false, time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken error: %v", err)
	}

	_, err = ParseSessionToken(token, "other-secret")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseSessionTokenMalformed(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "Bearer ", "not.a.jwt"} {
		if _, err := ParseSessionToken(in, testSecret); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("input %q: expected ErrInvalidToken, got %v", in, err)
		}
	}
}

func TestGenerateResetToken(t *testing.T) {
	t.Parallel()

	token, hash, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken error: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if !bytes.Equal(hash, HashResetToken(token)) {
		t.Fatal("persisted hash does not match the plaintext's hash")
	}

	other, _, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken error: %v", err)
	}
	if other == token {
		t.Fatal("two reset tokens must not collide")
	}
}
