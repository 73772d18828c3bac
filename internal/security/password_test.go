package security

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("segredo1", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if string(hash) == "segredo1" {
		t.Fatal("hash must not equal plaintext")
	}

	if !VerifyPassword("segredo1", hash) {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword("segredo2", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordDefaultCost(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("segredo1", 0)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	// bcrypt encodes the cost in the hash prefix.
	if !strings.HasPrefix(string(hash), "$2a$10$") {
		t.Fatalf("expected default cost 10 prefix, got %q", string(hash)[:7])
	}
}

func TestHashPasswordDistinctSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("segredo1", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("segredo1", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if string(h1) == string(h2) {
		t.Fatal("two hashes of the same password must not be identical")
	}
}

func TestGenerateTempPassword(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		pw, err := GenerateTempPassword(10)
		if err != nil {
			t.Fatalf("GenerateTempPassword error: %v", err)
		}
		if len(pw) != 10 {
			t.Fatalf("length mismatch: got %d want 10", len(pw))
		}
		for _, ch := range pw {
			if !strings.ContainsRune(tempPasswordCharset, ch) {
				t.Fatalf("character %q outside charset", ch)
			}
		}
		seen[pw] = true
	}
	if len(seen) < 2 {
		t.Fatal("temp passwords are not random")
	}
}

func TestGenerateTempPasswordDefaultLength(t *testing.T) {
	t.Parallel()

	pw, err := GenerateTempPassword(0)
	if err != nil {
		t.Fatalf("GenerateTempPassword error: %v", err)
	}
	if len(pw) != 10 {
		t.Fatalf("default length mismatch: got %d want 10", len(pw))
	}
}
