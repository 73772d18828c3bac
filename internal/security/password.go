package security

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt. Cost 0 falls back
// to the library default (10 rounds).
func HashPassword(password string, cost int) ([]byte, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword compares a candidate against a stored bcrypt hash.
func VerifyPassword(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

const tempPasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+"

// GenerateTempPassword builds a random temporary password for
// admin-approved accounts. The plaintext is disclosed once by mail and
// never persisted.
func GenerateTempPassword(length int) (string, error) {
	if length <= 0 {
		length = 10
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(tempPasswordCharset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate temp password: %w", err)
		}
		out[i] = tempPasswordCharset[n.Int64()]
	}
	return string(out), nil
}
