package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// SessionClaims is the stateless session token payload. It snapshots
// role/approved/firstLogin at issue time; a later rejection does not
// invalidate an outstanding token before its natural expiry.
type SessionClaims struct {
	UserID     string `json:"uid"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Approved   bool   `json:"approved"`
	FirstLogin bool   `json:"firstLogin"`
	jwt.RegisteredClaims
}

func IssueSessionToken(secret string, userID, email, role string, approved, firstLogin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:     userID,
		Email:      email,
		Role:       role,
		Approved:   approved,
		FirstLogin: firstLogin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates a session token. The value may be presented
// raw or with a conventional "Bearer " prefix.
func ParseSessionToken(tokenStr, secret string) (*SessionClaims, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if after, ok := strings.CutPrefix(tokenStr, "Bearer "); ok {
		tokenStr = after
	}
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateResetToken returns a single-use recovery token: the plaintext
// (handed out once, by mail) and the sha256 hash that gets persisted.
// Deliberately decoupled from the session token signer.
func GenerateResetToken() (string, []byte, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, fmt.Errorf("generate reset token: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(buf)
	return token, HashResetToken(token), nil
}

func HashResetToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}
