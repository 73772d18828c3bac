package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ATELIER_SECURITY_JWTSECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, time.Hour, cfg.Security.SessionTTL)
	assert.Equal(t, time.Hour, cfg.Security.ResetTokenTTL)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, 6, cfg.Security.MinPasswordLen)
	assert.False(t, cfg.Lifecycle.DeleteProducts)
	assert.Equal(t, "atelier-uploads", cfg.Storage.Bucket)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("ATELIER_SECURITY_JWTSECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwtsecret")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ATELIER_SECURITY_JWTSECRET", "test-secret")
	t.Setenv("ATELIER_HTTP_PORT", "8080")
	t.Setenv("ATELIER_LIFECYCLE_DELETEPRODUCTS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Lifecycle.DeleteProducts)
}

// Keys without defaults (secrets, connection strings) must still be
// settable from the environment alone, with no config file present.
func TestLoadEnvOnlyKeys(t *testing.T) {
	t.Setenv("ATELIER_SECURITY_JWTSECRET", "test-secret")
	t.Setenv("ATELIER_POSTGRES_DSN", "postgres://atelier:pw@db:5432/atelier")
	t.Setenv("ATELIER_SMTP_HOST", "smtp.atelier.test")
	t.Setenv("ATELIER_SMTP_USER", "mailer")
	t.Setenv("ATELIER_SMTP_PASS", "mailer-pw")
	t.Setenv("ATELIER_STORAGE_ENDPOINT", "minio.atelier.test:9000")
	t.Setenv("ATELIER_STORAGE_ACCESSKEY", "ak")
	t.Setenv("ATELIER_STORAGE_SECRETKEY", "sk")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Security.JWTSecret)
	assert.Equal(t, "postgres://atelier:pw@db:5432/atelier", cfg.Postgres.DSN)
	assert.Equal(t, "smtp.atelier.test", cfg.SMTP.Host)
	assert.Equal(t, "mailer", cfg.SMTP.User)
	assert.Equal(t, "mailer-pw", cfg.SMTP.Pass)
	assert.Equal(t, "minio.atelier.test:9000", cfg.Storage.Endpoint)
	assert.Equal(t, "ak", cfg.Storage.AccessKey)
	assert.Equal(t, "sk", cfg.Storage.SecretKey)
}
