package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATA_STORE_URL", "")
	t.Setenv("AUTH_API_KEY", "")
	t.Setenv("REMOTE_TIMEOUT", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Offline())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_STORE_URL", "postgres://u:p@localhost/lacklink")
	t.Setenv("AUTH_API_KEY", "key")
	t.Setenv("REMOTE_TIMEOUT", "3s")
	t.Setenv("SESSION_IDLE_TTL", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example, ,https://b.example ")

	cfg := Load()
	assert.False(t, cfg.Offline())
	assert.Equal(t, 3*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestSecretFields_PointIntoConfig(t *testing.T) {
	cfg := &Config{AuthAPIKey: "sm://auth-key"}
	*cfg.SecretFields()["AUTH_API_KEY"] = "resolved"
	assert.Equal(t, "resolved", cfg.AuthAPIKey)
}
