package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcfg "github.com/UDAY2232/LackLink/internal/infra/config"
)

func TestResolveRuntimeSettings(t *testing.T) {
	s, warns, err := ResolveRuntimeSettings(&appcfg.Config{
		ProductImageBucket: " lacklink-products ",
		MailFrom:           "orders@lacklink.example",
		AllowedOrigins:     []string{"https://shop.example/"},
	})
	require.NoError(t, err)
	assert.Equal(t, "lacklink-products", s.ProductImageBucket)
	assert.Equal(t, []string{"https://shop.example"}, s.AllowedOrigins)
	assert.Equal(t, 10*time.Second, s.RemoteTimeout)
	assert.Equal(t, 30*time.Minute, s.SessionIdleTTL)
	assert.Len(t, warns, 2) // signer email, sendgrid key
	assert.NoError(t, s.Validate())
}

func TestRuntimeSettingsValidate(t *testing.T) {
	base := RuntimeSettings{RemoteTimeout: time.Second, SessionIdleTTL: time.Minute}

	tests := []struct {
		name    string
		mutate  func(*RuntimeSettings)
		wantErr bool
	}{
		{"empty optional values", func(*RuntimeSettings) {}, false},
		{"wildcard origin", func(s *RuntimeSettings) { s.AllowedOrigins = []string{"*"} }, false},
		{"bucket with slash", func(s *RuntimeSettings) { s.ProductImageBucket = "a/b" }, true},
		{"signer not an email", func(s *RuntimeSettings) { s.GCSSignerEmail = "svc" }, true},
		{"origin without scheme", func(s *RuntimeSettings) { s.AllowedOrigins = []string{"shop.example"} }, true},
		{"origin with path", func(s *RuntimeSettings) { s.AllowedOrigins = []string{"https://shop.example/app"} }, true},
		{"zero timeout", func(s *RuntimeSettings) { s.RemoteTimeout = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			if tt.wantErr {
				assert.Error(t, s.Validate())
			} else {
				assert.NoError(t, s.Validate())
			}
		})
	}
}
