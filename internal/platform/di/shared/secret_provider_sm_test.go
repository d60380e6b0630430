package shared

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcfg "github.com/UDAY2232/LackLink/internal/infra/config"
)

type fakeAccessor map[string]string

func (f fakeAccessor) Access(_ context.Context, name string) (string, error) {
	v, ok := f[name]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func TestSecretVersionName(t *testing.T) {
	got, err := secretVersionName("sm://db-url", "proj")
	require.NoError(t, err)
	assert.Equal(t, "projects/proj/secrets/db-url/versions/latest", got)

	got, err = secretVersionName("sm://projects/other/secrets/k/versions/3", "")
	require.NoError(t, err)
	assert.Equal(t, "projects/other/secrets/k/versions/3", got)

	_, err = secretVersionName("sm://db-url", "")
	assert.Error(t, err)
}

func TestResolveSecrets(t *testing.T) {
	cfg := &appcfg.Config{
		DataStoreURL:   "sm://db-url",
		AuthAPIKey:     "plain-key",
		SendGridAPIKey: "sm://missing",
	}
	require.True(t, hasSecretRefs(cfg))

	ResolveSecrets(context.Background(), cfg, "proj", fakeAccessor{
		"projects/proj/secrets/db-url/versions/latest": "postgres://db",
	})

	assert.Equal(t, "postgres://db", cfg.DataStoreURL)
	assert.Equal(t, "plain-key", cfg.AuthAPIKey)
	assert.Empty(t, cfg.SendGridAPIKey)
	assert.False(t, hasSecretRefs(cfg))
}

func TestResolveSecrets_NoAccessorClearsRefs(t *testing.T) {
	cfg := &appcfg.Config{AuthAPIKey: "sm://auth"}
	ResolveSecrets(context.Background(), cfg, "proj", nil)
	assert.Empty(t, cfg.AuthAPIKey)
}
