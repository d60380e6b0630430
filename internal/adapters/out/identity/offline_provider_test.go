package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
	"github.com/UDAY2232/LackLink/internal/domain/common"
)

func TestOfflineProvider_SignUpSignInVerify(t *testing.T) {
	ctx := context.Background()
	p := NewOfflineProvider()

	s, err := p.SignUp(ctx, "Ann@Example.com", "secret1", authdom.SignUpMetadata{Name: "Ann", Role: "retailer"})
	require.NoError(t, err)
	assert.Equal(t, "retailer", s.Principal.Role)

	_, err = p.SignUp(ctx, "ann@example.com", "other12", authdom.SignUpMetadata{})
	assert.True(t, errors.Is(err, common.ErrConflict))

	_, err = p.SignIn(ctx, "ann@example.com", "wrong!!")
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))

	s2, err := p.SignIn(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, s.Principal.UID, s2.Principal.UID)

	got, err := p.VerifySession(ctx, s2.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	require.NoError(t, p.SignOut(ctx, got.UID))
	_, err = p.VerifySession(ctx, s2.AccessToken)
	assert.ErrorIs(t, err, authdom.ErrInvalidToken)
}

func TestOfflineProvider_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	p := NewOfflineProvider()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	s, err := p.SignUp(ctx, "bob@example.com", "secret1", authdom.SignUpMetadata{})
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = p.VerifySession(ctx, s.AccessToken)
	assert.ErrorIs(t, err, authdom.ErrInvalidToken)
}
