package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UDAY2232/LackLink/internal/adapters/out/identity"
	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

func TestSignUp_ValidationRunsBeforeProvider(t *testing.T) {
	tests := []struct {
		name    string
		in      SignUpInput
		wantErr error
	}{
		{"missing email", SignUpInput{Password: "abcdef", ConfirmPassword: "abcdef", Name: "A"}, ErrEmailRequired},
		{"short password", SignUpInput{Email: "a@example.com", Password: "abc", ConfirmPassword: "abc", Name: "A"}, ErrPasswordTooShort},
		{"mismatch before length", SignUpInput{Email: "a@example.com", Password: "abc", ConfirmPassword: "abd", Name: "A"}, ErrPasswordMismatch},
		{"mismatch", SignUpInput{Email: "a@example.com", Password: "abcdef", ConfirmPassword: "abcdeg", Name: "A"}, ErrPasswordMismatch},
		{"missing name", SignUpInput{Email: "a@example.com", Password: "abcdef", ConfirmPassword: "abcdef", Name: "  "}, ErrNameRequired},
		{"bad role", SignUpInput{Email: "a@example.com", Password: "abcdef", ConfirmPassword: "abcdef", Name: "A", Role: "admin"}, userdom.ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			p := &countingProvider{}
			uc := NewAuthUsecase(p, env.registry, 0)

			_, _, err := uc.SignUp(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Zero(t, p.calls)
		})
	}
}

func TestSignUp_ProvisionsIdentityFromMetadata(t *testing.T) {
	env := newTestEnv(t)
	uc := NewAuthUsecase(identity.NewOfflineProvider(), env.registry, 0)
	ctx := context.Background()

	sess, us, err := uc.SignUp(ctx, SignUpInput{
		Email: "maker@example.com", Password: "secret1", ConfirmPassword: "secret1",
		Name: "Maker Goods", Role: "retailer",
	})
	require.NoError(t, err)
	require.NotNil(t, us)

	id := us.Identity()
	require.NotNil(t, id)
	assert.Equal(t, sess.Principal.UID, id.ID)
	assert.Equal(t, "Maker Goods", id.Name)
	assert.Equal(t, userdom.RoleRetailer, id.Role)
}

func TestSignInAuthenticateSignOut(t *testing.T) {
	env := newTestEnv(t)
	uc := NewAuthUsecase(identity.NewOfflineProvider(), env.registry, 0)
	ctx := context.Background()

	_, _, err := uc.SignUp(ctx, SignUpInput{Email: "c@example.com", Password: "secret1", ConfirmPassword: "secret1", Name: "C"})
	require.NoError(t, err)

	_, _, err = uc.SignIn(ctx, "c@example.com", "wrong-pass")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	sess, _, err := uc.SignIn(ctx, "c@example.com", "secret1")
	require.NoError(t, err)

	us, err := uc.Authenticate(ctx, sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.Principal.UID, us.Identity().ID)

	require.NoError(t, uc.SignOut(ctx, sess.Principal.UID))
	_, ok := env.registry.Get(sess.Principal.UID)
	assert.False(t, ok)
	assert.Equal(t, StateIdentityAbsent, us.Store.State())

	_, err = uc.Authenticate(ctx, sess.AccessToken)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

type countingProvider struct{ calls int }

func (p *countingProvider) SignUp(context.Context, string, string, authdom.SignUpMetadata) (*authdom.Session, error) {
	p.calls++
	return nil, authdom.ErrProviderOffline
}

func (p *countingProvider) SignIn(context.Context, string, string) (*authdom.Session, error) {
	p.calls++
	return nil, authdom.ErrProviderOffline
}

func (p *countingProvider) SignOut(context.Context, string) error {
	p.calls++
	return nil
}

func (p *countingProvider) VerifySession(context.Context, string) (authdom.Principal, error) {
	p.calls++
	return authdom.Principal{}, authdom.ErrInvalidToken
}
