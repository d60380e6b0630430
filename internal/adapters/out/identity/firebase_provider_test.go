package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"

	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
	"github.com/UDAY2232/LackLink/internal/domain/common"
)

type fakeAdmin struct {
	claims  map[string]map[string]interface{}
	revoked []string
	created []string
	tokens  map[string]*firebaseauth.Token
}

func (f *fakeAdmin) VerifyIDToken(_ context.Context, idToken string) (*firebaseauth.Token, error) {
	if t, ok := f.tokens[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("transport down")
}

var errTokenRevoked = errors.New("id token has been revoked")

func (f *fakeAdmin) VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*firebaseauth.Token, error) {
	t, err := f.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	for _, uid := range f.revoked {
		if uid == t.UID {
			return nil, errTokenRevoked
		}
	}
	return t, nil
}

func (f *fakeAdmin) CreateUser(_ context.Context, _ *firebaseauth.UserToCreate) (*firebaseauth.UserRecord, error) {
	uid := "uid-new"
	f.created = append(f.created, uid)
	return &firebaseauth.UserRecord{UserInfo: &firebaseauth.UserInfo{UID: uid}}, nil
}

func (f *fakeAdmin) SetCustomUserClaims(_ context.Context, uid string, c map[string]interface{}) error {
	if f.claims == nil {
		f.claims = map[string]map[string]interface{}{}
	}
	f.claims[uid] = c
	return nil
}

func (f *fakeAdmin) RevokeRefreshTokens(_ context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	return nil
}

func newTestProvider(admin *fakeAdmin, signIn passwordSignIn) *FirebaseProvider {
	return &FirebaseProvider{
		admin:    admin,
		signIn:   signIn,
		now:      func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
		rejected: fakeRejected,
	}
}

func fakeRejected(err error) bool {
	return errors.Is(err, errTokenRevoked) || tokenRejected(err)
}

func TestFirebaseProvider_SignIn(t *testing.T) {
	admin := &fakeAdmin{tokens: map[string]*firebaseauth.Token{
		"id-token": {UID: "uid-1", Claims: map[string]interface{}{"email": "a@example.com", "role": "retailer"}},
	}}
	p := newTestProvider(admin, func(_ context.Context, email, _ string) (*identitytoolkit.VerifyPasswordResponse, error) {
		return &identitytoolkit.VerifyPasswordResponse{
			IdToken: "id-token", RefreshToken: "rt", ExpiresIn: 600,
			LocalId: "uid-1", Email: email, DisplayName: "Ann",
		}, nil
	})

	s, err := p.SignIn(context.Background(), "a@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", s.Principal.UID)
	assert.Equal(t, "retailer", s.Principal.Role)
	assert.Equal(t, "Ann", s.Principal.Name)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 10, 0, 0, time.UTC), s.ExpiresAt)
}

func TestFirebaseProvider_SignInErrors(t *testing.T) {
	p := newTestProvider(&fakeAdmin{}, func(context.Context, string, string) (*identitytoolkit.VerifyPasswordResponse, error) {
		return nil, &googleapi.Error{Code: 400, Message: "INVALID_LOGIN_CREDENTIALS"}
	})
	_, err := p.SignIn(context.Background(), "a@example.com", "nope")
	assert.ErrorIs(t, err, authdom.ErrInvalidCredentials)

	p = newTestProvider(&fakeAdmin{}, func(context.Context, string, string) (*identitytoolkit.VerifyPasswordResponse, error) {
		return nil, errors.New("dial tcp: timeout")
	})
	_, err = p.SignIn(context.Background(), "a@example.com", "nope")
	assert.ErrorIs(t, err, common.ErrRemoteFailure)
}

func TestFirebaseProvider_SignUpSetsRoleClaim(t *testing.T) {
	admin := &fakeAdmin{}
	p := newTestProvider(admin, func(_ context.Context, email, _ string) (*identitytoolkit.VerifyPasswordResponse, error) {
		return &identitytoolkit.VerifyPasswordResponse{IdToken: "unknown", LocalId: "uid-new", Email: email}, nil
	})

	s, err := p.SignUp(context.Background(), "b@example.com", "secret1", authdom.SignUpMetadata{Name: "Bo", Role: "retailer"})
	require.NoError(t, err)
	assert.Equal(t, "retailer", admin.claims["uid-new"]["role"])
	assert.Equal(t, "Bo", s.Principal.Name)
	assert.Equal(t, "retailer", s.Principal.Role)
}

func TestFirebaseProvider_VerifyAndSignOut(t *testing.T) {
	admin := &fakeAdmin{}
	p := newTestProvider(admin, nil)

	_, err := p.VerifySession(context.Background(), " ")
	assert.ErrorIs(t, err, authdom.ErrInvalidToken)

	_, err = p.VerifySession(context.Background(), "whatever")
	assert.ErrorIs(t, err, common.ErrRemoteFailure)

	require.NoError(t, p.SignOut(context.Background(), "uid-1"))
	assert.Equal(t, []string{"uid-1"}, admin.revoked)
}

func TestFirebaseProvider_SignOutRevokesIssuedToken(t *testing.T) {
	admin := &fakeAdmin{tokens: map[string]*firebaseauth.Token{
		"id-token": {UID: "uid-1", Claims: map[string]interface{}{"role": "customer"}},
	}}
	p := newTestProvider(admin, nil)

	pr, err := p.VerifySession(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", pr.UID)

	require.NoError(t, p.SignOut(context.Background(), "uid-1"))

	_, err = p.VerifySession(context.Background(), "id-token")
	assert.ErrorIs(t, err, authdom.ErrInvalidToken)
}
