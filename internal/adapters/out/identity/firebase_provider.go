// internal/adapters/out/identity/firebase_provider.go
package identity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
	"github.com/UDAY2232/LackLink/internal/domain/common"
)

// adminClient is the subset of *firebaseauth.Client the provider uses.
type adminClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*firebaseauth.Token, error)
	CreateUser(ctx context.Context, user *firebaseauth.UserToCreate) (*firebaseauth.UserRecord, error)
	SetCustomUserClaims(ctx context.Context, uid string, customClaims map[string]interface{}) error
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// passwordSignIn exchanges email/password for provider tokens.
type passwordSignIn func(ctx context.Context, email, password string) (*identitytoolkit.VerifyPasswordResponse, error)

// FirebaseProvider implements auth.Provider on Firebase Authentication.
//   - admin SDK: token verification, account creation, role claim, revocation
//   - Identity Toolkit (public API key): password sign-in
type FirebaseProvider struct {
	admin    adminClient
	signIn   passwordSignIn
	now      func() time.Time
	rejected func(error) bool
}

// NewFirebaseProvider builds the provider; apiKey is the public web API key.
func NewFirebaseProvider(ctx context.Context, admin *firebaseauth.Client, apiKey string) (*FirebaseProvider, error) {
	if admin == nil {
		return nil, errors.New("identity: firebase auth client is nil")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("identity: api key is empty")
	}
	svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("identity: identitytoolkit.NewService: %w", err)
	}
	return &FirebaseProvider{
		admin:    admin,
		signIn:   toolkitSignIn(svc),
		now:      time.Now,
		rejected: tokenRejected,
	}, nil
}

// tokenRejected reports verification failures caused by the token itself.
func tokenRejected(err error) bool {
	return firebaseauth.IsIDTokenInvalid(err) || firebaseauth.IsIDTokenExpired(err) || firebaseauth.IsIDTokenRevoked(err)
}

func toolkitSignIn(svc *identitytoolkit.Service) passwordSignIn {
	return func(ctx context.Context, email, password string) (*identitytoolkit.VerifyPasswordResponse, error) {
		return svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
			Email:             email,
			Password:          password,
			ReturnSecureToken: true,
		}).Context(ctx).Do()
	}
}

const roleClaim = "role"

func (p *FirebaseProvider) SignUp(ctx context.Context, email, password string, meta authdom.SignUpMetadata) (*authdom.Session, error) {
	params := (&firebaseauth.UserToCreate{}).
		Email(email).
		Password(password)
	if name := strings.TrimSpace(meta.Name); name != "" {
		params = params.DisplayName(name)
	}

	rec, err := p.admin.CreateUser(ctx, params)
	if err != nil {
		if firebaseauth.IsEmailAlreadyExists(err) {
			return nil, authdom.ErrEmailExists
		}
		return nil, common.Remote("identity.create_user", err)
	}

	if role := strings.TrimSpace(meta.Role); role != "" {
		if err := p.admin.SetCustomUserClaims(ctx, rec.UID, map[string]interface{}{roleClaim: role}); err != nil {
			// the Identity row still records the role
			log.Printf("[identity] WARN: set role claim failed uid=%s err=%v", rec.UID, err)
		}
	}

	s, err := p.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if s.Principal.Name == "" {
		s.Principal.Name = strings.TrimSpace(meta.Name)
	}
	if s.Principal.Role == "" {
		s.Principal.Role = strings.TrimSpace(meta.Role)
	}
	return s, nil
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (*authdom.Session, error) {
	resp, err := p.signIn(ctx, email, password)
	if err != nil {
		return nil, classifyToolkitError(err)
	}
	if resp == nil || resp.IdToken == "" {
		return nil, authdom.ErrInvalidCredentials
	}

	ttl := 3600
	if n := resp.ExpiresIn; n > 0 {
		ttl = int(n)
	}

	principal := authdom.Principal{
		UID:   resp.LocalId,
		Email: resp.Email,
		Name:  resp.DisplayName,
	}
	// role lives in the ID token claims
	if tok, err := p.admin.VerifyIDToken(ctx, resp.IdToken); err == nil {
		principal = principalFromToken(tok)
		if principal.Name == "" {
			principal.Name = resp.DisplayName
		}
	}

	return &authdom.Session{
		AccessToken:  resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    p.now().Add(time.Duration(ttl) * time.Second).UTC(),
		Principal:    principal,
	}, nil
}

func (p *FirebaseProvider) SignOut(ctx context.Context, uid string) error {
	if strings.TrimSpace(uid) == "" {
		return nil
	}
	if err := p.admin.RevokeRefreshTokens(ctx, uid); err != nil {
		return common.Remote("identity.revoke", err)
	}
	return nil
}

func (p *FirebaseProvider) VerifySession(ctx context.Context, accessToken string) (authdom.Principal, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return authdom.Principal{}, authdom.ErrInvalidToken
	}
	// Tokens issued before SignOut are rejected.
	tok, err := p.admin.VerifyIDTokenAndCheckRevoked(ctx, accessToken)
	if err != nil {
		if p.rejected(err) {
			return authdom.Principal{}, authdom.ErrInvalidToken
		}
		return authdom.Principal{}, common.Remote("identity.verify", err)
	}
	return principalFromToken(tok), nil
}

func principalFromToken(tok *firebaseauth.Token) authdom.Principal {
	p := authdom.Principal{UID: tok.UID}
	if v, ok := tok.Claims["email"].(string); ok {
		p.Email = v
	}
	if v, ok := tok.Claims["name"].(string); ok {
		p.Name = v
	}
	if v, ok := tok.Claims[roleClaim].(string); ok {
		p.Role = v
	}
	return p
}

// classifyToolkitError maps the REST error of a password sign-in.
// 400 carries EMAIL_NOT_FOUND / INVALID_PASSWORD / INVALID_LOGIN_CREDENTIALS / USER_DISABLED.
func classifyToolkitError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusBadRequest {
		return authdom.ErrInvalidCredentials
	}
	return common.Remote("identity.sign_in", err)
}
