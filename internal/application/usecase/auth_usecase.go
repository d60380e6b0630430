// internal/application/usecase/auth_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

// MinPasswordLength is checked locally before the provider is called.
const MinPasswordLength = 6

var (
	ErrEmailRequired    = common.NewValidationError("email", "email is required")
	ErrPasswordRequired = common.NewValidationError("password", "password is required")
	ErrPasswordMismatch = common.NewValidationError("confirm_password", "passwords do not match")
	ErrPasswordTooShort = common.NewValidationError("password", "password must be at least 6 characters")
	ErrNameRequired     = common.NewValidationError("name", "name is required")
	ErrTokenRequired    = common.NewValidationError("token", "session token is required")
)

// AuthUsecase fronts the identity provider and forwards every outcome to the session registry.
type AuthUsecase struct {
	provider authdom.Provider
	registry *SessionRegistry
	timeout  time.Duration
}

func NewAuthUsecase(provider authdom.Provider, registry *SessionRegistry, timeout time.Duration) *AuthUsecase {
	return &AuthUsecase{provider: provider, registry: registry, timeout: timeout}
}

type SignUpInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Name            string
	Role            string
}

// Validate runs the form checks in their fixed order:
// required fields, confirmation, length, name, role.
func (in SignUpInput) Validate() (SignUpInput, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Email == "":
		return in, ErrEmailRequired
	case in.Password == "":
		return in, ErrPasswordRequired
	case in.Password != in.ConfirmPassword:
		return in, ErrPasswordMismatch
	case len(in.Password) < MinPasswordLength:
		return in, ErrPasswordTooShort
	case in.Name == "":
		return in, ErrNameRequired
	}
	role, err := userdom.ParseRole(in.Role)
	if err != nil {
		return in, err
	}
	in.Role = string(role)
	return in, nil
}

// SignUp creates the provider account and signs the new principal in.
func (uc *AuthUsecase) SignUp(ctx context.Context, in SignUpInput) (*authdom.Session, *UserSession, error) {
	in, err := in.Validate()
	if err != nil {
		return nil, nil, err
	}

	cctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	sess, err := uc.provider.SignUp(cctx, in.Email, in.Password, authdom.SignUpMetadata{Name: in.Name, Role: in.Role})
	if err != nil {
		log.Printf("[auth] signUp failed email=%s err=%v", in.Email, err)
		return nil, nil, common.Remote("auth.signUp", err)
	}
	if sess.Principal.Name == "" {
		sess.Principal.Name = in.Name
	}
	if sess.Principal.Role == "" {
		sess.Principal.Role = in.Role
	}

	us := uc.registry.Attach(ctx, authdom.EventSignedUp, sess)
	log.Printf("[auth] signed up uid=%s role=%s", sess.Principal.UID, in.Role)
	return sess, us, nil
}

func (uc *AuthUsecase) SignIn(ctx context.Context, email, password string) (*authdom.Session, *UserSession, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil, ErrEmailRequired
	}
	if password == "" {
		return nil, nil, ErrPasswordRequired
	}

	cctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	sess, err := uc.provider.SignIn(cctx, email, password)
	if err != nil {
		log.Printf("[auth] signIn failed email=%s err=%v", email, err)
		return nil, nil, common.Remote("auth.signIn", err)
	}
	us := uc.registry.Attach(ctx, authdom.EventSignedIn, sess)
	return sess, us, nil
}

// SignOut drops the user session even when the provider revocation fails.
func (uc *AuthUsecase) SignOut(ctx context.Context, uid string) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return ErrSignInRequired
	}
	uc.registry.Drop(ctx, uid)

	cctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()
	if err := uc.provider.SignOut(cctx, uid); err != nil {
		log.Printf("[auth] signOut revoke failed uid=%s err=%v", uid, err)
		return common.Remote("auth.signOut", err)
	}
	return nil
}

func (uc *AuthUsecase) VerifySession(ctx context.Context, token string) (authdom.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return authdom.Principal{}, ErrTokenRequired
	}
	cctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	p, err := uc.provider.VerifySession(cctx, token)
	if err != nil {
		return authdom.Principal{}, common.Remote("auth.verifySession", err)
	}
	return p, nil
}

// Authenticate verifies token and returns the principal's UserSession.
func (uc *AuthUsecase) Authenticate(ctx context.Context, token string) (*UserSession, error) {
	p, err := uc.VerifySession(ctx, token)
	if err != nil {
		return nil, err
	}
	us := uc.registry.Resolve(ctx, &authdom.Session{AccessToken: strings.TrimSpace(token), Principal: p})
	if us == nil {
		return nil, authdom.ErrInvalidToken
	}
	return us, nil
}
