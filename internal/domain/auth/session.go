// internal/domain/auth/session.go
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/UDAY2232/LackLink/internal/domain/common"
)

// Event is a session change reported by the identity provider.
type Event string

const (
	EventInitialSession Event = "initial_session"
	EventSignedIn       Event = "signed_in"
	EventSignedUp       Event = "signed_up"
	EventSignedOut      Event = "signed_out"
	EventTokenRefreshed Event = "token_refreshed"
)

// Principal is the authenticated subject as the provider sees it.
type Principal struct {
	UID   string `json:"uid"`
	Email string `json:"email"`

	// Name and Role come from sign-up metadata when the provider carries them.
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// Session is the provider session. Nil means "no session".
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	Principal    Principal `json:"user"`
}

// SignUpMetadata is stored with the account on the provider side.
type SignUpMetadata struct {
	Name string
	Role string
}

var (
	ErrInvalidCredentials = fmt.Errorf("auth: invalid credentials: %w", common.ErrUnauthenticated)
	ErrInvalidToken       = fmt.Errorf("auth: invalid session token: %w", common.ErrUnauthenticated)
	ErrEmailExists        = fmt.Errorf("auth: email already registered: %w", common.ErrConflict)
	ErrProviderOffline    = fmt.Errorf("auth: identity provider is not configured: %w", common.ErrRemoteFailure)
)

// Provider is the external identity provider. This service never stores credentials.
type Provider interface {
	SignUp(ctx context.Context, email, password string, meta SignUpMetadata) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, uid string) error

	// VerifySession resolves an access token into its principal.
	VerifySession(ctx context.Context, accessToken string) (Principal, error)
}
