// internal/adapters/out/identity/offline_provider.go
package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
)

// OfflineProvider is the local identity provider used when AUTH_API_KEY is missing.
// Accounts and tokens live in process memory and vanish on restart.
type OfflineProvider struct {
	mu       sync.Mutex
	accounts map[string]offlineAccount // by lower-cased email
	tokens   map[string]offlineToken   // by access token
	ttl      time.Duration
	now      func() time.Time
}

type offlineAccount struct {
	principal authdom.Principal
	hash      []byte
}

type offlineToken struct {
	uid       string
	expiresAt time.Time
}

func NewOfflineProvider() *OfflineProvider {
	return &OfflineProvider{
		accounts: make(map[string]offlineAccount),
		tokens:   make(map[string]offlineToken),
		ttl:      time.Hour,
		now:      time.Now,
	}
}

func (p *OfflineProvider) SignUp(_ context.Context, email, password string, meta authdom.SignUpMetadata) (*authdom.Session, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, authdom.ErrInvalidCredentials
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.accounts[key]; ok {
		return nil, authdom.ErrEmailExists
	}
	acc := offlineAccount{
		principal: authdom.Principal{
			UID:   uuid.NewString(),
			Email: strings.TrimSpace(email),
			Name:  strings.TrimSpace(meta.Name),
			Role:  strings.TrimSpace(meta.Role),
		},
		hash: hash,
	}
	p.accounts[key] = acc
	return p.issueLocked(acc.principal), nil
}

func (p *OfflineProvider) SignIn(_ context.Context, email, password string) (*authdom.Session, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	p.mu.Lock()
	defer p.mu.Unlock()

	acc, ok := p.accounts[key]
	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return nil, authdom.ErrInvalidCredentials
	}
	return p.issueLocked(acc.principal), nil
}

// SignOut drops every token of uid.
func (p *OfflineProvider) SignOut(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for tok, t := range p.tokens {
		if t.uid == uid {
			delete(p.tokens, tok)
		}
	}
	return nil
}

func (p *OfflineProvider) VerifySession(_ context.Context, accessToken string) (authdom.Principal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := p.tokens[strings.TrimSpace(accessToken)]
	if !ok {
		return authdom.Principal{}, authdom.ErrInvalidToken
	}
	if !p.now().Before(t.expiresAt) {
		delete(p.tokens, accessToken)
		return authdom.Principal{}, authdom.ErrInvalidToken
	}
	for _, acc := range p.accounts {
		if acc.principal.UID == t.uid {
			return acc.principal, nil
		}
	}
	return authdom.Principal{}, authdom.ErrInvalidToken
}

func (p *OfflineProvider) issueLocked(pr authdom.Principal) *authdom.Session {
	tok := uuid.NewString()
	exp := p.now().Add(p.ttl).UTC()
	p.tokens[tok] = offlineToken{uid: pr.UID, expiresAt: exp}
	return &authdom.Session{
		AccessToken: tok,
		ExpiresAt:   exp,
		Principal:   pr,
	}
}
