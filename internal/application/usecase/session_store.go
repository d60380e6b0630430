// internal/application/usecase/session_store.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

// SessionState is the tri-state read by consumers of the Session Store.
type SessionState string

const (
	StateLoading         SessionState = "loading"
	StateIdentityPresent SessionState = "identity_present"
	StateIdentityAbsent  SessionState = "identity_absent"
)

// IdentityListener is notified after the Identity changes.
// u is nil when the Identity became absent.
type IdentityListener interface {
	OnIdentityChange(ctx context.Context, u *userdom.User)
}

// SessionStore tracks the provider session and derives the domain Identity.
// It never returns provider or store errors; they are logged and reflected in State.
type SessionStore struct {
	users   userdom.Repository
	clock   Clock
	timeout time.Duration

	mu        sync.RWMutex
	state     SessionState
	session   *authdom.Session
	identity  *userdom.User
	listeners []IdentityListener
}

func NewSessionStore(users userdom.Repository, clock Clock, timeout time.Duration) *SessionStore {
	if clock == nil {
		clock = systemClock{}
	}
	return &SessionStore{
		users:   users,
		clock:   clock,
		timeout: timeout,
		state:   StateIdentityAbsent,
	}
}

// Subscribe registers l. Listeners run in registration order.
func (s *SessionStore) Subscribe(l IdentityListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// OnSessionChange reacts to a provider session event.
func (s *SessionStore) OnSessionChange(ctx context.Context, ev authdom.Event, sess *authdom.Session) {
	if ev == authdom.EventSignedOut || sess == nil || strings.TrimSpace(sess.Principal.UID) == "" {
		s.mu.Lock()
		hadIdentity := s.identity != nil
		s.session = nil
		s.identity = nil
		s.state = StateIdentityAbsent
		s.mu.Unlock()

		log.Printf("[session] %s: identity cleared", ev)
		if hadIdentity {
			s.notify(ctx, nil)
		}
		return
	}

	s.mu.Lock()
	sameUser := s.session != nil && s.session.Principal.UID == sess.Principal.UID
	loaded := sameUser && s.identity != nil
	cp := *sess
	s.session = &cp
	if ev == authdom.EventTokenRefreshed && loaded {
		// the Identity is unchanged; only the token rotates
		s.mu.Unlock()
		return
	}
	s.state = StateLoading
	s.mu.Unlock()

	s.EnsureIdentity(ctx, sess.Principal)
	s.LoadIdentity(ctx, sess.Principal.UID)
}

// EnsureIdentity provisions the Identity of p when it is absent.
// Idempotent; a unique-key race with a concurrent provisioning is logged and ignored.
func (s *SessionStore) EnsureIdentity(ctx context.Context, p authdom.Principal) {
	uid := strings.TrimSpace(p.UID)
	if uid == "" {
		return
	}

	cctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.users.GetByID(cctx, uid)
	if err == nil {
		return
	}
	if !errors.Is(err, common.ErrNotFound) {
		log.Printf("[session] ensureIdentity lookup failed uid=%s err=%v", uid, err)
		return
	}

	role, rerr := userdom.ParseRole(p.Role)
	if rerr != nil {
		role = userdom.RoleCustomer
	}
	u, err := userdom.NewDefault(uid, p.Email, p.Name, role, s.clock.Now())
	if err != nil {
		log.Printf("[session] ensureIdentity build failed uid=%s err=%v", uid, err)
		return
	}
	if _, err := s.users.Create(cctx, u); err != nil {
		if errors.Is(err, common.ErrConflict) {
			log.Printf("[session] ensureIdentity: already provisioned uid=%s", uid)
			return
		}
		log.Printf("[session] ensureIdentity create failed uid=%s err=%v", uid, err)
		return
	}
	log.Printf("[session] identity provisioned uid=%s role=%s", uid, u.Role)
}

// LoadIdentity fetches the Identity, re-provisioning once when it is not there yet.
// The store always leaves the loading state.
func (s *SessionStore) LoadIdentity(ctx context.Context, userID string) {
	u, err := s.fetch(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		if p, ok := s.principal(); ok && p.UID == userID {
			s.EnsureIdentity(ctx, p)
		}
		u, err = s.fetch(ctx, userID)
	}

	s.mu.Lock()
	if s.session == nil || s.session.Principal.UID != userID {
		// signed out (or switched user) while loading
		s.mu.Unlock()
		return
	}
	if err != nil {
		log.Printf("[session] loadIdentity failed uid=%s err=%v", userID, err)
		s.identity = nil
		s.state = StateIdentityAbsent
		s.mu.Unlock()
		return
	}
	s.identity = &u
	s.state = StateIdentityPresent
	s.mu.Unlock()

	cp := u
	s.notify(ctx, &cp)
}

// SetIdentity replaces the cached Identity after a profile edit.
func (s *SessionStore) SetIdentity(u userdom.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity != nil && s.identity.ID == u.ID {
		s.identity = &u
	}
}

func (s *SessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Identity returns a copy of the current Identity, nil when absent.
func (s *SessionStore) Identity() *userdom.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	cp := *s.identity
	return &cp
}

func (s *SessionStore) Session() *authdom.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

func (s *SessionStore) principal() (authdom.Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return authdom.Principal{}, false
	}
	return s.session.Principal, true
}

func (s *SessionStore) fetch(ctx context.Context, userID string) (userdom.User, error) {
	cctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.users.GetByID(cctx, userID)
}

func (s *SessionStore) notify(ctx context.Context, u *userdom.User) {
	s.mu.RLock()
	ls := append([]IdentityListener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, l := range ls {
		l.OnIdentityChange(ctx, u)
	}
}
