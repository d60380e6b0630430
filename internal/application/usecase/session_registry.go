// internal/application/usecase/session_registry.go
package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
	wishlistdom "github.com/UDAY2232/LackLink/internal/domain/wishlist"
)

// DefaultSessionIdleTTL is how long an untouched UserSession survives a sweep.
const DefaultSessionIdleTTL = 30 * time.Minute

// UserSession is the application-scoped state of one principal.
type UserSession struct {
	Store    *SessionStore
	Cart     *Cart
	Wishlist *Wishlist

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *UserSession) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *UserSession) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Identity is a shortcut for Store.Identity().
func (s *UserSession) Identity() *userdom.User { return s.Store.Identity() }

// SessionRegistry maps principal id to its UserSession.
type SessionRegistry struct {
	users     userdom.Repository
	products  productdom.Repository
	carts     cartdom.Repository
	wishlists wishlistdom.Repository
	timeout   time.Duration
	idleTTL   time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*UserSession
}

func NewSessionRegistry(
	users userdom.Repository,
	products productdom.Repository,
	carts cartdom.Repository,
	wishlists wishlistdom.Repository,
	timeout, idleTTL time.Duration,
) *SessionRegistry {
	if idleTTL <= 0 {
		idleTTL = DefaultSessionIdleTTL
	}
	return &SessionRegistry{
		users:     users,
		products:  products,
		carts:     carts,
		wishlists: wishlists,
		timeout:   timeout,
		idleTTL:   idleTTL,
		now:       time.Now,
		sessions:  make(map[string]*UserSession),
	}
}

// Attach forwards a session event to the principal's UserSession, creating it when needed.
func (r *SessionRegistry) Attach(ctx context.Context, ev authdom.Event, sess *authdom.Session) *UserSession {
	if sess == nil || strings.TrimSpace(sess.Principal.UID) == "" {
		return nil
	}
	us, _ := r.getOrCreate(sess.Principal.UID)
	us.Store.OnSessionChange(ctx, ev, sess)
	return us
}

// Resolve returns the UserSession for an authenticated request.
// A known session with a loaded Identity only rotates its token; anything else is (re)initialized.
func (r *SessionRegistry) Resolve(ctx context.Context, sess *authdom.Session) *UserSession {
	if sess == nil || strings.TrimSpace(sess.Principal.UID) == "" {
		return nil
	}
	us, created := r.getOrCreate(sess.Principal.UID)
	if !created && us.Store.State() == StateIdentityPresent {
		if cur := us.Store.Session(); cur == nil || cur.AccessToken != sess.AccessToken {
			us.Store.OnSessionChange(ctx, authdom.EventTokenRefreshed, sess)
		}
		return us
	}
	us.Store.OnSessionChange(ctx, authdom.EventInitialSession, sess)
	return us
}

// Get returns the live UserSession of uid without creating one.
func (r *SessionRegistry) Get(uid string) (*UserSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	us, ok := r.sessions[uid]
	if ok {
		us.touch(r.now())
	}
	return us, ok
}

// Drop signs the UserSession out and forgets it.
func (r *SessionRegistry) Drop(ctx context.Context, uid string) {
	r.mu.Lock()
	us, ok := r.sessions[uid]
	delete(r.sessions, uid)
	r.mu.Unlock()

	if ok {
		us.Store.OnSessionChange(ctx, authdom.EventSignedOut, nil)
	}
}

// Sweep drops sessions idle for longer than the TTL and returns how many went.
func (r *SessionRegistry) Sweep(ctx context.Context, now time.Time) int {
	r.mu.Lock()
	var stale []string
	for uid, us := range r.sessions {
		if now.Sub(us.idleSince()) > r.idleTTL {
			stale = append(stale, uid)
		}
	}
	r.mu.Unlock()

	for _, uid := range stale {
		r.Drop(ctx, uid)
	}
	if len(stale) > 0 {
		log.Printf("[session_registry] swept %d idle sessions", len(stale))
	}
	return len(stale)
}

// Run sweeps every interval until ctx is done.
func (r *SessionRegistry) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			r.Sweep(ctx, now)
		}
	}
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) getOrCreate(uid string) (*UserSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	if us, ok := r.sessions[uid]; ok {
		us.touch(now)
		return us, false
	}
	us := r.newUserSession()
	us.touch(now)
	r.sessions[uid] = us
	return us, true
}

func (r *SessionRegistry) newUserSession() *UserSession {
	store := NewSessionStore(r.users, nil, r.timeout)
	cart := NewCart(r.carts, r.products, r.timeout)
	wl := NewWishlist(r.wishlists, r.products, cart, r.timeout)
	store.Subscribe(cart)
	store.Subscribe(wl)
	return &UserSession{Store: store, Cart: cart, Wishlist: wl}
}
