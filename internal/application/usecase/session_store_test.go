package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

func TestEnsureIdentity_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := NewSessionStore(env.store.Users(), nil, 0)
	p := authdom.Principal{UID: "u1", Email: "alice@example.com"}

	s.EnsureIdentity(ctx, p)
	first, err := env.store.Users().GetByID(ctx, "u1")
	require.NoError(t, err)

	s.EnsureIdentity(ctx, p)
	second, err := env.store.Users().GetByID(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "alice", first.Name)
	assert.Equal(t, userdom.RoleCustomer, first.Role)

	all, err := env.store.Users().ListByIDs(ctx, []string{"u1", "u1"})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEnsureIdentity_UsesSignUpMetadata(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := NewSessionStore(env.store.Users(), nil, 0)

	s.EnsureIdentity(ctx, authdom.Principal{UID: "u2", Email: "bob@example.com", Name: "Bob's Shop", Role: "retailer"})

	u, err := env.store.Users().GetByID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "Bob's Shop", u.Name)
	assert.True(t, u.IsRetailer())
}

func TestOnSessionChange_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := NewSessionStore(env.store.Users(), nil, 0)
	rec := &recordingListener{}
	s.Subscribe(rec)

	assert.Equal(t, StateIdentityAbsent, s.State())

	s.OnSessionChange(ctx, authdom.EventSignedIn, &authdom.Session{AccessToken: "t1", Principal: authdom.Principal{UID: "u1", Email: "alice@example.com"}})
	require.Equal(t, StateIdentityPresent, s.State())
	require.NotNil(t, s.Identity())
	assert.Equal(t, "u1", s.Identity().ID)

	s.OnSessionChange(ctx, authdom.EventTokenRefreshed, &authdom.Session{AccessToken: "t2", Principal: authdom.Principal{UID: "u1"}})
	assert.Equal(t, "t2", s.Session().AccessToken)
	assert.Equal(t, []string{"u1"}, rec.seen, "token refresh must not reload the identity")

	s.OnSessionChange(ctx, authdom.EventSignedOut, nil)
	assert.Equal(t, StateIdentityAbsent, s.State())
	assert.Nil(t, s.Identity())
	assert.Nil(t, s.Session())
	assert.Equal(t, []string{"u1", ""}, rec.seen)
}

func TestOnSessionChange_ConflictOnProvisioningIsTolerated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := NewSessionStore(racingUsers{Repository: env.store.Users()}, nil, 0)

	s.OnSessionChange(ctx, authdom.EventSignedUp, &authdom.Session{Principal: authdom.Principal{UID: "u9", Email: "race@example.com"}})

	assert.Equal(t, StateIdentityPresent, s.State())
	require.NotNil(t, s.Identity())
	assert.Equal(t, "u9", s.Identity().ID)
}

func TestOnSessionChange_StoreFailureEndsAbsent(t *testing.T) {
	s := NewSessionStore(downUsers{}, nil, 0)

	s.OnSessionChange(context.Background(), authdom.EventInitialSession, &authdom.Session{Principal: authdom.Principal{UID: "u1", Email: "a@example.com"}})

	assert.Equal(t, StateIdentityAbsent, s.State())
	assert.Nil(t, s.Identity())
}

func TestLoadIdentity_RetriesProvisioningOnce(t *testing.T) {
	env := newTestEnv(t)
	users := &droppingUsers{Repository: env.store.Users(), drop: 1}
	s := NewSessionStore(users, nil, 0)

	s.OnSessionChange(context.Background(), authdom.EventSignedIn, &authdom.Session{Principal: authdom.Principal{UID: "u7", Email: "late@example.com"}})

	assert.Equal(t, 2, users.creates)
	assert.Equal(t, StateIdentityPresent, s.State())
	require.NotNil(t, s.Identity())
	assert.Equal(t, "u7", s.Identity().ID)
}

func TestLoadIdentity_RowNeverAppearsEndsAbsent(t *testing.T) {
	env := newTestEnv(t)
	users := &droppingUsers{Repository: env.store.Users(), drop: -1}
	s := NewSessionStore(users, nil, 0)

	s.OnSessionChange(context.Background(), authdom.EventSignedIn, &authdom.Session{Principal: authdom.Principal{UID: "u8", Email: "ghost@example.com"}})

	assert.Equal(t, 2, users.creates)
	assert.Equal(t, StateIdentityAbsent, s.State())
	assert.Nil(t, s.Identity())
}

type recordingListener struct{ seen []string }

func (r *recordingListener) OnIdentityChange(_ context.Context, u *userdom.User) {
	if u == nil {
		r.seen = append(r.seen, "")
		return
	}
	r.seen = append(r.seen, u.ID)
}

// racingUsers commits the row and then reports a unique violation,
// as when a concurrent provisioning wins the insert.
type racingUsers struct{ userdom.Repository }

func (r racingUsers) Create(ctx context.Context, u userdom.User) (userdom.User, error) {
	_, _ = r.Repository.Create(ctx, u)
	return userdom.User{}, userdom.ErrConflict
}

type downUsers struct{ userdom.Repository }

func (downUsers) GetByID(context.Context, string) (userdom.User, error) {
	return userdom.User{}, errors.New("dial tcp: connection refused")
}

// droppingUsers acknowledges the first drop creates without storing them.
// A negative drop loses every create.
type droppingUsers struct {
	userdom.Repository
	drop    int
	creates int
}

func (d *droppingUsers) Create(ctx context.Context, u userdom.User) (userdom.User, error) {
	d.creates++
	if d.drop < 0 || d.creates <= d.drop {
		return u, nil
	}
	return d.Repository.Create(ctx, u)
}
