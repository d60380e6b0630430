package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
)

func TestSessionRegistry_ResolveReusesLoadedSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sess := &authdom.Session{AccessToken: "t1", Principal: authdom.Principal{UID: "u1", Email: "alice@example.com"}}

	first := env.registry.Resolve(ctx, sess)
	require.NotNil(t, first)
	require.Equal(t, StateIdentityPresent, first.Store.State())

	rotated := &authdom.Session{AccessToken: "t2", Principal: sess.Principal}
	second := env.registry.Resolve(ctx, rotated)
	assert.Same(t, first, second)
	assert.Equal(t, "t2", second.Store.Session().AccessToken)
	assert.Equal(t, 1, env.registry.Len())
}

func TestSessionRegistry_SweepDropsIdle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	env.registry.now = func() time.Time { return clock }

	env.signIn(t, "u1", "a@example.com")
	clock = clock.Add(45 * time.Second)
	env.signIn(t, "u2", "b@example.com")

	n := env.registry.Sweep(ctx, clock.Add(30*time.Second))
	assert.Equal(t, 1, n)

	_, ok := env.registry.Get("u1")
	assert.False(t, ok)
	_, ok = env.registry.Get("u2")
	assert.True(t, ok)
}

func TestSessionRegistry_IgnoresEmptyPrincipal(t *testing.T) {
	env := newTestEnv(t)
	assert.Nil(t, env.registry.Attach(context.Background(), authdom.EventSignedIn, &authdom.Session{}))
	assert.Nil(t, env.registry.Resolve(context.Background(), nil))
	assert.Zero(t, env.registry.Len())
}
