package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
)

func newTestGuard(t *testing.T) (*Guard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cli := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cli.Close() })
	return NewGuard(cli, time.Minute), mr
}

func TestGuard_SecondCheckoutRejected(t *testing.T) {
	ctx := context.Background()
	g, mr := newTestGuard(t)

	release, err := g.Acquire(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(keyPrefix+"u1"))

	_, err = g.Acquire(ctx, "u1")
	assert.ErrorIs(t, err, orderdom.ErrCheckoutBusy)
	assert.ErrorIs(t, err, common.ErrConflict)

	// other users are independent
	releaseOther, err := g.Acquire(ctx, "u2")
	require.NoError(t, err)
	releaseOther()

	release()
	assert.False(t, mr.Exists(keyPrefix+"u1"))

	release2, err := g.Acquire(ctx, "u1")
	require.NoError(t, err)
	release2()
}

func TestGuard_ExpiredLockIsNotReleasedByOldHolder(t *testing.T) {
	ctx := context.Background()
	g, mr := newTestGuard(t)

	stale, err := g.Acquire(ctx, "u1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	fresh, err := g.Acquire(ctx, "u1")
	require.NoError(t, err)

	stale()
	assert.True(t, mr.Exists(keyPrefix+"u1"))

	fresh()
	assert.False(t, mr.Exists(keyPrefix+"u1"))
}

func TestGuard_RedisDown(t *testing.T) {
	g, mr := newTestGuard(t)
	mr.Close()

	_, err := g.Acquire(context.Background(), "u1")
	assert.ErrorIs(t, err, common.ErrRemoteFailure)
}

func TestLocalGuard(t *testing.T) {
	ctx := context.Background()
	g := NewLocalGuard()

	release, err := g.Acquire(ctx, "u1")
	require.NoError(t, err)

	_, err = g.Acquire(ctx, "u1")
	assert.ErrorIs(t, err, orderdom.ErrCheckoutBusy)

	release()
	release() // idempotent

	again, err := g.Acquire(ctx, "u1")
	require.NoError(t, err)
	again()
}
