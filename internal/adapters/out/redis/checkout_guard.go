// internal/adapters/out/redis/checkout_guard.go
package redis

import (
	"context"
	"strings"
	"sync"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
)

// DefaultLockTTL bounds how long a crashed checkout can block the next one.
const DefaultLockTTL = 2 * time.Minute

const keyPrefix = "lacklink:checkout:"

// releaseScript deletes the lock only if this holder still owns it.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Guard allows one in-flight checkout per user across every replica.
type Guard struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewGuard(client *goredis.Client, ttl time.Duration) *Guard {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &Guard{client: client, ttl: ttl}
}

// Acquire returns order.ErrCheckoutBusy when another checkout of userID holds the lock.
func (g *Guard) Acquire(ctx context.Context, userID string) (func(), error) {
	key := keyPrefix + strings.TrimSpace(userID)
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return nil, common.Remote("redis.setnx", err)
	}
	if !ok {
		return nil, orderdom.ErrCheckoutBusy
	}

	return func() {
		// the request context may already be cancelled
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, g.client, []string{key}, token).Err()
	}, nil
}

// LocalGuard is the in-process variant used without REDIS_URL.
type LocalGuard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{busy: make(map[string]struct{})}
}

func (g *LocalGuard) Acquire(_ context.Context, userID string) (func(), error) {
	userID = strings.TrimSpace(userID)

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.busy[userID]; held {
		return nil, orderdom.ErrCheckoutBusy
	}
	g.busy[userID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, userID)
			g.mu.Unlock()
		})
	}, nil
}
