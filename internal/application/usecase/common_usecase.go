package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

// Errors surfaced at the aggregate boundary.
var (
	ErrSignInRequired = fmt.Errorf("sign in required: %w", common.ErrUnauthenticated)
	ErrRetailerOnly   = fmt.Errorf("retailer account required: %w", common.ErrForbidden)
)

// DefaultRemoteTimeout bounds every store call made by an aggregate.
const DefaultRemoteTimeout = 10 * time.Second

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func newUUID() string { return uuid.NewString() }

// withTimeout applies the defensive per-call deadline.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultRemoteTimeout
	}
	return context.WithTimeout(ctx, d)
}

// requireRetailer gates seller operations.
func requireRetailer(u *userdom.User) error {
	if u == nil {
		return ErrSignInRequired
	}
	if !u.IsRetailer() {
		return ErrRetailerOnly
	}
	return nil
}

// productsByID loads products (active or not) keyed by id.
func productsByID(ctx context.Context, repo productdom.Repository, ids []string) (map[string]productdom.Product, error) {
	ids = dedupStrings(ids)
	out := make(map[string]productdom.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ps, err := repo.List(ctx, productdom.Filter{IDs: ids, IncludeInactive: true}, productdom.DefaultSort)
	if err != nil {
		return nil, err
	}
	for _, p := range ps {
		out[p.ID] = p
	}
	return out, nil
}

// 共通ヘルパー: 重複排除 + 空白除去
func dedupStrings(xs []string) []string {
	seen := make(map[string]struct{}, len(xs))
	out := make([]string, 0, len(xs))
	for _, v := range xs {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// 任意型のポインタを返すユーティリティ
func ptr[T any](v T) *T { return &v }
