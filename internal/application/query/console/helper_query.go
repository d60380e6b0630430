// internal/application/query/console/helper_query.go
package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

const defaultTimeout = 10 * time.Second

// ErrRetailerOnly is returned when a non-retailer asks for a seller view.
var ErrRetailerOnly = fmt.Errorf("console: retailer role required: %w", common.ErrForbidden)

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultTimeout
	}
	return context.WithTimeout(ctx, d)
}

func requireRetailer(u *userdom.User) error {
	if u == nil {
		return common.ErrUnauthenticated
	}
	if !u.IsRetailer() {
		return ErrRetailerOnly
	}
	return nil
}

func uniqueNonEmpty(xs []string) []string {
	seen := make(map[string]struct{}, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	return out
}
