package memory

import (
	"context"
	"sort"

	reviewdom "github.com/UDAY2232/LackLink/internal/domain/review"
)

type reviewRepo struct{ s *Store }

func (r *reviewRepo) ListByProduct(_ context.Context, productID string, limit int) ([]reviewdom.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]reviewdom.Review, 0)
	for _, rv := range r.s.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *reviewRepo) Create(_ context.Context, rv reviewdom.Review) (reviewdom.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reviews[rv.ID] = rv
	return rv, nil
}
