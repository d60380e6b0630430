package memory

import (
	"context"
	"strings"

	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

type userRepo struct{ s *Store }

func (r *userRepo) GetByID(_ context.Context, id string) (userdom.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[strings.TrimSpace(id)]
	if !ok {
		return userdom.User{}, userdom.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) Create(_ context.Context, u userdom.User) (userdom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; ok {
		return userdom.User{}, userdom.ErrConflict
	}
	r.s.users[u.ID] = u
	return u, nil
}

func (r *userRepo) Update(_ context.Context, id string, patch userdom.Patch) (userdom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[strings.TrimSpace(id)]
	if !ok {
		return userdom.User{}, userdom.ErrNotFound
	}
	patch.ApplyTo(&u)
	r.s.users[u.ID] = u
	return u, nil
}

func (r *userRepo) ListByIDs(_ context.Context, ids []string) ([]userdom.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]userdom.User, 0, len(ids))
	seen := map[string]struct{}{}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if u, ok := r.s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}
