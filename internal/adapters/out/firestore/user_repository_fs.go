// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

// UserRepositoryFS implements user.Repository.
// docId = principal uid.
type UserRepositoryFS struct {
	Client *firestore.Client
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(colUsers)
}

type userDoc struct {
	Email     string    `firestore:"email"`
	Name      string    `firestore:"name"`
	Role      string    `firestore:"role"`
	Phone     *string   `firestore:"phone"`
	Address   *string   `firestore:"address"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func userDocFromDomain(u userdom.User) userDoc {
	return userDoc{
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func decodeUser(snap *firestore.DocumentSnapshot) (userdom.User, error) {
	var d userDoc
	if err := snap.DataTo(&d); err != nil {
		return userdom.User{}, err
	}
	return userdom.User{
		ID:        snap.Ref.ID,
		Email:     d.Email,
		Name:      d.Name,
		Role:      userdom.Role(d.Role),
		Phone:     d.Phone,
		Address:   d.Address,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

func (r *UserRepositoryFS) GetByID(ctx context.Context, id string) (userdom.User, error) {
	snap, err := r.col().Doc(strings.TrimSpace(id)).Get(ctx)
	if err != nil {
		return userdom.User{}, classify("users.get", err, userdom.ErrNotFound, nil)
	}
	return decodeUser(snap)
}

// Create uses DocumentRef.Create so a concurrent provisioning attempt gets AlreadyExists.
func (r *UserRepositoryFS) Create(ctx context.Context, u userdom.User) (userdom.User, error) {
	if _, err := r.col().Doc(u.ID).Create(ctx, userDocFromDomain(u)); err != nil {
		return userdom.User{}, classify("users.create", err, nil, userdom.ErrConflict)
	}
	return u, nil
}

func (r *UserRepositoryFS) Update(ctx context.Context, id string, patch userdom.Patch) (userdom.User, error) {
	ref := r.col().Doc(strings.TrimSpace(id))
	var out userdom.User
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return classify("users.update", err, userdom.ErrNotFound, nil)
		}
		u, err := decodeUser(snap)
		if err != nil {
			return err
		}
		patch.ApplyTo(&u)
		out = u
		return tx.Set(ref, userDocFromDomain(u))
	})
	if err != nil {
		return userdom.User{}, classify("users.update", err, userdom.ErrNotFound, nil)
	}
	return out, nil
}

func (r *UserRepositoryFS) ListByIDs(ctx context.Context, ids []string) ([]userdom.User, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []userdom.User{}, nil
	}
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.col().Doc(id))
	}
	snaps, err := r.Client.GetAll(ctx, refs)
	if err != nil {
		return nil, classify("users.list", err, nil, nil)
	}
	out := make([]userdom.User, 0, len(snaps))
	for _, snap := range snaps {
		if snap == nil || !snap.Exists() {
			continue
		}
		u, err := decodeUser(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
