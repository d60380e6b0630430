package db

import (
	"context"
	"database/sql"
	"strings"

	dbcommon "github.com/UDAY2232/LackLink/internal/adapters/out/db/common"
	wishlistdom "github.com/UDAY2232/LackLink/internal/domain/wishlist"
)

// PostgreSQL implementation of wishlist.Repository
type WishlistRepositoryPG struct {
	DB *sql.DB
}

func NewWishlistRepositoryPG(db *sql.DB) *WishlistRepositoryPG {
	return &WishlistRepositoryPG{DB: db}
}

const wishlistColumns = `id, user_id, product_id, created_at`

func (r *WishlistRepositoryPG) ListByUser(ctx context.Context, userID string) ([]wishlistdom.Entry, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	rows, err := run.QueryContext(ctx,
		`SELECT `+wishlistColumns+` FROM wishlists WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		strings.TrimSpace(userID),
	)
	if err != nil {
		return nil, dbcommon.Classify("wishlists.list", err, nil, nil)
	}
	defer rows.Close()

	out := make([]wishlistdom.Entry, 0)
	for rows.Next() {
		e, err := scanWishlistEntry(rows)
		if err != nil {
			return nil, dbcommon.Classify("wishlists.list", err, nil, nil)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbcommon.Classify("wishlists.list", err, nil, nil)
	}
	return out, nil
}

func (r *WishlistRepositoryPG) FindByUserAndProduct(ctx context.Context, userID, productID string) (wishlistdom.Entry, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	e, err := scanWishlistEntry(run.QueryRowContext(ctx,
		`SELECT `+wishlistColumns+` FROM wishlists WHERE user_id = $1 AND product_id = $2`,
		strings.TrimSpace(userID), strings.TrimSpace(productID),
	))
	if err != nil {
		return wishlistdom.Entry{}, dbcommon.Classify("wishlists.find", err, wishlistdom.ErrNotFound, nil)
	}
	return e, nil
}

func (r *WishlistRepositoryPG) Create(ctx context.Context, e wishlistdom.Entry) (wishlistdom.Entry, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	out, err := scanWishlistEntry(run.QueryRowContext(ctx,
		`INSERT INTO wishlists (`+wishlistColumns+`) VALUES ($1, $2, $3, $4) RETURNING `+wishlistColumns,
		e.ID, e.UserID, e.ProductID, e.CreatedAt.UTC(),
	))
	if err != nil {
		return wishlistdom.Entry{}, dbcommon.Classify("wishlists.create", err, nil, wishlistdom.ErrConflict)
	}
	return out, nil
}

func (r *WishlistRepositoryPG) Delete(ctx context.Context, userID, id string) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	res, err := run.ExecContext(ctx,
		`DELETE FROM wishlists WHERE id = $1 AND user_id = $2`,
		strings.TrimSpace(id), strings.TrimSpace(userID),
	)
	if err != nil {
		return dbcommon.Classify("wishlists.delete", err, nil, nil)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return wishlistdom.ErrNotFound
	}
	return nil
}

func scanWishlistEntry(s dbcommon.RowScanner) (wishlistdom.Entry, error) {
	var e wishlistdom.Entry
	if err := s.Scan(&e.ID, &e.UserID, &e.ProductID, &e.CreatedAt); err != nil {
		return wishlistdom.Entry{}, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}
