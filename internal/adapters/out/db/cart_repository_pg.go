package db

import (
	"context"
	"database/sql"
	"strings"

	dbcommon "github.com/UDAY2232/LackLink/internal/adapters/out/db/common"
	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
)

// PostgreSQL implementation of cart.Repository (table: cart_items)
type CartRepositoryPG struct {
	DB *sql.DB
}

func NewCartRepositoryPG(db *sql.DB) *CartRepositoryPG {
	return &CartRepositoryPG{DB: db}
}

const cartColumns = `id, user_id, product_id, quantity, created_at`

func (r *CartRepositoryPG) ListByUser(ctx context.Context, userID string) ([]cartdom.CartItem, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	rows, err := run.QueryContext(ctx,
		`SELECT `+cartColumns+` FROM cart_items WHERE user_id = $1 ORDER BY created_at ASC, id ASC`,
		strings.TrimSpace(userID),
	)
	if err != nil {
		return nil, dbcommon.Classify("cart_items.list", err, nil, nil)
	}
	defer rows.Close()

	out := make([]cartdom.CartItem, 0)
	for rows.Next() {
		it, err := scanCartItem(rows)
		if err != nil {
			return nil, dbcommon.Classify("cart_items.list", err, nil, nil)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, dbcommon.Classify("cart_items.list", err, nil, nil)
	}
	return out, nil
}

func (r *CartRepositoryPG) FindByUserAndProduct(ctx context.Context, userID, productID string) (cartdom.CartItem, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	row := run.QueryRowContext(ctx,
		`SELECT `+cartColumns+` FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		strings.TrimSpace(userID), strings.TrimSpace(productID),
	)
	it, err := scanCartItem(row)
	if err != nil {
		return cartdom.CartItem{}, dbcommon.Classify("cart_items.find", err, cartdom.ErrNotFound, nil)
	}
	return it, nil
}

func (r *CartRepositoryPG) Create(ctx context.Context, item cartdom.CartItem) (cartdom.CartItem, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	row := run.QueryRowContext(ctx,
		`INSERT INTO cart_items (`+cartColumns+`) VALUES ($1, $2, $3, $4, $5) RETURNING `+cartColumns,
		item.ID, item.UserID, item.ProductID, item.Quantity, item.CreatedAt.UTC(),
	)
	it, err := scanCartItem(row)
	if err != nil {
		// uq_cart_items_user_product
		return cartdom.CartItem{}, dbcommon.Classify("cart_items.create", err, nil, cartdom.ErrConflict)
	}
	return it, nil
}

func (r *CartRepositoryPG) UpdateQuantity(ctx context.Context, userID, id string, qty int) (cartdom.CartItem, error) {
	if qty < 1 {
		return cartdom.CartItem{}, cartdom.ErrInvalidQuantity
	}
	run := dbcommon.GetRunner(ctx, r.DB)
	row := run.QueryRowContext(ctx,
		`UPDATE cart_items SET quantity = $3 WHERE id = $1 AND user_id = $2 RETURNING `+cartColumns,
		strings.TrimSpace(id), strings.TrimSpace(userID), qty,
	)
	it, err := scanCartItem(row)
	if err != nil {
		return cartdom.CartItem{}, dbcommon.Classify("cart_items.update", err, cartdom.ErrNotFound, nil)
	}
	return it, nil
}

func (r *CartRepositoryPG) Delete(ctx context.Context, userID, id string) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	res, err := run.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`,
		strings.TrimSpace(id), strings.TrimSpace(userID),
	)
	if err != nil {
		return dbcommon.Classify("cart_items.delete", err, nil, nil)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return cartdom.ErrNotFound
	}
	return nil
}

func (r *CartRepositoryPG) DeleteByUser(ctx context.Context, userID string) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	if _, err := run.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, strings.TrimSpace(userID)); err != nil {
		return dbcommon.Classify("cart_items.delete_by_user", err, nil, nil)
	}
	return nil
}

func scanCartItem(s dbcommon.RowScanner) (cartdom.CartItem, error) {
	var it cartdom.CartItem
	if err := s.Scan(&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.CreatedAt); err != nil {
		return cartdom.CartItem{}, err
	}
	it.CreatedAt = it.CreatedAt.UTC()
	return it, nil
}
