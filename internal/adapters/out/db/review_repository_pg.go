package db

import (
	"context"
	"database/sql"
	"strings"

	dbcommon "github.com/UDAY2232/LackLink/internal/adapters/out/db/common"
	reviewdom "github.com/UDAY2232/LackLink/internal/domain/review"
)

// PostgreSQL implementation of review.Repository
type ReviewRepositoryPG struct {
	DB *sql.DB
}

func NewReviewRepositoryPG(db *sql.DB) *ReviewRepositoryPG {
	return &ReviewRepositoryPG{DB: db}
}

const reviewColumns = `id, product_id, user_id, rating, comment, created_at`

func (r *ReviewRepositoryPG) ListByProduct(ctx context.Context, productID string, limit int) ([]reviewdom.Review, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := `SELECT ` + reviewColumns + ` FROM reviews WHERE product_id = $1 ORDER BY created_at DESC, id DESC`
	args := []any{strings.TrimSpace(productID)}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := run.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, dbcommon.Classify("reviews.list", err, nil, nil)
	}
	defer rows.Close()

	out := make([]reviewdom.Review, 0)
	for rows.Next() {
		var rv reviewdom.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, dbcommon.Classify("reviews.list", err, nil, nil)
		}
		rv.CreatedAt = rv.CreatedAt.UTC()
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, dbcommon.Classify("reviews.list", err, nil, nil)
	}
	return out, nil
}

func (r *ReviewRepositoryPG) Create(ctx context.Context, rv reviewdom.Review) (reviewdom.Review, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	_, err := run.ExecContext(ctx,
		`INSERT INTO reviews (`+reviewColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt.UTC(),
	)
	if err != nil {
		return reviewdom.Review{}, dbcommon.Classify("reviews.create", err, nil, nil)
	}
	return rv, nil
}
