// internal/domain/review/entity.go
package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/UDAY2232/LackLink/internal/domain/common"
)

// Review is append-only. One per (user, product) is expected but not enforced.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// LatestLimit is the number of reviews shown on a product page.
const LatestLimit = 10

var (
	ErrNotFound      = fmt.Errorf("review: %w", common.ErrNotFound)
	ErrInvalidRating = common.NewValidationError("rating", "rating must be between 1 and 5")
	ErrInvalidTarget = common.NewValidationError("product_id", "product and user are required")
)

func New(id, productID, userID string, rating int, comment string, now time.Time) (Review, error) {
	productID = strings.TrimSpace(productID)
	userID = strings.TrimSpace(userID)
	if productID == "" || userID == "" {
		return Review{}, ErrInvalidTarget
	}
	if rating < 1 || rating > 5 {
		return Review{}, ErrInvalidRating
	}
	return Review{
		ID:        id,
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: now.UTC(),
	}, nil
}

// Average returns the mean rating rounded to one decimal, 0 for no reviews.
func Average(rs []Review) float64 {
	if len(rs) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rs {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(rs))
	return float64(int(avg*10+0.5)) / 10
}

// ReviewsTableDDL defines the PostgreSQL DDL for reviews.
const ReviewsTableDDL = `
CREATE TABLE IF NOT EXISTS reviews (
  id          TEXT        PRIMARY KEY,
  product_id  TEXT        NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  user_id     TEXT        NOT NULL REFERENCES users(id),
  rating      INTEGER     NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment     TEXT        NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id, created_at DESC);
`
