package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	reviewdom "github.com/UDAY2232/LackLink/internal/domain/review"
)

// ReviewUsecase appends reviews and keeps the product's rating aggregate current.
type ReviewUsecase struct {
	reviews  reviewdom.Repository
	products productdom.Repository
	clock    Clock
	newID    func() string
	timeout  time.Duration
}

func NewReviewUsecase(reviews reviewdom.Repository, products productdom.Repository, timeout time.Duration) *ReviewUsecase {
	return &ReviewUsecase{
		reviews:  reviews,
		products: products,
		clock:    systemClock{},
		newID:    newUUID,
		timeout:  timeout,
	}
}

type ReviewInput struct {
	ProductID string
	Rating    int
	Comment   string
}

// Create stores a review by the signed-in Identity and recomputes rating and review_count.
func (uc *ReviewUsecase) Create(ctx context.Context, us *UserSession, in ReviewInput) (reviewdom.Review, error) {
	if us == nil || us.Identity() == nil {
		return reviewdom.Review{}, ErrSignInRequired
	}
	uid := us.Identity().ID

	r, err := reviewdom.New(uc.newID(), in.ProductID, uid, in.Rating, in.Comment, uc.clock.Now())
	if err != nil {
		return reviewdom.Review{}, err
	}

	cctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	if _, err := uc.products.GetByID(cctx, r.ProductID); err != nil {
		return reviewdom.Review{}, err
	}
	created, err := uc.reviews.Create(cctx, r)
	if err != nil {
		log.Printf("[review_uc] create failed product=%s uid=%s err=%v", r.ProductID, uid, err)
		return reviewdom.Review{}, err
	}

	// recomputed from every row of the product
	all, err := uc.reviews.ListByProduct(cctx, r.ProductID, 0)
	if err != nil {
		log.Printf("[review_uc] WARN rating recompute skipped product=%s err=%v", r.ProductID, err)
		return created, nil
	}
	avg := reviewdom.Average(all)
	n := len(all)
	if _, err := uc.products.Update(cctx, strings.TrimSpace(r.ProductID), productdom.Patch{
		Rating:      &avg,
		ReviewCount: &n,
		UpdatedAt:   uc.clock.Now(),
	}); err != nil {
		log.Printf("[review_uc] WARN rating update failed product=%s err=%v", r.ProductID, err)
	}
	return created, nil
}
