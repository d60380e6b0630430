package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

var ErrImageUploadDisabled = fmt.Errorf("product image upload is disabled: %w", common.ErrRemoteFailure)

// ProductInput carries the seller form. Nil fields are left unchanged on update.
type ProductInput struct {
	Name           *string
	Description    *string
	Price          *decimal.Decimal
	DiscountPrice  *decimal.Decimal
	ClearDiscount  bool
	CategoryID     *string
	Brand          *string
	Images         *[]string
	StockQuantity  *int
	Specifications *map[string]string
	IsActive       *bool
}

func (in ProductInput) patch(now time.Time) productdom.Patch {
	return productdom.Patch{
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		DiscountPrice:  in.DiscountPrice,
		ClearDiscount:  in.ClearDiscount,
		CategoryID:     in.CategoryID,
		Brand:          in.Brand,
		Images:         in.Images,
		StockQuantity:  in.StockQuantity,
		Specifications: in.Specifications,
		IsActive:       in.IsActive,
		UpdatedAt:      now,
	}
}

// ProductUsecase is the seller's product management.
// Products of other retailers are reported as not found.
type ProductUsecase struct {
	repo     productdom.Repository
	uploader productdom.ImageUploader
	clock    Clock
	newID    func() string
	timeout  time.Duration
}

func NewProductUsecase(repo productdom.Repository, uploader productdom.ImageUploader, timeout time.Duration) *ProductUsecase {
	return &ProductUsecase{
		repo:     repo,
		uploader: uploader,
		clock:    systemClock{},
		newID:    newUUID,
		timeout:  timeout,
	}
}

// ListOwn returns every product of seller, inactive ones included, newest first.
func (u *ProductUsecase) ListOwn(ctx context.Context, seller *userdom.User) ([]productdom.Product, error) {
	if err := requireRetailer(seller); err != nil {
		return nil, err
	}
	cctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()
	return u.repo.List(cctx, productdom.Filter{RetailerID: seller.ID, IncludeInactive: true}, productdom.DefaultSort)
}

func (u *ProductUsecase) Create(ctx context.Context, seller *userdom.User, in ProductInput) (productdom.Product, error) {
	if err := requireRetailer(seller); err != nil {
		return productdom.Product{}, err
	}
	now := u.clock.Now().UTC()

	p := productdom.Product{
		ID:         u.newID(),
		RetailerID: seller.ID,
		IsActive:   true,
		Images:     []string{},
		CreatedAt:  now,
	}
	if in.Price == nil {
		return productdom.Product{}, productdom.ErrInvalidPrice
	}
	if err := in.patch(now).ApplyTo(&p); err != nil {
		return productdom.Product{}, err
	}

	cctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	created, err := u.repo.Create(cctx, p)
	if err != nil {
		log.Printf("[product_uc] create failed retailer=%s err=%v", seller.ID, err)
		return productdom.Product{}, err
	}
	log.Printf("[product_uc] created id=%s retailer=%s", created.ID, seller.ID)
	return created, nil
}

func (u *ProductUsecase) Update(ctx context.Context, seller *userdom.User, id string, in ProductInput) (productdom.Product, error) {
	if err := requireRetailer(seller); err != nil {
		return productdom.Product{}, err
	}
	id = strings.TrimSpace(id)

	cctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := u.owned(cctx, seller.ID, id); err != nil {
		return productdom.Product{}, err
	}
	p, err := u.repo.Update(cctx, id, in.patch(u.clock.Now()))
	if err != nil {
		log.Printf("[product_uc] update failed id=%s err=%v", id, err)
		return productdom.Product{}, err
	}
	return p, nil
}

// Deactivate hides the product from the storefront. Rows are never deleted
// because order items keep referencing them.
func (u *ProductUsecase) Deactivate(ctx context.Context, seller *userdom.User, id string) (productdom.Product, error) {
	return u.Update(ctx, seller, id, ProductInput{IsActive: ptr(false)})
}

// ImageUploadURL issues a signed direct-upload URL for a product image.
func (u *ProductUsecase) ImageUploadURL(ctx context.Context, seller *userdom.User, fileName, contentType string) (productdom.ImageUploadTarget, error) {
	if err := requireRetailer(seller); err != nil {
		return productdom.ImageUploadTarget{}, err
	}
	if u.uploader == nil {
		return productdom.ImageUploadTarget{}, ErrImageUploadDisabled
	}
	cctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()
	return u.uploader.IssueUpload(cctx, seller.ID, fileName, contentType)
}

func (u *ProductUsecase) owned(ctx context.Context, retailerID, id string) error {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.RetailerID != retailerID {
		return productdom.ErrNotFound
	}
	return nil
}
