// internal/application/query/mall/catalog_query.go
package mall

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	dto "github.com/UDAY2232/LackLink/internal/application/query/mall/dto"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	reviewdom "github.com/UDAY2232/LackLink/internal/domain/review"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

// ============================================================
// Query
// ============================================================

const (
	HomeFeaturedLimit = 8
	HomeCategoryLimit = 6
)

// CatalogQuery is the storefront read side. Nothing is cached; every call re-queries.
// A failed load is returned as an error, never as an empty result.
type CatalogQuery struct {
	ProductRepo  productdom.Repository
	CategoryRepo productdom.CategoryRepository
	UserRepo     userdom.Repository
	ReviewRepo   reviewdom.Repository

	Timeout time.Duration
}

func NewCatalogQuery(
	products productdom.Repository,
	categories productdom.CategoryRepository,
	users userdom.Repository,
	reviews reviewdom.Repository,
	timeout time.Duration,
) *CatalogQuery {
	return &CatalogQuery{
		ProductRepo:  products,
		CategoryRepo: categories,
		UserRepo:     users,
		ReviewRepo:   reviews,
		Timeout:      timeout,
	}
}

// List returns active products matching f in sort order s.
func (q *CatalogQuery) List(ctx context.Context, f productdom.Filter, s productdom.Sort) ([]dto.ProductDTO, error) {
	// storefront never lists inactive products
	f.IncludeInactive = false

	cctx, cancel := withTimeout(ctx, q.Timeout)
	defer cancel()

	ps, err := q.ProductRepo.List(cctx, f, s)
	if err != nil {
		log.Printf("[catalog_query] list failed err=%v", err)
		return nil, common.Remote("catalog.list", err)
	}
	return dto.NewProductDTOs(ps), nil
}

// Search matches name, description or brand (case-insensitive), best rated first.
func (q *CatalogQuery) Search(ctx context.Context, query string) ([]dto.ProductDTO, error) {
	return q.List(ctx, productdom.Filter{Query: strings.TrimSpace(query)}, productdom.ByRating)
}

// GetByID returns the product with its retailer and category names.
// Deactivated products still resolve; IsActive tells the page.
// Name lookups are best-effort.
func (q *CatalogQuery) GetByID(ctx context.Context, id string) (dto.ProductDetailDTO, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dto.ProductDetailDTO{}, ErrNotFound
	}

	cctx, cancel := withTimeout(ctx, q.Timeout)
	defer cancel()

	p, err := q.ProductRepo.GetByID(cctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return dto.ProductDetailDTO{}, ErrNotFound
	}
	if err != nil {
		return dto.ProductDetailDTO{}, common.Remote("catalog.getByID", err)
	}

	out := dto.ProductDetailDTO{ProductDTO: dto.NewProductDTO(p)}
	if u, err := q.UserRepo.GetByID(cctx, p.RetailerID); err == nil {
		out.RetailerName = u.Name
	} else {
		log.Printf("[catalog_query] retailer name lookup failed product=%s retailer=%s err=%v", p.ID, p.RetailerID, err)
	}
	if p.CategoryID != "" {
		if c, err := q.CategoryRepo.GetByID(cctx, p.CategoryID); err == nil {
			out.CategoryName = c.Name
		} else {
			log.Printf("[catalog_query] category name lookup failed product=%s category=%s err=%v", p.ID, p.CategoryID, err)
		}
	}
	return out, nil
}

// GetByCategorySlug resolves slug and lists its active products, best rated first.
func (q *CatalogQuery) GetByCategorySlug(ctx context.Context, slug string) (dto.CategoryProductsDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return dto.CategoryProductsDTO{}, ErrNotFound
	}

	cctx, cancel := withTimeout(ctx, q.Timeout)
	defer cancel()

	c, err := q.CategoryRepo.GetBySlug(cctx, slug)
	if errors.Is(err, common.ErrNotFound) {
		return dto.CategoryProductsDTO{}, ErrNotFound
	}
	if err != nil {
		return dto.CategoryProductsDTO{}, common.Remote("catalog.category", err)
	}

	ps, err := q.List(cctx, productdom.Filter{CategoryID: c.ID}, productdom.ByRating)
	if err != nil {
		return dto.CategoryProductsDTO{}, err
	}
	return dto.CategoryProductsDTO{Category: c, Products: ps}, nil
}

// Home returns the best rated active products with retailer names, and the first categories.
// limit <= 0 uses HomeFeaturedLimit.
func (q *CatalogQuery) Home(ctx context.Context, limit int) (dto.HomeDTO, error) {
	if limit <= 0 {
		limit = HomeFeaturedLimit
	}

	ps, err := q.List(ctx, productdom.Filter{}, productdom.ByRating)
	if err != nil {
		return dto.HomeDTO{}, err
	}
	if len(ps) > limit {
		ps = ps[:limit]
	}
	cs, err := q.ListCategories(ctx)
	if err != nil {
		return dto.HomeDTO{}, err
	}
	if len(cs) > HomeCategoryLimit {
		cs = cs[:HomeCategoryLimit]
	}

	cctx, cancel := withTimeout(ctx, q.Timeout)
	defer cancel()

	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.RetailerID)
	}
	names := map[string]string{}
	if ids = uniqueNonEmpty(ids); len(ids) > 0 {
		us, err := q.UserRepo.ListByIDs(cctx, ids)
		if err != nil {
			log.Printf("[catalog_query] retailer names lookup failed err=%v", err)
		}
		for _, u := range us {
			names[u.ID] = u.Name
		}
	}

	out := dto.HomeDTO{
		Featured:   make([]dto.FeaturedProductDTO, 0, len(ps)),
		Categories: cs,
	}
	for _, p := range ps {
		out.Featured = append(out.Featured, dto.FeaturedProductDTO{ProductDTO: p, RetailerName: names[p.RetailerID]})
	}
	return out, nil
}

func (q *CatalogQuery) ListCategories(ctx context.Context) ([]productdom.Category, error) {
	cctx, cancel := withTimeout(ctx, q.Timeout)
	defer cancel()

	cs, err := q.CategoryRepo.List(cctx)
	if err != nil {
		return nil, common.Remote("catalog.categories", err)
	}
	return cs, nil
}

// Reviews returns the latest reviews of productID with reviewer names.
func (q *CatalogQuery) Reviews(ctx context.Context, productID string) ([]dto.ReviewDTO, error) {
	cctx, cancel := withTimeout(ctx, q.Timeout)
	defer cancel()

	rs, err := q.ReviewRepo.ListByProduct(cctx, strings.TrimSpace(productID), reviewdom.LatestLimit)
	if err != nil {
		return nil, common.Remote("catalog.reviews", err)
	}

	ids := make([]string, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.UserID)
	}
	names := map[string]string{}
	if ids = uniqueNonEmpty(ids); len(ids) > 0 {
		us, err := q.UserRepo.ListByIDs(cctx, ids)
		if err != nil {
			log.Printf("[catalog_query] reviewer names lookup failed product=%s err=%v", productID, err)
		}
		for _, u := range us {
			names[u.ID] = u.Name
		}
	}

	out := make([]dto.ReviewDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, dto.ReviewDTO{
			ID:           r.ID,
			ProductID:    r.ProductID,
			UserID:       r.UserID,
			ReviewerName: names[r.UserID],
			Rating:       r.Rating,
			Comment:      r.Comment,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out, nil
}
