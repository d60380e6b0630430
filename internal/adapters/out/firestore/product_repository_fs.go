// internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

// ProductRepositoryFS implements product.Repository.
//
// Firestore has no case-insensitive pattern predicate, so listing narrows by
// equality fields server-side and applies the rest of the filter in memory.
type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(colProducts)
}

type productDoc struct {
	Name           string            `firestore:"name"`
	Description    string            `firestore:"description"`
	Price          string            `firestore:"price"`
	DiscountPrice  string            `firestore:"discount_price"`
	CategoryID     string            `firestore:"category_id"`
	Brand          string            `firestore:"brand"`
	Images         []string          `firestore:"images"`
	StockQuantity  int               `firestore:"stock_quantity"`
	Specifications map[string]string `firestore:"specifications"`
	RetailerID     string            `firestore:"retailer_id"`
	Rating         float64           `firestore:"rating"`
	ReviewCount    int               `firestore:"review_count"`
	IsActive       bool              `firestore:"is_active"`
	CreatedAt      time.Time         `firestore:"created_at"`
	UpdatedAt      time.Time         `firestore:"updated_at"`
}

func productDocFromDomain(p productdom.Product) productDoc {
	return productDoc{
		Name:           p.Name,
		Description:    p.Description,
		Price:          decimalToString(p.Price),
		DiscountPrice:  decimalPtrToString(p.DiscountPrice),
		CategoryID:     p.CategoryID,
		Brand:          p.Brand,
		Images:         p.Images,
		StockQuantity:  p.StockQuantity,
		Specifications: p.Specifications,
		RetailerID:     p.RetailerID,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt.UTC(),
	}
}

func decodeProduct(snap *firestore.DocumentSnapshot) (productdom.Product, error) {
	var d productDoc
	if err := snap.DataTo(&d); err != nil {
		return productdom.Product{}, err
	}
	p := productdom.Product{
		ID:             snap.Ref.ID,
		Name:           d.Name,
		Description:    d.Description,
		Price:          parseDecimal(d.Price),
		DiscountPrice:  parseDecimalPtr(d.DiscountPrice),
		CategoryID:     d.CategoryID,
		Brand:          d.Brand,
		Images:         d.Images,
		StockQuantity:  d.StockQuantity,
		Specifications: d.Specifications,
		RetailerID:     d.RetailerID,
		Rating:         d.Rating,
		ReviewCount:    d.ReviewCount,
		IsActive:       d.IsActive,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Specifications == nil {
		p.Specifications = map[string]string{}
	}
	return p, nil
}

func (r *ProductRepositoryFS) List(ctx context.Context, f productdom.Filter, s productdom.Sort) ([]productdom.Product, error) {
	var (
		candidates []productdom.Product
		err        error
	)
	if len(f.IDs) > 0 {
		candidates, err = r.getMany(ctx, f.IDs)
	} else {
		q := r.col().Query
		if !f.IncludeInactive {
			q = q.Where("is_active", "==", true)
		}
		if v := strings.TrimSpace(f.CategoryID); v != "" {
			q = q.Where("category_id", "==", v)
		}
		if v := strings.TrimSpace(f.RetailerID); v != "" {
			q = q.Where("retailer_id", "==", v)
		}
		candidates, err = decodeAll(q.Documents(ctx), decodeProduct)
	}
	if err != nil {
		return nil, classify("products.list", err, nil, nil)
	}

	out := make([]productdom.Product, 0, len(candidates))
	for _, p := range candidates {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	productdom.SortProducts(out, s)
	return out, nil
}

func (r *ProductRepositoryFS) Count(ctx context.Context, f productdom.Filter) (int, error) {
	ps, err := r.List(ctx, f, productdom.DefaultSort)
	if err != nil {
		return 0, err
	}
	return len(ps), nil
}

func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	snap, err := r.col().Doc(strings.TrimSpace(id)).Get(ctx)
	if err != nil {
		return productdom.Product{}, classify("products.get", err, productdom.ErrNotFound, nil)
	}
	return decodeProduct(snap)
}

func (r *ProductRepositoryFS) Create(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	if _, err := r.col().Doc(p.ID).Create(ctx, productDocFromDomain(p)); err != nil {
		return productdom.Product{}, classify("products.create", err, nil, productdom.ErrConflict)
	}
	return p, nil
}

func (r *ProductRepositoryFS) Update(ctx context.Context, id string, patch productdom.Patch) (productdom.Product, error) {
	var out productdom.Product
	err := r.withProduct(ctx, id, func(tx *firestore.Transaction, ref *firestore.DocumentRef, p productdom.Product) error {
		if err := patch.ApplyTo(&p); err != nil {
			return err
		}
		out = p
		return tx.Set(ref, productDocFromDomain(p))
	})
	if err != nil {
		return productdom.Product{}, err
	}
	return out, nil
}

// DecrementStock reads and writes the stock inside one transaction.
// Firestore retries the function on contention, so the check always sees committed stock.
func (r *ProductRepositoryFS) DecrementStock(ctx context.Context, id string, qty int) (productdom.Product, error) {
	if qty < 1 {
		return productdom.Product{}, productdom.ErrInvalidQuantity
	}
	var out productdom.Product
	err := r.withProduct(ctx, id, func(tx *firestore.Transaction, ref *firestore.DocumentRef, p productdom.Product) error {
		if p.StockQuantity < qty {
			return productdom.ErrInsufficientStock
		}
		p.StockQuantity -= qty
		p.UpdatedAt = time.Now().UTC()
		out = p
		return tx.Update(ref, []firestore.Update{
			{Path: "stock_quantity", Value: p.StockQuantity},
			{Path: "updated_at", Value: p.UpdatedAt},
		})
	})
	if err != nil {
		return productdom.Product{}, err
	}
	return out, nil
}

func (r *ProductRepositoryFS) IncrementStock(ctx context.Context, id string, qty int) error {
	if qty < 1 {
		return productdom.ErrInvalidQuantity
	}
	_, err := r.col().Doc(strings.TrimSpace(id)).Update(ctx, []firestore.Update{
		{Path: "stock_quantity", Value: firestore.Increment(qty)},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	return classify("products.increment_stock", err, productdom.ErrNotFound, nil)
}

func (r *ProductRepositoryFS) withProduct(
	ctx context.Context,
	id string,
	fn func(tx *firestore.Transaction, ref *firestore.DocumentRef, p productdom.Product) error,
) error {
	ref := r.col().Doc(strings.TrimSpace(id))
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		p, err := decodeProduct(snap)
		if err != nil {
			return err
		}
		return fn(tx, ref, p)
	})
	return classify("products.tx", err, productdom.ErrNotFound, nil)
}

func (r *ProductRepositoryFS) getMany(ctx context.Context, ids []string) ([]productdom.Product, error) {
	ids = dedupe(ids)
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.col().Doc(id))
	}
	snaps, err := r.Client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}
	out := make([]productdom.Product, 0, len(snaps))
	for _, snap := range snaps {
		if snap == nil || !snap.Exists() {
			continue
		}
		p, err := decodeProduct(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// CategoryRepositoryFS implements product.CategoryRepository.
type CategoryRepositoryFS struct {
	Client *firestore.Client
}

func NewCategoryRepositoryFS(client *firestore.Client) *CategoryRepositoryFS {
	return &CategoryRepositoryFS{Client: client}
}

type categoryDoc struct {
	Name        string    `firestore:"name"`
	Slug        string    `firestore:"slug"`
	Description string    `firestore:"description"`
	IsActive    bool      `firestore:"is_active"`
	CreatedAt   time.Time `firestore:"created_at"`
}

func decodeCategory(snap *firestore.DocumentSnapshot) (productdom.Category, error) {
	var d categoryDoc
	if err := snap.DataTo(&d); err != nil {
		return productdom.Category{}, err
	}
	return productdom.Category{
		ID:          snap.Ref.ID,
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt.UTC(),
	}, nil
}

func (r *CategoryRepositoryFS) List(ctx context.Context) ([]productdom.Category, error) {
	q := r.Client.Collection(colCategories).Where("is_active", "==", true).OrderBy("name", firestore.Asc)
	out, err := decodeAll(q.Documents(ctx), decodeCategory)
	if err != nil {
		return nil, classify("categories.list", err, nil, nil)
	}
	return out, nil
}

func (r *CategoryRepositoryFS) GetByID(ctx context.Context, id string) (productdom.Category, error) {
	snap, err := r.Client.Collection(colCategories).Doc(strings.TrimSpace(id)).Get(ctx)
	if err != nil {
		return productdom.Category{}, classify("categories.get", err, productdom.ErrCategoryNotFound, nil)
	}
	return decodeCategory(snap)
}

func (r *CategoryRepositoryFS) GetBySlug(ctx context.Context, slug string) (productdom.Category, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	q := r.Client.Collection(colCategories).Where("slug", "==", slug).Limit(1)
	cs, err := decodeAll(q.Documents(ctx), decodeCategory)
	if err != nil {
		return productdom.Category{}, classify("categories.get_by_slug", err, nil, nil)
	}
	if len(cs) == 0 {
		return productdom.Category{}, productdom.ErrCategoryNotFound
	}
	return cs[0], nil
}
