package memory

import (
	"context"
	"sort"
	"strings"

	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

type productRepo struct{ s *Store }

func (r *productRepo) List(_ context.Context, f productdom.Filter, srt productdom.Sort) ([]productdom.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]productdom.Product, 0)
	for _, p := range r.s.products {
		if f.Matches(p) {
			out = append(out, p.Clone())
		}
	}
	productdom.SortProducts(out, srt)
	return out, nil
}

func (r *productRepo) Count(_ context.Context, f productdom.Filter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.products {
		if f.Matches(p) {
			n++
		}
	}
	return n, nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (productdom.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[strings.TrimSpace(id)]
	if !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *productRepo) Create(_ context.Context, p productdom.Product) (productdom.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return productdom.Product{}, productdom.ErrConflict
	}
	r.s.products[p.ID] = p.Clone()
	return p.Clone(), nil
}

func (r *productRepo) Update(_ context.Context, id string, patch productdom.Patch) (productdom.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[strings.TrimSpace(id)]
	if !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	p = p.Clone()
	if err := patch.ApplyTo(&p); err != nil {
		return productdom.Product{}, err
	}
	r.s.products[p.ID] = p
	return p.Clone(), nil
}

func (r *productRepo) DecrementStock(_ context.Context, id string, qty int) (productdom.Product, error) {
	if qty < 1 {
		return productdom.Product{}, productdom.ErrInvalidQuantity
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[strings.TrimSpace(id)]
	if !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	if p.StockQuantity < qty {
		return productdom.Product{}, productdom.ErrInsufficientStock
	}
	p.StockQuantity -= qty
	r.s.products[p.ID] = p
	return p.Clone(), nil
}

func (r *productRepo) IncrementStock(_ context.Context, id string, qty int) error {
	if qty < 1 {
		return productdom.ErrInvalidQuantity
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[strings.TrimSpace(id)]
	if !ok {
		return productdom.ErrNotFound
	}
	p.StockQuantity += qty
	r.s.products[p.ID] = p
	return nil
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) List(_ context.Context) ([]productdom.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]productdom.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (productdom.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[strings.TrimSpace(id)]
	if !ok {
		return productdom.Category{}, productdom.ErrCategoryNotFound
	}
	return c, nil
}

func (r *categoryRepo) GetBySlug(_ context.Context, slug string) (productdom.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, c := range r.s.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return productdom.Category{}, productdom.ErrCategoryNotFound
}
