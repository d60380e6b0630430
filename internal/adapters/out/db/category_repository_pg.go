package db

import (
	"context"
	"database/sql"
	"strings"

	dbcommon "github.com/UDAY2232/LackLink/internal/adapters/out/db/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

// PostgreSQL implementation of product.CategoryRepository
type CategoryRepositoryPG struct {
	DB *sql.DB
}

func NewCategoryRepositoryPG(db *sql.DB) *CategoryRepositoryPG {
	return &CategoryRepositoryPG{DB: db}
}

const categoryColumns = `id, name, slug, description, is_active, created_at`

func (r *CategoryRepositoryPG) List(ctx context.Context) ([]productdom.Category, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	rows, err := run.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE is_active = TRUE ORDER BY name ASC`)
	if err != nil {
		return nil, dbcommon.Classify("categories.list", err, nil, nil)
	}
	defer rows.Close()

	out := make([]productdom.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, dbcommon.Classify("categories.list", err, nil, nil)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbcommon.Classify("categories.list", err, nil, nil)
	}
	return out, nil
}

func (r *CategoryRepositoryPG) GetByID(ctx context.Context, id string) (productdom.Category, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	c, err := scanCategory(run.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, strings.TrimSpace(id)))
	if err != nil {
		return productdom.Category{}, dbcommon.Classify("categories.get", err, productdom.ErrCategoryNotFound, nil)
	}
	return c, nil
}

func (r *CategoryRepositoryPG) GetBySlug(ctx context.Context, slug string) (productdom.Category, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	slug = strings.ToLower(strings.TrimSpace(slug))
	c, err := scanCategory(run.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug))
	if err != nil {
		return productdom.Category{}, dbcommon.Classify("categories.get_by_slug", err, productdom.ErrCategoryNotFound, nil)
	}
	return c, nil
}

func scanCategory(s dbcommon.RowScanner) (productdom.Category, error) {
	var c productdom.Category
	if err := s.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.IsActive, &c.CreatedAt); err != nil {
		return productdom.Category{}, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}
