package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	dbcommon "github.com/UDAY2232/LackLink/internal/adapters/out/db/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

// PostgreSQL implementation of product.Repository
type ProductRepositoryPG struct {
	DB *sql.DB
}

func NewProductRepositoryPG(db *sql.DB) *ProductRepositoryPG {
	return &ProductRepositoryPG{DB: db}
}

const productColumns = `
  id, name, description, price, discount_price, category_id, brand, images,
  stock_quantity, specifications, retailer_id, rating, review_count, is_active,
  created_at, updated_at`

var productSortColumns = map[string]string{
	string(productdom.SortByCreatedAt): "created_at",
	string(productdom.SortByPrice):     "price",
	string(productdom.SortByRating):    "rating",
	string(productdom.SortByName):      "LOWER(name)",
}

// productOrderBy treats an unset direction as descending.
func productOrderBy(s productdom.Sort) string {
	return dbcommon.BuildOrderBy(string(s.Field), productSortColumns, s.Direction.SQL(), "created_at DESC, id ASC")
}

// ========================
// RepositoryPort impl
// ========================

func (r *ProductRepositoryPG) List(ctx context.Context, f productdom.Filter, s productdom.Sort) ([]productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	where, args := buildProductWhere(f)
	q := fmt.Sprintf(`SELECT %s FROM products %s %s`, productColumns, dbcommon.WhereSQL(where), productOrderBy(s))
	rows, err := run.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, dbcommon.Classify("products.list", err, nil, nil)
	}
	defer rows.Close()

	out := make([]productdom.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, dbcommon.Classify("products.list", err, nil, nil)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dbcommon.Classify("products.list", err, nil, nil)
	}
	return out, nil
}

func (r *ProductRepositoryPG) Count(ctx context.Context, f productdom.Filter) (int, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	where, args := buildProductWhere(f)
	var n int
	if err := run.QueryRowContext(ctx, `SELECT COUNT(*) FROM products `+dbcommon.WhereSQL(where), args...).Scan(&n); err != nil {
		return 0, dbcommon.Classify("products.count", err, nil, nil)
	}
	return n, nil
}

func (r *ProductRepositoryPG) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	row := run.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, strings.TrimSpace(id))
	p, err := scanProduct(row)
	if err != nil {
		return productdom.Product{}, dbcommon.Classify("products.get", err, productdom.ErrNotFound, nil)
	}
	return p, nil
}

func (r *ProductRepositoryPG) Create(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	specs, err := json.Marshal(nonNilSpecs(p.Specifications))
	if err != nil {
		return productdom.Product{}, err
	}
	q := `INSERT INTO products (` + productColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING ` + productColumns
	row := run.QueryRowContext(ctx, q,
		p.ID, p.Name, p.Description, p.Price, toNullDecimal(p.DiscountPrice),
		nullIfEmpty(p.CategoryID), p.Brand, pq.Array(nonNilImages(p.Images)),
		p.StockQuantity, specs, p.RetailerID, p.Rating, p.ReviewCount, p.IsActive,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	out, err := scanProduct(row)
	if err != nil {
		return productdom.Product{}, dbcommon.Classify("products.create", err, nil, productdom.ErrConflict)
	}
	return out, nil
}

// Update reads the row FOR UPDATE, applies the domain patch and writes every column back.
func (r *ProductRepositoryPG) Update(ctx context.Context, id string, patch productdom.Patch) (productdom.Product, error) {
	var out productdom.Product
	err := dbcommon.WithTx(ctx, r.DB, func(ctx context.Context) error {
		run := dbcommon.GetRunner(ctx, r.DB)
		row := run.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, strings.TrimSpace(id))
		cur, err := scanProduct(row)
		if err != nil {
			return dbcommon.Classify("products.update", err, productdom.ErrNotFound, nil)
		}
		if err := patch.ApplyTo(&cur); err != nil {
			return err
		}
		specs, err := json.Marshal(nonNilSpecs(cur.Specifications))
		if err != nil {
			return err
		}
		const q = `
UPDATE products SET
  name = $2, description = $3, price = $4, discount_price = $5, category_id = $6,
  brand = $7, images = $8, stock_quantity = $9, specifications = $10,
  rating = $11, review_count = $12, is_active = $13, updated_at = $14
WHERE id = $1
RETURNING ` + productColumns
		row = run.QueryRowContext(ctx, q,
			cur.ID, cur.Name, cur.Description, cur.Price, toNullDecimal(cur.DiscountPrice),
			nullIfEmpty(cur.CategoryID), cur.Brand, pq.Array(nonNilImages(cur.Images)),
			cur.StockQuantity, specs, cur.Rating, cur.ReviewCount, cur.IsActive, cur.UpdatedAt.UTC(),
		)
		out, err = scanProduct(row)
		if err != nil {
			return dbcommon.Classify("products.update", err, productdom.ErrNotFound, nil)
		}
		return nil
	})
	if err != nil {
		return productdom.Product{}, err
	}
	return out, nil
}

// DecrementStock is a single conditional UPDATE; concurrent checkouts cannot oversell.
func (r *ProductRepositoryPG) DecrementStock(ctx context.Context, id string, qty int) (productdom.Product, error) {
	if qty < 1 {
		return productdom.Product{}, productdom.ErrInvalidQuantity
	}
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
UPDATE products
SET stock_quantity = stock_quantity - $2, updated_at = NOW()
WHERE id = $1 AND stock_quantity >= $2
RETURNING ` + productColumns
	p, err := scanProduct(run.QueryRowContext(ctx, q, strings.TrimSpace(id), qty))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return productdom.Product{}, dbcommon.Classify("products.decrement_stock", err, nil, nil)
	}

	// 0 rows: either unknown id or not enough stock
	var exists bool
	if err := run.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, strings.TrimSpace(id)).Scan(&exists); err != nil {
		return productdom.Product{}, dbcommon.Classify("products.decrement_stock", err, nil, nil)
	}
	if !exists {
		return productdom.Product{}, productdom.ErrNotFound
	}
	return productdom.Product{}, productdom.ErrInsufficientStock
}

func (r *ProductRepositoryPG) IncrementStock(ctx context.Context, id string, qty int) error {
	if qty < 1 {
		return productdom.ErrInvalidQuantity
	}
	run := dbcommon.GetRunner(ctx, r.DB)
	res, err := run.ExecContext(ctx,
		`UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = NOW() WHERE id = $1`,
		strings.TrimSpace(id), qty,
	)
	if err != nil {
		return dbcommon.Classify("products.increment_stock", err, nil, nil)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return productdom.ErrNotFound
	}
	return nil
}

// ========================
// helpers
// ========================

func buildProductWhere(f productdom.Filter) ([]string, []any) {
	where := []string{}
	args := []any{}

	if !f.IncludeInactive {
		where = append(where, "is_active = TRUE")
	}
	if v := strings.TrimSpace(f.CategoryID); v != "" {
		dbcommon.AppendCond(&where, &args, "category_id = $%d", v)
	}
	if v := strings.TrimSpace(f.RetailerID); v != "" {
		dbcommon.AppendCond(&where, &args, "retailer_id = $%d", v)
	}
	if f.MinPrice != nil {
		dbcommon.AppendCond(&where, &args, "price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		dbcommon.AppendCond(&where, &args, "price <= $%d", *f.MaxPrice)
	}
	if v := strings.TrimSpace(f.Brand); v != "" {
		dbcommon.AppendCond(&where, &args, "brand ILIKE $%d", dbcommon.LikePattern(v))
	}
	if v := strings.TrimSpace(f.Query); v != "" {
		dbcommon.AppendCond(&where, &args,
			"(name ILIKE $%[1]d OR description ILIKE $%[1]d OR brand ILIKE $%[1]d)",
			dbcommon.LikePattern(v),
		)
	}
	if len(f.IDs) > 0 {
		dbcommon.AppendCond(&where, &args, "id = ANY($%d)", pq.Array(f.IDs))
	}
	return where, args
}

func scanProduct(s dbcommon.RowScanner) (productdom.Product, error) {
	var (
		p        productdom.Product
		discount decimal.NullDecimal
		category sql.NullString
		images   []string
		specsRaw []byte
	)
	if err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &discount, &category, &p.Brand, pq.Array(&images),
		&p.StockQuantity, &specsRaw, &p.RetailerID, &p.Rating, &p.ReviewCount, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return productdom.Product{}, err
	}
	if discount.Valid {
		d := discount.Decimal
		p.DiscountPrice = &d
	}
	p.CategoryID = category.String
	p.Images = nonNilImages(images)
	p.Specifications = map[string]string{}
	if len(specsRaw) > 0 {
		if err := json.Unmarshal(specsRaw, &p.Specifications); err != nil {
			return productdom.Product{}, fmt.Errorf("products: decode specifications: %w", err)
		}
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.TrimSpace(s)
}

func nonNilImages(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nonNilSpecs(v map[string]string) map[string]string {
	if v == nil {
		return map[string]string{}
	}
	return v
}
