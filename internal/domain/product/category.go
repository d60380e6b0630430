package product

import (
	"fmt"
	"time"

	"github.com/UDAY2232/LackLink/internal/domain/common"
)

// Category groups products; addressed by slug in the storefront.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

var ErrCategoryNotFound = fmt.Errorf("category: %w", common.ErrNotFound)

// CategoriesTableDDL defines the PostgreSQL DDL for categories.
const CategoriesTableDDL = `
CREATE TABLE IF NOT EXISTS categories (
  id           TEXT        PRIMARY KEY,
  name         TEXT        NOT NULL,
  slug         TEXT        NOT NULL UNIQUE,
  description  TEXT        NOT NULL DEFAULT '',
  is_active    BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
