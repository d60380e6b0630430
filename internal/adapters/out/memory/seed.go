package memory

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

//go:embed seed/catalog.yaml
var defaultCatalog []byte

// SeedFile is the YAML shape accepted by Seed.
type SeedFile struct {
	Categories []seedCategory `yaml:"categories"`
	Retailers  []seedUser     `yaml:"retailers"`
	Products   []seedProduct  `yaml:"products"`
}

type seedCategory struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

type seedUser struct {
	ID    string `yaml:"id"`
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

type seedProduct struct {
	ID             string            `yaml:"id"`
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	Price          string            `yaml:"price"`
	DiscountPrice  string            `yaml:"discount_price"`
	CategoryID     string            `yaml:"category_id"`
	Brand          string            `yaml:"brand"`
	Images         []string          `yaml:"images"`
	StockQuantity  int               `yaml:"stock_quantity"`
	Specifications map[string]string `yaml:"specifications"`
	RetailerID     string            `yaml:"retailer_id"`
	Rating         float64           `yaml:"rating"`
	ReviewCount    int               `yaml:"review_count"`
	Inactive       bool              `yaml:"inactive"`
}

// SeedFromFile loads path, or the embedded demo catalog when path is empty.
func (s *Store) SeedFromFile(path string) error {
	raw := defaultCatalog
	if p := strings.TrimSpace(path); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("memory.seed: read %s: %w", p, err)
		}
		raw = b
	}
	return s.Seed(raw)
}

// Seed parses a YAML catalog and inserts it.
func (s *Store) Seed(raw []byte) error {
	var f SeedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("memory.seed: parse: %w", err)
	}

	now := time.Now().UTC()

	for _, c := range f.Categories {
		s.PutCategory(productdom.Category{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        strings.ToLower(strings.TrimSpace(c.Slug)),
			Description: c.Description,
			IsActive:    true,
			CreatedAt:   now,
		})
	}

	for _, u := range f.Retailers {
		usr, err := userdom.NewDefault(u.ID, u.Email, u.Name, userdom.RoleRetailer, now)
		if err != nil {
			return fmt.Errorf("memory.seed: retailer %q: %w", u.ID, err)
		}
		s.PutUser(usr)
	}

	for i, sp := range f.Products {
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return fmt.Errorf("memory.seed: product %q price: %w", sp.ID, err)
		}
		p := productdom.Product{
			ID:             sp.ID,
			Name:           sp.Name,
			Description:    sp.Description,
			Price:          price,
			CategoryID:     sp.CategoryID,
			Brand:          sp.Brand,
			Images:         sp.Images,
			StockQuantity:  sp.StockQuantity,
			Specifications: sp.Specifications,
			RetailerID:     sp.RetailerID,
			Rating:         sp.Rating,
			ReviewCount:    sp.ReviewCount,
			IsActive:       !sp.Inactive,
			// keep file order for created_at desc listings
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
			UpdatedAt: now,
		}
		if strings.TrimSpace(sp.DiscountPrice) != "" {
			d, err := decimal.NewFromString(sp.DiscountPrice)
			if err != nil {
				return fmt.Errorf("memory.seed: product %q discount_price: %w", sp.ID, err)
			}
			p.DiscountPrice = &d
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("memory.seed: product %q: %w", sp.ID, err)
		}
		s.PutProduct(p)
	}

	log.Printf("[memory.seed] loaded categories=%d retailers=%d products=%d",
		len(f.Categories), len(f.Retailers), len(f.Products))
	return nil
}
