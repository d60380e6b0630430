// internal/platform/di/shared/datastore.go
package shared

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	outdb "github.com/UDAY2232/LackLink/internal/adapters/out/db"
	outfs "github.com/UDAY2232/LackLink/internal/adapters/out/firestore"
	"github.com/UDAY2232/LackLink/internal/adapters/out/memory"
	cartdom "github.com/UDAY2232/LackLink/internal/domain/cart"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
	reviewdom "github.com/UDAY2232/LackLink/internal/domain/review"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
	wishlistdom "github.com/UDAY2232/LackLink/internal/domain/wishlist"
	"github.com/UDAY2232/LackLink/internal/infra/database"
	firestoreinfra "github.com/UDAY2232/LackLink/internal/infra/firestore"
)

// DataStore is the storage capability every use case is built on.
// Variants: Postgres, Firestore and in-memory, chosen once at startup.
type DataStore interface {
	Users() userdom.Repository
	Products() productdom.Repository
	Categories() productdom.CategoryRepository
	CartItems() cartdom.Repository
	Orders() orderdom.Repository
	OrderItems() orderitemdom.Repository
	Reviews() reviewdom.Repository
	Wishlists() wishlistdom.Repository

	// Mode is "postgres", "firestore" or "memory".
	Mode() string
	Close() error
}

var (
	_ DataStore = (*outdb.Store)(nil)
	_ DataStore = (*outfs.Store)(nil)
	_ DataStore = (*memory.Store)(nil)
)

// OpenDataStore selects the variant from rawURL.
//
//	""                    → in-memory store seeded from seedFile (or the embedded catalog)
//	postgres://...        → Postgres via lib/pq
//	firestore://<project> → Firestore (project may be empty to use defaultProject)
func OpenDataStore(ctx context.Context, rawURL, seedFile, defaultProject, credFile string) (DataStore, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return OpenMemoryStore(seedFile)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("shared.datastore: invalid DATA_STORE_URL: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		conn, err := database.NewConnection(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("shared.datastore: %w", err)
		}
		return outdb.NewStore(conn.Client), nil

	case "firestore":
		project := strings.TrimSpace(u.Host)
		if project == "" {
			project = defaultProject
		}
		if project == "" {
			return nil, fmt.Errorf("shared.datastore: firestore project is empty")
		}
		cw, err := firestoreinfra.NewClient(ctx, project, credFile)
		if err != nil {
			return nil, fmt.Errorf("shared.datastore: %w", err)
		}
		return outfs.NewStore(cw.Client), nil
	}

	return nil, fmt.Errorf("shared.datastore: unsupported scheme %q", u.Scheme)
}

// OpenMemoryStore builds the offline store.
func OpenMemoryStore(seedFile string) (DataStore, error) {
	st := memory.NewStore()
	if err := st.SeedFromFile(seedFile); err != nil {
		return nil, fmt.Errorf("shared.datastore: seed: %w", err)
	}
	log.Printf("[shared.datastore] in-memory store ready (seed=%q)", seedFile)
	return st, nil
}
