// internal/adapters/in/http/mall/router.go
package mall

import (
	"log"
	"net/http"

	"github.com/UDAY2232/LackLink/internal/adapters/in/http/middleware"
)

// Deps is the buyer and seller facing (mall) handler set.
type Deps struct {
	Auth     http.Handler
	Catalog  http.Handler
	Cart     http.Handler
	Wishlist http.Handler
	Order    http.Handler
	User     http.Handler
	Seller   http.Handler

	// UserAuth guards /mall/me and /mall/seller; catalog and auth routes use it optionally.
	UserAuth *middleware.UserAuthMiddleware
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (so the service still boots).
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[mall.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers mall routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	required := func(h http.Handler) http.Handler { return h }
	optional := required
	if deps.UserAuth != nil {
		required = deps.UserAuth.Handler
		optional = deps.UserAuth.Optional
	} else {
		log.Printf("[mall.router] WARN: UserAuth is nil (signed-in routes will answer 401)")
	}
	wrap := func(h http.Handler, mw func(http.Handler) http.Handler) http.Handler {
		if h == nil {
			return nil
		}
		return mw(h)
	}

	// auth
	handleSafe(mux, "/mall/auth/", wrap(deps.Auth, optional), "Auth")

	// catalog (public reads, signed-in review posting)
	catalog := wrap(deps.Catalog, optional)
	handleSafe(mux, "/mall/home", catalog, "Catalog")
	handleSafe(mux, "/mall/products", catalog, "Catalog")
	handleSafe(mux, "/mall/products/", catalog, "Catalog")
	handleSafe(mux, "/mall/categories", catalog, "Catalog")
	handleSafe(mux, "/mall/categories/", catalog, "Catalog")

	// cart
	cart := wrap(deps.Cart, required)
	handleSafe(mux, "/mall/me/cart", cart, "Cart(me)")
	handleSafe(mux, "/mall/me/cart/", cart, "Cart(me)")

	// wishlist
	wishlist := wrap(deps.Wishlist, required)
	handleSafe(mux, "/mall/me/wishlist", wishlist, "Wishlist(me)")
	handleSafe(mux, "/mall/me/wishlist/", wishlist, "Wishlist(me)")

	// checkout / orders
	order := wrap(deps.Order, required)
	handleSafe(mux, "/mall/me/checkout", order, "Order(me)")
	handleSafe(mux, "/mall/me/orders", order, "Order(me)")

	// profile
	handleSafe(mux, "/mall/me/profile", wrap(deps.User, required), "User(me)")

	// seller console
	handleSafe(mux, "/mall/seller/", wrap(deps.Seller, required), "Seller")
}
