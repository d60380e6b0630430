// internal/adapters/in/http/mall/handler/wishlist_handler.go
package mallHandler

import (
	"net/http"
	"strings"

	mallquery "github.com/UDAY2232/LackLink/internal/application/query/mall"
	malldto "github.com/UDAY2232/LackLink/internal/application/query/mall/dto"
	usecase "github.com/UDAY2232/LackLink/internal/application/usecase"
	"github.com/UDAY2232/LackLink/internal/domain/common"
)

// WishlistHandler serves the signed-in wishlist.
//
//	GET    /mall/me/wishlist
//	POST   /mall/me/wishlist
//	POST   /mall/me/wishlist/toggle
//	DELETE /mall/me/wishlist/{id}
//	POST   /mall/me/wishlist/{id}/move-to-cart
type WishlistHandler struct{}

func NewWishlistHandler() http.Handler {
	return &WishlistHandler{}
}

type wishlistRequest struct {
	ProductID string `json:"product_id"`
}

type toggleResponse struct {
	InWishlist bool                `json:"in_wishlist"`
	Wishlist   malldto.WishlistDTO `json:"wishlist"`
}

func (h *WishlistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	us, ok := requireSession(w, r)
	if !ok {
		return
	}
	wl := us.Wishlist
	parts := pathRest(strings.TrimRight(r.URL.Path, "/"), "/mall/me/wishlist")

	switch {
	case len(parts) == 0 && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, mallquery.WishlistView(wl))

	case len(parts) == 0 && r.Method == http.MethodPost:
		var req wishlistRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "mall_wishlist_handler", err)
			return
		}
		if _, err := wl.Add(r.Context(), req.ProductID); err != nil {
			writeError(w, "mall_wishlist_handler", err)
			return
		}
		writeJSON(w, http.StatusCreated, mallquery.WishlistView(wl))

	case len(parts) == 1 && parts[0] == "toggle" && r.Method == http.MethodPost:
		var req wishlistRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "mall_wishlist_handler", err)
			return
		}
		in, err := wl.Toggle(r.Context(), req.ProductID)
		if err != nil {
			writeError(w, "mall_wishlist_handler", err)
			return
		}
		writeJSON(w, http.StatusOK, toggleResponse{InWishlist: in, Wishlist: mallquery.WishlistView(wl)})

	case len(parts) == 1 && r.Method == http.MethodDelete:
		if err := wl.Remove(r.Context(), parts[0]); err != nil {
			writeError(w, "mall_wishlist_handler", err)
			return
		}
		writeJSON(w, http.StatusOK, mallquery.WishlistView(wl))

	case len(parts) == 2 && parts[1] == "move-to-cart" && r.Method == http.MethodPost:
		h.moveToCart(w, r, us, parts[0])

	case len(parts) <= 2:
		methodNotAllowed(w)

	default:
		notFound(w)
	}
}

// moveToCart takes product_id from the body, or from the entry when the body is empty.
func (h *WishlistHandler) moveToCart(w http.ResponseWriter, r *http.Request, us *usecase.UserSession, entryID string) {
	var req wishlistRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "mall_wishlist_handler", err)
			return
		}
	}
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		for _, e := range us.Wishlist.Items() {
			if e.ID == entryID {
				productID = e.ProductID
				break
			}
		}
	}
	if productID == "" {
		writeError(w, "mall_wishlist_handler", common.NewValidationError("product_id", "wishlist entry not found"))
		return
	}

	if err := us.Wishlist.MoveToCart(r.Context(), entryID, productID); err != nil {
		writeError(w, "mall_wishlist_handler", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"wishlist": mallquery.WishlistView(us.Wishlist),
		"cart":     mallquery.CartView(us.Cart),
	})
}
