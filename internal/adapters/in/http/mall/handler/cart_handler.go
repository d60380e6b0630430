// internal/adapters/in/http/mall/handler/cart_handler.go
package mallHandler

import (
	"net/http"
	"strings"

	mallquery "github.com/UDAY2232/LackLink/internal/application/query/mall"
	usecase "github.com/UDAY2232/LackLink/internal/application/usecase"
)

// CartHandler serves the signed-in cart. Every mutation answers with the whole cart.
//
//	GET    /mall/me/cart[?refresh=true]
//	DELETE /mall/me/cart
//	POST   /mall/me/cart/items
//	PATCH  /mall/me/cart/items/{id}
//	DELETE /mall/me/cart/items/{id}
type CartHandler struct{}

func NewCartHandler() http.Handler {
	return &CartHandler{}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	us, ok := requireSession(w, r)
	if !ok {
		return
	}
	cart := us.Cart
	parts := pathRest(strings.TrimRight(r.URL.Path, "/"), "/mall/me/cart")

	switch {
	case len(parts) == 0 && r.Method == http.MethodGet:
		if r.URL.Query().Get("refresh") == "true" {
			if err := cart.Refresh(r.Context()); err != nil {
				writeError(w, "mall_cart_handler", err)
				return
			}
		}
		writeJSON(w, http.StatusOK, mallquery.CartView(cart))

	case len(parts) == 0 && r.Method == http.MethodDelete:
		if err := cart.Clear(r.Context()); err != nil {
			writeError(w, "mall_cart_handler", err)
			return
		}
		writeJSON(w, http.StatusOK, mallquery.CartView(cart))

	case len(parts) == 1 && parts[0] == "items" && r.Method == http.MethodPost:
		h.add(w, r, cart)

	case len(parts) == 2 && parts[0] == "items" && r.Method == http.MethodPatch:
		var req setQuantityRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "mall_cart_handler", err)
			return
		}
		if _, err := cart.SetQuantity(r.Context(), parts[1], req.Quantity); err != nil {
			writeError(w, "mall_cart_handler", err)
			return
		}
		writeJSON(w, http.StatusOK, mallquery.CartView(cart))

	case len(parts) == 2 && parts[0] == "items" && r.Method == http.MethodDelete:
		if err := cart.Remove(r.Context(), parts[1]); err != nil {
			writeError(w, "mall_cart_handler", err)
			return
		}
		writeJSON(w, http.StatusOK, mallquery.CartView(cart))

	case len(parts) <= 2:
		methodNotAllowed(w)

	default:
		notFound(w)
	}
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request, cart *usecase.Cart) {
	var req addCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "mall_cart_handler", err)
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if _, err := cart.Add(r.Context(), req.ProductID, qty); err != nil {
		writeError(w, "mall_cart_handler", err)
		return
	}
	writeJSON(w, http.StatusCreated, mallquery.CartView(cart))
}
