// internal/adapters/in/http/mall/handler/order_handler.go
package mallHandler

import (
	"net/http"
	"strings"

	mallquery "github.com/UDAY2232/LackLink/internal/application/query/mall"
	usecase "github.com/UDAY2232/LackLink/internal/application/usecase"
	shipdom "github.com/UDAY2232/LackLink/internal/domain/shippingAddress"
)

// OrderHandler serves checkout and the buyer's order history.
//
//	POST /mall/me/checkout
//	GET  /mall/me/orders
type OrderHandler struct {
	workflow *usecase.OrderWorkflow
	orders   *mallquery.OrderQuery
}

func NewOrderHandler(workflow *usecase.OrderWorkflow, orders *mallquery.OrderQuery) http.Handler {
	return &OrderHandler{workflow: workflow, orders: orders}
}

type checkoutRequest struct {
	ShippingAddress shipdom.Address `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.workflow == nil || h.orders == nil {
		writeErr(w, http.StatusInternalServerError, "order handler is not configured")
		return
	}
	path := strings.TrimRight(r.URL.Path, "/")

	switch path {
	case "/mall/me/checkout":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.checkout(w, r)
	case "/mall/me/orders":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.list(w, r)
	default:
		notFound(w)
	}
}

func (h *OrderHandler) checkout(w http.ResponseWriter, r *http.Request) {
	us, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "mall_order_handler", err)
		return
	}
	o, err := h.workflow.PlaceOrder(r.Context(), us, usecase.PlaceOrderInput{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		writeError(w, "mall_order_handler", err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	u, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	out, err := h.orders.ListByUser(r.Context(), u.ID)
	if err != nil {
		writeError(w, "mall_order_handler", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
