// internal/adapters/in/http/mall/handler/seller_handler.go
package mallHandler

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	consolequery "github.com/UDAY2232/LackLink/internal/application/query/console"
	usecase "github.com/UDAY2232/LackLink/internal/application/usecase"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

// SellerHandler serves the retailer console under /mall/seller.
//
//	GET           /mall/seller/dashboard
//	GET           /mall/seller/orders
//	PATCH         /mall/seller/orders/{id}/status
//	GET|POST      /mall/seller/products
//	PATCH|DELETE  /mall/seller/products/{id}
//	POST          /mall/seller/product-images
//	GET|PATCH     /mall/seller/settings
type SellerHandler struct {
	sellerQ  *consolequery.SellerQuery
	orders   *usecase.OrderUsecase
	products *usecase.ProductUsecase
	users    *usecase.UserUsecase
}

func NewSellerHandler(
	sellerQ *consolequery.SellerQuery,
	orders *usecase.OrderUsecase,
	products *usecase.ProductUsecase,
	users *usecase.UserUsecase,
) http.Handler {
	return &SellerHandler{sellerQ: sellerQ, orders: orders, products: products, users: users}
}

type productRequest struct {
	Name           *string            `json:"name"`
	Description    *string            `json:"description"`
	Price          *decimal.Decimal   `json:"price"`
	DiscountPrice  *decimal.Decimal   `json:"discount_price"`
	ClearDiscount  bool               `json:"clear_discount"`
	CategoryID     *string            `json:"category_id"`
	Brand          *string            `json:"brand"`
	Images         *[]string          `json:"images"`
	StockQuantity  *int               `json:"stock_quantity"`
	Specifications *map[string]string `json:"specifications"`
	IsActive       *bool              `json:"is_active"`
}

func (req productRequest) input() usecase.ProductInput {
	return usecase.ProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		DiscountPrice:  req.DiscountPrice,
		ClearDiscount:  req.ClearDiscount,
		CategoryID:     req.CategoryID,
		Brand:          req.Brand,
		Images:         req.Images,
		StockQuantity:  req.StockQuantity,
		Specifications: req.Specifications,
		IsActive:       req.IsActive,
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

type imageUploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

func (h *SellerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.sellerQ == nil || h.orders == nil || h.products == nil || h.users == nil {
		writeErr(w, http.StatusInternalServerError, "seller handler is not configured")
		return
	}
	u, us, ok := requireUser(w, r)
	if !ok {
		return
	}
	if !u.IsRetailer() {
		writeError(w, "mall_seller_handler", usecase.ErrRetailerOnly)
		return
	}

	parts := pathRest(strings.TrimRight(r.URL.Path, "/"), "/mall/seller")
	if len(parts) == 0 {
		notFound(w)
		return
	}

	switch parts[0] {
	case "dashboard":
		if len(parts) != 1 || r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		out, err := h.sellerQ.Dashboard(r.Context(), u)
		h.respond(w, http.StatusOK, out, err)

	case "orders":
		h.serveOrders(w, r, u, parts[1:])

	case "products":
		h.serveProducts(w, r, u, parts[1:])

	case "product-images":
		if len(parts) != 1 || r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req imageUploadRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "mall_seller_handler", err)
			return
		}
		out, err := h.products.ImageUploadURL(r.Context(), u, req.FileName, req.ContentType)
		h.respond(w, http.StatusCreated, out, err)

	case "settings":
		if len(parts) != 1 {
			notFound(w)
			return
		}
		switch r.Method {
		case http.MethodGet:
			out, err := h.users.GetProfile(r.Context(), us)
			h.respond(w, http.StatusOK, out, err)
		case http.MethodPatch:
			var req profileRequest
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, "mall_seller_handler", err)
				return
			}
			out, err := h.users.UpdateStoreSettings(r.Context(), us, req.input())
			h.respond(w, http.StatusOK, out, err)
		default:
			methodNotAllowed(w)
		}

	default:
		notFound(w)
	}
}

func (h *SellerHandler) serveOrders(w http.ResponseWriter, r *http.Request, u *userdom.User, parts []string) {
	switch {
	case len(parts) == 0 && r.Method == http.MethodGet:
		out, err := h.sellerQ.Orders(r.Context(), u)
		h.respond(w, http.StatusOK, out, err)
	case len(parts) == 2 && parts[1] == "status" && r.Method == http.MethodPatch:
		var req statusRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "mall_seller_handler", err)
			return
		}
		out, err := h.orders.UpdateOrderStatus(r.Context(), u, parts[0], req.Status)
		h.respond(w, http.StatusOK, out, err)
	case len(parts) == 0 || (len(parts) == 2 && parts[1] == "status"):
		methodNotAllowed(w)
	default:
		notFound(w)
	}
}

func (h *SellerHandler) serveProducts(w http.ResponseWriter, r *http.Request, u *userdom.User, parts []string) {
	switch {
	case len(parts) == 0 && r.Method == http.MethodGet:
		out, err := h.products.ListOwn(r.Context(), u)
		h.respond(w, http.StatusOK, out, err)

	case len(parts) == 0 && r.Method == http.MethodPost:
		var req productRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "mall_seller_handler", err)
			return
		}
		out, err := h.products.Create(r.Context(), u, req.input())
		h.respond(w, http.StatusCreated, out, err)

	case len(parts) == 1 && r.Method == http.MethodPatch:
		var req productRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "mall_seller_handler", err)
			return
		}
		out, err := h.products.Update(r.Context(), u, parts[0], req.input())
		h.respond(w, http.StatusOK, out, err)

	case len(parts) == 1 && r.Method == http.MethodDelete:
		out, err := h.products.Deactivate(r.Context(), u, parts[0])
		h.respond(w, http.StatusOK, out, err)

	case len(parts) <= 1:
		methodNotAllowed(w)

	default:
		notFound(w)
	}
}

func (h *SellerHandler) respond(w http.ResponseWriter, code int, v any, err error) {
	if err != nil {
		writeError(w, "mall_seller_handler", err)
		return
	}
	writeJSON(w, code, v)
}
