// internal/adapters/in/http/mall/handler/catalog_handler.go
package mallHandler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	mallquery "github.com/UDAY2232/LackLink/internal/application/query/mall"
	usecase "github.com/UDAY2232/LackLink/internal/application/usecase"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

// CatalogHandler serves the storefront:
//
//	GET  /mall/home?limit=
//	GET  /mall/products?category_id&min_price&max_price&brand&sort&order
//	GET  /mall/products/search?q=
//	GET  /mall/products/{id}
//	GET  /mall/products/{id}/reviews
//	POST /mall/products/{id}/reviews   (bearer)
//	GET  /mall/categories
//	GET  /mall/categories/{slug}/products
type CatalogHandler struct {
	q       *mallquery.CatalogQuery
	reviews *usecase.ReviewUsecase
}

func NewCatalogHandler(q *mallquery.CatalogQuery, reviews *usecase.ReviewUsecase) http.Handler {
	return &CatalogHandler{q: q, reviews: reviews}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.q == nil {
		writeErr(w, http.StatusInternalServerError, "catalog handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	switch {
	case path == "/mall/home":
		h.home(w, r)
	case path == "/mall/categories" || strings.HasPrefix(path, "/mall/categories/"):
		h.serveCategories(w, r, pathRest(path, "/mall/categories"))
	case path == "/mall/products" || strings.HasPrefix(path, "/mall/products/"):
		h.serveProducts(w, r, pathRest(path, "/mall/products"))
	default:
		notFound(w)
	}
}

func (h *CatalogHandler) serveProducts(w http.ResponseWriter, r *http.Request, parts []string) {
	switch {
	case len(parts) == 0:
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.list(w, r)

	case len(parts) == 1 && parts[0] == "search":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		out, err := h.q.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, "mall_catalog_handler", err)
			return
		}
		writeJSON(w, http.StatusOK, out)

	case len(parts) == 1:
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		out, err := h.q.GetByID(r.Context(), parts[0])
		if err != nil {
			writeError(w, "mall_catalog_handler", err)
			return
		}
		writeJSON(w, http.StatusOK, out)

	case len(parts) == 2 && parts[1] == "reviews":
		switch r.Method {
		case http.MethodGet:
			out, err := h.q.Reviews(r.Context(), parts[0])
			if err != nil {
				writeError(w, "mall_catalog_handler", err)
				return
			}
			writeJSON(w, http.StatusOK, out)
		case http.MethodPost:
			h.createReview(w, r, parts[0])
		default:
			methodNotAllowed(w)
		}

	default:
		notFound(w)
	}
}

func (h *CatalogHandler) serveCategories(w http.ResponseWriter, r *http.Request, parts []string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	switch {
	case len(parts) == 0:
		out, err := h.q.ListCategories(r.Context())
		if err != nil {
			writeError(w, "mall_catalog_handler", err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	case len(parts) == 2 && parts[1] == "products":
		out, err := h.q.GetByCategorySlug(r.Context(), parts[0])
		if err != nil {
			writeError(w, "mall_catalog_handler", err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	default:
		notFound(w)
	}
}

func (h *CatalogHandler) home(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, "mall_catalog_handler", common.NewValidationError("limit", "must be a positive integer"))
			return
		}
		limit = n
	}
	out, err := h.q.Home(r.Context(), limit)
	if err != nil {
		writeError(w, "mall_catalog_handler", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request) {
	f, s, err := parseListQuery(r)
	if err != nil {
		writeError(w, "mall_catalog_handler", err)
		return
	}
	out, err := h.q.List(r.Context(), f, s)
	if err != nil {
		writeError(w, "mall_catalog_handler", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *CatalogHandler) createReview(w http.ResponseWriter, r *http.Request, productID string) {
	if h.reviews == nil {
		writeErr(w, http.StatusInternalServerError, "reviews are not configured")
		return
	}
	us, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "mall_catalog_handler", err)
		return
	}
	rv, err := h.reviews.Create(r.Context(), us, usecase.ReviewInput{
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeError(w, "mall_catalog_handler", err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

// parseListQuery reads the listing filter. Unknown sort columns and malformed prices are rejected.
func parseListQuery(r *http.Request) (productdom.Filter, productdom.Sort, error) {
	q := r.URL.Query()
	f := productdom.Filter{
		CategoryID: strings.TrimSpace(q.Get("category_id")),
		Brand:      strings.TrimSpace(q.Get("brand")),
	}

	var err error
	if f.MinPrice, err = parsePrice(q.Get("min_price"), "min_price"); err != nil {
		return f, productdom.Sort{}, err
	}
	if f.MaxPrice, err = parsePrice(q.Get("max_price"), "max_price"); err != nil {
		return f, productdom.Sort{}, err
	}

	s := productdom.DefaultSort
	if raw := strings.TrimSpace(q.Get("sort")); raw != "" {
		field, ok := productdom.ParseSortField(raw)
		if !ok {
			return f, s, common.NewValidationError("sort", "unsupported sort column")
		}
		s.Field = field
	}
	order, ok := common.ParseSortOrder(q.Get("order"), s.Direction)
	if !ok {
		return f, s, common.NewValidationError("order", "order must be asc or desc")
	}
	s.Direction = order
	return f, s, nil
}

func parsePrice(raw, field string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, common.NewValidationError(field, "must be a non-negative number")
	}
	return &d, nil
}
