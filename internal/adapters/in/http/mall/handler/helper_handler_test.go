package mallHandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UDAY2232/LackLink/internal/domain/common"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{productdom.ErrInvalidPrice, http.StatusBadRequest},
		{common.ErrUnauthenticated, http.StatusUnauthorized},
		{fmt.Errorf("x: %w", common.ErrForbidden), http.StatusForbidden},
		{productdom.ErrNotFound, http.StatusNotFound},
		{productdom.ErrInsufficientStock, http.StatusConflict},
		{orderdom.ErrCheckoutBusy, http.StatusConflict},
		{common.Remote("db.query", errors.New("dial tcp: refused")), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusOf(tc.err), tc.err.Error())
	}
}

func TestWriteError_HidesRemoteCause(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, "test", common.Remote("db.query", errors.New("password=hunter2")))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestWriteError_ValidationCarriesField(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, "test", productdom.ErrInvalidPrice)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "price", body["field"])
}

func TestPathRest(t *testing.T) {
	assert.Nil(t, pathRest("/mall/me/cart", "/mall/me/cart"))
	assert.Equal(t, []string{"items", "abc"}, pathRest("/mall/me/cart/items/abc/", "/mall/me/cart"))
	assert.Equal(t, []string{"x", "reviews"}, pathRest("/mall/products//x/reviews", "/mall/products"))
}

func TestParseListQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/mall/products?min_price=10&max_price=50&sort=price&order=asc&brand=%20acme%20", nil)
	f, s, err := parseListQuery(req)
	require.NoError(t, err)
	assert.Equal(t, "10", f.MinPrice.String())
	assert.Equal(t, "50", f.MaxPrice.String())
	assert.Equal(t, "acme", f.Brand)
	assert.Equal(t, productdom.SortByPrice, s.Field)
	assert.Equal(t, common.SortAsc, s.Direction)

	req = httptest.NewRequest(http.MethodGet, "/mall/products?min_price=cheap", nil)
	_, _, err = parseListQuery(req)
	assert.True(t, errors.Is(err, common.ErrValidation))

	req = httptest.NewRequest(http.MethodGet, "/mall/products", nil)
	_, s, err = parseListQuery(req)
	require.NoError(t, err)
	assert.Equal(t, productdom.DefaultSort, s)
}
