package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	usecase "github.com/UDAY2232/LackLink/internal/application/usecase"
	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
	"github.com/UDAY2232/LackLink/internal/domain/common"
)

type stubAuth struct {
	us  *usecase.UserSession
	err error
}

func (s stubAuth) Authenticate(context.Context, string) (*usecase.UserSession, error) {
	return s.us, s.err
}

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestUserAuth(t *testing.T) {
	us := &usecase.UserSession{}
	var seen *usecase.UserSession
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentSession(r)
		w.WriteHeader(http.StatusOK)
	})

	mw := &UserAuthMiddleware{Auth: stubAuth{us: us}}
	assert.Equal(t, http.StatusUnauthorized, serve(mw.Handler(next), "").Code)
	assert.Equal(t, http.StatusOK, serve(mw.Handler(next), "tok").Code)
	assert.Same(t, us, seen)

	seen = nil
	assert.Equal(t, http.StatusOK, serve(mw.Optional(next), "").Code)
	assert.Nil(t, seen)

	bad := &UserAuthMiddleware{Auth: stubAuth{err: authdom.ErrInvalidToken}}
	assert.Equal(t, http.StatusUnauthorized, serve(bad.Optional(next), "tok").Code)

	down := &UserAuthMiddleware{Auth: stubAuth{err: common.Remote("verify", errors.New("timeout"))}}
	assert.Equal(t, http.StatusBadGateway, serve(down.Handler(next), "tok").Code)
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	assert.Equal(t, http.StatusInternalServerError, serve(h, "").Code)
}
