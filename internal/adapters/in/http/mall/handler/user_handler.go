// internal/adapters/in/http/mall/handler/user_handler.go
package mallHandler

import (
	"net/http"
	"strings"

	usecase "github.com/UDAY2232/LackLink/internal/application/usecase"
)

// UserHandler serves GET|PATCH /mall/me/profile.
type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) http.Handler {
	return &UserHandler{uc: uc}
}

// profileRequest: absent fields are left unchanged.
type profileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (req profileRequest) input() usecase.ProfileInput {
	return usecase.ProfileInput{Name: req.Name, Phone: req.Phone, Address: req.Address}
}

func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "user handler is not configured")
		return
	}
	if strings.TrimRight(r.URL.Path, "/") != "/mall/me/profile" {
		notFound(w)
		return
	}
	us, ok := requireSession(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		u, err := h.uc.GetProfile(r.Context(), us)
		if err != nil {
			writeError(w, "mall_user_handler", err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	case http.MethodPatch:
		var req profileRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "mall_user_handler", err)
			return
		}
		u, err := h.uc.UpdateProfile(r.Context(), us, req.input())
		if err != nil {
			writeError(w, "mall_user_handler", err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	default:
		methodNotAllowed(w)
	}
}
