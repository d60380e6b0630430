// internal/adapters/in/http/mall/handler/auth_handler.go
package mallHandler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/UDAY2232/LackLink/internal/adapters/in/http/middleware"
	usecase "github.com/UDAY2232/LackLink/internal/application/usecase"
	authdom "github.com/UDAY2232/LackLink/internal/domain/auth"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

// AuthHandler serves /mall/auth/*.
//
//	POST /mall/auth/signup
//	POST /mall/auth/signin
//	POST /mall/auth/signout   (bearer)
//	GET  /mall/auth/session   (bearer)
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) http.Handler {
	return &AuthHandler{uc: uc}
}

type signUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name"`
	Role            string `json:"role"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	AccessToken  string               `json:"access_token,omitempty"`
	RefreshToken string               `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time           `json:"expires_at,omitempty"`
	State        usecase.SessionState `json:"state"`
	User         *userdom.User        `json:"user"`
}

func newSessionResponse(sess *authdom.Session, us *usecase.UserSession) sessionResponse {
	out := sessionResponse{State: usecase.StateIdentityAbsent}
	if sess != nil {
		out.AccessToken = sess.AccessToken
		out.RefreshToken = sess.RefreshToken
		if !sess.ExpiresAt.IsZero() {
			t := sess.ExpiresAt
			out.ExpiresAt = &t
		}
	}
	if us != nil {
		out.State = us.Store.State()
		out.User = us.Identity()
	}
	return out
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "auth handler is not configured")
		return
	}

	action := strings.Join(pathRest(r.URL.Path, "/mall/auth"), "/")
	switch {
	case action == "signup" && r.Method == http.MethodPost:
		h.signUp(w, r)
	case action == "signin" && r.Method == http.MethodPost:
		h.signIn(w, r)
	case action == "signout" && r.Method == http.MethodPost:
		h.signOut(w, r)
	case action == "session" && r.Method == http.MethodGet:
		h.session(w, r)
	case action == "signup" || action == "signin" || action == "signout" || action == "session":
		methodNotAllowed(w)
	default:
		notFound(w)
	}
}

func (h *AuthHandler) signUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "mall_auth_handler", err)
		return
	}
	sess, us, err := h.uc.SignUp(r.Context(), usecase.SignUpInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Name:            req.Name,
		Role:            req.Role,
	})
	if err != nil {
		writeError(w, "mall_auth_handler", err)
		return
	}
	writeJSON(w, http.StatusCreated, newSessionResponse(sess, us))
}

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "mall_auth_handler", err)
		return
	}
	sess, us, err := h.uc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, "mall_auth_handler", err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess, us))
}

func (h *AuthHandler) signOut(w http.ResponseWriter, r *http.Request) {
	us, ok := middleware.CurrentSession(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}
	uid := ""
	if s := us.Store.Session(); s != nil {
		uid = s.Principal.UID
	}
	if err := h.uc.SignOut(r.Context(), uid); err != nil {
		// the local session is already gone
		log.Printf("[mall_auth_handler] signOut uid=%s err=%v", uid, err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) {
	us, ok := middleware.CurrentSession(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(nil, us))
}
