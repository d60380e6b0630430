// internal/adapters/in/http/mall/handler/helper_handler.go
package mallHandler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/UDAY2232/LackLink/internal/adapters/in/http/middleware"
	usecase "github.com/UDAY2232/LackLink/internal/application/usecase"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

const maxBodyBytes = 1 << 20

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": strings.TrimSpace(msg)})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed")
}

func notFound(w http.ResponseWriter) {
	writeErr(w, http.StatusNotFound, "not_found")
}

// statusOf maps the error taxonomy to an HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, common.ErrRemoteFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err with its taxonomy status.
// Remote and unknown failures never expose their cause.
func writeError(w http.ResponseWriter, tag string, err error) {
	code := statusOf(err)
	body := map[string]string{}

	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		body["error"] = ve.Message
		if ve.Field != "" {
			body["field"] = ve.Field
		}
	case code == http.StatusBadGateway:
		body["error"] = "upstream service unavailable"
	case code == http.StatusInternalServerError:
		body["error"] = "internal error"
	default:
		body["error"] = err.Error()
	}

	if code >= http.StatusInternalServerError {
		log.Printf("[%s] status=%d err=%v", tag, code, err)
	}
	writeJSON(w, code, body)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewValidationError("body", "request body is empty")
		}
		return common.NewValidationError("body", "invalid json: "+err.Error())
	}
	return nil
}

// pathRest returns the non-empty path segments after prefix.
func pathRest(path, prefix string) []string {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return nil
	}
	out := make([]string, 0, 4)
	for _, p := range strings.Split(rest, "/") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// requireSession returns the request's UserSession or writes 401.
func requireSession(w http.ResponseWriter, r *http.Request) (*usecase.UserSession, bool) {
	us, ok := middleware.CurrentSession(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return nil, false
	}
	if us.Identity() == nil {
		writeErr(w, http.StatusUnauthorized, "identity unavailable")
		return nil, false
	}
	return us, true
}

func requireUser(w http.ResponseWriter, r *http.Request) (*userdom.User, *usecase.UserSession, bool) {
	us, ok := requireSession(w, r)
	if !ok {
		return nil, nil, false
	}
	return us.Identity(), us, true
}
