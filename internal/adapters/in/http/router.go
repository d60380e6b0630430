// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"github.com/UDAY2232/LackLink/internal/adapters/in/http/mall"
	"github.com/UDAY2232/LackLink/internal/adapters/in/http/middleware"
)

// RouterDeps collects what main.go injects.
type RouterDeps struct {
	Mall mall.Deps

	// Mode is "online" or "offline"; it is reported by /healthz and on every response.
	Mode           string
	AllowedOrigins []string
}

type healthResponse struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
}

// NewRouter sets up HTTP routing and the middleware chain.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Health check (always on)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeHealth(w, healthResponse{Status: "ok", Mode: deps.Mode})
	})

	mall.Register(mux, deps.Mall)

	// CORS outermost so panics and auth failures still carry the headers
	var h http.Handler = mux
	h = middleware.Recover(h)
	h = middleware.Mode(deps.Mode)(h)
	h = middleware.CORS(deps.AllowedOrigins)(h)
	return h
}
