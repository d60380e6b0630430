// internal/adapters/in/http/middleware/mode.go
package middleware

import "net/http"

// ModeHeader tells clients whether the service runs against live backends or offline.
const ModeHeader = "X-LackLink-Mode"

func Mode(mode string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(ModeHeader, mode)
			next.ServeHTTP(w, r)
		})
	}
}
