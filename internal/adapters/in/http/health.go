// internal/adapters/in/http/health.go
package httpin

import (
	"encoding/json"
	"net/http"
)

func writeHealth(w http.ResponseWriter, v healthResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
