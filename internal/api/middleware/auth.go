package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/bcnelson/netinventory/internal/domain"
)

// APIKeyHeader carries the caller's key on mutating requests.
const APIKeyHeader = "X-API-Key"

// APIKey creates middleware that rejects requests whose X-API-Key header does
// not equal secret. Rejected requests never reach the wrapped handler.
func APIKey(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(APIKeyHeader)
			if secret == "" || subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(&domain.ErrorResponse{Error: "Unauthorized"})
}
