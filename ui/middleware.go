package ui

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader is echoed back so callers can correlate logs with calls.
const requestIDHeader = "X-Request-ID"

// requestID tags each request with a UUID unless the caller supplied one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}
