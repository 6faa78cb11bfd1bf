package http

import (
	"net/http"

	"order-tracker/internal/mylogger"

	"github.com/google/uuid"
)

// withCORS allows any origin, matching the open deployment the frontend
// expects. OPTIONS preflights are answered here and never reach handlers.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRequestID tags every request with an id (client-supplied or generated)
// and logs the request line under it.
func withRequestID(next http.Handler, mylog mylogger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		mylog.Action("request_received").Debug("Handling request",
			"request_id", requestID, "method", r.Method, "path", r.URL.Path)

		next.ServeHTTP(w, r)
	})
}
