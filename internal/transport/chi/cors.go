package chi

import "net/http"

const (
	allowMethods = "GET, POST, PATCH, OPTIONS"
	allowHeaders = "Content-Type, Authorization"
)

// CORSMiddleware attaches origin-restriction headers to every response.
// Pre-flight OPTIONS requests are always answered with 204 and permissive
// headers; a non-OPTIONS request from a disallowed origin is rejected with
// 403 before any handler logic runs. An empty allowedOrigin means open
// access. Requests without an Origin header (curl, server-to-server) pass.
func CORSMiddleware(allowedOrigin string) func(http.Handler) http.Handler {
	allowValue := allowedOrigin
	if allowValue == "" {
		allowValue = "*"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowValue)
			w.Header().Set("Access-Control-Allow-Methods", allowMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowHeaders)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if allowedOrigin != "" {
				if origin := r.Header.Get("Origin"); origin != "" && origin != allowedOrigin {
					writeError(w, http.StatusForbidden, "origin not allowed")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
