package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"kindnessconnect-backend/internal/config"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/security"
)

// AuthMiddleware enforces the security level of the matched route. Non-public routes need
// a verified bearer token; the uid is placed on the request context. Admin role checks
// happen in the services.
func AuthMiddleware(verifier security.IdentityVerifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name := ""
			if route := mux.CurrentRoute(r); route != nil {
				name = strings.TrimSuffix(route.GetName(), "/")
			}

			if config.RouteSecurity(name) == config.SecurityPublic {
				next.ServeHTTP(w, r)
				return
			}

			uid, err := verifier.VerifyToken(r.Context(), bearerToken(r))
			if err != nil {
				logger.Debug("Request rejected by auth", "route", name, "error", err)
				writeError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUID(r.Context(), uid)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every completed request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if p := recover(); p != nil {
				logger.Error("Panic in handler", "panic", p, "path", r.URL.Path)
				writeJSON(rec, http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
			}
			logger.Request(r.Method, r.URL.Path, rec.status, "duration", time.Since(start))
		}()
		next.ServeHTTP(rec, r)
	})
}

// CORSMiddleware allows credentialed requests from the configured origins and answers
// preflight requests directly.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	wildcard := false
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
		}
		allowed[strings.TrimRight(o, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (wildcard || allowed[origin]) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key")
				h.Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
