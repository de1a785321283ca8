package server

import (
	"net/http"
	"time"

	"tableside/internal/httpx"
	"tableside/internal/logger"
	"tableside/internal/models"
	"tableside/internal/services/auth"
)

// Middleware bundles the cross-cutting request handling: correlation IDs,
// request logging, panic recovery, and session authentication.
type Middleware struct {
	auth   *auth.Service
	logger *logger.Logger
}

func NewMiddleware(authService *auth.Service, log *logger.Logger) *Middleware {
	return &Middleware{
		auth:   authService,
		logger: log,
	}
}

// RequestID attaches a correlation ID to every request
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := httpx.WithRequestID(r.Context(), logger.GenerateRequestID())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logging logs every request with its status and duration
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		m.logger.Debug("http_request", "request handled", httpx.RequestID(r.Context()), map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

// Recover converts panics into 500 responses
func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.logger.Error("panic_recovered", "handler panicked", httpx.RequestID(r.Context()), nil, map[string]interface{}{
					"panic": rec,
					"path":  r.URL.Path,
				})
				httpx.WriteFailure(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// OptionalAuth resolves a bearer token when one is present. Requests
// without a valid session continue as guests.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.BearerToken(r)
		if token != "" {
			if id, role, err := m.auth.Resolve(r.Context(), token); err == nil {
				r = r.WithContext(httpx.WithUser(r.Context(), id, role))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without a valid session. When roles are
// given, the session's role must be one of them.
func (m *Middleware) RequireAuth(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.BearerToken(r)
			if token == "" {
				httpx.WriteFailure(w, http.StatusUnauthorized, "authentication required")
				return
			}

			id, role, err := m.auth.Resolve(r.Context(), token)
			if err != nil {
				httpx.WriteFailure(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			if len(roles) > 0 && !roleAllowed(role, roles) {
				httpx.WriteFailure(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r.WithContext(httpx.WithUser(r.Context(), id, role)))
		})
	}
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// responseWriter captures the status code for request logging
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}
