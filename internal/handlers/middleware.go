package handlers

import (
	"context"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"truongphat/internal/security"
	"truongphat/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// ClaimsContextKey carries the verified access token claims.
	ClaimsContextKey ContextKey = "claims"
	// RequestIDContextKey carries the per-request correlation ID.
	RequestIDContextKey ContextKey = "request_id"
)

// Middleware holds dependencies for middleware functions.
type Middleware struct {
	authService *service.AuthService
	loginLimit  *security.RateLimiter
}

// NewMiddleware creates a new middleware instance.
func NewMiddleware(authService *service.AuthService, loginLimit *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		loginLimit:  loginLimit,
	}
}

// RequireAuth requires a valid bearer access token and stores its claims in
// the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := m.authService.VerifyAccessToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin requires the authenticated staff member to hold the admin
// role. It must run after RequireAuth.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || claims.Role != "admin" {
			respondError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ThrottleLogin applies the per-IP token bucket to credential endpoints.
func (m *Middleware) ThrottleLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.loginLimit.Allow(security.ClientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "too many attempts, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext extracts the verified claims set by RequireAuth.
func ClaimsFromContext(ctx context.Context) *service.AccessClaims {
	claims, _ := ctx.Value(ClaimsContextKey).(*service.AccessClaims)
	return claims
}

// RequestID assigns a correlation ID to each request and echoes it in the
// X-Request-ID response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), RequestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// Logging logs HTTP requests with method, path, status and duration.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		id, _ := r.Context().Value(RequestIDContextKey).(string)
		log.Printf("%s %s %d %v request_id=%s", r.Method, r.URL.Path, rec.status, time.Since(start), id)
	})
}

// Recover converts panics into 500 responses instead of dropped connections.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic recovered: %v\n%s", rec, debug.Stack())
				respondError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
