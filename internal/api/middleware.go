package api

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/johnwards/formbuilder/internal/domain"
)

type contextKey int

const (
	correlationIDKey contextKey = iota
	userKey
	tokenKey
)

// SessionCookie is the cookie carrying the session token for browsers.
const SessionCookie = "formbuilder_session"

// SignInPath is where unauthenticated browser requests are redirected.
const SignInPath = "/auth"

// CorrelationID returns the correlation ID from the request context.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// User returns the signed-in user of the request, if any.
func User(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey).(*domain.User)
	return u, ok
}

// UserID returns the id of the signed-in user, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	if u, ok := User(ctx); ok {
		return u.ID
	}
	return ""
}

// SessionToken returns the session token presented with the request.
func SessionToken(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)
	return t
}

// Recovery returns middleware that recovers from panics and returns a 500 error.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("panic recovered",
						"error", rec,
						"method", r.Method,
						"path", r.URL.Path,
					)
					corrID := CorrelationID(r.Context())
					WriteError(w, http.StatusInternalServerError, NewInternalError("Internal Server Error", corrID))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID returns middleware that generates a UUID correlation ID, stores
// it in the request context, and adds it to the response headers.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			ctx := context.WithValue(r.Context(), correlationIDKey, id)
			w.Header().Set("X-Correlation-Id", id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionResolver finds the user behind a session token.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// requestToken reads the session token from the Authorization header or,
// failing that, the session cookie.
func requestToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// Session returns middleware that attaches the signed-in user to the request
// context when a live session token is presented. Requests without a valid
// session pass through anonymously.
func Session(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := requestToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), tokenKey, token)
			u, err := sessions.Resolve(ctx, token)
			if err == nil {
				ctx = context.WithValue(ctx, userKey, u)
			} else {
				slog.Debug("session not resolved", "error", err, "correlation_id", CorrelationID(ctx))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser returns middleware that rejects anonymous requests. Browsers
// asking for HTML are redirected to the sign-in page; other clients get 401.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := User(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}
			if strings.Contains(r.Header.Get("Accept"), "text/html") {
				http.Redirect(w, r, SignInPath, http.StatusSeeOther)
				return
			}
			WriteError(w, http.StatusUnauthorized,
				NewUnauthorizedError("Sign in to continue", CorrelationID(r.Context())))
		})
	}
}

// AdminToken returns middleware guarding maintenance routes. The token must
// be sent in the X-Admin-Token header. With an empty token the routes do not
// exist.
func AdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			corrID := CorrelationID(r.Context())
			if token == "" {
				WriteError(w, http.StatusNotFound, NewNotFoundError("Not found", corrID))
				return
			}
			got := r.Header.Get("X-Admin-Token")
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				WriteError(w, http.StatusUnauthorized, NewUnauthorizedError("Admin token required", corrID))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// JSONContentType returns middleware that sets the Content-Type header to
// application/json on all responses. Handlers serving other formats
// override it.
func JSONContentType() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			next.ServeHTTP(w, r)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	code int
}

// WriteHeader captures the status code and delegates to the wrapped writer.
func (sw *statusWriter) WriteHeader(code int) {
	sw.code = code
	sw.ResponseWriter.WriteHeader(code)
}

// Logging returns middleware that logs each request with slog.
func Logging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(sw, r)
			slog.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.code,
				"duration", time.Since(start).String(),
				"correlation_id", CorrelationID(r.Context()),
			)
		})
	}
}

// Chain applies middleware in order so that the first middleware is the
// outermost handler.
func Chain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
