package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"log/slog"

	"github.com/gorilla/mux"

	"github.com/sponnect/sponnect/internal/apperr"
	"github.com/sponnect/sponnect/internal/metrics"
	"github.com/sponnect/sponnect/internal/session"
	"github.com/sponnect/sponnect/pkg/models"
)

type ctxKey string

const ctxSession ctxKey = "session"

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic", slog.Any("err", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the written status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		metrics.RecordRequestDuration(r.Method, fmt.Sprintf("%d", rec.status), time.Since(start).Seconds())
	})
}

// SessionMiddlewareWithSecret parses the bearer token and binds the session
// context to the request. Requests without a valid token fail here with
// NotAuthenticated before any role or flag check runs.
func SessionMiddlewareWithSecret(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, apperr.ErrNotAuthenticated.Error())
				return
			}

			var tokenString string
			if _, err := fmt.Sscanf(authHeader, "Bearer %s", &tokenString); err != nil || tokenString == "" {
				writeError(w, http.StatusUnauthorized, apperr.ErrNotAuthenticated.Error())
				return
			}

			sess, err := session.Parse(tokenString, secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxSession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole is the authorization gate for a role-prefixed subtree. Checks
// run in a fixed order: authentication, then role, then the session's cached
// flagged bit. Admins are exempt from the flag check.
func RequireRole(role models.Role) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if sess == nil {
				writeError(w, http.StatusUnauthorized, apperr.ErrNotAuthenticated.Error())
				return
			}
			if sess.Role != role {
				writeError(w, http.StatusForbidden, apperr.ErrRoleMismatch.Error())
				return
			}
			if sess.Flagged && sess.Role != models.RoleAdmin {
				writeError(w, http.StatusForbidden, apperr.ErrAccountFlagged.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext returns the session bound by SessionMiddlewareWithSecret,
// or nil when the request is unauthenticated.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(ctxSession).(*session.Session)
	return sess
}

// WithSession binds a session to a context; exported for handler tests.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, ctxSession, sess)
}
