// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/ds9759045455-stack/smart-scheduler/internal/session"
)

type ctxKey string

const accountKey ctxKey = "account"

// SessionAuth is a middleware that resolves the session cookie to an
// authenticated account id.
//
// Requests without a cookie, with an unknown or expired token, or with an
// anonymous session (no account bound) are redirected to /login. On success
// the account id is stored in the request context so handlers can read it
// via GetAccountIDFromContext.
func SessionAuth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			accountID, ok := sessions.Resolve(cookie.Value)
			if !ok || accountID == 0 {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), accountKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAccountIDFromContext extracts the authenticated account id from the
// request context. Returns 0 if not found.
func GetAccountIDFromContext(ctx context.Context) int64 {
	val := ctx.Value(accountKey)
	if id, ok := val.(int64); ok {
		return id
	}
	return 0
}

// WithAccountID returns a copy of ctx carrying the given account id, as
// SessionAuth would set it. Intended for handler tests.
func WithAccountID(ctx context.Context, accountID int64) context.Context {
	return context.WithValue(ctx, accountKey, accountID)
}
