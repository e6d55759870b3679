package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/session"
)

// unexported, collision-proof context key
type userIDContextKeyType struct{}

var userIDKey = userIDContextKeyType{}

// UserIDFromContext extracts the authenticated user ID from context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

type AuthMiddleware struct {
	Store        session.Store
	CookieSecret []byte
}

func NewAuthMiddleware(store session.Store, cookieSecret []byte) *AuthMiddleware {
	return &AuthMiddleware{Store: store, CookieSecret: cookieSecret}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session cookie
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 2. Verify cookie signature. A bad MAC is treated exactly
		// like a missing cookie: same status, no detail.
		sessionID, err := session.VerifyValue(cookie.Value, a.CookieSecret)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 3. Load session
		sess, err := a.Store.Get(r.Context(), sessionID)
		if err != nil || sess == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 4. Enforce session expiry
		if time.Now().After(sess.ExpiresAt) {
			_ = a.Store.Delete(r.Context(), sessionID)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 5. Attach user_id to context
		ctx := context.WithValue(r.Context(), userIDKey, sess.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
