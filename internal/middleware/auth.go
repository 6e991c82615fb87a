package middleware

import (
	"net/http"
	"time"

	"hmade-storefront/internal/auth"
	"hmade-storefront/internal/logger"
	"hmade-storefront/internal/utils"

	"go.uber.org/zap"
)

// now is swapped in tests.
var now = time.Now

// AuthMiddleware puts the caller's session into the context once the token
// signature checks out against secret. Requests without a usable token
// continue anonymously; protected routes are guarded by RequireSession.
func AuthMiddleware(secret []byte, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractAccessToken(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := auth.ParseSession(token, secret)
			if err != nil {
				logger.FromCtx(r.Context()).Warn("rejected access token",
					zap.String("layer", "middleware"),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetSessionContext(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests without a live session.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := utils.GetSessionFromContext(r.Context())
		if !ok {
			utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if sess.Expired(now()) {
			utils.WriteJSONError(w, auth.ErrSessionExpired.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose live session is not an admin's.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := utils.GetSessionFromContext(r.Context())
		if !sess.IsAdmin() {
			utils.WriteJSONError(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
