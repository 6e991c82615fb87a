package auth

import (
	"net/http"
	"strings"
)

const DefaultCookieName = "access_token"

// ExtractAccessToken reads the backend-issued access token from the named
// cookie, falling back to a bearer Authorization header.
func ExtractAccessToken(r *http.Request, cookieName string) string {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	h := r.Header.Get("Authorization")
	if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(tok)
	}
	return ""
}
