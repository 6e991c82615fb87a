package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role ids as issued by the backend.
const (
	RoleAdmin = 0
	RoleUser  = 1
)

// Claims mirrors the payload the backend puts into its access tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	RoleID int    `json:"role_id"`
	jwt.RegisteredClaims
}

// Session is the caller identity passed explicitly into every upstream call.
// The zero value is an anonymous session.
type Session struct {
	Token     string
	UserID    string
	Email     string
	RoleID    int
	ExpiresAt time.Time
}

// ParseSession verifies the HS256 signature with the secret shared with the
// backend and decodes the claims. Expiry is left to Session.Expired so callers
// can tell a dead session from a forged one.
func ParseSession(token string, secret []byte) (Session, error) {
	if token == "" {
		return Session{}, ErrMissingToken
	}
	if len(secret) == 0 {
		return Session{}, ErrNoSecret
	}

	claims := &Claims{RoleID: RoleUser}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return Session{}, ErrMissingSubject
	}

	s := Session{
		Token:  token,
		UserID: claims.UserID,
		Email:  claims.Email,
		RoleID: claims.RoleID,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Expired reports whether the session can no longer be used at now.
// A session without a token or without an expiry counts as expired.
func (s Session) Expired(now time.Time) bool {
	if s.Token == "" || s.ExpiresAt.IsZero() {
		return true
	}
	return !now.Before(s.ExpiresAt)
}

// Check returns ErrSessionExpired when the session cannot be used at now.
func (s Session) Check(now time.Time) error {
	if s.Expired(now) {
		return ErrSessionExpired
	}
	return nil
}

func (s Session) IsAdmin() bool {
	return s.Token != "" && s.RoleID == RoleAdmin
}
