package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("backend-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	return signWith(t, claims, secret)
}

func signWith(t *testing.T, claims jwt.MapClaims, key []byte) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return tok
}

func TestParseSession(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("User token", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{
			"user_id": "u-1",
			"email":   "buyer@example.com",
			"role_id": 1,
			"exp":     exp.Unix(),
		})

		s, err := ParseSession(tok, secret)
		require.NoError(t, err)
		assert.Equal(t, "u-1", s.UserID)
		assert.Equal(t, "buyer@example.com", s.Email)
		assert.Equal(t, tok, s.Token)
		assert.True(t, exp.Equal(s.ExpiresAt))
		assert.False(t, s.IsAdmin())
	})

	t.Run("Admin token", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{"user_id": "a-1", "role_id": 0, "exp": exp.Unix()})

		s, err := ParseSession(tok, secret)
		require.NoError(t, err)
		assert.True(t, s.IsAdmin())
	})

	t.Run("Missing role defaults to user", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{"user_id": "u-2", "exp": exp.Unix()})

		s, err := ParseSession(tok, secret)
		require.NoError(t, err)
		assert.False(t, s.IsAdmin())
	})

	t.Run("Subject fallback", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{"sub": "u-3", "exp": exp.Unix()})

		s, err := ParseSession(tok, secret)
		require.NoError(t, err)
		assert.Equal(t, "u-3", s.UserID)
	})

	t.Run("No user id", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{"exp": exp.Unix()})

		_, err := ParseSession(tok, secret)
		assert.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseSession("not-a-jwt", secret)
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseSession("", secret)
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("Signed with another key", func(t *testing.T) {
		tok := signWith(t, jwt.MapClaims{"user_id": "u-1", "role_id": 0, "exp": exp.Unix()}, []byte("someone-else"))

		_, err := ParseSession(tok, secret)
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("Unsigned token", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "u-1", "exp": exp.Unix()}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ParseSession(tok, secret)
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("Expired token still parses", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		tok := signToken(t, jwt.MapClaims{"user_id": "u-1", "exp": past.Unix()})

		s, err := ParseSession(tok, secret)
		require.NoError(t, err)
		assert.True(t, s.Expired(time.Now()))
	})

	t.Run("No secret", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{"user_id": "u-1", "exp": exp.Unix()})

		_, err := ParseSession(tok, nil)
		assert.ErrorIs(t, err, ErrNoSecret)
	})
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()

	live := Session{Token: "t", ExpiresAt: now.Add(time.Minute)}
	assert.False(t, live.Expired(now))
	assert.NoError(t, live.Check(now))

	dead := Session{Token: "t", ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, dead.Expired(now))
	assert.ErrorIs(t, dead.Check(now), ErrSessionExpired)

	assert.True(t, Session{Token: "t"}.Expired(now), "no expiry means expired")
	assert.True(t, Session{ExpiresAt: now.Add(time.Hour)}.Expired(now), "no token means expired")
}
