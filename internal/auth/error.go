package auth

import "errors"

var (
	ErrMissingToken   = errors.New("missing access token")
	ErrMalformedToken = errors.New("malformed access token")
	ErrMissingSubject = errors.New("access token has no user id")
	ErrSessionExpired = errors.New("session expired")
	ErrNoSecret       = errors.New("token secret not configured")
)
