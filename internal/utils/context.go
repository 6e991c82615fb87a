package utils

type contextKey string

const (
	SessionKey contextKey = "session"
)
