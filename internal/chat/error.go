package chat

import "errors"

var (
	ErrNotConnected = errors.New("chat is not connected")
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("assistant is still answering")
	ErrClosed       = errors.New("chat client is closed")
)
