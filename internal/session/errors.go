package session

import "errors"

var (
	ErrNotFound       = errors.New("session not found or expired")
	ErrTurnInProgress = errors.New("a reply is still being generated for this session")
)
