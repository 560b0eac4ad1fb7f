package session

import "errors"

var (
	ErrEmptyToken = errors.New("session token is empty")
	ErrCorrupt    = errors.New("session file is corrupt")
	ErrNotJWT     = errors.New("session token is not a JWT")
)
