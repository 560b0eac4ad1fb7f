package auth

import "errors"

var (
	ErrLoginFailed        = errors.New("login failed")
	ErrRegistrationFailed = errors.New("registration failed")
	ErrMissingCredentials = errors.New("username and password are required")
)

// RejectedError is a 2xx auth answer that carried no token.
type RejectedError struct {
	Op      error
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return e.Op.Error()
	}
	return e.Op.Error() + ": " + e.Message
}

func (e *RejectedError) Unwrap() error {
	return e.Op
}
