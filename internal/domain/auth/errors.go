package auth

import "errors"

var (
	ErrUnauthorized = errors.New("session expired or invalid token")
)
