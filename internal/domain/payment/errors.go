package payment

import "errors"

var (
	ErrNotIdle       = errors.New("a checkout is already in progress")
	ErrNotCollecting = errors.New("no checkout input is being collected")
	ErrSubmitting    = errors.New("a checkout submission is in flight")
	ErrRedirected    = errors.New("checkout already handed off to the payment provider")
)
