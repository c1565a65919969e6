package scheduling

import "github.com/pkg/errors"

var (
	// ErrUnauthorized means the caller has no verified identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound covers missing rows and rows owned by someone else.
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrDeliveryFailed is only surfaced by operations whose purpose is sending an email.
	ErrDeliveryFailed = errors.New("notification delivery failed")
)
