// Package apperr defines the error taxonomy shared by handlers and the
// core computation packages. Handlers map these sentinels onto HTTP
// responses; nothing in this layer retries automatically.
package apperr

import "errors"

var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a missing referenced resource.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an authenticated party lacking rights over a resource.
	ErrForbidden = errors.New("forbidden")
	// ErrSlotUnavailable marks a booking request that would double-book a
	// resource. Surfaced to the caller as a rejection, never retried.
	ErrSlotUnavailable = errors.New("slot unavailable")
	// ErrServerFault marks an unexpected datastore or integration failure.
	ErrServerFault = errors.New("server fault")
)

// Validation wraps a field-level message in ErrValidation.
func Validation(msg string) error {
	return &wrapped{sentinel: ErrValidation, msg: msg}
}

type wrapped struct {
	sentinel error
	msg      string
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.sentinel }
