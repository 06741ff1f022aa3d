package mediakey

import "errors"

// ErrBackendNotAvailable is returned when a capture backend cannot be used on
// the current system.
var ErrBackendNotAvailable = errors.New("backend not available on this system")

// Backend abstracts platform-specific media-key capture. Implementations
// deliver every raw transition to handle, synchronously on whatever thread
// the OS uses for input delivery, and honor the returned disposition where
// the platform allows selective consumption.
type Backend interface {
	// Start installs the capture channel and begins delivering events.
	Start(handle func(RawEvent) Disposition) error

	// Stop removes the capture channel. The handler is not called afterwards.
	Stop() error

	// Name returns a human-readable name for logging.
	Name() string

	// IsAvailable reports whether this backend can work on the current
	// system, without actually installing anything.
	IsAvailable() bool
}

// SelectBackend picks the capture backend for the current platform, or nil
// when media keys cannot be captured here.
func SelectBackend() Backend {
	return newPlatformBackend()
}
