// Package inject synthesizes low-level keystrokes into the foreground
// application. It is the last-resort control path, used only when a target
// refuses its primary control channel.
package inject

// Key is one of the fixed physical keys the fallback path may press. The
// choice of key encodes command intent; whether the foregrounded target
// actually honors it is a best-effort heuristic, not a contract.
type Key int

const (
	KeySpace Key = iota
	KeyRightArrow
	KeyLeftArrow
)

func (k Key) String() string {
	switch k {
	case KeySpace:
		return "space"
	case KeyRightArrow:
		return "right-arrow"
	case KeyLeftArrow:
		return "left-arrow"
	default:
		return "unknown"
	}
}

// Injector synthesizes individual key transitions. Down and up are separate
// so the caller can schedule the inter-event gap on its run loop instead of
// sleeping here.
type Injector interface {
	KeyDown(Key) error
	KeyUp(Key) error
}

// New returns the injector for the current platform.
func New() Injector {
	return newPlatformInjector()
}
