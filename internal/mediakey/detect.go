package mediakey

import (
	"os"
	"runtime"
)

// DisplayServer is the input-delivery environment of the current session.
type DisplayServer int

const (
	DisplayServerUnknown DisplayServer = iota
	DisplayServerWindows
	DisplayServerX11
	DisplayServerWayland
)

func (ds DisplayServer) String() string {
	switch ds {
	case DisplayServerWindows:
		return "Windows"
	case DisplayServerX11:
		return "X11"
	case DisplayServerWayland:
		return "Wayland"
	default:
		return "Unknown"
	}
}

// DetectDisplayServer determines where key events come from on this system.
// Safe to call on any platform.
func DetectDisplayServer() DisplayServer {
	if runtime.GOOS == "windows" {
		return DisplayServerWindows
	}
	// Wayland first; a session can carry both variables.
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return DisplayServerWayland
	}
	if os.Getenv("DISPLAY") != "" {
		return DisplayServerX11
	}
	// macOS has no display-server variable but the registration backend
	// works there the same way it does under X11.
	if runtime.GOOS == "darwin" {
		return DisplayServerX11
	}
	return DisplayServerUnknown
}
