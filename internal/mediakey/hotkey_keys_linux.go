//go:build linux

package mediakey

import "golang.design/x/hotkey"

// X11 keycodes for the XF86Audio keys on the standard evdev layout.
var mediaHotkeys = map[int]hotkey.Key{
	CodePlay:     hotkey.Key(172), // XF86AudioPlay
	CodeNext:     hotkey.Key(171), // XF86AudioNext
	CodePrevious: hotkey.Key(173), // XF86AudioPrev
}
