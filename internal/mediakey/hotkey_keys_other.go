//go:build !windows && !linux && !darwin

package mediakey

import "golang.design/x/hotkey"

// No known media-key codes on this platform; the backend reports itself
// unavailable before this map is consulted.
var mediaHotkeys = map[int]hotkey.Key{}
