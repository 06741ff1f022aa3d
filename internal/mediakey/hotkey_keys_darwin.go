//go:build darwin

package mediakey

import "golang.design/x/hotkey"

// The function keys that double as media keys on Apple keyboards. Without
// the Fn modifier these arrive as plain F7/F8/F9.
var mediaHotkeys = map[int]hotkey.Key{
	CodePlay:     hotkey.Key(100), // F8
	CodeNext:     hotkey.Key(101), // F9
	CodePrevious: hotkey.Key(98),  // F7
}
