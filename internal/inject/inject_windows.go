//go:build windows

package inject

import (
	"fmt"
	"log"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	inputKeyboard   = 1
	keyeventfKeyup  = 0x0002
	vkSpace         = 0x20
	vkLeft          = 0x25
	vkRight         = 0x27
)

// keyboardInput mirrors the INPUT structure with a KEYBDINPUT payload.
type keyboardInput struct {
	Type uint32
	Ki   struct {
		WVk         uint16
		WScan       uint16
		DwFlags     uint32
		Time        uint32
		DwExtraInfo uintptr
		Padding1    uint32
		Padding2    uint32
		Padding3    uint32
	}
}

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	procSendInput  = user32.NewProc("SendInput")
	procKeybdEvent = user32.NewProc("keybd_event")
)

type windowsInjector struct{}

func newPlatformInjector() Injector {
	return &windowsInjector{}
}

func vkFor(key Key) (uint16, error) {
	switch key {
	case KeySpace:
		return vkSpace, nil
	case KeyRightArrow:
		return vkRight, nil
	case KeyLeftArrow:
		return vkLeft, nil
	default:
		return 0, fmt.Errorf("no virtual-key mapping for %s", key)
	}
}

func (w *windowsInjector) KeyDown(key Key) error {
	return w.send(key, false)
}

func (w *windowsInjector) KeyUp(key Key) error {
	return w.send(key, true)
}

// send tries SendInput first and falls back to the older keybd_event API.
func (w *windowsInjector) send(key Key, up bool) error {
	vk, err := vkFor(key)
	if err != nil {
		return err
	}

	var flags uint32
	if up {
		flags = keyeventfKeyup
	}

	var input keyboardInput
	input.Type = inputKeyboard
	input.Ki.WVk = vk
	input.Ki.DwFlags = flags

	ret, _, callErr := procSendInput.Call(
		1,
		uintptr(unsafe.Pointer(&input)),
		uintptr(unsafe.Sizeof(input)),
	)
	if ret == 1 {
		return nil
	}
	log.Printf("SendInput failed for %s (up=%v): %v; falling back to keybd_event", key, up, callErr)

	procKeybdEvent.Call(uintptr(vk), 0, uintptr(flags), 0)
	return nil
}
