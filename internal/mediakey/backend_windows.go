//go:build windows

package mediakey

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	whKeyboardLL = 13

	wmKeydown    = 0x0100
	wmKeyup      = 0x0101
	wmSyskeydown = 0x0104
	wmSyskeyup   = 0x0105
	wmQuit       = 0x0012

	vkMediaNextTrack = 0xB0
	vkMediaPrevTrack = 0xB1
	vkMediaPlayPause = 0xB3
)

// kbdllhookstruct mirrors KBDLLHOOKSTRUCT.
type kbdllhookstruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	PtX     int32
	PtY     int32
}

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetCurrentThreadId  = kernel32.NewProc("GetCurrentThreadId")
)

// hookBackend captures media keys with a low-level keyboard hook. The hook
// callback runs synchronously in the input-delivery chain, so it only
// decodes, classifies and returns: swallowed events return 1, everything
// else is forwarded down the hook chain.
type hookBackend struct {
	mu       sync.Mutex
	handle   func(RawEvent) Disposition
	hook     uintptr
	threadID uint32
	held     map[uint32]bool
	stopped  chan struct{}
}

// package-level instance so the C-style hook procedure can reach it without
// threading a pointer through the registration call.
var activeHook *hookBackend

func newPlatformBackend() Backend {
	return &hookBackend{held: make(map[uint32]bool)}
}

func (b *hookBackend) Name() string { return "low-level keyboard hook" }

func (b *hookBackend) IsAvailable() bool { return true }

// codeForVK translates a media virtual-key into the shared raw taxonomy.
func codeForVK(vk uint32) (int, bool) {
	switch vk {
	case vkMediaPlayPause:
		return CodePlay, true
	case vkMediaNextTrack:
		return CodeNext, true
	case vkMediaPrevTrack:
		return CodePrevious, true
	default:
		return 0, false
	}
}

// hookProc is the WH_KEYBOARD_LL procedure. nCode < 0 must always be passed
// down the chain per the hook contract.
func hookProc(nCode int32, wParam uintptr, lParam uintptr) uintptr {
	b := activeHook
	if nCode < 0 || b == nil {
		return callNextHook(nCode, wParam, lParam)
	}

	kb := (*kbdllhookstruct)(unsafe.Pointer(lParam))
	code, known := codeForVK(kb.VkCode)
	if !known {
		return callNextHook(nCode, wParam, lParam)
	}

	down := wParam == wmKeydown || wParam == wmSyskeydown
	up := wParam == wmKeyup || wParam == wmSyskeyup
	if !down && !up {
		return callNextHook(nCode, wParam, lParam)
	}

	// The low-level hook does not flag auto-repeat; a second down without an
	// intervening up is one.
	repeat := down && b.held[kb.VkCode]
	b.held[kb.VkCode] = down

	// Pack and re-decode so this pathway exercises the same wire decode the
	// rest of the package is tested against.
	ev := DecodeEventWord(EncodeEventWord(RawEvent{Code: code, Down: down, Repeat: repeat}))
	if b.handle(ev) == Swallow {
		return 1
	}
	return callNextHook(nCode, wParam, lParam)
}

func callNextHook(nCode int32, wParam, lParam uintptr) uintptr {
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

// Start installs the hook on a dedicated OS thread and pumps its message
// queue; a low-level hook is silently dropped without one.
func (b *hookBackend) Start(handle func(RawEvent) Disposition) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.hook != 0 {
		return nil
	}
	b.handle = handle
	b.stopped = make(chan struct{})
	activeHook = b

	installed := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		tid, _, _ := procGetCurrentThreadId.Call()
		b.threadID = uint32(tid)

		hook, _, err := procSetWindowsHookExW.Call(
			whKeyboardLL,
			syscall.NewCallback(hookProc),
			0,
			0,
		)
		if hook == 0 {
			installed <- fmt.Errorf("SetWindowsHookEx failed: %v", err)
			return
		}
		b.hook = hook
		installed <- nil

		var m msg
		for {
			ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
			if ret == 0 || int32(ret) == -1 {
				break
			}
		}

		procUnhookWindowsHookEx.Call(b.hook)
		b.hook = 0
		close(b.stopped)
	}()

	if err := <-installed; err != nil {
		activeHook = nil
		return err
	}
	return nil
}

// Stop posts WM_QUIT to the hook thread and waits for teardown.
func (b *hookBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.hook == 0 {
		return nil
	}
	ret, _, err := procPostThreadMessageW.Call(uintptr(b.threadID), wmQuit, 0, 0)
	if ret == 0 {
		return fmt.Errorf("PostThreadMessage failed: %v", err)
	}
	<-b.stopped
	activeHook = nil
	log.Println("Low-level keyboard hook removed.")
	return nil
}
