//go:build !windows

package mediakey

import (
	"fmt"
	"log"
	"sync"

	"golang.design/x/hotkey"
)

// hotkeyBackend captures media keys by registering them as bare global
// hotkeys with golang.design/x/hotkey. Registration claims the key
// system-wide, so consumption is implicit; the disposition returned by the
// classifier is honored by construction. Works on macOS and X11, not on
// Wayland.
type hotkeyBackend struct {
	mu         sync.Mutex
	display    DisplayServer
	registered []*boundKey
}

type boundKey struct {
	code int
	hk   *hotkey.Hotkey
	stop chan struct{}
}

func newPlatformBackend() Backend {
	b := &hotkeyBackend{display: DetectDisplayServer()}
	if !b.IsAvailable() {
		log.Printf("Media-key capture unavailable on %s.", b.display)
		return nil
	}
	return b
}

func (b *hotkeyBackend) Name() string {
	return fmt.Sprintf("global hotkey registration (%s)", b.display)
}

func (b *hotkeyBackend) IsAvailable() bool {
	switch b.display {
	case DisplayServerX11:
		return true
	case DisplayServerWayland:
		// golang.design/x/hotkey has no Wayland support.
		return false
	default:
		return false
	}
}

// Start registers every capturable media key. Partial registration is a
// failure: leaving some keys with the OS while claiming others would split
// one logical keyboard between two handlers.
func (b *hotkeyBackend) Start(handle func(RawEvent) Disposition) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.IsAvailable() {
		return ErrBackendNotAvailable
	}
	if len(b.registered) > 0 {
		return nil
	}

	for code, key := range mediaHotkeys {
		hk := hotkey.New(nil, key)
		if err := hk.Register(); err != nil {
			b.unregisterLocked()
			return fmt.Errorf("failed to register media key %d: %w", code, err)
		}
		bound := &boundKey{code: code, hk: hk, stop: make(chan struct{})}
		b.registered = append(b.registered, bound)
		go bound.listen(handle)
	}
	return nil
}

// listen forwards down and up transitions for one registered key. The
// hotkey library already collapses auto-repeat, so Repeat is always false
// here; repeat suppression still lives in the classifier for the backends
// that do see repeats.
func (bk *boundKey) listen(handle func(RawEvent) Disposition) {
	for {
		select {
		case <-bk.stop:
			return
		case <-bk.hk.Keydown():
			handle(RawEvent{Code: bk.code, Down: true})
		case <-bk.hk.Keyup():
			handle(RawEvent{Code: bk.code, Down: false})
		}
	}
}

func (b *hotkeyBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unregisterLocked()
	return nil
}

func (b *hotkeyBackend) unregisterLocked() {
	for _, bound := range b.registered {
		close(bound.stop)
		if err := bound.hk.Unregister(); err != nil {
			log.Printf("Error unregistering media key %d: %v", bound.code, err)
		}
	}
	b.registered = nil
}
