//go:build darwin

package inject

import (
	"fmt"
	"log"
	"os/exec"
)

type darwinInjector struct{}

func newPlatformInjector() Injector {
	return &darwinInjector{}
}

// System Events key codes.
func keyCodeFor(key Key) (int, error) {
	switch key {
	case KeySpace:
		return 49, nil
	case KeyRightArrow:
		return 124, nil
	case KeyLeftArrow:
		return 123, nil
	default:
		return 0, fmt.Errorf("no key code mapping for %s", key)
	}
}

// KeyDown synthesizes the whole press via osascript. AppleScript's `key
// code` cannot split the down and up transitions, so the pair collapses into
// one call here and KeyUp becomes a no-op.
func (d *darwinInjector) KeyDown(key Key) error {
	code, err := keyCodeFor(key)
	if err != nil {
		return err
	}
	script := fmt.Sprintf(`tell application "System Events" to key code %d`, code)
	if output, err := exec.Command("osascript", "-e", script).CombinedOutput(); err != nil {
		log.Printf("osascript key code %d failed: %v\nOutput: %s", code, err, string(output))
		return fmt.Errorf("osascript key injection failed for %s: %w", key, err)
	}
	return nil
}

func (d *darwinInjector) KeyUp(key Key) error {
	// Release already happened inside KeyDown's key code call.
	_, err := keyCodeFor(key)
	return err
}
