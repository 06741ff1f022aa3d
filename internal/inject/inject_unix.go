//go:build !windows && !darwin

package inject

import (
	"fmt"
	"log"
	"os/exec"
)

type unixInjector struct{}

func newPlatformInjector() Injector {
	return &unixInjector{}
}

// keysym names understood by xdotool and wtype.
func keysymFor(key Key) (string, error) {
	switch key {
	case KeySpace:
		return "space", nil
	case KeyRightArrow:
		return "Right", nil
	case KeyLeftArrow:
		return "Left", nil
	default:
		return "", fmt.Errorf("no keysym mapping for %s", key)
	}
}

func (u *unixInjector) KeyDown(key Key) error {
	return u.send(key, false)
}

func (u *unixInjector) KeyUp(key Key) error {
	return u.send(key, true)
}

// send tries xdotool (X11) first and wtype (Wayland) second, mirroring
// which tools are actually installed rather than which display server is
// detected: either may be present under XWayland.
func (u *unixInjector) send(key Key, up bool) error {
	sym, err := keysymFor(key)
	if err != nil {
		return err
	}

	xdoVerb := "keydown"
	wtypeFlag := "-P"
	if up {
		xdoVerb = "keyup"
		wtypeFlag = "-p"
	}

	if err := exec.Command("xdotool", xdoVerb, sym).Run(); err == nil {
		return nil
	} else {
		log.Printf("xdotool %s %s failed (is it installed?): %v", xdoVerb, sym, err)
	}

	if err := exec.Command("wtype", wtypeFlag, sym).Run(); err == nil {
		return nil
	} else {
		log.Printf("wtype %s %s failed (is it installed?): %v", wtypeFlag, sym, err)
	}

	return fmt.Errorf("no key injection tool succeeded for %s (up=%v)", key, up)
}
