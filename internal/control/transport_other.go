//go:build !linux

package control

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrTransportUnavailable is returned on platforms without a player control
// channel. The controller's keystroke fallback still works there.
var ErrTransportUnavailable = errors.New("player control channel not available on this platform")

type stubTransport struct{}

// NewTransport returns a transport whose control channel always refuses, so
// every command takes the keystroke-injection path.
func NewTransport() (Transport, error) {
	return &stubTransport{}, nil
}

func (t *stubTransport) IsRunning(TargetDescriptor) bool {
	// Without a membership check, assume running; a launch here would be
	// worse than a missed one.
	return true
}

func (t *stubTransport) Launch(desc TargetDescriptor) error {
	cmd := exec.Command(desc.AppID)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", desc.AppID, err)
	}
	return cmd.Process.Release()
}

func (t *stubTransport) Command(TargetDescriptor, string) error {
	return ErrTransportUnavailable
}

func (t *stubTransport) Activate(TargetDescriptor) error {
	return ErrTransportUnavailable
}
