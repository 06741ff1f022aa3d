//go:build linux

package control

import (
	"fmt"
	"log"
	"os/exec"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	mprisObjectPath = "/org/mpris/MediaPlayer2"
	mprisRootIface  = "org.mpris.MediaPlayer2"
	playerIface     = "org.mpris.MediaPlayer2.Player"
)

// DBusTransport controls players through their MPRIS interface on the
// session bus.
type DBusTransport struct {
	mu   sync.Mutex
	conn *dbus.Conn
}

// NewTransport connects to the session bus.
func NewTransport() (Transport, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DBusTransport{conn: conn}, nil
}

// IsRunning checks whether the player currently owns its well-known bus
// name, which is the D-Bus notion of membership in the running-application
// list.
func (t *DBusTransport) IsRunning(desc TargetDescriptor) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	var has bool
	err := t.conn.BusObject().
		Call("org.freedesktop.DBus.NameHasOwner", 0, desc.BusName()).
		Store(&has)
	if err != nil {
		log.Printf("NameHasOwner(%s) failed: %v", desc.BusName(), err)
		return false
	}
	return has
}

// Launch starts the player detached from this process. It does not wait for
// the player to finish launching and does not bring it to the foreground.
func (t *DBusTransport) Launch(desc TargetDescriptor) error {
	cmd := exec.Command(desc.AppID)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", desc.AppID, err)
	}
	// Detach; the player outlives us and we never reap it.
	return cmd.Process.Release()
}

// Command calls the descriptor's command string verbatim as a Player-
// interface member on the target's bus name.
func (t *DBusTransport) Command(desc TargetDescriptor, command string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	obj := t.conn.Object(desc.BusName(), mprisObjectPath)
	call := obj.Call(playerIface+"."+command, 0)
	if call.Err != nil {
		return fmt.Errorf("%s rejected %s: %w", desc.BusName(), command, call.Err)
	}
	return nil
}

// Activate raises the player's window via the MPRIS root interface. Players
// that cannot raise themselves return an error, which the caller treats as
// best-effort.
func (t *DBusTransport) Activate(desc TargetDescriptor) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	obj := t.conn.Object(desc.BusName(), mprisObjectPath)
	call := obj.Call(mprisRootIface+".Raise", 0)
	if call.Err != nil {
		return fmt.Errorf("%s could not be raised: %w", desc.BusName(), call.Err)
	}
	return nil
}
