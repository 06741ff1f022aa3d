package dispatch

import (
	"log"
	"time"

	"mediarelay/internal/mediakey"
)

// Controller is the capability surface of the active target application.
// Calls are fire-and-forget; a controller never reports failure upward.
type Controller interface {
	PlayPause()
	NextTrack()
	PreviousTrack()
}

// Both input pathways can fire for the same physical keypress; anything that
// arrives as the same key within this window is treated as that duplicate.
const dedupWindow = 300 * time.Millisecond

// Dispatcher is the single funnel between the input pathways and the active
// controller. Dispatch must only be called from the main run loop, so no
// locking is needed around its state.
type Dispatcher struct {
	controller Controller
	lastKey    mediakey.Key
	lastStamp  time.Time
	hasLast    bool
	now        func() time.Time
}

func New() *Dispatcher {
	return &Dispatcher{now: time.Now}
}

// SetController replaces the active controller wholesale. nil unbinds.
func (d *Dispatcher) SetController(c Controller) {
	d.controller = c
}

// Dispatch forwards one logical key to the active controller unless it is a
// near-simultaneous duplicate. This is a pure time-windowed debounce, not a
// queue: a different key right after a recent dispatch always goes through,
// and an out-of-window repeat of the same key goes through every time.
func (d *Dispatcher) Dispatch(key mediakey.Key) {
	now := d.now()
	if d.hasLast && key == d.lastKey && now.Sub(d.lastStamp) < dedupWindow {
		return
	}
	d.lastKey = key
	d.lastStamp = now
	d.hasLast = true

	if d.controller == nil {
		log.Printf("No target application selected; dropping %s.", key)
		return
	}

	switch key {
	case mediakey.KeyPlayPause:
		d.controller.PlayPause()
	case mediakey.KeyNext:
		d.controller.NextTrack()
	case mediakey.KeyPrevious:
		d.controller.PreviousTrack()
	}
}
