package control

import (
	"log"
	"time"

	"mediarelay/internal/inject"
)

// Transport is the control channel to a player process. The real
// implementation talks D-Bus; tests substitute a fake.
type Transport interface {
	// IsRunning checks the OS's running-application list for the target.
	IsRunning(desc TargetDescriptor) bool

	// Launch requests an asynchronous, non-activating start of the target.
	Launch(desc TargetDescriptor) error

	// Command issues one application-level control command, using the
	// descriptor's command string verbatim.
	Command(desc TargetDescriptor, command string) error

	// Activate brings the target's existing process to the foreground.
	Activate(desc TargetDescriptor) error
}

// Scheduler posts delayed continuations onto the main run loop. The waits in
// the controller are scheduled there, never slept.
type Scheduler interface {
	Do(fn func())
	DoAfter(d time.Duration, fn func())
}

const (
	// Best-effort race after a launch request; there is no confirmed-ready
	// signal. A slow launch makes the subsequent command fail silently.
	launchSettle = 1500 * time.Millisecond

	// Settle after activating the target before injecting the fallback key.
	activateSettle = 100 * time.Millisecond

	// Gap between the synthesized key-down and key-up.
	keyEventGap = 50 * time.Millisecond
)

// Controller drives one target application. Every action is fire-and-forget:
// the dispatcher has no retry concept, so nothing here propagates failure.
type Controller struct {
	desc      TargetDescriptor
	transport Transport
	sched     Scheduler
	injector  inject.Injector
}

// New is the controller factory: a pure builder with no side effects beyond
// allocation. It always succeeds.
func New(desc TargetDescriptor, transport Transport, sched Scheduler, injector inject.Injector) *Controller {
	return &Controller{
		desc:      desc,
		transport: transport,
		sched:     sched,
		injector:  injector,
	}
}

// Descriptor returns the descriptor this controller was built from.
func (c *Controller) Descriptor() TargetDescriptor {
	return c.desc
}

func (c *Controller) PlayPause() {
	c.execute(c.desc.PlayPauseCmd, inject.KeySpace)
}

func (c *Controller) NextTrack() {
	c.execute(c.desc.NextCmd, inject.KeyRightArrow)
}

func (c *Controller) PreviousTrack() {
	c.execute(c.desc.PrevCmd, inject.KeyLeftArrow)
}

// execute runs the shared policy: ensure the target runs (launching it and
// waiting out the settle delay if not), then send the command, then fall
// back to keystroke injection if the control channel refuses it.
func (c *Controller) execute(command string, fallback inject.Key) {
	if c.transport.IsRunning(c.desc) {
		c.sendCommand(command, fallback)
		return
	}

	if err := c.transport.Launch(c.desc); err != nil {
		// Target unavailable: logged, dropped, no retry.
		log.Printf("Cannot launch %s: %v", c.desc.DisplayName, err)
		return
	}
	log.Printf("%s not running; launched, retrying %q in %v.", c.desc.DisplayName, command, launchSettle)
	c.sched.DoAfter(launchSettle, func() {
		c.sendCommand(command, fallback)
	})
}

func (c *Controller) sendCommand(command string, fallback inject.Key) {
	err := c.transport.Command(c.desc, command)
	if err == nil {
		return
	}
	log.Printf("%s refused %q (%v); falling back to %s keystroke.", c.desc.DisplayName, command, err, fallback)

	// One-shot fallback: foreground the app, settle, then synthesize the
	// key pair. Never retried beyond this.
	if err := c.transport.Activate(c.desc); err != nil {
		log.Printf("Could not activate %s: %v", c.desc.DisplayName, err)
	}
	c.sched.DoAfter(activateSettle, func() {
		if err := c.injector.KeyDown(fallback); err != nil {
			log.Printf("Key injection failed for %s: %v", fallback, err)
			return
		}
		c.sched.DoAfter(keyEventGap, func() {
			if err := c.injector.KeyUp(fallback); err != nil {
				log.Printf("Key release injection failed for %s: %v", fallback, err)
			}
		})
	})
}
