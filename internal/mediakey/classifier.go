package mediakey

import "log"

// Handler receives logical keys on the main run loop.
type Handler func(Key)

// Classifier turns raw media-key transitions from a capture backend into
// logical key emissions. Classification happens synchronously inside the
// backend's callback; the emission itself is deferred through post so the
// callback returns to the OS immediately.
type Classifier struct {
	backend Backend
	post    func(func())
	handler Handler
	running bool
}

// NewClassifier builds a classifier around a capture backend. backend may be
// nil when no capture method exists on this system; Start then reports false.
func NewClassifier(backend Backend, post func(func()), handler Handler) *Classifier {
	return &Classifier{
		backend: backend,
		post:    post,
		handler: handler,
	}
}

// Classify is the pure classification rule. It reports the logical key, if
// one should be emitted for this transition, and the tap disposition.
//
// Recognized code, first down press: emit + swallow. Auto-repeat down:
// swallow without emitting, so holding a key cannot flood the dispatcher.
// Any up transition of a recognized code: swallow without emitting.
// Unrecognized codes always pass through untouched.
func Classify(ev RawEvent) (Key, bool, Disposition) {
	key, known := keyForCode(ev.Code)
	if !known {
		return 0, false, PassThrough
	}
	if !ev.Down || ev.Repeat {
		return 0, false, Swallow
	}
	return key, true, Swallow
}

// HandleRawEvent is invoked by the capture backend for every raw transition.
// It must stay cheap: decode, classify, post.
func (c *Classifier) HandleRawEvent(ev RawEvent) Disposition {
	key, emit, disp := Classify(ev)
	if emit && c.handler != nil {
		h := c.handler
		c.post(func() { h(key) })
	}
	return disp
}

// CanIntercept reports whether a capture method exists on this system. When
// it returns false the caller is expected to prompt the user (permissions,
// missing display server support) and retry Start later.
func (c *Classifier) CanIntercept() bool {
	return c.backend != nil && c.backend.IsAvailable()
}

// Start begins interception. It reports failure as a boolean instead of an
// error: the typical cause is a missing permission, which the caller handles
// by prompting, not by unwrapping.
func (c *Classifier) Start() bool {
	if c.running {
		return true
	}
	if c.backend == nil {
		log.Println("No media-key capture backend available on this system.")
		return false
	}
	if err := c.backend.Start(c.HandleRawEvent); err != nil {
		log.Printf("Failed to start media-key capture (%s): %v", c.backend.Name(), err)
		return false
	}
	log.Printf("Media-key capture started via %s.", c.backend.Name())
	c.running = true
	return true
}

// Stop ends interception. Safe to call when not started.
func (c *Classifier) Stop() {
	if !c.running {
		return
	}
	if err := c.backend.Stop(); err != nil {
		log.Printf("Error stopping media-key capture: %v", err)
	}
	c.running = false
}
