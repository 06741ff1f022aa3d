package runloop

import (
	"log"
	"time"
)

// Loop is a single-goroutine serial executor. Every piece of shared state in
// the dispatch path (dispatcher window, active controller) is mutated only
// from functions posted here, which is the sole synchronization discipline of
// the application: the capture and remote-command callbacks arrive on OS
// threads, do trivial decode work, and re-enter the loop via Do.
type Loop struct {
	work chan func()
	quit chan struct{}
}

// New creates a loop. Run must be started on its own goroutine before any
// posted work executes.
func New() *Loop {
	return &Loop{
		work: make(chan func(), 64),
		quit: make(chan struct{}),
	}
}

// Run processes posted work serially until Stop is called.
func (l *Loop) Run() {
	for {
		select {
		case <-l.quit:
			return
		case fn := <-l.work:
			fn()
		}
	}
}

// Do posts fn onto the loop. It never blocks indefinitely: after Stop the
// work is silently dropped.
func (l *Loop) Do(fn func()) {
	select {
	case <-l.quit:
		log.Println("Run loop stopped; dropping posted work.")
	case l.work <- fn:
	}
}

// DoAfter schedules fn to run on the loop after d. The wait is a timer that
// re-posts, not a sleep, so the loop stays free to process other work in the
// meantime. There is no cancellation for in-flight continuations.
func (l *Loop) DoAfter(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		l.Do(fn)
	})
}

// Stop terminates Run. Work already queued but not yet executed is dropped.
func (l *Loop) Stop() {
	select {
	case <-l.quit:
	default:
		close(l.quit)
	}
}
