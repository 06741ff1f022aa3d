package control

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediarelay/internal/inject"
)

type fakeTransport struct {
	running    bool
	launchErr  error
	commandErr error

	launched  int
	activated int
	commands  []string
}

func (f *fakeTransport) IsRunning(TargetDescriptor) bool { return f.running }

func (f *fakeTransport) Launch(TargetDescriptor) error {
	f.launched++
	return f.launchErr
}

func (f *fakeTransport) Command(_ TargetDescriptor, command string) error {
	f.commands = append(f.commands, command)
	return f.commandErr
}

func (f *fakeTransport) Activate(TargetDescriptor) error {
	f.activated++
	return nil
}

// manualScheduler captures delayed continuations so tests step through them
// deterministically.
type manualScheduler struct {
	pending []pendingWork
}

type pendingWork struct {
	delay time.Duration
	fn    func()
}

func (s *manualScheduler) Do(fn func()) { fn() }

func (s *manualScheduler) DoAfter(d time.Duration, fn func()) {
	s.pending = append(s.pending, pendingWork{delay: d, fn: fn})
}

// runNext pops and runs the oldest pending continuation, returning its delay.
func (s *manualScheduler) runNext(t *testing.T) time.Duration {
	t.Helper()
	require.NotEmpty(t, s.pending, "no pending scheduled work")
	next := s.pending[0]
	s.pending = s.pending[1:]
	next.fn()
	return next.delay
}

type fakeInjector struct {
	downs []inject.Key
	ups   []inject.Key
	err   error
}

func (f *fakeInjector) KeyDown(k inject.Key) error { f.downs = append(f.downs, k); return f.err }
func (f *fakeInjector) KeyUp(k inject.Key) error   { f.ups = append(f.ups, k); return f.err }

func spotify() TargetDescriptor {
	return TargetDescriptor{
		DisplayName:  "Spotify",
		AppID:        "spotify",
		PlayPauseCmd: "PlayPause",
		NextCmd:      "Next",
		PrevCmd:      "Previous",
	}
}

func newTestController(transport *fakeTransport) (*Controller, *manualScheduler, *fakeInjector) {
	sched := &manualScheduler{}
	injector := &fakeInjector{}
	return New(spotify(), transport, sched, injector), sched, injector
}

func TestRunningTargetGetsCommandImmediately(t *testing.T) {
	transport := &fakeTransport{running: true}
	ctrl, sched, injector := newTestController(transport)

	ctrl.PlayPause()

	assert.Equal(t, []string{"PlayPause"}, transport.commands)
	assert.Zero(t, transport.launched)
	assert.Empty(t, sched.pending)
	assert.Empty(t, injector.downs)
}

func TestStoppedTargetIsLaunchedThenCommanded(t *testing.T) {
	transport := &fakeTransport{running: false}
	ctrl, sched, _ := newTestController(transport)

	ctrl.PlayPause()

	assert.Equal(t, 1, transport.launched)
	assert.Empty(t, transport.commands, "command must wait for the launch settle")

	delay := sched.runNext(t)
	assert.Equal(t, 1500*time.Millisecond, delay)
	assert.Equal(t, []string{"PlayPause"}, transport.commands)
}

func TestLaunchFailureDropsTheAction(t *testing.T) {
	transport := &fakeTransport{running: false, launchErr: errors.New("no such application")}
	ctrl, sched, injector := newTestController(transport)

	ctrl.NextTrack()

	assert.Empty(t, transport.commands)
	assert.Empty(t, sched.pending)
	assert.Empty(t, injector.downs)
}

func TestRefusedCommandFallsBackToKeystroke(t *testing.T) {
	tests := []struct {
		name    string
		action  func(*Controller)
		command string
		key     inject.Key
	}{
		{"play/pause falls back to space", (*Controller).PlayPause, "PlayPause", inject.KeySpace},
		{"next falls back to right arrow", (*Controller).NextTrack, "Next", inject.KeyRightArrow},
		{"previous falls back to left arrow", (*Controller).PreviousTrack, "Previous", inject.KeyLeftArrow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &fakeTransport{running: true, commandErr: errors.New("unknown method")}
			ctrl, sched, injector := newTestController(transport)

			tt.action(ctrl)

			assert.Equal(t, []string{tt.command}, transport.commands)
			assert.Equal(t, 1, transport.activated)

			// activate settle, then key down
			assert.Equal(t, 100*time.Millisecond, sched.runNext(t))
			require.Equal(t, []inject.Key{tt.key}, injector.downs)
			assert.Empty(t, injector.ups)

			// inter-event gap, then key up
			assert.Equal(t, 50*time.Millisecond, sched.runNext(t))
			assert.Equal(t, []inject.Key{tt.key}, injector.ups)

			// one-shot: nothing further scheduled
			assert.Empty(t, sched.pending)
		})
	}
}

func TestFailedKeyDownSkipsKeyUp(t *testing.T) {
	transport := &fakeTransport{running: true, commandErr: errors.New("unknown method")}
	sched := &manualScheduler{}
	injector := &fakeInjector{err: errors.New("no input source")}
	ctrl := New(spotify(), transport, sched, injector)

	ctrl.PlayPause()
	sched.runNext(t) // activate settle + key down attempt

	assert.Len(t, injector.downs, 1)
	assert.Empty(t, sched.pending, "key up must not be scheduled after a failed key down")
}

// The command strings come from the descriptor, never from constants baked
// into the controller.
func TestDescriptorCommandStringsUsedVerbatim(t *testing.T) {
	transport := &fakeTransport{running: true}
	sched := &manualScheduler{}
	desc := TargetDescriptor{
		DisplayName:  "Custom Player",
		AppID:        "customplayer",
		PlayPauseCmd: "TogglePlayback",
		NextCmd:      "SkipForward",
		PrevCmd:      "SkipBackward",
	}
	ctrl := New(desc, transport, sched, &fakeInjector{})

	ctrl.NextTrack()
	ctrl.PreviousTrack()
	ctrl.PlayPause()

	assert.Equal(t, []string{"SkipForward", "SkipBackward", "TogglePlayback"}, transport.commands)
}

func TestBuiltinTargetsAreValidAndUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, target := range BuiltinTargets() {
		assert.True(t, target.Valid(), "builtin %q must be complete", target.DisplayName)
		assert.False(t, seen[target.AppID], "duplicate builtin app id %q", target.AppID)
		seen[target.AppID] = true
	}
}

func TestBusName(t *testing.T) {
	assert.Equal(t, "org.mpris.MediaPlayer2.spotify", spotify().BusName())
}
